package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilmartias/job-matcher/internal/domain/fiber/handler"
	"github.com/fadilmartias/job-matcher/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUsecase struct {
	results   []dto.SearchResult
	queryErr  error
	resumeErr error
	lastQuery string
}

func (s *stubUsecase) SearchByQuery(_ context.Context, query string) ([]dto.SearchResult, *dto.FilterCriteria, error) {
	s.lastQuery = query
	if s.queryErr != nil {
		return nil, &dto.FilterCriteria{}, s.queryErr
	}
	return s.results, &dto.FilterCriteria{}, nil
}

func (s *stubUsecase) SearchByResume(_ context.Context, _ string) ([]dto.SearchResult, error) {
	if s.resumeErr != nil {
		return nil, s.resumeErr
	}
	return s.results, nil
}

func newTestApp(t *testing.T, uc handler.SearchUsecaseInterface) *fiber.App {
	t.Helper()

	engine := html.New("../../../../views", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	h := handler.NewSearchHandler(uc, t.TempDir(), zap.NewNop())
	h.RegisterRoutes(app)

	return app
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func multipartResume(t *testing.T, fieldName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestIndexPage(t *testing.T) {
	app := newTestApp(t, &stubUsecase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Job Matcher")
}

func TestUploadPage(t *testing.T) {
	app := newTestApp(t, &stubUsecase{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/upload.html", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Upload your résumé")
}

func TestSearchRendersResults(t *testing.T) {
	uc := &stubUsecase{results: []dto.SearchResult{
		{ID: "1", Score: 0.12, JobTitle: "Remote Software Engineer", Company: "Nimbus Labs"},
	}}
	app := newTestApp(t, uc)

	form := strings.NewReader("query=Remote+SWE")
	req := httptest.NewRequest(http.MethodPost, "/search", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Remote SWE", uc.lastQuery)
	assert.Contains(t, readBody(t, resp), "Remote Software Engineer")
}

func TestSearchErrorRendersInPage(t *testing.T) {
	uc := &stubUsecase{queryErr: fmt.Errorf("embedding provider down")}
	app := newTestApp(t, uc)

	form := strings.NewReader("query=anything")
	req := httptest.NewRequest(http.MethodPost, "/search", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	// Degraded page, not a failure status.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "temporarily unavailable")
}

func TestUploadPDFNoFile(t *testing.T) {
	app := newTestApp(t, &stubUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file uploaded.", readBody(t, resp))
}

func TestUploadPDFExtractionErrorKeepsServing(t *testing.T) {
	uc := &stubUsecase{resumeErr: fmt.Errorf("extract resume text: not a PDF")}
	app := newTestApp(t, uc)

	buf, contentType := multipartResume(t, "resume", []byte("this is not a pdf"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Error processing PDF")

	// The process keeps serving after the failure.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadPDFRendersMatches(t *testing.T) {
	uc := &stubUsecase{results: []dto.SearchResult{
		{ID: "6", Score: 0.2, JobTitle: "Machine Learning Engineer", Company: "Nimbus Labs"},
	}}
	app := newTestApp(t, uc)

	buf, contentType := multipartResume(t, "resume", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Machine Learning Engineer")
}

func TestUploadPDFWrongFieldName(t *testing.T) {
	app := newTestApp(t, &stubUsecase{})

	buf, contentType := multipartResume(t, "cv", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file uploaded.", readBody(t, resp))
}

func TestSearchNoMatchesState(t *testing.T) {
	app := newTestApp(t, &stubUsecase{})

	form := strings.NewReader("query=gibberish")
	req := httptest.NewRequest(http.MethodPost, "/search", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No matching jobs found.")
}
