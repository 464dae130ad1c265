package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadilmartias/job-matcher/internal/dto"
	"github.com/fadilmartias/job-matcher/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxUploadSize = 5 * 1024 * 1024

type SearchUsecaseInterface interface {
	SearchByQuery(ctx context.Context, query string) ([]dto.SearchResult, *dto.FilterCriteria, error)
	SearchByResume(ctx context.Context, pdfPath string) ([]dto.SearchResult, error)
}

type SearchHandler struct {
	uc        SearchUsecaseInterface
	uploadDir string
	logger    *zap.Logger
}

func NewSearchHandler(uc SearchUsecaseInterface, uploadDir string, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{uc: uc, uploadDir: uploadDir, logger: logger}
}

func (h *SearchHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)
	app.Post("/search", h.Search)
	app.Get("/upload.html", h.UploadPage)
	app.Post("/upload-pdf", middleware.RateLimiter(10, 1*time.Minute), h.UploadPDF)
}

func (h *SearchHandler) Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Jobs":  []dto.SearchResult{},
		"Query": "",
	})
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.FormValue("query")

	results, _, err := h.uc.SearchByQuery(c.UserContext(), query)
	if err != nil {
		h.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		return c.Render("index", fiber.Map{
			"Jobs":  []dto.SearchResult{},
			"Query": query,
			"Error": "Search is temporarily unavailable. Please try again.",
		})
	}

	return c.Render("index", fiber.Map{
		"Jobs":     results,
		"Query":    query,
		"Searched": true,
	})
}

func (h *SearchHandler) UploadPage(c *fiber.Ctx) error {
	return c.Render("upload", fiber.Map{})
}

func (h *SearchHandler) UploadPDF(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("No file uploaded.")
	}

	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).SendString("File too large (max 5MB).")
	}

	savePath := filepath.Join(h.uploadDir, fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, savePath); err != nil {
		h.logger.Error("cannot save uploaded file", zap.Error(err))
		return h.renderPDFError(c)
	}
	// Uploads are transient: remove on every exit path once extraction ran.
	defer func() {
		if err := os.Remove(savePath); err != nil {
			h.logger.Warn("cannot remove uploaded file",
				zap.String("path", savePath),
				zap.Error(err))
		}
	}()

	results, err := h.uc.SearchByResume(c.UserContext(), savePath)
	if err != nil {
		h.logger.Error("resume search failed", zap.Error(err))
		return h.renderPDFError(c)
	}

	return c.Render("index", fiber.Map{
		"Jobs":     results,
		"Query":    "",
		"Searched": true,
	})
}

func (h *SearchHandler) renderPDFError(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Jobs":  []dto.SearchResult{},
		"Query": "",
		"Error": "Error processing PDF",
	})
}
