package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fadilmartias/job-matcher/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type EmbeddingServiceInterface interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type ClassifierServiceInterface interface {
	Classify(ctx context.Context, text string, labels []string) (*Classification, error)
}

// Classification holds zero-shot scores, labels ordered by descending score
// with Scores parallel to Labels. Scores are probabilities in [0,1] but do
// not necessarily sum to 1 across labels.
type Classification struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Top returns the best label and its score.
func (c *Classification) Top() (string, float64) {
	if c == nil || len(c.Labels) == 0 || len(c.Scores) == 0 {
		return "", 0
	}
	return c.Labels[0], c.Scores[0]
}

// HuggingFaceService talks to the hosted inference API for both the
// feature-extraction (embedding) and zero-shot classification pipelines.
type HuggingFaceService struct {
	client         *resty.Client
	cfg            *config.HuggingFaceConfig
	logger         *zap.Logger
	breaker        *gobreaker.CircuitBreaker
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

type hfAPIError struct {
	Status int
	Body   string
}

func (e *hfAPIError) Error() string {
	return fmt.Sprintf("hugging face api status %d: %s", e.Status, e.Body)
}

func NewHuggingFaceService(logger *zap.Logger) (*HuggingFaceService, error) {
	cfg := config.LoadHuggingFaceConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("HF_API_KEY not set")
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "huggingface",
		MaxRequests: 5,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &HuggingFaceService{
		client:         client,
		cfg:            cfg,
		logger:         logger,
		breaker:        breaker,
		MaxRetries:     3,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		RequestTimeout: 60 * time.Second,
	}, nil
}

// EmbedTexts embeds the given texts, returning one vector per input in the
// same order.
func (s *HuggingFaceService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts for embedding cannot be empty")
	}
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("text %d for embedding cannot be empty", i)
		}
	}

	payload := map[string]any{
		"inputs":  texts,
		"options": map[string]any{"wait_for_model": true},
	}

	path := fmt.Sprintf("/pipeline/feature-extraction/%s", s.cfg.EmbeddingModel)
	body, err := s.postWithRetry(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings failed: %w", err)
	}

	return validateEmbeddings(body, len(texts))
}

// Classify runs the zero-shot pipeline for one text against the candidate
// labels.
func (s *HuggingFaceService) Classify(ctx context.Context, text string, labels []string) (*Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text for classification cannot be empty")
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("candidate labels cannot be empty")
	}

	payload := map[string]any{
		"inputs":     text,
		"parameters": map[string]any{"candidate_labels": labels},
		"options":    map[string]any{"wait_for_model": true},
	}

	path := fmt.Sprintf("/models/%s", s.cfg.ClassifierModel)
	body, err := s.postWithRetry(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("classify failed: %w", err)
	}

	result := &Classification{}
	for _, l := range gjson.GetBytes(body, "labels").Array() {
		result.Labels = append(result.Labels, l.String())
	}
	for _, sc := range gjson.GetBytes(body, "scores").Array() {
		result.Scores = append(result.Scores, sc.Float())
	}

	if len(result.Labels) == 0 || len(result.Labels) != len(result.Scores) {
		return nil, fmt.Errorf("invalid classification response: %d labels, %d scores",
			len(result.Labels), len(result.Scores))
	}

	return result, nil
}

func (s *HuggingFaceService) postWithRetry(ctx context.Context, path string, payload any) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Warn("retrying hugging face request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		body, err := s.post(timeoutCtx, path, payload)
		if err == nil {
			return body, nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			return nil, err
		}

		s.logger.Warn("retryable hugging face error",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", s.MaxRetries, lastErr)
}

func (s *HuggingFaceService) post(ctx context.Context, path string, payload any) ([]byte, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(payload).
			Post(path)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, &hfAPIError{Status: resp.StatusCode(), Body: resp.String()}
		}
		return resp.Body(), nil
	})
	if err != nil {
		return nil, err
	}
	body, ok := res.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected breaker result type %T", res)
	}
	return body, nil
}

func (s *HuggingFaceService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *HuggingFaceService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}

	var apiErr *hfAPIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504: // Server errors
			return true
		default:
			return false
		}
	}

	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

// validateEmbeddings parses the feature-extraction response and checks one
// finite vector came back per input, order preserved. A single input may come
// back as a bare vector instead of a one-element batch.
func validateEmbeddings(body []byte, want int) ([][]float32, error) {
	var vectors [][]float32
	if err := json.Unmarshal(body, &vectors); err != nil {
		var single []float32
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, fmt.Errorf("invalid embedding response: %w", err)
		}
		vectors = [][]float32{single}
	}

	if len(vectors) != want {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), want)
	}

	for i, vec := range vectors {
		if len(vec) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		for j, val := range vec {
			if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
				return nil, fmt.Errorf("invalid embedding value at [%d][%d]: %v", i, j, val)
			}
		}
	}

	return vectors, nil
}
