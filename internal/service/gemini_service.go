package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fadilmartias/job-matcher/internal/config"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const geminiEmbeddingModel = "gemini-embedding-001"

// GeminiService is the alternate embedding provider, selected with
// EMBEDDINGS_PROVIDER=gemini. OutputDimensionality is pinned to the
// configured vector width so both providers fill the same column.
type GeminiService struct {
	Client         *genai.Client
	logger         *zap.Logger
	breaker        *gobreaker.CircuitBreaker
	dim            int32
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

func NewGeminiService(ctx context.Context, logger *zap.Logger) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 5,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &GeminiService{
		Client:         client,
		logger:         logger,
		breaker:        breaker,
		dim:            int32(config.LoadEmbeddingsConfig().Dim),
		MaxRetries:     3,
		BaseDelay:      time.Second,
		MaxDelay:       90 * time.Second,
		RequestTimeout: 90 * time.Second,
	}, nil
}

// EmbedTexts embeds the given texts in one batched call, returning one
// vector per input in the same order.
func (s *GeminiService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts for embedding cannot be empty")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, fmt.Errorf("text %d for embedding cannot be empty", i)
		}
		if len(trimmed) > 10000 {
			s.logger.Warn("truncating text for embedding",
				zap.Int("index", i),
				zap.Int("length", len(trimmed)))
			trimmed = trimmed[:10000]
		}
		contents = append(contents, genai.NewContentFromText(trimmed, genai.RoleUser))
	}

	embedConfig := &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(s.dim),
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Warn("retrying gemini embedding request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		res, err := s.breaker.Execute(func() (interface{}, error) {
			return s.Client.Models.EmbedContent(timeoutCtx, geminiEmbeddingModel, contents, embedConfig)
		})

		if err == nil {
			resp, ok := res.(*genai.EmbedContentResponse)
			if !ok {
				return nil, fmt.Errorf("unexpected breaker result type %T", res)
			}
			embeddings, err := s.validateEmbeddingResponse(resp, len(texts))
			if err != nil {
				return nil, fmt.Errorf("invalid embedding response: %w", err)
			}
			return embeddings, nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			return nil, fmt.Errorf("generate embeddings failed: %w", err)
		}

		s.logger.Warn("retryable gemini error",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return nil, fmt.Errorf("max retries (%d) exceeded for EmbedTexts: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return false
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504: // Server errors
			return true
		case 400, 401, 403, 404: // Client errors
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

func (s *GeminiService) validateEmbeddingResponse(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), want)
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		for j, val := range emb.Values {
			if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
				return nil, fmt.Errorf("invalid embedding value at [%d][%d]: %v", i, j, val)
			}
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}
