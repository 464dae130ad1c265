package config

import (
	"os"
	"strconv"
	"sync"
)

type EmbeddingsConfig struct {
	Provider string // "huggingface" or "gemini"
	Dim      int
}

var (
	embeddingsConfig *EmbeddingsConfig
	embeddingsOnce   sync.Once
)

func LoadEmbeddingsConfig() *EmbeddingsConfig {
	embeddingsOnce.Do(func() {
		provider := os.Getenv("EMBEDDINGS_PROVIDER")
		if provider == "" {
			provider = "huggingface"
		}
		dim := 384
		if raw := os.Getenv("EMBEDDINGS_DIM"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				dim = parsed
			}
		}
		embeddingsConfig = &EmbeddingsConfig{
			Provider: provider,
			Dim:      dim,
		}
	})
	return embeddingsConfig
}
