package config

import (
	"os"
	"sync"
)

type HuggingFaceConfig struct {
	APIKey          string
	BaseURL         string
	EmbeddingModel  string
	ClassifierModel string
}

var (
	huggingFaceConfig *HuggingFaceConfig
	huggingFaceOnce   sync.Once
)

func LoadHuggingFaceConfig() *HuggingFaceConfig {
	huggingFaceOnce.Do(func() {
		baseURL := os.Getenv("HF_BASE_URL")
		if baseURL == "" {
			baseURL = "https://api-inference.huggingface.co"
		}
		embeddingModel := os.Getenv("HF_EMBEDDING_MODEL")
		if embeddingModel == "" {
			embeddingModel = "sentence-transformers/all-MiniLM-L6-v2"
		}
		classifierModel := os.Getenv("HF_CLASSIFIER_MODEL")
		if classifierModel == "" {
			classifierModel = "facebook/bart-large-mnli"
		}
		huggingFaceConfig = &HuggingFaceConfig{
			APIKey:          os.Getenv("HF_API_KEY"),
			BaseURL:         baseURL,
			EmbeddingModel:  embeddingModel,
			ClassifierModel: classifierModel,
		}
	})
	return huggingFaceConfig
}
