package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
)

// NewClient builds the generation and embedding clients for the configured
// provider. Claude has no embeddings API; it falls back to the local embedder
// so matching keeps working. The "local" provider is embeddings-only.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL)
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return c, NewLocalEmbedder(0), nil

	case "ollama":
		// Ollama exposes an OpenAI-compatible API; reuse that client.
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // Ignored by Ollama but required by the client.
		}

		c := NewOpenAIClient(apiKey, cfg.Model, cfg.EmbeddingModel, baseURL)
		return c, c, nil

	case "local", "":
		// Deterministic offline embedder; no generation support. LLM-backed
		// features (extraction, dedupe, summaries) stay disabled.
		return nil, NewLocalEmbedder(0), nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
