package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type MatchingConfig struct {
	// WarmStartStrength is k in alpha = 1 + k*sim: how strongly embedding
	// similarity shapes the priors.
	WarmStartStrength float64 `toml:"warm_start_strength"`
	// ExplorationConstant is c in the feel-good bonus.
	ExplorationConstant float64 `toml:"exploration_constant"`
	// Alternatives is how many runner-up arms a match result reports.
	Alternatives int `toml:"alternatives"`
}

type DecisionConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	// SimilarityWeight is the share of confidence taken by embedding
	// similarity; the four interview signals split the remainder evenly.
	SimilarityWeight float64 `toml:"similarity_weight"`
}

type Prompts struct {
	Extraction string `toml:"extraction"`
	Dedupe     string `toml:"dedupe"`
	Summary    string `toml:"summary"`
	PoolName   string `toml:"pool_name"`
}

type ConcurrencyConfig struct {
	BatchMatch int `toml:"batch_match"`
	BulkIngest int `toml:"bulk_ingest"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Graph       GraphConfig       `toml:"graph"`
	Matching    MatchingConfig    `toml:"matching"`
	Decision    DecisionConfig    `toml:"decision"`
	Prompts     Prompts           `toml:"prompts"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

// Default returns a configuration that works without a config file: local
// embedder, localhost graph, documented matching and decision constants.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "local",
		},
		Graph: GraphConfig{
			URI: "bolt://localhost:7687",
		},
		Matching: MatchingConfig{
			WarmStartStrength:   10.0,
			ExplorationConstant: 0.3,
			Alternatives:        3,
		},
		Decision: DecisionConfig{
			SimilarityThreshold: 0.65,
			ConfidenceThreshold: 0.70,
			SimilarityWeight:    0.40,
		},
		Concurrency: ConcurrencyConfig{
			BatchMatch: 4,
			BulkIngest: 4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
