package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/driver"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/graph"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/logger"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg := loadConfig()

	zl, err := logger.New(os.Getenv("LOG_JSON") == "true", os.Getenv("LOG_DEBUG") == "true")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password, zl)
	if err != nil {
		zl.Fatal("failed to connect to graph database", zap.Error(err))
	}
	defer d.Close(context.Background())

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		zl.Fatal("failed to initialize LLM client", zap.Error(err))
	}

	store := graph.NewStore(d, embedderClient, zl)
	if err := store.BuildIndices(context.Background()); err != nil {
		zl.Fatal("failed to build graph indices", zap.Error(err))
	}

	srv := server.New(store, llmClient, embedderClient, cfg, zl)
	r := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zl.Info("starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func loadConfig() *config.Config {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars win over the config file.
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("GRAPH_URI"); v != "" {
		cfg.Graph.URI = v
	}
	if v := os.Getenv("GRAPH_USER"); v != "" {
		cfg.Graph.User = v
	}
	if v := os.Getenv("GRAPH_PASSWORD"); v != "" {
		cfg.Graph.Password = v
	}

	return cfg
}
