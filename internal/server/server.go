// Package server exposes the recruiting pipeline over HTTP: profile ingest,
// team/interviewer matching, phone-screen decisions, talent pools and
// position shortlists.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/decision"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/dedupe"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/extraction"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/matcher"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/pool"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/summary"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/graph"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

type Server struct {
	Store   *graph.Store
	Matcher *matcher.Matcher
	Engine  *decision.Engine
	Pools   *pool.Detector

	// LLM-backed components; nil when the provider is embeddings-only.
	Extractor  *extraction.Extractor
	Dedupe     *dedupe.Deduplicator
	Summarizer *summary.Summarizer
	Reranker   llm.RerankerClient

	Config *config.Config
	logger *zap.Logger
}

func New(store *graph.Store, llmClient llm.LLMClient, embedder llm.EmbedderClient, cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		Store:   store,
		Matcher: matcher.New(store, embedder, cfg.Matching, logger),
		Engine:  decision.NewEngine(store, embedder, cfg.Decision),
		Pools:   pool.NewDetector(),
		Config:  cfg,
		logger:  logger,
	}

	if llmClient != nil {
		s.Extractor = extraction.NewExtractor(llmClient, cfg.Prompts.Extraction)
		s.Dedupe = dedupe.NewDeduplicator(llmClient, cfg.Prompts.Dedupe)
		s.Summarizer = summary.NewSummarizer(llmClient, cfg.Prompts)
		s.Reranker = llm.NewSimpleLLMReranker(llmClient)
	}

	return s
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/candidates", s.AddCandidate)
	r.POST("/candidates/bulk", s.AddCandidatesBulk)
	r.GET("/candidates/:id", s.GetCandidate)

	r.POST("/teams", s.AddTeam)
	r.GET("/teams/:id", s.GetTeam)

	r.POST("/positions", s.AddPosition)
	r.GET("/positions/:id", s.GetPosition)
	r.POST("/positions/shortlist", s.Shortlist)

	r.POST("/interviewers", s.AddInterviewer)
	r.GET("/interviewers/:id", s.GetInterviewer)

	r.POST("/match/team", s.MatchTeam)
	r.POST("/match/team/batch", s.MatchTeamBatch)
	r.POST("/match/person", s.MatchPerson)

	r.POST("/decisions", s.MakeDecision)
	r.POST("/interviews/evaluate", s.EvaluateInterview)

	r.GET("/pools", s.ListPools)

	return r
}
