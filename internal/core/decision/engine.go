// Package decision turns candidate/position similarity plus extracted
// phone-screen signals into a pass/fail judgment with a confidence value.
package decision

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/common"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

// neutralScore stands in for interview signals that were not observed.
const neutralScore = 0.5

// ProfileSource is the slice of the knowledge graph the engine reads.
type ProfileSource interface {
	GetCandidate(ctx context.Context, id string) (*model.CandidateProfile, error)
	GetPosition(ctx context.Context, id string) (*model.PositionProfile, error)
}

// SimilarityFunc scores two embeddings into [0, 1].
type SimilarityFunc func(a, b []float32) float64

// Engine is the phone-screen decision engine. It holds no per-call state and
// no randomness: identical inputs against unchanged profiles produce
// bit-identical confidence and similarity.
type Engine struct {
	profiles   ProfileSource
	embedder   llm.EmbedderClient
	similarity SimilarityFunc

	simThreshold  float64
	confThreshold float64
	simWeight     float64
}

func NewEngine(profiles ProfileSource, embedder llm.EmbedderClient, cfg config.DecisionConfig) *Engine {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 0.65
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = 0.70
	}
	if cfg.SimilarityWeight <= 0 || cfg.SimilarityWeight >= 1 {
		cfg.SimilarityWeight = 0.40
	}

	return &Engine{
		profiles:      profiles,
		embedder:      embedder,
		similarity:    common.ClippedSimilarity,
		simThreshold:  cfg.SimilarityThreshold,
		confThreshold: cfg.ConfidenceThreshold,
		simWeight:     cfg.SimilarityWeight,
	}
}

// MakeDecision evaluates one phone screen. Confidence is a fixed-weight
// combination: simWeight on embedding similarity, the remainder split evenly
// across the four extracted signals, with missing signals neutral at 0.5.
// Pass requires both confidence and similarity at or above their thresholds.
// A weak candidate gets a fail decision, not an error.
func (e *Engine) MakeDecision(ctx context.Context, candidateID, positionID string, info model.ExtractedInfo) (*model.Decision, error) {
	candidate, err := e.profiles.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	position, err := e.profiles.GetPosition(ctx, positionID)
	if err != nil {
		return nil, err
	}

	candVec, err := e.profileVector(ctx, candidate.Embedding, candidate.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate %q: %w", candidateID, err)
	}
	posVec, err := e.profileVector(ctx, position.Embedding, position.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("failed to embed position %q: %w", positionID, err)
	}

	similarity := common.Clip01(e.similarity(candVec, posVec))

	motivation := scoreOrNeutral(info.MotivationScore)
	communication := scoreOrNeutral(info.CommunicationScore)
	technical := scoreOrNeutral(info.TechnicalDepth)
	cultural := scoreOrNeutral(info.CulturalFit)

	signalWeight := (1 - e.simWeight) / 4
	confidence := e.simWeight*similarity +
		signalWeight*(motivation+communication+technical+cultural)

	verdict := model.DecisionFail
	if confidence >= e.confThreshold && similarity >= e.simThreshold {
		verdict = model.DecisionPass
	}

	return &model.Decision{
		CandidateID:     candidateID,
		PositionID:      positionID,
		Decision:        verdict,
		Confidence:      confidence,
		SimilarityScore: similarity,
		Reasoning: e.reasoning(verdict, similarity, confidence,
			motivation, communication, technical, cultural),
	}, nil
}

// profileVector uses the stored embedding when present, otherwise embeds the
// canonical profile text on demand.
func (e *Engine) profileVector(ctx context.Context, stored []float32, text string) ([]float32, error) {
	if len(stored) > 0 {
		return stored, nil
	}
	if e.embedder == nil {
		return nil, nil
	}
	return e.embedder.Embed(ctx, text)
}

func (e *Engine) reasoning(verdict string, sim, conf, motivation, communication, technical, cultural float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "similarity %.3f against threshold %.2f; confidence %.3f against threshold %.2f",
		sim, e.simThreshold, conf, e.confThreshold)
	fmt.Fprintf(&b, "; signals: motivation %.2f, communication %.2f, technical depth %.2f, cultural fit %.2f",
		motivation, communication, technical, cultural)

	if verdict == model.DecisionPass {
		b.WriteString("; both gates met")
		return b.String()
	}

	var failed []string
	if sim < e.simThreshold {
		failed = append(failed, "similarity below threshold")
	}
	if conf < e.confThreshold {
		failed = append(failed, "confidence below threshold")
	}
	fmt.Fprintf(&b, "; %s", strings.Join(failed, ", "))
	return b.String()
}

func scoreOrNeutral(v *float64) float64 {
	if v == nil {
		return neutralScore
	}
	return common.Clip01(*v)
}
