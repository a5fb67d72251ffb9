// Package matcher routes candidates: it picks a team for a candidate, then
// an interviewer within that team, using one warm-started bandit per call.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/bandit"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

var (
	ErrNoTeams        = errors.New("no teams available")
	ErrNoInterviewers = errors.New("no interviewers available")
)

// ProfileSource is the slice of the knowledge graph the matcher reads.
type ProfileSource interface {
	GetCandidate(ctx context.Context, id string) (*model.CandidateProfile, error)
	GetTeam(ctx context.Context, id string) (*model.TeamProfile, error)
	GetAllTeams(ctx context.Context) ([]model.TeamProfile, error)
	GetTeamInterviewers(ctx context.Context, teamID string) ([]model.InterviewerProfile, error)
}

// Matcher owns no cross-call state: every match call constructs a fresh
// bandit over the current arm set and discards it afterwards.
type Matcher struct {
	profiles ProfileSource
	embedder llm.EmbedderClient
	cfg      config.MatchingConfig
	logger   *zap.Logger

	// RandSource supplies the bandit RNG for each call. Nil means a fresh
	// randomly-seeded source per call; tests fix it for reproducibility.
	RandSource func() rand.Source
}

func New(profiles ProfileSource, embedder llm.EmbedderClient, cfg config.MatchingConfig, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		profiles: profiles,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger,
	}
}

// MatchToTeam selects a team for the candidate. The bandit is warm-started
// from candidate/team embedding similarity and asked for a single selection;
// match_score is the selected arm's posterior mean.
func (m *Matcher) MatchToTeam(ctx context.Context, candidateID string) (*model.MatchResult, error) {
	candidate, err := m.profiles.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	teams, err := m.profiles.GetAllTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("match candidate %q: %w", candidateID, ErrNoTeams)
	}

	arms := make([]bandit.Arm, len(teams))
	for i := range teams {
		vec, err := m.profileVector(ctx, teams[i].Embedding, teams[i].EmbeddingText())
		if err != nil {
			return nil, fmt.Errorf("failed to embed team %q: %w", teams[i].ID, err)
		}
		arms[i] = bandit.Arm{ID: teams[i].ID, Embedding: vec}
	}

	candVec, err := m.profileVector(ctx, candidate.Embedding, candidate.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate %q: %w", candidateID, err)
	}

	b, idx, err := m.selectOnce(arms, candVec)
	if err != nil {
		return nil, err
	}

	result := &model.MatchResult{
		CandidateID:  candidateID,
		TeamID:       arms[idx].ID,
		MatchScore:   b.PosteriorMean(idx),
		Alternatives: m.alternatives(b, idx),
	}

	m.logger.Debug("matched candidate to team",
		zap.String("candidate_id", candidateID),
		zap.String("team_id", result.TeamID),
		zap.Float64("match_score", result.MatchScore),
	)
	return result, nil
}

// MatchToPerson selects an interviewer within the given team.
func (m *Matcher) MatchToPerson(ctx context.Context, candidateID, teamID string) (*model.MatchResult, error) {
	candidate, err := m.profiles.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	if _, err := m.profiles.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	interviewers, err := m.profiles.GetTeamInterviewers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(interviewers) == 0 {
		return nil, fmt.Errorf("team %q: %w", teamID, ErrNoInterviewers)
	}

	arms := make([]bandit.Arm, len(interviewers))
	for i := range interviewers {
		vec, err := m.profileVector(ctx, interviewers[i].Embedding, interviewers[i].EmbeddingText())
		if err != nil {
			return nil, fmt.Errorf("failed to embed interviewer %q: %w", interviewers[i].ID, err)
		}
		arms[i] = bandit.Arm{ID: interviewers[i].ID, Embedding: vec}
	}

	candVec, err := m.profileVector(ctx, candidate.Embedding, candidate.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate %q: %w", candidateID, err)
	}

	b, idx, err := m.selectOnce(arms, candVec)
	if err != nil {
		return nil, err
	}

	result := &model.MatchResult{
		CandidateID:   candidateID,
		InterviewerID: arms[idx].ID,
		MatchScore:    b.PosteriorMean(idx),
		Alternatives:  m.alternatives(b, idx),
	}

	m.logger.Debug("matched candidate to interviewer",
		zap.String("candidate_id", candidateID),
		zap.String("team_id", teamID),
		zap.String("interviewer_id", result.InterviewerID),
		zap.Float64("match_score", result.MatchScore),
	)
	return result, nil
}

func (m *Matcher) newBandit() *bandit.GraphWarmStartedFGTS {
	var src rand.Source
	if m.RandSource != nil {
		src = m.RandSource()
	}
	return bandit.New(bandit.Config{
		WarmStartStrength:   m.cfg.WarmStartStrength,
		ExplorationConstant: m.cfg.ExplorationConstant,
		Source:              src,
	})
}

func (m *Matcher) selectOnce(arms []bandit.Arm, target []float32) (*bandit.GraphWarmStartedFGTS, int, error) {
	b := m.newBandit()
	if err := b.InitializeFromEmbeddings(arms, target); err != nil {
		return nil, 0, err
	}
	idx, err := b.SelectCandidate()
	if err != nil {
		return nil, 0, err
	}
	return b, idx, nil
}

// alternatives ranks the non-selected arms by posterior mean.
func (m *Matcher) alternatives(b *bandit.GraphWarmStartedFGTS, selected int) []model.Alternative {
	if m.cfg.Alternatives <= 0 {
		return nil
	}

	var alts []model.Alternative
	for i := 0; i < b.NumArms(); i++ {
		if i == selected {
			continue
		}
		alts = append(alts, model.Alternative{ID: b.ArmID(i), Score: b.PosteriorMean(i)})
	}

	sort.Slice(alts, func(i, j int) bool { return alts[i].Score > alts[j].Score })

	if len(alts) > m.cfg.Alternatives {
		alts = alts[:m.cfg.Alternatives]
	}
	return alts
}

func (m *Matcher) profileVector(ctx context.Context, stored []float32, text string) ([]float32, error) {
	if len(stored) > 0 {
		return stored, nil
	}
	if m.embedder == nil {
		return nil, nil
	}
	return m.embedder.Embed(ctx, text)
}
