package matcher

import (
	"context"
	"fmt"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/bandit"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
)

// Session keeps one bandit alive across several selection rounds for the
// same candidate, so that interview outcomes can feed back as rewards.
// Sessions are ephemeral and exclusively owned by their creator; nothing is
// persisted across calls.
type Session struct {
	candidateID string
	b           *bandit.GraphWarmStartedFGTS
	index       map[string]int
}

// NewTeamSession builds a session over the current team set.
func (m *Matcher) NewTeamSession(ctx context.Context, candidateID string) (*Session, error) {
	candidate, err := m.profiles.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	teams, err := m.profiles.GetAllTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("session for candidate %q: %w", candidateID, ErrNoTeams)
	}

	arms := make([]bandit.Arm, len(teams))
	index := make(map[string]int, len(teams))
	for i := range teams {
		vec, err := m.profileVector(ctx, teams[i].Embedding, teams[i].EmbeddingText())
		if err != nil {
			return nil, fmt.Errorf("failed to embed team %q: %w", teams[i].ID, err)
		}
		arms[i] = bandit.Arm{ID: teams[i].ID, Embedding: vec}
		index[teams[i].ID] = i
	}

	candVec, err := m.profileVector(ctx, candidate.Embedding, candidate.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate %q: %w", candidateID, err)
	}

	b := m.newBandit()
	if err := b.InitializeFromEmbeddings(arms, candVec); err != nil {
		return nil, err
	}

	return &Session{candidateID: candidateID, b: b, index: index}, nil
}

// Select runs one bandit round and returns the chosen team id.
func (s *Session) Select() (string, error) {
	idx, err := s.b.SelectCandidate()
	if err != nil {
		return "", err
	}
	return s.b.ArmID(idx), nil
}

// Record feeds an interview outcome back as a reward in [0, 1].
func (s *Session) Record(teamID string, reward float64) error {
	idx, ok := s.index[teamID]
	if !ok {
		return fmt.Errorf("record for unknown team %q: %w", teamID, bandit.ErrInvalidArm)
	}
	return s.b.Update(idx, reward)
}

// Best returns the posterior-best arm as a match result, independent of
// exploration noise in individual rounds.
func (s *Session) Best() *model.MatchResult {
	best := 0
	bestScore := -1.0
	for i := 0; i < s.b.NumArms(); i++ {
		if score := s.b.PosteriorMean(i); score > bestScore {
			best = i
			bestScore = score
		}
	}

	return &model.MatchResult{
		CandidateID: s.candidateID,
		TeamID:      s.b.ArmID(best),
		MatchScore:  bestScore,
	}
}
