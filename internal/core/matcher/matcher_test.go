package matcher

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/graph"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

type fakeProfiles struct {
	candidates   map[string]*model.CandidateProfile
	teams        []model.TeamProfile
	interviewers map[string][]model.InterviewerProfile
}

func (f *fakeProfiles) GetCandidate(_ context.Context, id string) (*model.CandidateProfile, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %q: %w", id, graph.ErrNotFound)
	}
	return c, nil
}

func (f *fakeProfiles) GetTeam(_ context.Context, id string) (*model.TeamProfile, error) {
	for i := range f.teams {
		if f.teams[i].ID == id {
			return &f.teams[i], nil
		}
	}
	return nil, fmt.Errorf("team %q: %w", id, graph.ErrNotFound)
}

func (f *fakeProfiles) GetAllTeams(_ context.Context) ([]model.TeamProfile, error) {
	return f.teams, nil
}

func (f *fakeProfiles) GetTeamInterviewers(_ context.Context, teamID string) ([]model.InterviewerProfile, error) {
	return f.interviewers[teamID], nil
}

func newTestMatcher(profiles *fakeProfiles, seed uint64) *Matcher {
	m := New(profiles, llm.NewLocalEmbedder(0), config.Default().Matching, nil)

	// Distinct deterministic source per call; safe under concurrent batches.
	var calls atomic.Uint64
	m.RandSource = func() rand.Source {
		s := seed + calls.Add(1)
		return rand.NewPCG(s, s)
	}
	return m
}

func gpuCandidate() *model.CandidateProfile {
	return &model.CandidateProfile{
		ID:      "cand-1",
		Skills:  []string{"CUDA", "C++", "PyTorch"},
		Domains: []string{"LLM Inference"},
	}
}

func twoTeams() []model.TeamProfile {
	return []model.TeamProfile{
		{ID: "perfect", Needs: []string{"CUDA", "C++", "PyTorch"}, Expertise: []string{"LLM Inference"}},
		{ID: "poor", Needs: []string{"React", "Node.js"}, Expertise: []string{"Web Development"}},
	}
}

func TestMatchToTeam(t *testing.T) {
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:      twoTeams(),
	}
	m := newTestMatcher(profiles, 1)

	result, err := m.MatchToTeam(context.Background(), "cand-1")
	require.NoError(t, err)

	assert.Equal(t, "cand-1", result.CandidateID)
	assert.Contains(t, []string{"perfect", "poor"}, result.TeamID)
	assert.GreaterOrEqual(t, result.MatchScore, 0.0)
	assert.LessOrEqual(t, result.MatchScore, 1.0)
	assert.Len(t, result.Alternatives, 1)
}

func TestMatchToTeamPrefersOverlap(t *testing.T) {
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:      twoTeams(),
	}
	m := newTestMatcher(profiles, 7)

	scores := map[string]float64{}
	counts := map[string]int{}
	for i := 0; i < 10; i++ {
		result, err := m.MatchToTeam(context.Background(), "cand-1")
		require.NoError(t, err)
		scores[result.TeamID] += result.MatchScore
		counts[result.TeamID]++
	}

	// Thompson sampling explores, so compare averages, not single draws.
	perfectMean := 0.0
	if counts["perfect"] > 0 {
		perfectMean = scores["perfect"] / float64(counts["perfect"])
	}
	poorMean := 0.0
	if counts["poor"] > 0 {
		poorMean = scores["poor"] / float64(counts["poor"])
	}

	assert.Greater(t, counts["perfect"], 0, "the matching team should get selected at least once")
	if counts["poor"] > 0 {
		assert.GreaterOrEqual(t, perfectMean, poorMean)
	}
}

func TestMatchToTeamCandidateNotFound(t *testing.T) {
	m := newTestMatcher(&fakeProfiles{candidates: map[string]*model.CandidateProfile{}, teams: twoTeams()}, 1)

	_, err := m.MatchToTeam(context.Background(), "ghost")
	assert.ErrorIs(t, err, graph.ErrNotFound)
}

func TestMatchToTeamNoTeams(t *testing.T) {
	m := newTestMatcher(&fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
	}, 1)

	_, err := m.MatchToTeam(context.Background(), "cand-1")
	assert.ErrorIs(t, err, ErrNoTeams)
}

func TestMatchToPerson(t *testing.T) {
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:      twoTeams(),
		interviewers: map[string][]model.InterviewerProfile{
			"perfect": {
				{ID: "int-1", TeamID: "perfect", Expertise: []string{"CUDA", "PyTorch"}},
				{ID: "int-2", TeamID: "perfect", Expertise: []string{"React"}},
			},
		},
	}
	m := newTestMatcher(profiles, 3)

	result, err := m.MatchToPerson(context.Background(), "cand-1", "perfect")
	require.NoError(t, err)
	assert.Contains(t, []string{"int-1", "int-2"}, result.InterviewerID)
	assert.Empty(t, result.TeamID)
}

func TestMatchToPersonNoInterviewers(t *testing.T) {
	profiles := &fakeProfiles{
		candidates:   map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:        twoTeams(),
		interviewers: map[string][]model.InterviewerProfile{},
	}
	m := newTestMatcher(profiles, 1)

	_, err := m.MatchToPerson(context.Background(), "cand-1", "poor")
	assert.ErrorIs(t, err, ErrNoInterviewers)
	assert.NotErrorIs(t, err, ErrNoTeams)
}

func TestMatchToPersonTeamNotFound(t *testing.T) {
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:      twoTeams(),
	}
	m := newTestMatcher(profiles, 1)

	_, err := m.MatchToPerson(context.Background(), "cand-1", "ghost-team")
	assert.ErrorIs(t, err, graph.ErrNotFound)
}

func TestMatchManyTeamsWithinBudget(t *testing.T) {
	teams := make([]model.TeamProfile, 50)
	for i := range teams {
		teams[i] = model.TeamProfile{
			ID:    fmt.Sprintf("team-%d", i),
			Needs: []string{fmt.Sprintf("skill-%d", i), "Go"},
		}
	}
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:      teams,
	}
	m := newTestMatcher(profiles, 11)

	start := time.Now()
	_, err := m.MatchToTeam(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 30*time.Second)
}
