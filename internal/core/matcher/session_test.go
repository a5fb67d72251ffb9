package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/bandit"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
)

func TestTeamSessionRewardLoop(t *testing.T) {
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams: []model.TeamProfile{
			{ID: "alpha", Needs: []string{"Go"}},
			{ID: "beta", Needs: []string{"Rust"}},
			{ID: "gamma", Needs: []string{"Zig"}},
		},
	}
	m := newTestMatcher(profiles, 5)

	session, err := m.NewTeamSession(context.Background(), "cand-1")
	require.NoError(t, err)

	// Reward only "beta"; the posterior-best team should end up there.
	for i := 0; i < 60; i++ {
		teamID, err := session.Select()
		require.NoError(t, err)

		reward := 0.0
		if teamID == "beta" {
			reward = 1.0
		}
		require.NoError(t, session.Record(teamID, reward))
	}

	best := session.Best()
	assert.Equal(t, "cand-1", best.CandidateID)
	assert.Equal(t, "beta", best.TeamID)
}

func TestSessionRecordUnknownTeam(t *testing.T) {
	profiles := &fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
		teams:      twoTeams(),
	}
	m := newTestMatcher(profiles, 1)

	session, err := m.NewTeamSession(context.Background(), "cand-1")
	require.NoError(t, err)

	assert.ErrorIs(t, session.Record("nope", 1.0), bandit.ErrInvalidArm)
}

func TestSessionNoTeams(t *testing.T) {
	m := newTestMatcher(&fakeProfiles{
		candidates: map[string]*model.CandidateProfile{"cand-1": gpuCandidate()},
	}, 1)

	_, err := m.NewTeamSession(context.Background(), "cand-1")
	assert.ErrorIs(t, err, ErrNoTeams)
}
