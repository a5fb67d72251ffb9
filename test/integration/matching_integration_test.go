//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/matcher"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/driver"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/graph"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
	"go.uber.org/zap"
)

func newIntegrationStore(t *testing.T) *graph.Store {
	t.Helper()

	_ = godotenv.Load("../../.env")

	uri := os.Getenv("GRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: GRAPH_URI not set")
	}

	d, err := driver.NewMemgraphDriver(uri, os.Getenv("GRAPH_USER"), os.Getenv("GRAPH_PASSWORD"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close(context.Background()) })

	store := graph.NewStore(d, llm.NewLocalEmbedder(0), nil)
	require.NoError(t, store.BuildIndices(context.Background()))

	// Start from an empty graph; leftovers from earlier runs would leak into
	// GetAll queries.
	_, err = d.ExecuteQuery(context.Background(), "MATCH (n) DETACH DELETE n", nil)
	require.NoError(t, err)

	return store
}

func TestMatchingFlow(t *testing.T) {
	store := newIntegrationStore(t)
	ctx := context.Background()

	run := uuid.New().String()[:8]
	gpuTeam := "team-gpu-" + run
	webTeam := "team-web-" + run
	candID := "cand-" + run

	require.NoError(t, store.SaveTeam(ctx, &model.TeamProfile{
		ID: gpuTeam, Name: "GPU", Needs: []string{"CUDA", "C++", "PyTorch"},
	}))
	require.NoError(t, store.SaveTeam(ctx, &model.TeamProfile{
		ID: webTeam, Name: "Web", Needs: []string{"React", "TypeScript"},
	}))
	require.NoError(t, store.SaveInterviewer(ctx, &model.InterviewerProfile{
		ID: "int-" + run, Name: "Kay", TeamID: gpuTeam, Expertise: []string{"CUDA"},
	}))
	require.NoError(t, store.SaveCandidate(ctx, &model.CandidateProfile{
		ID: candID, Name: "Ada", Skills: []string{"CUDA", "C++", "PyTorch"},
	}))

	m := matcher.New(store, store.Embedder, config.Default().Matching, nil)

	teamMatch, err := m.MatchToTeam(ctx, candID)
	require.NoError(t, err)
	assert.Equal(t, candID, teamMatch.CandidateID)
	assert.NotEmpty(t, teamMatch.TeamID)
	assert.Greater(t, teamMatch.MatchScore, 0.0)

	personMatch, err := m.MatchToPerson(ctx, candID, gpuTeam)
	require.NoError(t, err)
	assert.Equal(t, "int-"+run, personMatch.InterviewerID)

	// The warm start favors the GPU team, but consistent rewards on the web
	// team should overturn it within the session.
	session, err := m.NewTeamSession(ctx, candID)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		teamID, err := session.Select()
		require.NoError(t, err)
		reward := 0.0
		if teamID == webTeam {
			reward = 1.0
		}
		require.NoError(t, session.Record(teamID, reward))
	}
	assert.Equal(t, webTeam, session.Best().TeamID)
}

func TestBatchMatchingFlow(t *testing.T) {
	store := newIntegrationStore(t)
	ctx := context.Background()

	run := uuid.New().String()[:8]
	require.NoError(t, store.SaveTeam(ctx, &model.TeamProfile{
		ID: "team-" + run, Needs: []string{"Go"},
	}))

	var ids []string
	for i := 0; i < 5; i++ {
		c := &model.CandidateProfile{Skills: []string{"Go"}}
		require.NoError(t, store.SaveCandidate(ctx, c))
		ids = append(ids, c.ID)
	}
	ids = append(ids, "missing-"+run)

	m := matcher.New(store, store.Embedder, config.Default().Matching, nil)
	results := m.MatchBatch(ctx, ids, 3)
	require.Len(t, results, 6)

	for i := 0; i < 5; i++ {
		assert.NoError(t, results[i].Err)
		assert.NotNil(t, results[i].Result)
	}
	assert.ErrorIs(t, results[5].Err, graph.ErrNotFound)
}
