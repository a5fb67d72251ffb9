package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/driver"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }
func (m *MockDriver) Close(ctx context.Context) error        { return nil }

func TestSaveCandidateFillsDefaults(t *testing.T) {
	mock := &MockDriver{}
	store := NewStore(mock, llm.NewLocalEmbedder(0), nil)

	c := &model.CandidateProfile{Name: "Ada", Skills: []string{"Go", "CUDA"}}
	require.NoError(t, store.SaveCandidate(context.Background(), c))

	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	assert.NotEmpty(t, c.Embedding)

	assert.Equal(t, driver.SaveCandidateQuery, mock.QueryExecuted)
	assert.Equal(t, c.ID, mock.QueryParams["id"])
	assert.Equal(t, "Ada", mock.QueryParams["name"])
	assert.Equal(t, []string{"Go", "CUDA"}, mock.QueryParams["skills"])

	// Embedding travels as []float64 for the bolt protocol.
	vec, ok := mock.QueryParams["embedding"].([]float64)
	require.True(t, ok)
	assert.Len(t, vec, len(c.Embedding))
}

func TestSaveCandidateKeepsProvidedID(t *testing.T) {
	mock := &MockDriver{}
	store := NewStore(mock, nil, nil)

	c := &model.CandidateProfile{ID: "cand-1", Name: "Ada"}
	require.NoError(t, store.SaveCandidate(context.Background(), c))
	assert.Equal(t, "cand-1", c.ID)
}

func TestSaveCandidateNoEmbedder(t *testing.T) {
	mock := &MockDriver{}
	store := NewStore(mock, nil, nil)

	c := &model.CandidateProfile{Name: "Ada"}
	require.NoError(t, store.SaveCandidate(context.Background(), c))

	assert.Empty(t, c.Embedding)
	assert.Nil(t, mock.QueryParams["embedding"])
}

func TestSaveInterviewerParams(t *testing.T) {
	mock := &MockDriver{}
	store := NewStore(mock, nil, nil)

	i := &model.InterviewerProfile{Name: "Kay", TeamID: "team-1", Expertise: []string{"CUDA"}}
	require.NoError(t, store.SaveInterviewer(context.Background(), i))

	assert.Equal(t, driver.SaveInterviewerQuery, mock.QueryExecuted)
	assert.Equal(t, "team-1", mock.QueryParams["team_id"])
}

func TestGetCandidate(t *testing.T) {
	keys := []string{"id", "name", "skills", "domains", "experience_years", "summary", "embedding"}
	mock := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{{
				Keys: keys,
				Values: []interface{}{
					"cand-1", "Ada",
					[]interface{}{"Go", "CUDA"},
					[]interface{}{"LLM Inference"},
					int64(7), "systems person",
					[]interface{}{0.5, 0.5},
				},
			}},
		},
	}
	store := NewStore(mock, nil, nil)

	c, err := store.GetCandidate(context.Background(), "cand-1")
	require.NoError(t, err)

	assert.Equal(t, driver.GetCandidateQuery, mock.QueryExecuted)
	assert.Equal(t, "cand-1", mock.QueryParams["id"])

	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, []string{"Go", "CUDA"}, c.Skills)
	assert.Equal(t, []string{"LLM Inference"}, c.Domains)
	assert.Equal(t, 7, c.ExperienceYears)
	assert.Equal(t, []float32{0.5, 0.5}, c.Embedding)
}

func TestGetCandidateNotFound(t *testing.T) {
	store := NewStore(&MockDriver{}, nil, nil)

	_, err := store.GetCandidate(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestGetTeamNotFound(t *testing.T) {
	store := NewStore(&MockDriver{}, nil, nil)

	_, err := store.GetTeam(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPositionNotFound(t *testing.T) {
	store := NewStore(&MockDriver{}, nil, nil)

	_, err := store.GetPosition(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllTeamsEmpty(t *testing.T) {
	store := NewStore(&MockDriver{}, nil, nil)

	teams, err := store.GetAllTeams(context.Background())
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestDriverErrorPropagates(t *testing.T) {
	driverErr := errors.New("connection reset")
	store := NewStore(&MockDriver{Err: driverErr}, nil, nil)

	_, err := store.GetCandidate(context.Background(), "cand-1")
	assert.ErrorIs(t, err, driverErr)

	err = store.SaveCandidate(context.Background(), &model.CandidateProfile{Name: "Ada"})
	assert.ErrorIs(t, err, driverErr)
}
