// Package graph is the typed profile store on top of the graph driver.
// Profiles get their embedding computed at save time, so readers (matcher,
// decision engine, shortlist) work from stored vectors.
package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/driver"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

// ErrNotFound is returned when a profile id does not exist. Always surfaced,
// never silently defaulted.
var ErrNotFound = errors.New("profile not found")

type Store struct {
	Driver   driver.GraphDriver
	Embedder llm.EmbedderClient

	logger *zap.Logger
}

func NewStore(d driver.GraphDriver, embedder llm.EmbedderClient, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		Driver:   d,
		Embedder: embedder,
		logger:   logger,
	}
}

func (s *Store) BuildIndices(ctx context.Context) error {
	return s.Driver.BuildIndices(ctx)
}

// embed fills the profile embedding from its canonical text. A missing
// embedder is tolerated; matching then embeds on demand or scores zero.
func (s *Store) embed(ctx context.Context, text string) []float32 {
	if s.Embedder == nil {
		return nil
	}
	vec, err := s.Embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("failed to embed profile text", zap.Error(err))
		return nil
	}
	return vec
}

func (s *Store) SaveCandidate(ctx context.Context, c *model.CandidateProfile) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if len(c.Embedding) == 0 {
		c.Embedding = s.embed(ctx, c.EmbeddingText())
	}

	params := map[string]interface{}{
		"id":               c.ID,
		"name":             c.Name,
		"skills":           c.Skills,
		"domains":          c.Domains,
		"experience_years": c.ExperienceYears,
		"summary":          c.Summary,
		"embedding":        vectorParam(c.Embedding),
		"created_at":       c.CreatedAt,
	}

	_, err := s.Driver.ExecuteQuery(ctx, driver.SaveCandidateQuery, params)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

func (s *Store) SaveTeam(ctx context.Context, t *model.TeamProfile) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if len(t.Embedding) == 0 {
		t.Embedding = s.embed(ctx, t.EmbeddingText())
	}

	params := map[string]interface{}{
		"id":         t.ID,
		"name":       t.Name,
		"needs":      t.Needs,
		"expertise":  t.Expertise,
		"stack":      t.Stack,
		"embedding":  vectorParam(t.Embedding),
		"created_at": t.CreatedAt,
	}

	_, err := s.Driver.ExecuteQuery(ctx, driver.SaveTeamQuery, params)
	if err != nil {
		return fmt.Errorf("failed to save team: %w", err)
	}
	return nil
}

func (s *Store) SavePosition(ctx context.Context, p *model.PositionProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if len(p.Embedding) == 0 {
		p.Embedding = s.embed(ctx, p.EmbeddingText())
	}

	params := map[string]interface{}{
		"id":              p.ID,
		"title":           p.Title,
		"required_skills": p.RequiredSkills,
		"nice_to_have":    p.NiceToHave,
		"must_have":       p.MustHave,
		"domain":          p.Domain,
		"level":           p.Level,
		"embedding":       vectorParam(p.Embedding),
		"created_at":      p.CreatedAt,
	}

	_, err := s.Driver.ExecuteQuery(ctx, driver.SavePositionQuery, params)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

func (s *Store) SaveInterviewer(ctx context.Context, i *model.InterviewerProfile) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	if len(i.Embedding) == 0 {
		i.Embedding = s.embed(ctx, i.EmbeddingText())
	}

	params := map[string]interface{}{
		"id":         i.ID,
		"name":       i.Name,
		"team_id":    i.TeamID,
		"expertise":  i.Expertise,
		"domains":    i.Domains,
		"seniority":  i.Seniority,
		"embedding":  vectorParam(i.Embedding),
		"created_at": i.CreatedAt,
	}

	_, err := s.Driver.ExecuteQuery(ctx, driver.SaveInterviewerQuery, params)
	if err != nil {
		return fmt.Errorf("failed to save interviewer: %w", err)
	}
	return nil
}

func (s *Store) GetCandidate(ctx context.Context, id string) (*model.CandidateProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetCandidateQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("candidate %q: %w", id, ErrNotFound)
	}
	return candidateFromRecord(res.Records[0]), nil
}

func (s *Store) GetAllCandidates(ctx context.Context) ([]model.CandidateProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetAllCandidatesQuery, nil)
	if err != nil {
		return nil, err
	}

	candidates := make([]model.CandidateProfile, 0, len(res.Records))
	for _, rec := range res.Records {
		candidates = append(candidates, *candidateFromRecord(rec))
	}
	return candidates, nil
}

func (s *Store) GetTeam(ctx context.Context, id string) (*model.TeamProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetTeamQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	return teamFromRecord(res.Records[0]), nil
}

func (s *Store) GetAllTeams(ctx context.Context) ([]model.TeamProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetAllTeamsQuery, nil)
	if err != nil {
		return nil, err
	}

	teams := make([]model.TeamProfile, 0, len(res.Records))
	for _, rec := range res.Records {
		teams = append(teams, *teamFromRecord(rec))
	}
	return teams, nil
}

func (s *Store) GetPosition(ctx context.Context, id string) (*model.PositionProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetPositionQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("position %q: %w", id, ErrNotFound)
	}
	return positionFromRecord(res.Records[0]), nil
}

func (s *Store) GetInterviewer(ctx context.Context, id string) (*model.InterviewerProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetInterviewerQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("interviewer %q: %w", id, ErrNotFound)
	}
	return interviewerFromRecord(res.Records[0]), nil
}

func (s *Store) GetTeamInterviewers(ctx context.Context, teamID string) ([]model.InterviewerProfile, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetTeamInterviewersQuery, map[string]interface{}{"team_id": teamID})
	if err != nil {
		return nil, err
	}

	interviewers := make([]model.InterviewerProfile, 0, len(res.Records))
	for _, rec := range res.Records {
		interviewers = append(interviewers, *interviewerFromRecord(rec))
	}
	return interviewers, nil
}

func candidateFromRecord(rec *neo4j.Record) *model.CandidateProfile {
	return &model.CandidateProfile{
		ID:              recordString(rec, "id"),
		Name:            recordString(rec, "name"),
		Skills:          recordStrings(rec, "skills"),
		Domains:         recordStrings(rec, "domains"),
		ExperienceYears: recordInt(rec, "experience_years"),
		Summary:         recordString(rec, "summary"),
		Embedding:       recordVector(rec, "embedding"),
	}
}

func teamFromRecord(rec *neo4j.Record) *model.TeamProfile {
	return &model.TeamProfile{
		ID:        recordString(rec, "id"),
		Name:      recordString(rec, "name"),
		Needs:     recordStrings(rec, "needs"),
		Expertise: recordStrings(rec, "expertise"),
		Stack:     recordStrings(rec, "stack"),
		Embedding: recordVector(rec, "embedding"),
	}
}

func positionFromRecord(rec *neo4j.Record) *model.PositionProfile {
	return &model.PositionProfile{
		ID:             recordString(rec, "id"),
		Title:          recordString(rec, "title"),
		RequiredSkills: recordStrings(rec, "required_skills"),
		NiceToHave:     recordStrings(rec, "nice_to_have"),
		MustHave:       recordStrings(rec, "must_have"),
		Domain:         recordString(rec, "domain"),
		Level:          recordString(rec, "level"),
		Embedding:      recordVector(rec, "embedding"),
	}
}

func interviewerFromRecord(rec *neo4j.Record) *model.InterviewerProfile {
	return &model.InterviewerProfile{
		ID:        recordString(rec, "id"),
		Name:      recordString(rec, "name"),
		TeamID:    recordString(rec, "team_id"),
		Expertise: recordStrings(rec, "expertise"),
		Domains:   recordStrings(rec, "domains"),
		Seniority: recordString(rec, "seniority"),
		Embedding: recordVector(rec, "embedding"),
	}
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordStrings(rec *neo4j.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func recordInt(rec *neo4j.Record, key string) int {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func recordVector(rec *neo4j.Record, key string) []float32 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	out := make([]float32, 0, len(items))
	for _, item := range items {
		switch f := item.(type) {
		case float64:
			out = append(out, float32(f))
		case int64:
			out = append(out, float32(f))
		}
	}
	return out
}

// vectorParam converts an embedding into a driver-friendly parameter.
func vectorParam(vec []float32) interface{} {
	if len(vec) == 0 {
		return nil
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}
