package model

import (
	"strings"
	"time"
)

// CandidateProfile is a candidate as stored in the knowledge graph.
// Profiles are read-only from the matching core's point of view; the graph
// store owns creation and mutation.
type CandidateProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Skills          []string  `json:"skills"`
	Domains         []string  `json:"domains"`
	ExperienceYears int       `json:"experience_years"`
	Summary         string    `json:"summary,omitempty"`
	Embedding       []float32 `json:"embedding,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type TeamProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Needs     []string  `json:"needs"`
	Expertise []string  `json:"expertise"`
	Stack     []string  `json:"stack,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PositionProfile struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	RequiredSkills []string  `json:"required_skills"`
	NiceToHave     []string  `json:"nice_to_have,omitempty"`
	MustHave       []string  `json:"must_have,omitempty"`
	Domain         string    `json:"domain,omitempty"`
	Level          string    `json:"level,omitempty"`
	Embedding      []float32 `json:"embedding,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type InterviewerProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TeamID    string    `json:"team_id"`
	Expertise []string  `json:"expertise"`
	Domains   []string  `json:"domains,omitempty"`
	Seniority string    `json:"seniority,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EmbeddingText renders the profile into the canonical text that gets
// embedded. Only content terms, no field labels, so that candidate, team and
// position renderings land in a shared vocabulary. Deterministic: same
// profile, same text.
func (c *CandidateProfile) EmbeddingText() string {
	return joinTerms(c.Skills, c.Domains)
}

func (t *TeamProfile) EmbeddingText() string {
	return joinTerms(t.Needs, t.Expertise, t.Stack)
}

func (p *PositionProfile) EmbeddingText() string {
	extra := []string{}
	if p.Domain != "" {
		extra = append(extra, p.Domain)
	}
	return joinTerms(p.RequiredSkills, p.MustHave, p.NiceToHave, extra)
}

func (i *InterviewerProfile) EmbeddingText() string {
	return joinTerms(i.Expertise, i.Domains)
}

func joinTerms(lists ...[]string) string {
	var terms []string
	for _, list := range lists {
		terms = append(terms, list...)
	}
	return strings.Join(terms, " ")
}
