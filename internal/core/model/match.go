package model

// Alternative is a non-selected arm the bandit considered, ranked by
// posterior mean.
type Alternative struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// MatchResult is the outcome of one team or interviewer selection.
type MatchResult struct {
	CandidateID   string        `json:"candidate_id"`
	TeamID        string        `json:"team_id,omitempty"`
	InterviewerID string        `json:"interviewer_id,omitempty"`
	MatchScore    float64       `json:"match_score"`
	Alternatives  []Alternative `json:"alternatives,omitempty"`
}
