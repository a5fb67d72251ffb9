package model

const (
	DecisionPass = "pass"
	DecisionFail = "fail"
)

// Decision is the outcome of one phone-screen evaluation. Immutable once
// produced; persistence, if any, belongs to the caller.
type Decision struct {
	CandidateID     string  `json:"candidate_id"`
	PositionID      string  `json:"position_id"`
	Decision        string  `json:"decision"`
	Confidence      float64 `json:"confidence"`
	SimilarityScore float64 `json:"similarity_score"`
	Reasoning       string  `json:"reasoning"`
}

// ExtractedInfo carries the interview signals pulled out of a phone screen.
// Nil fields mean the signal was not observed; the decision engine treats
// them as neutral (0.5) rather than failing.
type ExtractedInfo struct {
	MotivationScore    *float64 `json:"motivation_score,omitempty"`
	CommunicationScore *float64 `json:"communication_score,omitempty"`
	TechnicalDepth     *float64 `json:"technical_depth,omitempty"`
	CulturalFit        *float64 `json:"cultural_fit,omitempty"`
	Notes              []string `json:"notes,omitempty"`
}
