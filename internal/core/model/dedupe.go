package model

// DuplicatePair links an incoming candidate to an existing profile the LLM
// judged to be the same person.
type DuplicatePair struct {
	OriginalID  string  `json:"original_id"`
	DuplicateID string  `json:"duplicate_id"`
	Confidence  float64 `json:"confidence"`
}

type DeduplicationResult struct {
	Duplicates []DuplicatePair `json:"duplicates"`
}

// ProfileSummary is the JSON shape the summarizer asks the LLM for.
type ProfileSummary struct {
	Summary string `json:"summary"`
}

// PoolName is the JSON shape for naming a talent pool.
type PoolName struct {
	Name string `json:"name"`
}
