// Package dedupe spots duplicate candidate profiles (the same person
// applying twice under slightly different data) during bulk ingest.
package dedupe

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/common"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

const defaultPrompt = `<NEW CANDIDATES>
%s
</NEW CANDIDATES>

<EXISTING CANDIDATES>
%s
</EXISTING CANDIDATES>

Instructions:
Identify if any of the NEW CANDIDATES are the same person as one of the EXISTING CANDIDATES.
Return a JSON object with key "duplicates" which is a list of objects.
Each object should have "original_id" (existing candidate ID), "duplicate_id" (new candidate ID), and "confidence" (float).

Example JSON:
{
  "duplicates": [
    {"original_id": "existing-1", "duplicate_id": "new-1", "confidence": 0.9}
  ]
}`

type Deduplicator struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewDeduplicator(llmClient llm.LLMClient, prompt string) *Deduplicator {
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &Deduplicator{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

func (d *Deduplicator) ResolveDuplicates(ctx context.Context, incoming, existing []model.CandidateProfile) ([]model.DuplicatePair, error) {
	if len(incoming) == 0 || len(existing) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(d.Prompt, serializeCandidates(incoming), serializeCandidates(existing))

	response, err := d.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deduplication result: %w", err)
	}

	result, err := common.ParseJSON[model.DeduplicationResult](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dedupe result: %w", err)
	}

	return result.Duplicates, nil
}

func serializeCandidates(candidates []model.CandidateProfile) string {
	var b strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&b, "- ID: %s, Name: %s, Skills: %s\n", c.ID, c.Name, strings.Join(c.Skills, ", "))
	}
	return b.String()
}
