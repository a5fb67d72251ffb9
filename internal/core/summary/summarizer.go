package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/config"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/common"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

const defaultSummaryPrompt = `<CANDIDATES>
%s
</CANDIDATES>

Instructions:
Write a short recruiter-facing summary of this group of candidates: the common
skills, the range of experience, and what roles they would suit.
Return a JSON object with a single key "summary".

Example JSON:
{"summary": "A pool of senior infrastructure engineers with strong Go and Kubernetes backgrounds."}`

const defaultPoolNamePrompt = `<SUMMARY>
%s
</SUMMARY>

Instructions:
Generate a short descriptive name (2-5 words) for this talent pool.
Return a JSON object with a single key "name".

Example JSON:
{"name": "GPU Systems Engineers"}`

type Summarizer struct {
	LLM     llm.LLMClient
	Prompts config.Prompts
}

func NewSummarizer(llmClient llm.LLMClient, prompts config.Prompts) *Summarizer {
	if prompts.Summary == "" {
		prompts.Summary = defaultSummaryPrompt
	}
	if prompts.PoolName == "" {
		prompts.PoolName = defaultPoolNamePrompt
	}
	return &Summarizer{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// SummarizeCandidate refreshes a single candidate's summary line from their
// profile fields. Cheap enough to run on every ingest.
func (s *Summarizer) SummarizeCandidate(ctx context.Context, c model.CandidateProfile) (string, error) {
	prompt := fmt.Sprintf(s.Prompts.Summary, describeCandidate(c))

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	result, err := common.ParseJSON[model.ProfileSummary](response)
	if err != nil {
		return "", fmt.Errorf("failed to parse summary result: %w", err)
	}

	return result.Summary, nil
}

func (s *Summarizer) SummarizePool(ctx context.Context, candidates []model.CandidateProfile) (string, error) {
	const ChunkSize = 20

	// 1. Base Case: small enough to fit in context
	if len(candidates) <= ChunkSize {
		lines := ""
		for _, c := range candidates {
			lines += fmt.Sprintf("- %s\n", describeCandidate(c))
		}
		if lines == "" {
			return "No significant information.", nil
		}

		prompt := fmt.Sprintf(s.Prompts.Summary, lines)
		response, err := s.LLM.Generate(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("failed to generate pool summary: %w", err)
		}

		result, err := common.ParseJSON[model.ProfileSummary](response)
		if err == nil {
			return result.Summary, nil
		}
		return response, nil
	}

	// 2. Recursive Case: split, summarize each chunk, reduce
	var chunks [][]model.CandidateProfile
	for i := 0; i < len(candidates); i += ChunkSize {
		end := i + ChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunks = append(chunks, candidates[i:end])
	}

	var intermediate []string
	for _, chunk := range chunks {
		summary, err := s.SummarizePool(ctx, chunk)
		if err != nil {
			// Partial results beat a hard failure here.
			continue
		}
		intermediate = append(intermediate, summary)
	}

	if len(intermediate) == 0 {
		return "Failed to generate summary.", nil
	}

	// Carry each chunk summary forward as a pseudo-candidate and recurse.
	var meta []model.CandidateProfile
	for i, summary := range intermediate {
		meta = append(meta, model.CandidateProfile{
			Name:    fmt.Sprintf("Part %d", i+1),
			Summary: summary,
		})
	}

	return s.SummarizePool(ctx, meta)
}

func (s *Summarizer) GeneratePoolName(ctx context.Context, summary string) (string, error) {
	prompt := fmt.Sprintf(s.Prompts.PoolName, summary)

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate pool name: %w", err)
	}

	result, err := common.ParseJSON[model.PoolName](response)
	if err == nil {
		return result.Name, nil
	}

	// Some models answer with just the bare name.
	return strings.TrimSpace(response), nil
}

func describeCandidate(c model.CandidateProfile) string {
	parts := []string{c.Name}
	if len(c.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(c.Skills, ", "))
	}
	if len(c.Domains) > 0 {
		parts = append(parts, "domains: "+strings.Join(c.Domains, ", "))
	}
	if c.ExperienceYears > 0 {
		parts = append(parts, fmt.Sprintf("%d years experience", c.ExperienceYears))
	}
	if c.Summary != "" {
		parts = append(parts, c.Summary)
	}
	return strings.Join(parts, "; ")
}
