// Package extraction pulls structured interview signals out of phone-screen
// transcripts using the configured LLM.
package extraction

import (
	"context"
	"fmt"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/common"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/core/model"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub002/internal/llm"
)

const defaultPrompt = `You are an interview analyst. Read the phone screen transcript below and score the candidate.

<TRANSCRIPT>
%s
</TRANSCRIPT>

Return a JSON object with keys "motivation_score", "communication_score", "technical_depth" and "cultural_fit", each a float in [0, 1], plus "notes": a list of short observations. Omit a score key entirely if the transcript gives no evidence for it.

Example JSON:
{"motivation_score": 0.8, "technical_depth": 0.7, "notes": ["clear articulation of past projects"]}`

type Extractor struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewExtractor(llmClient llm.LLMClient, prompt string) *Extractor {
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &Extractor{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// ExtractSignals scores one transcript. Scores the LLM omits stay nil, which
// the decision engine treats as neutral.
func (e *Extractor) ExtractSignals(ctx context.Context, transcript string) (*model.ExtractedInfo, error) {
	prompt := fmt.Sprintf(e.Prompt, transcript)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signals: %w", err)
	}

	info, err := common.ParseJSON[model.ExtractedInfo](response)
	if err != nil {
		return nil, fmt.Errorf("failed to extract signals: %w", err)
	}

	clampSignals(&info)
	return &info, nil
}

func clampSignals(info *model.ExtractedInfo) {
	for _, v := range []*float64{info.MotivationScore, info.CommunicationScore, info.TechnicalDepth, info.CulturalFit} {
		if v != nil {
			*v = common.Clip01(*v)
		}
	}
}
