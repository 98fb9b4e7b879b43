package gemini

import (
	"strings"

	"github.com/tuberank/tuberank/internal/genai/driver"
)

type generateContentResponse struct {
	Candidates    []candidate    `json:"candidates"`
	UsageMetadata *usageMetadata `json:"usageMetadata"`
}

type candidate struct {
	Content      candidateContent `json:"content"`
	FinishReason string           `json:"finishReason"`
}

type candidateContent struct {
	Parts []part `json:"parts"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

func toDriverResponse(req *driver.Request, parsed *generateContentResponse) (*driver.Response, error) {
	if parsed == nil || len(parsed.Candidates) == 0 {
		perr := &driver.ProviderError{Provider: "gemini", Message: "empty response candidates"}
		if req != nil {
			perr.PromptSlug = req.PromptSlug
		}
		return nil, perr
	}

	first := parsed.Candidates[0]
	var text strings.Builder
	for _, p := range first.Content.Parts {
		text.WriteString(p.Text)
	}

	resp := &driver.Response{
		Text:         text.String(),
		FinishReason: first.FinishReason,
	}
	if parsed.UsageMetadata != nil {
		resp.Usage = &driver.Usage{
			PromptTokens:     parsed.UsageMetadata.PromptTokenCount,
			CompletionTokens: parsed.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      parsed.UsageMetadata.TotalTokenCount,
		}
	}
	return resp, nil
}
