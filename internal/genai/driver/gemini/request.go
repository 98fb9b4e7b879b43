package gemini

import (
	"fmt"
	"strings"

	"github.com/tuberank/tuberank/internal/genai/driver"
)

type generateContentRequest struct {
	Contents         []contentEntry    `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	Tools            []tool            `json:"tools,omitempty"`
}

type contentEntry struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
}

type tool struct {
	GoogleSearch struct{} `json:"google_search"`
}

func buildGenerateRequest(req *driver.Request) (*generateContentRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return nil, fmt.Errorf("instruction is required")
	}
	// The API rejects grounding tools combined with a constrained schema.
	if req.UseSearch && req.ResponseSchema != nil {
		return nil, fmt.Errorf("response schema and search grounding are mutually exclusive")
	}

	payload := &generateContentRequest{
		Contents: []contentEntry{{Parts: []part{{Text: req.Instruction}}}},
	}

	config := &generationConfig{Temperature: req.Temperature}
	if req.ResponseSchema != nil {
		config.ResponseMimeType = "application/json"
		config.ResponseSchema = req.ResponseSchema
	}
	if config.ResponseMimeType != "" || config.Temperature != nil {
		payload.GenerationConfig = config
	}

	if req.UseSearch {
		payload.Tools = []tool{{}}
	}

	return payload, nil
}
