package driver

import "context"

// Driver defines the interface for AI generation providers.
type Driver interface {
	// Complete sends a generation request and returns the response.
	Complete(ctx context.Context, req *Request) (*Response, error)
	// Name returns the driver identifier (e.g., "gemini").
	Name() string
	// Capabilities returns what this driver supports.
	Capabilities() Capabilities
}

// Capabilities describes driver features.
type Capabilities struct {
	SupportsSchema bool
	SupportsSearch bool
}

// Usage contains token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is a provider-agnostic generation request.
//
// ResponseSchema constrains the reply to a JSON document in the provider's
// schema dialect. UseSearch enables the provider's web-search grounding
// tool. Providers that cannot combine the two must reject a request
// carrying both.
type Request struct {
	Model          string
	Instruction    string
	ResponseSchema map[string]any
	Temperature    *float64
	UseSearch      bool
	PromptSlug     string
}

// Response is a provider-agnostic generation response.
type Response struct {
	Text         string
	FinishReason string
	Usage        *Usage
}
