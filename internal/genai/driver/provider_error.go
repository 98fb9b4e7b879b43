package driver

import "fmt"

// ProviderError is returned for any provider-side failure: transport
// errors, missing or rejected credentials, non-2xx statuses, and replies
// with no usable content. StatusCode is zero when no HTTP response was
// received.
//
// Drivers should populate RawResponse with the provider response body bytes.
// RawResponse must never include API keys.
type ProviderError struct {
	Provider    string
	StatusCode  int
	Message     string
	RawResponse []byte
	PromptSlug  string
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}
	msg := e.Message
	if e.PromptSlug != "" {
		msg = fmt.Sprintf("%s (prompt %s)", msg, e.PromptSlug)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, msg)
}
