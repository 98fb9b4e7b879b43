package genai

import "encoding/json"

// MalformedResponseError wraps a decode or schema-validation failure with
// the raw model payload.
//
// Callers treat this as fatal for the operation but keep the raw payload
// available for debugging. No partial result is ever produced alongside it.
type MalformedResponseError struct {
	Err error
	Raw json.RawMessage
}

func (e *MalformedResponseError) Error() string {
	if e == nil || e.Err == nil {
		return "malformed response"
	}
	return e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
