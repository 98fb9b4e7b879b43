package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuberank/tuberank/internal/genai"
	"github.com/tuberank/tuberank/internal/genai/driver"
)

func TestFromGenerationClassifiesProviderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "non-2xx provider response",
			err:        &driver.ProviderError{Provider: "gemini", StatusCode: http.StatusUnauthorized, Message: "bad key"},
			wantCode:   "EXTERNAL_SERVICE_ERROR",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "transport failure without a response",
			err:        &driver.ProviderError{Provider: "gemini", Message: "dial tcp 127.0.0.1:1: connect: connection refused"},
			wantCode:   "EXTERNAL_SERVICE_ERROR",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing credential",
			err:        &driver.ProviderError{Provider: "gemini", Message: "api key is required"},
			wantCode:   "EXTERNAL_SERVICE_ERROR",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "empty reply",
			err:        &driver.ProviderError{Provider: "gemini", Message: "empty response content", PromptSlug: "seo-package"},
			wantCode:   "EXTERNAL_SERVICE_ERROR",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "malformed model payload",
			err:        &genai.MalformedResponseError{Err: stderrors.New("missing titles"), Raw: []byte("{}")},
			wantCode:   "MALFORMED_RESPONSE",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantCode:   "TIMEOUT",
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "anything else",
			err:        stderrors.New("boom"),
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := FromGeneration(context.Background(), tt.err)
			require.NotNil(t, envelope)
			require.Equal(t, tt.wantCode, envelope.Code)
			require.Equal(t, tt.wantStatus, HTTPStatusFromEnvelope(envelope))
		})
	}
}

func TestFromGenerationWrapsDeadlineInsideProviderCheck(t *testing.T) {
	// A deadline wrapped by a provider error still reads as a provider
	// failure; the provider classification wins.
	err := &driver.ProviderError{Provider: "gemini", Message: context.DeadlineExceeded.Error()}
	envelope := FromGeneration(context.Background(), err)
	require.Equal(t, "EXTERNAL_SERVICE_ERROR", envelope.Code)
}
