package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuberank/tuberank/internal/adconfig"
	apperrors "github.com/tuberank/tuberank/internal/errors"
	"github.com/tuberank/tuberank/internal/genai"
	"github.com/tuberank/tuberank/internal/genai/driver"
	"github.com/tuberank/tuberank/internal/genai/prompt"
	"github.com/tuberank/tuberank/internal/studio"
)

type stubDriver struct {
	text string
	err  error
}

func (d *stubDriver) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &driver.Response{Text: d.text, FinishReason: "STOP"}, nil
}

func (d *stubDriver) Name() string { return "gemini" }

func (d *stubDriver) Capabilities() driver.Capabilities {
	return driver.Capabilities{SupportsSchema: true, SupportsSearch: true}
}

func newTestServer(t *testing.T, drv driver.Driver) (*Server, *adconfig.Service) {
	t.Helper()

	reg, err := prompt.DefaultRegistry("")
	require.NoError(t, err)

	logger, err := logging.NewCLI("server-test")
	require.NoError(t, err)

	injector := &adconfig.HeadInjector{}
	ads := adconfig.NewService(nil, injector, logger)

	srv := New("127.0.0.1", 0, Deps{
		GenAI:    &genai.Service{Driver: drv, Prompts: reg},
		Session:  studio.NewSession(),
		Ads:      ads,
		Injector: injector,
	})
	return srv, ads
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv, _ := newTestServer(t, &stubDriver{})

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected error code NOT_FOUND, got %s", body.Error.Code)
	}
}

func TestSEOGenerationRoundTrip(t *testing.T) {
	payload := `{
		"titles": ["t1", "t2", "t3", "t4", "t5"],
		"description": "hook",
		"keywords": ["go"],
		"hashtags": ["#go"],
		"category": "Education",
		"algorithmStrategy": "retention",
		"thumbnailIdeas": [{"description": "closeup", "text": "WOW"}]
	}`
	srv, _ := newTestServer(t, &stubDriver{text: payload})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/seo", strings.NewReader(`{"topic":"learning go"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap studio.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.NotNil(t, snap.SEO)
	assert.Equal(t, "Education", snap.SEO.Category)
	assert.Nil(t, snap.Marketing)
}

func TestIndexServesAdUnitsAfterActivation(t *testing.T) {
	srv, ads := newTestServer(t, &stubDriver{})

	settings := ads.Settings()
	settings.PublisherID = "ca-pub-42"
	header := settings.Placements[adconfig.PlacementHeader]
	header.SlotID = "1111"
	settings.Placements[adconfig.PlacementHeader] = header
	ads.Update(settings)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "adsbygoogle.js?client=ca-pub-42")
	assert.Contains(t, body, `id="adsense-script-main"`)
	assert.Contains(t, body, `data-ad-slot="1111"`)
	// Placements without a slot id never render.
	assert.Equal(t, 1, strings.Count(body, "data-ad-slot"))
}

func TestIndexOmitsLoaderBeforeActivation(t *testing.T) {
	srv, _ := newTestServer(t, &stubDriver{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "adsbygoogle.js")
}
