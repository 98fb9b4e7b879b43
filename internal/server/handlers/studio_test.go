package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

const seoPayload = `{
	"titles": ["t1", "t2", "t3", "t4", "t5"],
	"description": "hook\nbody",
	"keywords": ["go", "tutorial"],
	"hashtags": ["#go"],
	"category": "Education",
	"algorithmStrategy": "retention first",
	"thumbnailIdeas": [{"description": "face closeup", "text": "WOW"}]
}`

func newStudioHandlers(t *testing.T, drv driver.Driver) (*StudioHandlers, *studio.Session) {
	t.Helper()
	reg, err := prompt.DefaultRegistry("")
	require.NoError(t, err)

	session := studio.NewSession()
	service := &genai.Service{Driver: drv, Prompts: reg}
	return NewStudioHandlers(service, session), session
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestGenerateSEOStoresResult(t *testing.T) {
	h, session := newStudioHandlers(t, &stubDriver{text: seoPayload})

	rec := postJSON(t, h.GenerateSEO, "/api/v1/seo", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result genai.SEOResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Len(t, result.Titles, 5)

	stored := session.SEO()
	require.NotNil(t, stored)
	assert.Equal(t, "Education", stored.Category)
}

func TestGenerateSEOValidatesTopic(t *testing.T) {
	h, _ := newStudioHandlers(t, &stubDriver{text: seoPayload})

	rec := postJSON(t, h.GenerateSEO, "/api/v1/seo", `{"topic":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeErrorCode(t, rec))
}

func TestGenerateSEORejectsConcurrentGeneration(t *testing.T) {
	h, session := newStudioHandlers(t, &stubDriver{text: seoPayload})
	require.True(t, session.Begin())
	defer session.End()

	rec := postJSON(t, h.GenerateSEO, "/api/v1/seo", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decodeErrorCode(t, rec))
}

func TestGenerateSEOReportsProviderFailure(t *testing.T) {
	provErr := &driver.ProviderError{Provider: "gemini", StatusCode: 500, Message: "backend"}
	h, session := newStudioHandlers(t, &stubDriver{err: provErr})

	rec := postJSON(t, h.GenerateSEO, "/api/v1/seo", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "EXTERNAL_SERVICE_ERROR", decodeErrorCode(t, rec))
	assert.Nil(t, session.SEO())
}

func TestRegenerateTitlesReplacesOnlyTitles(t *testing.T) {
	h, session := newStudioHandlers(t, &stubDriver{text: `{"titles":["n1","n2","n3","n4","n5"]}`})
	session.SetSEO(&genai.SEOResult{Titles: []string{"old"}, Description: "keep me"})

	rec := postJSON(t, h.RegenerateTitles, "/api/v1/seo/titles", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := session.SEO()
	require.NotNil(t, stored)
	assert.Equal(t, []string{"n1", "n2", "n3", "n4", "n5"}, stored.Titles)
	assert.Equal(t, "keep me", stored.Description)
}

func TestRegenerateTitlesKeepsResultOnFailure(t *testing.T) {
	provErr := &driver.ProviderError{Provider: "gemini", StatusCode: 429, Message: "quota"}
	h, session := newStudioHandlers(t, &stubDriver{err: provErr})
	session.SetSEO(&genai.SEOResult{Titles: []string{"old"}, Description: "keep me"})

	rec := postJSON(t, h.RegenerateTitles, "/api/v1/seo/titles", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result genai.SEOResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, []string{"old"}, result.Titles)
	assert.Equal(t, "keep me", result.Description)
}

func TestRegenerateTitlesWithoutResult(t *testing.T) {
	h, _ := newStudioHandlers(t, &stubDriver{text: `{"titles":["n1","n2","n3","n4","n5"]}`})

	rec := postJSON(t, h.RegenerateTitles, "/api/v1/seo/titles", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}

func TestRegenerateDescriptionReplacesOnlyDescription(t *testing.T) {
	h, session := newStudioHandlers(t, &stubDriver{text: `{"description":"fresh copy"}`})
	session.SetSEO(&genai.SEOResult{Titles: []string{"keep"}, Description: "old"})

	rec := postJSON(t, h.RegenerateDescription, "/api/v1/seo/description", `{"topic":"learning go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := session.SEO()
	require.NotNil(t, stored)
	assert.Equal(t, "fresh copy", stored.Description)
	assert.Equal(t, []string{"keep"}, stored.Titles)
}

func TestGenerateMarketingStoresResult(t *testing.T) {
	payload := `{"strategy":"launch plan","posts":[{"platform":"X","content":"post","hashtags":["#launch"]}]}`
	h, session := newStudioHandlers(t, &stubDriver{text: payload})

	rec := postJSON(t, h.GenerateMarketing, "/api/v1/marketing", `{"productName":"TubeRank"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := session.Marketing()
	require.NotNil(t, stored)
	assert.Equal(t, "launch plan", stored.Strategy)
	require.Len(t, stored.Posts, 1)
}

func TestAnalyzePerformanceExtractsFields(t *testing.T) {
	text := "VIEWS: 1.2M\nLIKES: 45K\nCOMMENTS: 1,300\nANALYSIS: Strong retention in the first minute."
	h, session := newStudioHandlers(t, &stubDriver{text: text})

	rec := postJSON(t, h.AnalyzePerformance, "/api/v1/performance", `{"url":"https://youtu.be/abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result genai.PerformanceResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "1.2M", result.Views)
	assert.Equal(t, "45K", result.Likes)
	require.NotNil(t, session.Performance())
}

func TestResultsReturnsSnapshot(t *testing.T) {
	h, session := newStudioHandlers(t, &stubDriver{})
	session.SetSEO(&genai.SEOResult{Titles: []string{"t"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	rec := httptest.NewRecorder()
	h.Results(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap studio.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.NotNil(t, snap.SEO)
	assert.False(t, snap.Busy)
	assert.Nil(t, snap.Marketing)
}
