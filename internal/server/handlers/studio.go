// Package handlers implements the HTTP handlers for the generation flows,
// the ad configuration endpoints, and the operational probes.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tuberank/tuberank/internal/errors"
	"github.com/tuberank/tuberank/internal/genai"
	"github.com/tuberank/tuberank/internal/metrics"
	"github.com/tuberank/tuberank/internal/observability"
	"github.com/tuberank/tuberank/internal/studio"
)

// StudioHandlers serves the generation flows against one session.
//
// Full generations (seo, marketing, performance) report failures to the
// caller. Field regenerations (titles, description) log failures and
// return the unchanged result instead, so a failed refresh never clears
// what the caller already has.
type StudioHandlers struct {
	service *genai.Service
	session *studio.Session
}

// NewStudioHandlers wires the generation service to a session.
func NewStudioHandlers(service *genai.Service, session *studio.Session) *StudioHandlers {
	return &StudioHandlers{service: service, session: session}
}

// GenerateSEO handles POST /api/v1/seo.
func (h *StudioHandlers) GenerateSEO(w http.ResponseWriter, r *http.Request) {
	var req genai.SEORequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("topic is required"))
		return
	}

	if !h.session.Begin() {
		respondWithError(w, r, apperrors.NewConflictError("another generation is already in flight"))
		return
	}
	defer h.session.End()

	start := time.Now()
	result, err := h.service.GenerateSEO(r.Context(), req)
	metrics.RecordGeneration("seo", err == nil, time.Since(start))
	if err != nil {
		respondWithError(w, r, apperrors.FromGeneration(r.Context(), err))
		return
	}

	h.session.SetSEO(result)
	respondJSON(w, result)
}

// RegenerateTitles handles POST /api/v1/seo/titles. The current SEO
// result must exist; only its titles are replaced.
func (h *StudioHandlers) RegenerateTitles(w http.ResponseWriter, r *http.Request) {
	var req genai.SEORequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("topic is required"))
		return
	}
	if h.session.SEO() == nil {
		respondWithError(w, r, apperrors.NewNotFoundError("no seo result to update"))
		return
	}

	if !h.session.Begin() {
		respondWithError(w, r, apperrors.NewConflictError("another generation is already in flight"))
		return
	}
	defer h.session.End()

	start := time.Now()
	titles, err := h.service.RegenerateTitles(r.Context(), req)
	metrics.RecordGeneration("titles", err == nil, time.Since(start))
	if err != nil {
		logRegenerationFailure("titles", err)
	} else {
		h.session.PatchTitles(titles)
	}

	respondJSON(w, h.session.SEO())
}

// RegenerateDescription handles POST /api/v1/seo/description. The
// current SEO result must exist; only its description is replaced.
func (h *StudioHandlers) RegenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req genai.SEORequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("topic is required"))
		return
	}
	if h.session.SEO() == nil {
		respondWithError(w, r, apperrors.NewNotFoundError("no seo result to update"))
		return
	}

	if !h.session.Begin() {
		respondWithError(w, r, apperrors.NewConflictError("another generation is already in flight"))
		return
	}
	defer h.session.End()

	start := time.Now()
	description, err := h.service.RegenerateDescription(r.Context(), req)
	metrics.RecordGeneration("description", err == nil, time.Since(start))
	if err != nil {
		logRegenerationFailure("description", err)
	} else {
		h.session.PatchDescription(description)
	}

	respondJSON(w, h.session.SEO())
}

// GenerateMarketing handles POST /api/v1/marketing.
func (h *StudioHandlers) GenerateMarketing(w http.ResponseWriter, r *http.Request) {
	var req genai.MarketingRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.ProductName) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("product name is required"))
		return
	}

	if !h.session.Begin() {
		respondWithError(w, r, apperrors.NewConflictError("another generation is already in flight"))
		return
	}
	defer h.session.End()

	start := time.Now()
	result, err := h.service.GenerateMarketing(r.Context(), req)
	metrics.RecordGeneration("marketing", err == nil, time.Since(start))
	if err != nil {
		respondWithError(w, r, apperrors.FromGeneration(r.Context(), err))
		return
	}

	h.session.SetMarketing(result)
	respondJSON(w, result)
}

// AnalyzePerformance handles POST /api/v1/performance.
func (h *StudioHandlers) AnalyzePerformance(w http.ResponseWriter, r *http.Request) {
	var req genai.PerformanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("url is required"))
		return
	}

	if !h.session.Begin() {
		respondWithError(w, r, apperrors.NewConflictError("another generation is already in flight"))
		return
	}
	defer h.session.End()

	start := time.Now()
	result, err := h.service.AnalyzePerformance(r.Context(), req)
	metrics.RecordGeneration("performance", err == nil, time.Since(start))
	if err != nil {
		respondWithError(w, r, apperrors.FromGeneration(r.Context(), err))
		return
	}

	h.session.SetPerformance(result)
	respondJSON(w, result)
}

// Results handles GET /api/v1/results with a snapshot of every slot.
func (h *StudioHandlers) Results(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.session.Snapshot())
}

func decodeBody(r *http.Request, out any) error {
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

func logRegenerationFailure(flow string, err error) {
	if observability.ServerLogger == nil {
		return
	}
	observability.ServerLogger.Warn("Field regeneration failed, keeping current result",
		zap.String("flow", flow),
		zap.Error(err))
}
