package handlers

import (
	"io"
	"net/http"

	"github.com/tuberank/tuberank/internal/adconfig"
	apperrors "github.com/tuberank/tuberank/internal/errors"
)

// maxAdSettingsBody bounds the PUT payload; the settings blob is tiny.
const maxAdSettingsBody = 64 << 10

// AdsHandlers serves the AdSense configuration endpoints.
type AdsHandlers struct {
	service *adconfig.Service
}

// NewAdsHandlers wires the ad configuration service.
func NewAdsHandlers(service *adconfig.Service) *AdsHandlers {
	return &AdsHandlers{service: service}
}

// GetSettings handles GET /api/v1/ads/settings.
func (h *AdsHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.service.Settings())
}

// UpdateSettings handles PUT /api/v1/ads/settings. The payload is merged
// over the defaults so partial documents never drop placements, then
// committed and returned.
func (h *AdsHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxAdSettingsBody))
	if err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("unable to read request body"))
		return
	}

	merged, err := adconfig.MergeStored(payload)
	if err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("invalid ad settings payload"))
		return
	}

	h.service.Update(merged)
	respondJSON(w, h.service.Settings())
}
