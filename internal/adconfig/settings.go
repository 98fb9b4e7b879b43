// Package adconfig manages the persisted AdSense placement configuration:
// defaults, merge-on-load, render decisions, and loader-script activation.
package adconfig

import "encoding/json"

// SettingsKey is the fixed storage key for the persisted settings blob.
const SettingsKey = "tuberank_ad_settings"

// Format is an AdSense unit display format.
type Format string

const (
	FormatAuto       Format = "auto"
	FormatFluid      Format = "fluid"
	FormatRectangle  Format = "rectangle"
	FormatHorizontal Format = "horizontal"
	FormatVertical   Format = "vertical"
)

// PlacementKey identifies one of the fixed ad slots in the page layout.
type PlacementKey string

const (
	PlacementHeader        PlacementKey = "header"
	PlacementSidebar       PlacementKey = "sidebar"
	PlacementResultsTop    PlacementKey = "resultsTop"
	PlacementResultsBottom PlacementKey = "resultsBottom"
)

// PlacementKeys lists the fixed placements in layout order.
func PlacementKeys() []PlacementKey {
	return []PlacementKey{PlacementHeader, PlacementSidebar, PlacementResultsTop, PlacementResultsBottom}
}

// Placement configures one ad slot. SlotID keeps the wire name "id" from
// the persisted format.
type Placement struct {
	SlotID  string `json:"id"`
	Enabled bool   `json:"enabled"`
	Format  Format `json:"format"`
}

// Settings is the full AdSense configuration.
type Settings struct {
	PublisherID   string                     `json:"publisherId"`
	GlobalEnabled bool                       `json:"globalEnabled"`
	Placements    map[PlacementKey]Placement `json:"placements"`
}

// DefaultSettings returns the factory configuration: ads globally enabled,
// every placement enabled with an empty slot id and auto format, no
// publisher id.
func DefaultSettings() Settings {
	placements := make(map[PlacementKey]Placement, 4)
	for _, key := range PlacementKeys() {
		placements[key] = Placement{Enabled: true, Format: FormatAuto}
	}
	return Settings{
		PublisherID:   "",
		GlobalEnabled: true,
		Placements:    placements,
	}
}

// storedSettings mirrors Settings with pointer fields so a merge can tell
// an absent top-level field from a zero value.
type storedSettings struct {
	PublisherID   *string                     `json:"publisherId"`
	GlobalEnabled *bool                       `json:"globalEnabled"`
	Placements    *map[PlacementKey]Placement `json:"placements"`
}

// MergeStored overlays a persisted payload onto the defaults, top-level
// field by top-level field. Placements missing from a stored placements
// map are backfilled from the defaults, and an empty format normalizes to
// auto. Returns an error for a payload that does not decode; callers log
// and fall back to defaults.
func MergeStored(payload []byte) (Settings, error) {
	settings := DefaultSettings()

	var stored storedSettings
	if err := json.Unmarshal(payload, &stored); err != nil {
		return settings, err
	}

	if stored.PublisherID != nil {
		settings.PublisherID = *stored.PublisherID
	}
	if stored.GlobalEnabled != nil {
		settings.GlobalEnabled = *stored.GlobalEnabled
	}
	if stored.Placements != nil {
		for key, placement := range *stored.Placements {
			settings.Placements[key] = placement
		}
	}

	for key, placement := range settings.Placements {
		if placement.Format == "" {
			placement.Format = FormatAuto
			settings.Placements[key] = placement
		}
	}

	return settings, nil
}

// ShouldRender reports whether the placement may serve an ad: ads must be
// globally enabled, the placement enabled, and both the slot id and the
// publisher id configured.
func (s Settings) ShouldRender(key PlacementKey) bool {
	placement, ok := s.Placements[key]
	if !ok {
		return false
	}
	return s.GlobalEnabled && placement.Enabled && placement.SlotID != "" && s.PublisherID != ""
}

// ShouldActivate reports whether the loader script may be injected: a
// publisher id is set and ads are globally enabled.
func (s Settings) ShouldActivate() bool {
	return s.PublisherID != "" && s.GlobalEnabled
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	clone := s
	clone.Placements = make(map[PlacementKey]Placement, len(s.Placements))
	for key, placement := range s.Placements {
		clone.Placements[key] = placement
	}
	return clone
}
