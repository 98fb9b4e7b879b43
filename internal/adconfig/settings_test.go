package adconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	require.Empty(t, settings.PublisherID)
	require.True(t, settings.GlobalEnabled)
	require.Len(t, settings.Placements, 4)
	for _, key := range PlacementKeys() {
		placement := settings.Placements[key]
		require.True(t, placement.Enabled)
		require.Empty(t, placement.SlotID)
		require.Equal(t, FormatAuto, placement.Format)
	}
}

func TestMergeStoredOverlaysTopLevelFields(t *testing.T) {
	payload := []byte(`{"publisherId": "ca-pub-123", "globalEnabled": false}`)
	settings, err := MergeStored(payload)
	require.NoError(t, err)
	require.Equal(t, "ca-pub-123", settings.PublisherID)
	require.False(t, settings.GlobalEnabled)
	// Absent placements keep the defaults.
	require.Len(t, settings.Placements, 4)
	require.True(t, settings.Placements[PlacementHeader].Enabled)
}

func TestMergeStoredBackfillsMissingPlacements(t *testing.T) {
	payload := []byte(`{"placements": {"header": {"id": "111", "enabled": false, "format": "fluid"}}}`)
	settings, err := MergeStored(payload)
	require.NoError(t, err)

	header := settings.Placements[PlacementHeader]
	require.Equal(t, "111", header.SlotID)
	require.False(t, header.Enabled)
	require.Equal(t, FormatFluid, header.Format)

	// The other three placements come back from the defaults.
	require.Len(t, settings.Placements, 4)
	require.True(t, settings.Placements[PlacementSidebar].Enabled)
}

func TestMergeStoredNormalizesEmptyFormat(t *testing.T) {
	payload := []byte(`{"placements": {"sidebar": {"id": "222", "enabled": true, "format": ""}}}`)
	settings, err := MergeStored(payload)
	require.NoError(t, err)
	require.Equal(t, FormatAuto, settings.Placements[PlacementSidebar].Format)
}

func TestMergeStoredMalformedPayload(t *testing.T) {
	settings, err := MergeStored([]byte("{broken"))
	require.Error(t, err)
	// The returned value is still usable: the defaults.
	require.True(t, settings.GlobalEnabled)
}

func TestShouldRender(t *testing.T) {
	settings := DefaultSettings()
	// Defaults never render: no publisher id, no slot ids.
	require.False(t, settings.ShouldRender(PlacementHeader))

	settings.PublisherID = "ca-pub-123"
	require.False(t, settings.ShouldRender(PlacementHeader))

	placement := settings.Placements[PlacementHeader]
	placement.SlotID = "111"
	settings.Placements[PlacementHeader] = placement
	require.True(t, settings.ShouldRender(PlacementHeader))

	placement.Enabled = false
	settings.Placements[PlacementHeader] = placement
	require.False(t, settings.ShouldRender(PlacementHeader))

	placement.Enabled = true
	settings.Placements[PlacementHeader] = placement
	settings.GlobalEnabled = false
	require.False(t, settings.ShouldRender(PlacementHeader))

	require.False(t, settings.ShouldRender(PlacementKey("unknown")))
}
