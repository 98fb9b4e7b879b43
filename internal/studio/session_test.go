package studio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuberank/tuberank/internal/genai"
)

func sampleSEO() *genai.SEOResult {
	return &genai.SEOResult{
		Titles:            []string{"t1", "t2"},
		Description:       "original description",
		Keywords:          []string{"k1"},
		Hashtags:          []string{"#h"},
		Category:          "Education",
		AlgorithmStrategy: "retention",
		ThumbnailIdeas:    []genai.ThumbnailIdea{{Description: "face", Text: "WOW"}},
	}
}

func TestBeginRejectsConcurrentSubmission(t *testing.T) {
	s := NewSession()
	require.True(t, s.Begin())
	require.False(t, s.Begin())
	s.End()
	require.True(t, s.Begin())
}

func TestSlotsAreIndependent(t *testing.T) {
	s := NewSession()
	s.SetSEO(sampleSEO())
	s.SetMarketing(&genai.MarketingResult{Strategy: "bold"})

	s.SetPerformance(&genai.PerformanceResult{Views: "100"})

	require.NotNil(t, s.SEO())
	require.NotNil(t, s.Marketing())
	require.NotNil(t, s.Performance())

	// Replacing one slot leaves the others alone.
	s.SetMarketing(&genai.MarketingResult{Strategy: "quiet"})
	require.Equal(t, "original description", s.SEO().Description)
	require.Equal(t, "100", s.Performance().Views)
}

func TestPatchTitlesReplacesOnlyTitles(t *testing.T) {
	s := NewSession()
	s.SetSEO(sampleSEO())

	require.True(t, s.PatchTitles([]string{"new1", "new2", "new3"}))

	got := s.SEO()
	require.Equal(t, []string{"new1", "new2", "new3"}, got.Titles)
	require.Equal(t, "original description", got.Description)
	require.Equal(t, []string{"k1"}, got.Keywords)
	require.Equal(t, "retention", got.AlgorithmStrategy)
}

func TestPatchDescriptionReplacesOnlyDescription(t *testing.T) {
	s := NewSession()
	s.SetSEO(sampleSEO())

	require.True(t, s.PatchDescription("fresh copy"))

	got := s.SEO()
	require.Equal(t, "fresh copy", got.Description)
	require.Equal(t, []string{"t1", "t2"}, got.Titles)
}

func TestPatchWithoutResultIsNoOp(t *testing.T) {
	s := NewSession()
	require.False(t, s.PatchTitles([]string{"x"}))
	require.False(t, s.PatchDescription("x"))
	require.Nil(t, s.SEO())
}

func TestSnapshotReturnsCopies(t *testing.T) {
	s := NewSession()
	s.SetSEO(sampleSEO())

	snap := s.Snapshot()
	snap.SEO.Titles[0] = "mutated"
	snap.SEO.Description = "mutated"

	got := s.SEO()
	require.Equal(t, "t1", got.Titles[0])
	require.Equal(t, "original description", got.Description)
}

func TestSnapshotReportsBusy(t *testing.T) {
	s := NewSession()
	require.False(t, s.Snapshot().Busy)
	require.True(t, s.Begin())
	require.True(t, s.Snapshot().Busy)
	s.End()
	require.False(t, s.Snapshot().Busy)
}
