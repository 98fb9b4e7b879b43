package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tuberank/tuberank/internal/genai"
)

// TableFormatter renders results as ASCII tables.
type TableFormatter struct{}

// FormatSEO renders the SEO package: metadata table plus thumbnail ideas.
func (f *TableFormatter) FormatSEO(result *genai.SEOResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})

	for i, title := range result.Titles {
		t.AppendRow(table.Row{fmt.Sprintf("Title %d", i+1), title})
	}
	t.AppendRow(table.Row{"Description", result.Description})
	t.AppendRow(table.Row{"Keywords", strings.Join(result.Keywords, ", ")})
	t.AppendRow(table.Row{"Hashtags", strings.Join(result.Hashtags, " ")})
	t.AppendRow(table.Row{"Category", result.Category})
	t.AppendRow(table.Row{"Algorithm Strategy", result.AlgorithmStrategy})

	rendered := t.Render()

	if len(result.ThumbnailIdeas) > 0 {
		ideas := table.NewWriter()
		ideas.SetStyle(table.StyleRounded)
		ideas.AppendHeader(table.Row{"Thumbnail Idea", "Overlay Text"})
		for _, idea := range result.ThumbnailIdeas {
			ideas.AppendRow(table.Row{idea.Description, idea.Text})
		}
		rendered += "\n" + ideas.Render()
	}

	return rendered, nil
}

// FormatMarketing renders the campaign strategy and the per-platform posts.
func (f *TableFormatter) FormatMarketing(result *genai.MarketingResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Platform", "Content", "Hashtags"})
	for _, post := range result.Posts {
		t.AppendRow(table.Row{post.Platform, post.Content, strings.Join(post.Hashtags, " ")})
	}

	rendered := "Strategy: " + result.Strategy + "\n" + t.Render()
	return rendered, nil
}

// FormatPerformance renders the extracted metrics and the analysis text.
func (f *TableFormatter) FormatPerformance(result *genai.PerformanceResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Views", result.Views})
	t.AppendRow(table.Row{"Likes", result.Likes})
	t.AppendRow(table.Row{"Comments", result.Comments})

	rendered := t.Render()
	if strings.TrimSpace(result.Analysis) != "" {
		rendered += "\n\nAnalysis:\n" + result.Analysis
	}
	return rendered, nil
}
