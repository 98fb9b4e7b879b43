package output

import (
	"fmt"
	"strings"

	"github.com/tuberank/tuberank/internal/genai"
)

// MarkdownFormatter renders results as markdown documents.
type MarkdownFormatter struct{}

// FormatSEO renders an SEO result as markdown.
func (f *MarkdownFormatter) FormatSEO(result *genai.SEOResult) (string, error) {
	if result == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("## SEO Package\n\n")

	sb.WriteString("### Titles\n\n")
	for _, title := range result.Titles {
		fmt.Fprintf(&sb, "- %s\n", title)
	}

	sb.WriteString("\n### Description\n\n")
	sb.WriteString(result.Description)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "\n**Keywords:** %s\n", strings.Join(result.Keywords, ", "))
	fmt.Fprintf(&sb, "\n**Hashtags:** %s\n", strings.Join(result.Hashtags, " "))
	fmt.Fprintf(&sb, "\n**Category:** %s\n", result.Category)
	fmt.Fprintf(&sb, "\n**Algorithm Strategy:** %s\n", result.AlgorithmStrategy)

	if len(result.ThumbnailIdeas) > 0 {
		sb.WriteString("\n### Thumbnail Ideas\n\n")
		for _, idea := range result.ThumbnailIdeas {
			fmt.Fprintf(&sb, "- %s (overlay: %q)\n", idea.Description, idea.Text)
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// FormatMarketing renders a marketing result as markdown.
func (f *MarkdownFormatter) FormatMarketing(result *genai.MarketingResult) (string, error) {
	if result == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("## Marketing Campaign\n\n")
	sb.WriteString("### Strategy\n\n")
	sb.WriteString(result.Strategy)
	sb.WriteString("\n")

	for _, post := range result.Posts {
		fmt.Fprintf(&sb, "\n### %s\n\n%s\n", post.Platform, post.Content)
		if len(post.Hashtags) > 0 {
			fmt.Fprintf(&sb, "\n%s\n", strings.Join(post.Hashtags, " "))
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// FormatPerformance renders a performance result as markdown.
func (f *MarkdownFormatter) FormatPerformance(result *genai.PerformanceResult) (string, error) {
	if result == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("## Performance Analysis\n\n")
	fmt.Fprintf(&sb, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Views | %s |\n", result.Views)
	fmt.Fprintf(&sb, "| Likes | %s |\n", result.Likes)
	fmt.Fprintf(&sb, "| Comments | %s |\n", result.Comments)

	if strings.TrimSpace(result.Analysis) != "" {
		sb.WriteString("\n### Analysis\n\n")
		sb.WriteString(result.Analysis)
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
