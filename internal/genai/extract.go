package genai

import (
	"regexp"
	"strings"
)

// Sentinels substituted for labels missing from a performance reply. The
// assistant's analysis output is Arabic, so the placeholders are too.
const (
	SentinelUnavailable = "غير متوفر"
	SentinelNoAnalysis  = "لم يتم العثور على تحليل كافٍ."
)

// Label matching is case-insensitive and order-independent. The metric
// labels capture to end of line; ANALYSIS captures everything after the
// label, newlines included.
var (
	viewsPattern    = regexp.MustCompile(`(?i)VIEWS:\s*(.+)`)
	likesPattern    = regexp.MustCompile(`(?i)LIKES:\s*(.+)`)
	commentsPattern = regexp.MustCompile(`(?i)COMMENTS:\s*(.+)`)
	analysisPattern = regexp.MustCompile(`(?is)ANALYSIS:\s*(.*)`)
)

// ExtractPerformance pulls the labeled fields out of a free-text
// performance reply. Missing labels never fail the extraction; each
// resolves to its sentinel instead.
func ExtractPerformance(text string) PerformanceResult {
	return PerformanceResult{
		Views:    extractField(viewsPattern, text, SentinelUnavailable),
		Likes:    extractField(likesPattern, text, SentinelUnavailable),
		Comments: extractField(commentsPattern, text, SentinelUnavailable),
		Analysis: extractField(analysisPattern, text, SentinelNoAnalysis),
	}
}

func extractField(pattern *regexp.Regexp, text, sentinel string) string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return sentinel
	}
	return strings.TrimSpace(match[1])
}
