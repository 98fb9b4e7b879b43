package output

import (
	"encoding/json"

	"github.com/tuberank/tuberank/internal/genai"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatSEO renders an SEO result as JSON.
func (f *JSONFormatter) FormatSEO(result *genai.SEOResult) (string, error) {
	return f.marshal(result)
}

// FormatMarketing renders a marketing result as JSON.
func (f *JSONFormatter) FormatMarketing(result *genai.MarketingResult) (string, error) {
	return f.marshal(result)
}

// FormatPerformance renders a performance result as JSON.
func (f *JSONFormatter) FormatPerformance(result *genai.PerformanceResult) (string, error) {
	return f.marshal(result)
}

func (f *JSONFormatter) marshal(payload any) (string, error) {
	if payload == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
