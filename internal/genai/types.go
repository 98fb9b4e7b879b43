package genai

// SEORequest describes a single SEO metadata generation submission.
//
// Requests are built fresh per submission and never merged or reused.
type SEORequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Audience string `json:"audience"`
	Language string `json:"language"`
}

// MarketingRequest describes a marketing-copy generation submission.
type MarketingRequest struct {
	ProductName string `json:"productName"`
	Audience    string `json:"audience"`
	Language    string `json:"language"`
}

// PerformanceRequest identifies the video to analyze via web search.
type PerformanceRequest struct {
	URL string `json:"url"`
}

// ThumbnailIdea is a single thumbnail concept: a visual description plus
// the short text overlay to render on the image.
type ThumbnailIdea struct {
	Description string `json:"description"`
	Text        string `json:"text"`
}

// SEOResult is the full structured SEO package for one video idea.
//
// The result is atomic: every field is required by the response contract,
// and a payload missing any of them fails validation outright.
type SEOResult struct {
	Titles            []string        `json:"titles"`
	Description       string          `json:"description"`
	Keywords          []string        `json:"keywords"`
	Hashtags          []string        `json:"hashtags"`
	Category          string          `json:"category"`
	AlgorithmStrategy string          `json:"algorithmStrategy"`
	ThumbnailIdeas    []ThumbnailIdea `json:"thumbnailIdeas"`
}

// SocialPost is one platform-specific marketing post.
type SocialPost struct {
	Platform string   `json:"platform"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// MarketingResult is the structured marketing campaign for one product.
type MarketingResult struct {
	Strategy string       `json:"strategy"`
	Posts    []SocialPost `json:"posts"`
}

// PerformanceResult holds the extracted video performance summary.
//
// Unlike the structured results, every field is always populated: labels
// missing from the model's free-text reply resolve to sentinel strings
// instead of failing the call.
type PerformanceResult struct {
	Views    string `json:"views"`
	Likes    string `json:"likes"`
	Comments string `json:"comments"`
	Analysis string `json:"analysis"`
}
