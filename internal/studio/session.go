// Package studio holds the per-session view state of the assistant: the
// latest result of each generation flow plus the shared in-flight guard.
package studio

import (
	"sync"

	"github.com/tuberank/tuberank/internal/genai"
)

// Session keeps one independent result slot per flow. Replacing one slot
// never touches the others, so switching between flows preserves earlier
// results.
//
// A single busy flag is shared across all flows: only one generation may
// be in flight at a time, regardless of which flow it belongs to.
type Session struct {
	mu          sync.Mutex
	busy        bool
	seo         *genai.SEOResult
	marketing   *genai.MarketingResult
	performance *genai.PerformanceResult
}

// Snapshot is a point-in-time copy of all result slots.
type Snapshot struct {
	SEO         *genai.SEOResult         `json:"seo,omitempty"`
	Marketing   *genai.MarketingResult   `json:"marketing,omitempty"`
	Performance *genai.PerformanceResult `json:"performance,omitempty"`
	Busy        bool                     `json:"busy"`
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Begin claims the shared in-flight flag. It returns false when another
// generation is already outstanding; callers must reject the submission
// in that case.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// End releases the shared in-flight flag.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// SetSEO replaces the SEO slot.
func (s *Session) SetSEO(result *genai.SEOResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seo = cloneSEO(result)
}

// SetMarketing replaces the marketing slot.
func (s *Session) SetMarketing(result *genai.MarketingResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marketing = cloneMarketing(result)
}

// SetPerformance replaces the performance slot.
func (s *Session) SetPerformance(result *genai.PerformanceResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result == nil {
		s.performance = nil
		return
	}
	clone := *result
	s.performance = &clone
}

// PatchTitles replaces only the titles of the current SEO result. It
// reports false, leaving the session unchanged, when no SEO result exists.
func (s *Session) PatchTitles(titles []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seo == nil {
		return false
	}
	s.seo.Titles = append([]string(nil), titles...)
	return true
}

// PatchDescription replaces only the description of the current SEO
// result. It reports false, leaving the session unchanged, when no SEO
// result exists.
func (s *Session) PatchDescription(description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seo == nil {
		return false
	}
	s.seo.Description = description
	return true
}

// SEO returns a copy of the SEO slot, or nil.
func (s *Session) SEO() *genai.SEOResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSEO(s.seo)
}

// Marketing returns a copy of the marketing slot, or nil.
func (s *Session) Marketing() *genai.MarketingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMarketing(s.marketing)
}

// Performance returns a copy of the performance slot, or nil.
func (s *Session) Performance() *genai.PerformanceResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.performance == nil {
		return nil
	}
	clone := *s.performance
	return &clone
}

// Snapshot returns copies of all slots plus the busy flag.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		SEO:       cloneSEO(s.seo),
		Marketing: cloneMarketing(s.marketing),
		Busy:      s.busy,
	}
	if s.performance != nil {
		clone := *s.performance
		snap.Performance = &clone
	}
	return snap
}

func cloneSEO(result *genai.SEOResult) *genai.SEOResult {
	if result == nil {
		return nil
	}
	clone := *result
	clone.Titles = append([]string(nil), result.Titles...)
	clone.Keywords = append([]string(nil), result.Keywords...)
	clone.Hashtags = append([]string(nil), result.Hashtags...)
	clone.ThumbnailIdeas = append([]genai.ThumbnailIdea(nil), result.ThumbnailIdeas...)
	return &clone
}

func cloneMarketing(result *genai.MarketingResult) *genai.MarketingResult {
	if result == nil {
		return nil
	}
	clone := *result
	clone.Posts = make([]genai.SocialPost, len(result.Posts))
	for i, post := range result.Posts {
		clone.Posts[i] = post
		clone.Posts[i].Hashtags = append([]string(nil), post.Hashtags...)
	}
	return &clone
}
