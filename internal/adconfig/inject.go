package adconfig

import (
	"fmt"
	"html"
	"sync"
)

// ScriptElementID is the DOM id of the injected AdSense loader tag. The
// fixed id is what makes re-injection detectable on the client side.
const ScriptElementID = "adsense-script-main"

// ScriptTag renders the AdSense loader tag for a publisher id.
func ScriptTag(publisherID string) string {
	return fmt.Sprintf(
		`<script id=%q async src="https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=%s" crossorigin="anonymous"></script>`,
		ScriptElementID,
		html.EscapeString(publisherID),
	)
}

// Activator receives the publisher id once the loader script should be
// live. Implementations must tolerate repeat calls.
type Activator interface {
	Activate(publisherID string)
}

// HeadInjector is an Activator that holds the loader snippet for the
// served document head. Activation is idempotent: the first call wins for
// the process lifetime, later calls do not replace the snippet.
type HeadInjector struct {
	mu      sync.Mutex
	snippet string
}

// Activate stores the loader snippet on first call.
func (h *HeadInjector) Activate(publisherID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snippet != "" {
		return
	}
	h.snippet = ScriptTag(publisherID)
}

// Snippet returns the loader tag, or an empty string before activation.
func (h *HeadInjector) Snippet() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snippet
}
