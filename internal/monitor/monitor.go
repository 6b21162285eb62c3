package monitor

import (
	"strings"

	"github.com/darkmavis/hindie-console-slayer/internal/window"
)

// DefaultKeywords must all appear in a window title for Houdini Indie to be
// considered running. Requiring both keeps document titles that only mention
// "houdini" from counting.
var DefaultKeywords = []string{"houdini", "indie"}

// Monitor decides whether the target application is running by looking for
// one of its top-level windows.
type Monitor struct {
	desktop  window.Desktop
	keywords []string
}

// New creates a Monitor that matches titles containing every keyword,
// case-insensitively. No keywords means DefaultKeywords.
func New(d window.Desktop, keywords ...string) *Monitor {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	if len(lowered) == 0 {
		lowered = DefaultKeywords
	}
	return &Monitor{desktop: d, keywords: lowered}
}

// Keywords returns the lowercased keywords a title must contain.
func (m *Monitor) Keywords() []string {
	out := make([]string, len(m.keywords))
	copy(out, m.keywords)
	return out
}

// Matches reports whether title belongs to the target application.
func (m *Monitor) Matches(title string) bool {
	title = strings.ToLower(title)
	for _, k := range m.keywords {
		if !strings.Contains(title, k) {
			return false
		}
	}
	return true
}

// Running performs a fresh enumeration and reports whether a matching window exists.
func (m *Monitor) Running() bool {
	_, ok := window.Find(m.desktop, m.Matches)
	return ok
}
