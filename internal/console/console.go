// Package console hides the console window Houdini opens next to its main window.
package console

import (
	"github.com/darkmavis/hindie-console-slayer/internal/pkg/logger"
	"github.com/darkmavis/hindie-console-slayer/internal/window"
)

// DefaultTitle is the exact title of the console window Houdini spawns.
const DefaultTitle = "Houdini Console"

// Suppressor hides the window whose title equals Title.
type Suppressor struct {
	desktop window.Desktop
	title   string
}

// New creates a Suppressor for the window titled title on d.
// An empty title falls back to DefaultTitle.
func New(d window.Desktop, title string) *Suppressor {
	if title == "" {
		title = DefaultTitle
	}
	return &Suppressor{desktop: d, title: title}
}

// Title returns the exact window title being suppressed.
func (s *Suppressor) Title() string {
	return s.title
}

// HideConsole issues one hide for the console window if it exists and
// reports whether it was found. The window is hidden, never closed.
func (s *Suppressor) HideConsole() bool {
	h, ok := window.Find(s.desktop, s.matches)
	if !ok {
		return false
	}
	if s.desktop.Hide(h) {
		logger.Log.Info().Uint64("hwnd", uint64(h)).Str("title", s.title).Msg("console window hidden")
	}
	return true
}

func (s *Suppressor) matches(title string) bool {
	return title == s.title
}
