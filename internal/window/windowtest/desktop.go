// Package windowtest provides an in-memory window.Desktop for tests.
package windowtest

import (
	"unicode/utf16"

	"github.com/darkmavis/hindie-console-slayer/internal/window"
)

// Desktop is a scripted desktop. The window at Titles[i] has handle i+1.
type Desktop struct {
	Titles []string
	// Err is returned by Windows after all titles were visited without a stop.
	Err error
	// BeforeEnumerate, when set, runs at the start of every Windows call and
	// may change Titles or Err to simulate windows appearing and closing.
	BeforeEnumerate func(d *Desktop)
	// TruncateTitles cuts titles the way the Win32 desktop reads them, to
	// window.TitleBufferLen-1 UTF-16 code units.
	TruncateTitles bool

	Enumerations int
	Visited      int
	Hides        []window.Handle

	hidden map[window.Handle]bool
}

// New returns a desktop holding the given top-level window titles.
func New(titles ...string) *Desktop {
	return &Desktop{Titles: titles}
}

func (d *Desktop) Windows(visit func(h window.Handle, title string) bool) error {
	d.Enumerations++
	if d.BeforeEnumerate != nil {
		d.BeforeEnumerate(d)
	}
	for i, title := range d.Titles {
		d.Visited++
		if d.TruncateTitles {
			title = truncate(title)
		}
		if visit(window.Handle(i+1), title) {
			return nil
		}
	}
	return d.Err
}

func (d *Desktop) Hide(h window.Handle) bool {
	d.Hides = append(d.Hides, h)
	if d.hidden == nil {
		d.hidden = make(map[window.Handle]bool)
	}
	wasVisible := !d.hidden[h]
	d.hidden[h] = true
	return wasVisible
}

func truncate(title string) string {
	units := utf16.Encode([]rune(title))
	if len(units) < window.TitleBufferLen {
		return title
	}
	return string(utf16.Decode(units[:window.TitleBufferLen-1]))
}
