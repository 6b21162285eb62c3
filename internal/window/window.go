// Package window enumerates the top-level windows of the desktop.
package window

import "errors"

// TitleBufferLen is the size of the buffer a window title is read into.
// Longer titles are truncated.
const TitleBufferLen = 256

// ErrUnsupported is returned by Windows on platforms without a Win32 desktop.
var ErrUnsupported = errors.New("window enumeration is not supported on this platform")

// Handle is an opaque desktop window handle. It is only valid while the window exists.
type Handle uintptr

// Desktop is the window-system boundary: read the top-level windows and hide one.
type Desktop interface {
	// Windows calls visit for every top-level window, in the order the window
	// system reports them, until visit returns true.
	Windows(visit func(h Handle, title string) (stop bool)) error

	// Hide hides h without destroying it and reports whether it was visible before.
	Hide(h Handle) (wasVisible bool)
}

// Find returns the first top-level window whose title satisfies match.
// Windows with an empty title never reach match. A failing enumeration is
// reported as no match.
func Find(d Desktop, match func(title string) bool) (Handle, bool) {
	var (
		found Handle
		ok    bool
	)
	err := d.Windows(func(h Handle, title string) bool {
		if title == "" || !match(title) {
			return false
		}
		found, ok = h, true
		return true
	})
	if err != nil && !ok {
		return 0, false
	}
	return found, ok
}
