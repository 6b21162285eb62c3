//go:build !windows

package window

type noDesktop struct{}

// System returns a desktop that never reports any window on non-Windows platforms.
func System() Desktop {
	return noDesktop{}
}

func (noDesktop) Windows(func(Handle, string) bool) error {
	return ErrUnsupported
}

func (noDesktop) Hide(Handle) bool {
	return false
}
