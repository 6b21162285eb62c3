//go:build windows

package window

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const swHide = 0

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows    = user32.NewProc("EnumWindows")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
	procShowWindow     = user32.NewProc("ShowWindow")

	// Callbacks cannot be released, so one is created for the whole process.
	enumCallback = windows.NewCallback(enumWindowsProc)
)

// enumState is handed to EnumWindows as its lParam and lives for a single call.
// LazyProc.Call moves it to the heap, so the callback's address stays valid
// when the goroutine stack is copied during the enumeration.
type enumState struct {
	buf     [TitleBufferLen]uint16
	visit   func(Handle, string) bool
	stopped bool
}

type win32Desktop struct{}

// System returns the Win32 desktop of the current session.
func System() Desktop {
	return win32Desktop{}
}

func (win32Desktop) Windows(visit func(h Handle, title string) bool) error {
	st := &enumState{visit: visit}
	r1, _, err := procEnumWindows.Call(enumCallback, uintptr(unsafe.Pointer(st)))
	if st.stopped || r1 != 0 {
		// EnumWindows reports failure whenever the callback ends it early.
		return nil
	}
	return err
}

func (win32Desktop) Hide(h Handle) bool {
	wasVisible, _, _ := procShowWindow.Call(uintptr(h), swHide)
	return wasVisible != 0
}

func enumWindowsProc(hwnd uintptr, lparam uintptr) uintptr {
	st := (*enumState)(unsafe.Pointer(lparam))

	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&st.buf[0])), uintptr(len(st.buf)))
	var title string
	if n > 0 && int(n) <= len(st.buf) {
		title = windows.UTF16ToString(st.buf[:n])
	}

	if st.visit(Handle(hwnd), title) {
		st.stopped = true
		return 0
	}
	return 1
}
