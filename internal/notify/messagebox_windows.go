//go:build windows

package notify

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func showMessageBox(title, message string) error {
	text, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	caption, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("encode title: %w", err)
	}
	if _, err := windows.MessageBox(0, text, caption, windows.MB_OK|windows.MB_ICONERROR); err != nil {
		return fmt.Errorf("message box: %w", err)
	}
	return nil
}
