//go:build windows

package instance

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detach sets SysProcAttr so the target gets no console window, is not
// attached to the launcher's console, and leads its own process group so
// console control events do not cross between the two.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NO_WINDOW | windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
