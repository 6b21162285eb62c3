//go:build !windows

package instance

import (
	"os/exec"
	"syscall"
)

// detach puts the process in its own process group on non-Windows platforms.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
