package instance

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

const queryTimeout = 2 * time.Second

// LaunchError reports that the target executable could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Process is a launched target executable. It is detached: nothing waits on it
// and its lifetime is not tied to the launcher.
type Process struct {
	cmd     *exec.Cmd
	path    string
	pid     int
	started bool
	mu      sync.Mutex
}

// NewProcess creates a Process for the executable at execPath. It is started
// with no arguments and the launcher's environment.
func NewProcess(execPath string) *Process {
	return &Process{
		cmd:  exec.Command(execPath),
		path: execPath,
	}
}

// Start spawns the process without a console window, detached from the
// launcher's console and as the root of a new process group. A failed start
// returns a *LaunchError and must not be retried.
func (p *Process) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return &LaunchError{Path: p.path, Err: fmt.Errorf("process already started")}
	}
	p.started = true

	detach(p.cmd)

	if err := p.cmd.Start(); err != nil {
		return &LaunchError{Path: p.path, Err: err}
	}
	p.pid = p.cmd.Process.Pid
	return nil
}

// Path returns the executable path.
func (p *Process) Path() string {
	return p.path
}

// PID returns the process ID, or 0 if not started.
func (p *Process) PID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// Alive reports whether the spawned process still exists. It is diagnostic
// only: the Steam launcher hands off to Houdini and exits early.
func (p *Process) Alive() bool {
	pid := p.PID()
	if pid <= 0 {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	ok, err := process.PidExistsWithContext(ctx, int32(pid))
	return err == nil && ok
}

// Name returns the executable name the OS reports for the spawned process.
func (p *Process) Name() (string, error) {
	pid := p.PID()
	if pid <= 0 {
		return "", fmt.Errorf("process not started")
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("find pid %d: %w", pid, err)
	}
	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("name of pid %d: %w", pid, err)
	}
	return name, nil
}

// Launcher starts target executables, one attempt per call.
type Launcher struct{}

// Launch creates and starts the process at path.
func (Launcher) Launch(path string) (*Process, error) {
	p := NewProcess(path)
	if err := p.Start(); err != nil {
		return nil, err
	}
	return p, nil
}
