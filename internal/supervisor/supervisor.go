// Package supervisor launches the target and keeps its console hidden until
// the target's windows are gone.
package supervisor

import (
	"runtime"
	"time"

	"github.com/darkmavis/hindie-console-slayer/internal/instance"
	"github.com/darkmavis/hindie-console-slayer/internal/pkg/logger"
)

// State is a supervisor lifecycle state.
type State int

const (
	StateStarting State = iota
	StateGraceWait
	StateMonitoring
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateGraceWait:
		return "grace_wait"
	case StateMonitoring:
		return "monitoring"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	DefaultGraceInterval   = 20 * time.Millisecond
	DefaultGraceIterations = 3000
)

// Launcher starts the target executable.
type Launcher interface {
	Launch(path string) (*instance.Process, error)
}

// Suppressor hides the unwanted console window, if present.
type Suppressor interface {
	HideConsole() bool
}

// Liveness reports whether the target still shows a window.
type Liveness interface {
	Running() bool
}

// Reporter surfaces a fatal launch error to the user.
type Reporter interface {
	Report(err error)
}

// Options tunes the polling cadence.
type Options struct {
	// GraceInterval is the sleep before each startup poll.
	GraceInterval time.Duration
	// GraceIterations caps the startup polls. Zero or less means DefaultGraceIterations.
	GraceIterations int
	// MonitorInterval is the sleep between steady-state polls. Zero busy-polls.
	MonitorInterval time.Duration
}

// Supervisor runs one launch of the target through
// starting → grace_wait → monitoring → done, or starting → failed.
// All polling happens on the goroutine that calls Run.
type Supervisor struct {
	target     string
	launcher   Launcher
	suppressor Suppressor
	liveness   Liveness
	reporter   Reporter
	opts       Options

	sleep   func(time.Duration)
	onState func(State)

	state     State
	graceUsed int
	process   *instance.Process
}

// New creates a Supervisor for the executable at target.
func New(target string, l Launcher, s Suppressor, m Liveness, r Reporter, opts Options) *Supervisor {
	if opts.GraceInterval < 0 {
		opts.GraceInterval = DefaultGraceInterval
	}
	if opts.GraceIterations <= 0 {
		opts.GraceIterations = DefaultGraceIterations
	}
	if opts.MonitorInterval < 0 {
		opts.MonitorInterval = 0
	}
	return &Supervisor{
		target:     target,
		launcher:   l,
		suppressor: s,
		liveness:   m,
		reporter:   r,
		opts:       opts,
		sleep:      time.Sleep,
		onState:    func(State) {},
	}
}

// SetOnState sets the callback invoked on every state transition.
func (s *Supervisor) SetOnState(fn func(State)) {
	if fn != nil {
		s.onState = fn
	} else {
		s.onState = func(State) {}
	}
}

// SetSleep replaces the sleep function used between polls.
func (s *Supervisor) SetSleep(fn func(time.Duration)) {
	if fn != nil {
		s.sleep = fn
	} else {
		s.sleep = time.Sleep
	}
}

// State returns the current state.
func (s *Supervisor) State() State {
	return s.state
}

// GraceIterations returns how many startup polls were performed.
func (s *Supervisor) GraceIterations() int {
	return s.graceUsed
}

// Process returns the launched process, or nil before a successful launch.
func (s *Supervisor) Process() *instance.Process {
	return s.process
}

// Run performs the single launch attempt and supervises the target until it
// is gone. The only error returned is the launch error, after it has been
// reported.
func (s *Supervisor) Run() error {
	s.transition(StateStarting)

	proc, err := s.launcher.Launch(s.target)
	if err != nil {
		s.transition(StateFailed)
		s.reporter.Report(err)
		return err
	}
	s.process = proc
	logger.Log.Info().Str("target", s.target).Int("pid", proc.PID()).Msg("target launched")

	s.transition(StateGraceWait)
	s.graceWait()

	s.transition(StateMonitoring)
	s.monitor()

	s.transition(StateDone)
	return nil
}

// graceWait polls until the target shows a window or the iteration cap runs
// out. Running out is not an error: the target may just be slow to appear.
func (s *Supervisor) graceWait() {
	for s.graceUsed < s.opts.GraceIterations {
		s.graceUsed++
		s.sleep(s.opts.GraceInterval)
		s.suppressor.HideConsole()
		if s.liveness.Running() {
			logger.Log.Info().Int("iteration", s.graceUsed).Msg("target window detected")
			return
		}
	}
	logger.Log.Warn().Int("iterations", s.graceUsed).Msg("grace period elapsed without a target window")
}

func (s *Supervisor) monitor() {
	for {
		s.suppressor.HideConsole()
		if !s.liveness.Running() {
			return
		}
		if s.opts.MonitorInterval > 0 {
			s.sleep(s.opts.MonitorInterval)
		} else {
			runtime.Gosched()
		}
	}
}

func (s *Supervisor) transition(to State) {
	logger.Log.Debug().Str("from", s.state.String()).Str("to", to.String()).Msg("supervisor state")
	s.state = to
	s.onState(to)
}
