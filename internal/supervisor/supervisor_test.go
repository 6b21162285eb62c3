package supervisor

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkmavis/hindie-console-slayer/internal/console"
	"github.com/darkmavis/hindie-console-slayer/internal/instance"
	"github.com/darkmavis/hindie-console-slayer/internal/monitor"
	"github.com/darkmavis/hindie-console-slayer/internal/window/windowtest"
)

const target = `C:\Program Files (x86)\Steam\steamapps\common\Houdini Indie\bin\hindie.steam.exe`

type fakeLauncher struct {
	err   error
	paths []string
}

func (l *fakeLauncher) Launch(path string) (*instance.Process, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return &instance.Process{}, nil
}

type fakeReporter struct {
	errs []error
}

func (r *fakeReporter) Report(err error) {
	r.errs = append(r.errs, err)
}

// scriptedLiveness answers Running from a function of the call number (1-based).
type scriptedLiveness struct {
	calls   int
	running func(call int) bool
}

func (l *scriptedLiveness) Running() bool {
	l.calls++
	return l.running(l.calls)
}

type countingSuppressor struct {
	calls int
}

func (s *countingSuppressor) HideConsole() bool {
	s.calls++
	return false
}

type recorder struct {
	states []State
	sleeps []time.Duration
}

func newTestSupervisor(l Launcher, s Suppressor, m Liveness, r Reporter, opts Options) (*Supervisor, *recorder) {
	rec := &recorder{}
	sv := New(target, l, s, m, r, opts)
	sv.SetOnState(func(st State) { rec.states = append(rec.states, st) })
	sv.SetSleep(func(d time.Duration) { rec.sleeps = append(rec.sleeps, d) })
	return sv, rec
}

func TestRun_GracePeriodExhausted(t *testing.T) {
	t.Parallel()

	const iterations = 3000
	liveness := &scriptedLiveness{running: func(int) bool { return false }}
	supp := &countingSuppressor{}
	sv, rec := newTestSupervisor(&fakeLauncher{}, supp, liveness, &fakeReporter{}, Options{
		GraceInterval:   20 * time.Millisecond,
		GraceIterations: iterations,
	})

	require.NoError(t, sv.Run())

	assert.Equal(t, iterations, sv.GraceIterations())
	assert.Len(t, rec.sleeps, iterations, "one sleep per grace iteration, none while monitoring")
	assert.Equal(t, 20*time.Millisecond, rec.sleeps[0])
	assert.Equal(t, iterations+1, liveness.calls, "monitoring must exit on its first check")
	assert.Equal(t, iterations+1, supp.calls)
	assert.Equal(t, []State{StateStarting, StateGraceWait, StateMonitoring, StateDone}, rec.states)
	assert.Equal(t, StateDone, sv.State())
}

func TestRun_WindowAppearsDuringGrace(t *testing.T) {
	t.Parallel()

	// The window shows up on the 50th grace check and closes on the 10th monitoring check.
	liveness := &scriptedLiveness{running: func(call int) bool { return call >= 50 && call < 60 }}
	supp := &countingSuppressor{}
	sv, rec := newTestSupervisor(&fakeLauncher{}, supp, liveness, &fakeReporter{}, Options{
		GraceInterval:   20 * time.Millisecond,
		GraceIterations: 3000,
	})

	require.NoError(t, sv.Run())

	assert.Equal(t, 50, sv.GraceIterations(), "must move to monitoring at iteration 50, not 3000")
	assert.Len(t, rec.sleeps, 50)
	assert.Equal(t, 60, liveness.calls)
	assert.Equal(t, 60, supp.calls)
	assert.Equal(t, StateDone, sv.State())
}

func TestRun_MonitorInterval(t *testing.T) {
	t.Parallel()

	liveness := &scriptedLiveness{running: func(call int) bool { return call <= 3 }}
	sv, rec := newTestSupervisor(&fakeLauncher{}, &countingSuppressor{}, liveness, &fakeReporter{}, Options{
		GraceInterval:   time.Millisecond,
		GraceIterations: 10,
		MonitorInterval: 5 * time.Millisecond,
	})

	require.NoError(t, sv.Run())

	// one grace sleep, then two monitoring sleeps before the check that fails
	assert.Equal(t, []time.Duration{time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}, rec.sleeps)
}

func TestRun_LaunchFailure(t *testing.T) {
	t.Parallel()

	launchErr := &instance.LaunchError{Path: target, Err: errors.New("The system cannot find the file specified.")}
	launcher := &fakeLauncher{err: launchErr}
	reporter := &fakeReporter{}
	liveness := &scriptedLiveness{running: func(int) bool { return true }}
	supp := &countingSuppressor{}
	sv, rec := newTestSupervisor(launcher, supp, liveness, reporter, Options{})

	err := sv.Run()

	require.Error(t, err)
	assert.ErrorIs(t, err, launchErr)
	assert.Contains(t, err.Error(), "The system cannot find the file specified.")
	assert.Equal(t, []string{target}, launcher.paths, "exactly one launch attempt")
	require.Len(t, reporter.errs, 1)
	assert.Equal(t, launchErr, reporter.errs[0])
	assert.Zero(t, liveness.calls, "no enumeration on the failure path")
	assert.Zero(t, supp.calls, "no enumeration on the failure path")
	assert.Empty(t, rec.sleeps)
	assert.Equal(t, []State{StateStarting, StateFailed}, rec.states)
	assert.Nil(t, sv.Process())
}

func TestRun_LaunchesMissingExecutable(t *testing.T) {
	t.Parallel()

	d := windowtest.New("Houdini Indie")
	reporter := &fakeReporter{}
	sv := New(filepath.Join(t.TempDir(), "hindie.steam.exe"), instance.Launcher{}, console.New(d, console.DefaultTitle), monitor.New(d), reporter, Options{})

	err := sv.Run()

	var launchErr *instance.LaunchError
	require.ErrorAs(t, err, &launchErr)
	require.Len(t, reporter.errs, 1)
	assert.Zero(t, d.Enumerations)
	assert.Equal(t, StateFailed, sv.State())
}

func TestRun_NoApplicationWindowEver(t *testing.T) {
	t.Parallel()

	d := windowtest.New("Steam", "Program Manager")
	sv, _ := newTestSupervisor(&fakeLauncher{}, console.New(d, console.DefaultTitle), monitor.New(d), &fakeReporter{}, Options{
		GraceIterations: 25,
	})

	require.NoError(t, sv.Run())

	assert.Equal(t, 25, sv.GraceIterations())
	assert.Empty(t, d.Hides, "no console window, no hide calls")
	// 25 grace iterations and one monitoring iteration, each a suppress pass and a liveness pass
	assert.Equal(t, 2*26, d.Enumerations)
	assert.Equal(t, StateDone, sv.State())
}

func TestRun_HidesConsoleWhileRunning(t *testing.T) {
	t.Parallel()

	d := windowtest.New("Steam")
	// Enumerations alternate suppress, liveness. Houdini opens with its console
	// during grace and is closed after a few monitoring rounds.
	d.BeforeEnumerate = func(d *windowtest.Desktop) {
		switch d.Enumerations {
		case 7:
			d.Titles = []string{"Steam", "Houdini Console", "Houdini Indie — untitled.hip"}
		case 15:
			d.Titles = []string{"Steam"}
		}
	}
	sv, _ := newTestSupervisor(&fakeLauncher{}, console.New(d, console.DefaultTitle), monitor.New(d), &fakeReporter{}, Options{})

	require.NoError(t, sv.Run())

	assert.Equal(t, 4, sv.GraceIterations())
	// suppress passes 7, 9, 11, 13 saw the console
	assert.Len(t, d.Hides, 4)
	assert.Equal(t, StateDone, sv.State())
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	sv := New(target, &fakeLauncher{}, &countingSuppressor{}, &scriptedLiveness{}, &fakeReporter{}, Options{
		GraceInterval:   -1,
		GraceIterations: 0,
		MonitorInterval: -time.Second,
	})

	assert.Equal(t, DefaultGraceInterval, sv.opts.GraceInterval)
	assert.Equal(t, DefaultGraceIterations, sv.opts.GraceIterations)
	assert.Zero(t, sv.opts.MonitorInterval)
	assert.Equal(t, StateStarting, sv.State())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "starting", StateStarting.String())
	assert.Equal(t, "grace_wait", StateGraceWait.String())
	assert.Equal(t, "monitoring", StateMonitoring.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
