package main

import (
	"github.com/darkmavis/hindie-console-slayer/internal/config"
	"github.com/darkmavis/hindie-console-slayer/internal/console"
	"github.com/darkmavis/hindie-console-slayer/internal/instance"
	"github.com/darkmavis/hindie-console-slayer/internal/monitor"
	"github.com/darkmavis/hindie-console-slayer/internal/notify"
	"github.com/darkmavis/hindie-console-slayer/internal/pkg/logger"
	"github.com/darkmavis/hindie-console-slayer/internal/supervisor"
	"github.com/darkmavis/hindie-console-slayer/internal/window"
)

var appVersion = "0.1.0"

// App wires the configured components into one supervisor run.
type App struct {
	cfg      *config.AppConfig
	notifier *notify.Notifier
	sup      *supervisor.Supervisor
}

// NewApp creates an App that supervises cfg.TargetPath on desktop and
// reports a failed launch through notifier.
func NewApp(cfg *config.AppConfig, desktop window.Desktop, notifier *notify.Notifier) *App {
	sup := supervisor.New(
		cfg.TargetPath,
		instance.Launcher{},
		console.New(desktop, cfg.ConsoleTitle),
		monitor.New(desktop, cfg.TitleKeywords...),
		notifier,
		supervisor.Options{
			GraceInterval:   cfg.GraceInterval,
			GraceIterations: cfg.GraceIterations,
			MonitorInterval: cfg.MonitorInterval,
		},
	)

	a := &App{cfg: cfg, notifier: notifier, sup: sup}
	sup.SetOnState(a.onState)
	return a
}

// Run supervises the target until it is gone and returns the process exit code.
func (a *App) Run() int {
	logger.Log.Info().
		Str("version", appVersion).
		Str("target", a.cfg.TargetPath).
		Str("console_title", a.cfg.ConsoleTitle).
		Strs("title_keywords", a.cfg.TitleKeywords).
		Dur("grace_interval", a.cfg.GraceInterval).
		Int("grace_iterations", a.cfg.GraceIterations).
		Msg("Starting Hindie Console Slayer")

	if err := a.sup.Run(); err != nil {
		return 1
	}
	return 0
}

func (a *App) onState(s supervisor.State) {
	switch s {
	case supervisor.StateMonitoring:
		a.logLauncher("monitoring target windows")
	case supervisor.StateDone:
		logger.Log.Info().Int("grace_iterations", a.sup.GraceIterations()).Msg("target windows gone, exiting")
	}
}

// logLauncher records what became of the spawned launcher. Steam usually
// replaces it with the real Houdini process, so it is expected to be gone.
func (a *App) logLauncher(msg string) {
	proc := a.sup.Process()
	if proc == nil {
		return
	}
	ev := logger.Log.Info().Int("pid", proc.PID()).Bool("launcher_alive", proc.Alive())
	if name, err := proc.Name(); err == nil {
		ev = ev.Str("launcher_name", name)
	}
	ev.Msg(msg)
}
