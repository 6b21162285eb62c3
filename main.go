// Command hindie-console-slayer launches the Steam build of Houdini Indie and
// keeps hiding the "Houdini Console" window until Houdini is closed.
//
// Build it as a GUI-subsystem binary so it has no console of its own:
//
//	go build -ldflags "-H=windowsgui"
package main

import (
	"os"

	"github.com/darkmavis/hindie-console-slayer/internal/config"
	"github.com/darkmavis/hindie-console-slayer/internal/notify"
	"github.com/darkmavis/hindie-console-slayer/internal/pkg/logger"
	"github.com/darkmavis/hindie-console-slayer/internal/window"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load application config (never fatal, defaults fill in)
	cfg, loadErr := loadConfig(config.Load)

	// 2. Initialize logging. There is no stderr in a GUI binary, so on failure
	// the logger stays a no-op and the launch goes on.
	_ = logger.Init(cfg.LogDir, cfg.IsDebug())
	defer logger.Close()

	if loadErr != nil {
		logger.Log.Warn().Err(loadErr).Msg("Config unavailable, using defaults")
	}
	if cfg.ReadErr != nil {
		logger.Log.Warn().Err(cfg.ReadErr).Msg("Config file unreadable, using defaults")
	}

	// 3. Supervise the target
	app := NewApp(cfg, window.System(), notify.New(cfg.AppName))
	return app.Run()
}

// loadConfig returns the loaded config, or the defaults together with the
// load error when there is none to load.
func loadConfig(load func() (*config.AppConfig, error)) (*config.AppConfig, error) {
	cfg, err := load()
	if err != nil || cfg == nil {
		return config.Defaults(config.FallbackDir()), err
	}
	return cfg, nil
}
