package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/darkmavis/hindie-console-slayer/internal/console"
	"github.com/darkmavis/hindie-console-slayer/internal/monitor"
	"github.com/darkmavis/hindie-console-slayer/internal/supervisor"
)

const (
	appDirName     = "HindieConsoleSlayer"
	configFileName = "config.yaml"

	DefaultAppName         = "Houdini Indie"
	DefaultConsoleTitle    = console.DefaultTitle
	DefaultGraceInterval   = supervisor.DefaultGraceInterval
	DefaultGraceIterations = supervisor.DefaultGraceIterations
	DefaultMonitorInterval = time.Duration(0)
)

// DefaultTitleKeywords must all appear in an application window title.
var DefaultTitleKeywords = monitor.DefaultKeywords

// AppConfig holds the application configuration.
type AppConfig struct {
	AppDataDir      string        `mapstructure:"app_data_dir" json:"app_data_dir"`
	LogDir          string        `mapstructure:"log_dir" json:"log_dir"`
	LogLevel        string        `mapstructure:"log_level" json:"log_level"`
	TargetPath      string        `mapstructure:"target_path" json:"target_path"`
	AppName         string        `mapstructure:"app_name" json:"app_name"`
	ConsoleTitle    string        `mapstructure:"console_title" json:"console_title"`
	TitleKeywords   []string      `mapstructure:"title_keywords" json:"title_keywords"`
	GraceInterval   time.Duration `mapstructure:"grace_interval" json:"grace_interval"`
	GraceIterations int           `mapstructure:"grace_iterations" json:"grace_iterations"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval" json:"monitor_interval"`

	// ReadErr is set when an existing config file could not be used and the
	// defaults were kept instead. The file is left untouched.
	ReadErr error `mapstructure:"-" json:"-"`
}

// Defaults returns the built-in configuration rooted at appDataDir.
func Defaults(appDataDir string) *AppConfig {
	return &AppConfig{
		AppDataDir:      appDataDir,
		LogDir:          filepath.Join(appDataDir, "logs"),
		LogLevel:        "info",
		TargetPath:      DefaultTargetPath(),
		AppName:         DefaultAppName,
		ConsoleTitle:    DefaultConsoleTitle,
		TitleKeywords:   append([]string(nil), DefaultTitleKeywords...),
		GraceInterval:   DefaultGraceInterval,
		GraceIterations: DefaultGraceIterations,
		MonitorInterval: DefaultMonitorInterval,
	}
}

// FallbackDir is the app data directory used when no user directory is known.
func FallbackDir() string {
	return filepath.Join(os.TempDir(), appDirName)
}

// Load loads the configuration from %APPDATA%\HindieConsoleSlayer\config.yaml.
// Creates the config file with defaults if it doesn't exist. Without APPDATA
// or a home directory it falls back to FallbackDir.
func Load() (*AppConfig, error) {
	appDataBase := os.Getenv("APPDATA")
	if appDataBase == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return LoadFrom(FallbackDir())
		}
		appDataBase = home
	}
	return LoadFrom(filepath.Join(appDataBase, appDirName))
}

// LoadFrom loads the configuration from appDataDir/config.yaml. Problems with
// the file are not fatal: the defaults are kept.
func LoadFrom(appDataDir string) (*AppConfig, error) {
	if appDataDir == "" {
		return nil, errors.New("app data dir is empty")
	}

	// Build defaults config (used if file read fails or doesn't exist)
	cfg := Defaults(appDataDir)

	if err := os.MkdirAll(appDataDir, 0755); err != nil {
		// Without a config dir, run on defaults
		return cfg, nil
	}

	configPath := filepath.Join(appDataDir, configFileName)

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	v.SetDefault("app_data_dir", cfg.AppDataDir)
	v.SetDefault("log_dir", cfg.LogDir)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("target_path", cfg.TargetPath)
	v.SetDefault("app_name", cfg.AppName)
	v.SetDefault("console_title", cfg.ConsoleTitle)
	v.SetDefault("title_keywords", cfg.TitleKeywords)
	v.SetDefault("grace_interval", cfg.GraceInterval.String())
	v.SetDefault("grace_iterations", cfg.GraceIterations)
	v.SetDefault("monitor_interval", cfg.MonitorInterval.String())

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// A broken file is the user's to fix; run on defaults meanwhile
			cfg.ReadErr = fmt.Errorf("read %s: %w", configPath, err)
			return cfg, nil
		}
		// First run: write the defaults out
		_ = v.WriteConfigAs(configPath)
	}

	// Slices are decoded element by element, so start from an empty one.
	cfg.TitleKeywords = nil
	_ = v.Unmarshal(cfg)
	cfg.normalize()

	if cfg.LogDir != "" {
		_ = os.MkdirAll(cfg.LogDir, 0755)
	}

	return cfg, nil
}

// normalize puts back defaults for values that cannot work.
func (c *AppConfig) normalize() {
	if c.TargetPath == "" {
		c.TargetPath = DefaultTargetPath()
	}
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.ConsoleTitle == "" {
		c.ConsoleTitle = DefaultConsoleTitle
	}
	if len(c.TitleKeywords) == 0 {
		c.TitleKeywords = append([]string(nil), DefaultTitleKeywords...)
	}
	if c.GraceInterval < 0 {
		c.GraceInterval = DefaultGraceInterval
	}
	if c.GraceIterations <= 0 {
		c.GraceIterations = DefaultGraceIterations
	}
	if c.MonitorInterval < 0 {
		c.MonitorInterval = DefaultMonitorInterval
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.AppDataDir, "logs")
	}
}

// Save writes the current configuration back to the YAML file.
func (c *AppConfig) Save() error {
	if c.AppDataDir == "" {
		return errors.New("app_data_dir is empty")
	}

	configPath := filepath.Join(c.AppDataDir, configFileName)
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	v.Set("app_data_dir", c.AppDataDir)
	v.Set("log_dir", c.LogDir)
	v.Set("log_level", c.LogLevel)
	v.Set("target_path", c.TargetPath)
	v.Set("app_name", c.AppName)
	v.Set("console_title", c.ConsoleTitle)
	v.Set("title_keywords", c.TitleKeywords)
	v.Set("grace_interval", c.GraceInterval.String())
	v.Set("grace_iterations", c.GraceIterations)
	v.Set("monitor_interval", c.MonitorInterval.String())

	return v.WriteConfigAs(configPath)
}

// IsDebug reports whether debug logging is requested.
func (c *AppConfig) IsDebug() bool {
	return c.LogLevel == "debug"
}
