package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the name of the rotating log file inside the log directory.
const LogFileName = "hindie-console-slayer.log"

// Log is the global logger instance. It discards everything until Init is called.
var Log = zerolog.Nop()

var fileWriter *lumberjack.Logger

// Init initializes the global logger. It writes to:
// - A rotating file at logDir/hindie-console-slayer.log
// - Console with pretty colored output when debug is true
//
// Every line carries a per-run id. Creates logDir if it does not exist.
func Init(logDir string, debug bool) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	writers := []io.Writer{fileWriter}
	level := zerolog.InfoLevel
	if debug {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false})
		level = zerolog.DebugLevel
	}

	multi := zerolog.MultiLevelWriter(writers...)
	Log = zerolog.New(multi).Level(level).With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
	return nil
}

// Close flushes and closes the log file, if Init opened one.
func Close() error {
	if fileWriter == nil {
		return nil
	}
	return fileWriter.Close()
}
