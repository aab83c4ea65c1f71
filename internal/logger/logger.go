package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/onehabit/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the default level ("debug", "info", "warn", "error").
	// Empty means warn, or debug when Debug is set.
	Level string
	JSON  bool
	// MaxSizeMB is the rotation threshold of the log file; 0 uses 10.
	MaxSizeMB int
}

// Init initializes the global logger, writing to <ConfigDir>/logs/onehabit.log
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    maxSize, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level, err := ParseLevel(cfg.Level, cfg.Debug)
	if err != nil {
		return err
	}

	// stderr is only mirrored in debug mode
	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = newLogger(writer, level, cfg)
	return nil
}

// InitWriter points the global logger at w. Used by tests and one-shot tools.
func InitWriter(w io.Writer, cfg Config) error {
	level, err := ParseLevel(cfg.Level, cfg.Debug)
	if err != nil {
		return err
	}
	Logger = newLogger(w, level, cfg)
	return nil
}

func newLogger(w io.Writer, level log.Level, cfg Config) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if cfg.JSON {
		l.SetFormatter(log.JSONFormatter)
	}
	return l
}

// ParseLevel maps a level name to a log level
func ParseLevel(name string, debug bool) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		if debug {
			return log.DebugLevel, nil
		}
		return log.WarnLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs a fatal error and exits
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
