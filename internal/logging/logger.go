// Package logging wraps log/slog behind a small Logger interface and opens
// the debug log file the editor writes to.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that control the debug log.
const (
	EnvDebugFile  = "TEDIT_DEBUG_FILE"
	EnvDebugLevel = "TEDIT_DEBUG_LEVEL"
)

// Logger is the logging interface passed to the components that need one.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	Output  io.Writer
	AddTime bool
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger creates a text logger with the given configuration.
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	if !config.AddTime {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
	}

	return &slogLogger{logger: slog.New(slog.NewTextHandler(config.Output, opts))}
}

// NewDisabledLogger creates a logger that discards all output (useful for tests).
func NewDisabledLogger() Logger {
	return NewLogger(Config{Level: slog.Level(1000), Output: io.Discard})
}

// ParseLevel maps a level name to a slog level. Unknown names map to error.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// DebugFilePath returns the log file path from TEDIT_DEBUG_FILE, or a file in
// the temp directory.
func DebugFilePath(defaultFileName string) string {
	if p := os.Getenv(EnvDebugFile); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), defaultFileName)
}

// NewFileLoggerFromEnv creates a file logger. The screen belongs to the UI, so
// log output never goes to stdout or stderr. The returned closer releases the
// log file.
func NewFileLoggerFromEnv(defaultFileName string, override *slog.Level) (Logger, io.Closer) {
	level := ParseLevel(os.Getenv(EnvDebugLevel))
	if override != nil {
		level = *override
	}

	file, err := os.OpenFile(DebugFilePath(defaultFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return NewLogger(Config{Level: level, Output: io.Discard}), io.NopCloser(nil)
	}
	return NewLogger(Config{Level: level, Output: file, AddTime: true}), file
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a logger with additional attributes.
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}
