package log

import (
	"context"
	"log/slog"
	"os"
)

// Custom levels between Info and Warn for run outcomes. OK marks a
// completed sheet sync, Skip a sheet that was intentionally not synced.
const (
	LevelOK   = slog.Level(1)
	LevelSkip = slog.Level(2)
)

// Logger wraps slog.Logger with the sync run's outcome levels.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level   slog.Level
	Handler slog.Handler
}

// DefaultConfig returns the console logger the batch binary uses.
func DefaultConfig() Config {
	return Config{
		Level:   slog.LevelInfo,
		Handler: NewConsoleHandler(os.Stdout, slog.LevelInfo),
	}
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = NewConsoleHandler(os.Stdout, config.Level)
	}
	return &Logger{Logger: slog.New(handler)}
}

// With returns a new logger with the given attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// OK logs a completed sheet sync.
func (l *Logger) OK(msg string, args ...any) {
	l.Log(context.Background(), LevelOK, msg, args...)
}

// Skip logs a sheet that was deliberately left alone.
func (l *Logger) Skip(msg string, args ...any) {
	l.Log(context.Background(), LevelSkip, msg, args...)
}
