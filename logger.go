package voxbvh

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with index-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs a bulk build.
func (l *Logger) LogBuild(items int, d time.Duration) {
	l.Info("bulk build completed",
		"items", items,
		"duration", d,
	)
}

// LogRebalance logs a completed rebalance.
func (l *Logger) LogRebalance(items int, d time.Duration, background bool) {
	l.Info("rebalance completed",
		"items", items,
		"duration", d,
		"background", background,
	)
}

// LogRebalanceSkipped logs an automatic rebalance that could not be scheduled.
func (l *Logger) LogRebalanceSkipped(ops int, reason string) {
	l.Debug("auto rebalance deferred",
		"ops_since_rebalance", ops,
		"reason", reason,
	)
}

// LogRemoveMiss logs a removal that found no entry. This is expected for
// unknown items but also happens when an item's box was changed without
// calling Update.
func (l *Logger) LogRemoveMiss(box any) {
	l.Debug("remove found no entry",
		"box", box,
	)
}

// LogOptionClamped logs a configuration value replaced by its default.
func (l *Logger) LogOptionClamped(name string, given, used int) {
	l.Warn("option out of range, using default",
		"option", name,
		"given", given,
		"used", used,
	)
}

// LogClose logs index disposal.
func (l *Logger) LogClose(items int) {
	l.Debug("index closed",
		"items", items,
	)
}
