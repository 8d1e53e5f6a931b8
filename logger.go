package centroids

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with centroids-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogRunStart logs the start of a run.
func (l *Logger) LogRunStart(ctx context.Context, points int, delay time.Duration, iterations int) {
	l.InfoContext(ctx, "run started",
		"points", points,
		"delay", delay,
		"iterations", iterations,
	)
}

// LogPass logs a completed pass.
func (l *Logger) LogPass(ctx context.Context, iteration int, moved bool, reseeded int) {
	l.DebugContext(ctx, "pass completed",
		"iteration", iteration,
		"moved", moved,
		"reseeded", reseeded,
	)
}

// LogConverged logs a run that reached a pass without movement.
func (l *Logger) LogConverged(ctx context.Context, iterations int, elapsed time.Duration) {
	l.InfoContext(ctx, "run converged",
		"iterations", iterations,
		"elapsed", elapsed,
	)
}

// LogStopped logs a run that ended before convergence.
func (l *Logger) LogStopped(ctx context.Context, iterations int, err error) {
	l.WarnContext(ctx, "run stopped",
		"iterations", iterations,
		"reason", err,
	)
}
