package keycluster

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithConfig adds the identifying fields of cfg to the logger.
func (l *Logger) WithConfig(cfg Config) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"mode", string(cfg.Type),
			"function", cfg.Function,
			"column", cfg.Column,
		),
	}
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, values, clusters int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"values", values,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "clustering completed",
			"values", values,
			"clusters", clusters,
			"duration", duration,
		)
	}
}

// LogBlocking logs the shape of a blocking index.
func (l *Logger) LogBlocking(ctx context.Context, blocks, largest, grams int) {
	l.DebugContext(ctx, "blocking index built",
		"blocks", blocks,
		"largest_block", largest,
		"grams", grams,
	)
}

// LogBudget logs the comparisons a run spent.
func (l *Logger) LogBudget(ctx context.Context, comparisons, remaining int64) {
	if remaining == 0 {
		l.WarnContext(ctx, "comparison budget exhausted",
			"comparisons", comparisons,
		)
		return
	}
	l.DebugContext(ctx, "comparisons done",
		"comparisons", comparisons,
		"remaining", remaining,
	)
}
