package colq

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/colq/generator"
	"github.com/hupe1980/colq/query"
)

// Logger wraps slog.Logger with colq-specific context.
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

// WithDir adds a table directory field to the logger.
func (l *Logger) WithDir(dir string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dir", dir),
	}
}

// LogOpen logs opening a table.
func (l *Logger) LogOpen(ctx context.Context, dir string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open table failed",
			"dir", dir,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "table opened",
			"dir", dir,
			"rows", rows,
		)
	}
}

// LogQuery logs a query evaluation.
func (l *Logger) LogQuery(ctx context.Context, name string, mode query.Mode, result int64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"query", name,
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"query", name,
			"mode", mode.String(),
			"result", result,
			"elapsed", elapsed,
		)
	}
}

// LogGenerate logs a table generation.
func (l *Logger) LogGenerate(ctx context.Context, dir string, results []generator.Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generate table failed",
			"dir", dir,
			"error", err,
		)
		return
	}
	for _, r := range results {
		l.InfoContext(ctx, "column ready",
			"kind", r.Kind.String(),
			"rows", r.Rows,
			"raw_skipped", r.RawSkipped,
			"compressed_bytes", r.CompressedBytes,
			"duration", r.Duration,
		)
	}
}
