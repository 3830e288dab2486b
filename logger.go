package tagdict

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tagdict-specific helpers.
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

// LogAdd logs a registration.
func (l *Logger) LogAdd(ref Ref, tags int, err error) {
	if err != nil {
		l.Error("add failed",
			"ref", uint64(ref),
			"tags", tags,
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"ref", uint64(ref),
			"tags", tags,
		)
	}
}

// LogQuery logs a tag query.
func (l *Logger) LogQuery(tags []string, matches int) {
	l.Debug("query completed",
		"tags", tags,
		"matches", matches,
	)
}

// LogMutate logs a tag-set mutation.
func (l *Logger) LogMutate(op string, ref Ref, err error) {
	if err != nil {
		l.Error("mutation failed",
			"op", op,
			"ref", uint64(ref),
			"error", err,
		)
	} else {
		l.Debug("mutation completed",
			"op", op,
			"ref", uint64(ref),
		)
	}
}

// LogRemove logs a deregistration.
func (l *Logger) LogRemove(ref Ref, err error) {
	if err != nil {
		l.Error("remove failed",
			"ref", uint64(ref),
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"ref", uint64(ref),
		)
	}
}

// LogMerge logs a bulk merge.
func (l *Logger) LogMerge(added, updated int, err error) {
	if err != nil {
		l.Error("merge failed",
			"added", added,
			"updated", updated,
			"error", err,
		)
	} else {
		l.Info("merge completed",
			"added", added,
			"updated", updated,
		)
	}
}
