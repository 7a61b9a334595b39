package hashkit

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger is a slog.Logger with helpers that keep hashkit's field names
// consistent across packages.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON to stderr at level and above.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs logfmt-style text to stderr at level and above.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(alg Algorithm) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", alg.String()),
	}
}

// WithName adds a blob name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogChecksum logs a single checksum computation.
func (l *Logger) LogChecksum(ctx context.Context, name string, size int64, digest Digest, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checksum failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "checksum completed",
			"name", name,
			"bytes", size,
			"digest", digest.Hex(),
			"elapsed", elapsed,
		)
	}
}

// LogVerify logs a digest verification.
func (l *Logger) LogVerify(ctx context.Context, name string, ok bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "verify failed",
			"name", name,
			"error", err,
		)
	case !ok:
		l.WarnContext(ctx, "digest mismatch",
			"name", name,
		)
	default:
		l.DebugContext(ctx, "verify completed",
			"name", name,
		)
	}
}

// LogBatch logs a batch of checksum jobs.
func (l *Logger) LogBatch(ctx context.Context, count, failed, duplicates int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch completed",
			"count", count,
			"duplicates", duplicates,
		)
	}
}

// LogLedger logs a ledger record or lookup.
func (l *Logger) LogLedger(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ledger "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "ledger "+op+" completed",
			"name", name,
		)
	}
}
