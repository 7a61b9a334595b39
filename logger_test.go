package hashkit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.WithAlgorithm(XXH64).WithName("a.bin").LogChecksum(ctx, "a.bin", 3, Digest{1, 2, 3, 4}, time.Millisecond, nil)
	out := buf.String()
	assert.Contains(t, out, `"algorithm":"xxh64"`)
	assert.Contains(t, out, `"digest":"01020304"`)
	assert.Contains(t, out, "checksum completed")

	buf.Reset()
	l.LogVerify(ctx, "b.bin", false, nil)
	assert.Contains(t, buf.String(), "digest mismatch")

	buf.Reset()
	l.WithCount(2).LogBatch(ctx, 2, 1, 0)
	assert.Contains(t, buf.String(), "batch completed with failures")

	buf.Reset()
	l.LogLedger(ctx, "put", "c.bin", errors.New("conflict"))
	assert.Contains(t, buf.String(), "ledger put failed")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogVerify(context.Background(), "x", true, nil)
}
