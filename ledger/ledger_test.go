package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashkit"
)

func entry(t *testing.T, name, content string) Entry {
	t.Helper()
	d, err := hashkit.Sum(hashkit.XXH64, []byte(content))
	require.NoError(t, err)
	return Entry{Name: name, Algorithm: hashkit.XXH64, Digest: d, Size: int64(len(content))}
}

func TestMemory_PutGet(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	_, err := l.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	e := entry(t, "a", "hello")
	require.NoError(t, l.Put(ctx, e))

	got, err := l.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Matches(e))
	assert.False(t, got.RecordedAt.IsZero())

	// Re-recording the same digest is a no-op.
	require.NoError(t, l.Put(ctx, e))
	assert.Equal(t, 1, l.Len())
}

func TestMemory_Conflict(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()
	require.NoError(t, l.Put(ctx, entry(t, "a", "hello")))

	err := l.Put(ctx, entry(t, "a", "world"))
	assert.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "a", conflict.Existing.Name)

	// Same bytes under another algorithm also conflict.
	other := entry(t, "a", "hello")
	other.Seed = 1
	assert.ErrorIs(t, l.Put(ctx, other), ErrConflict)
}

func TestMemory_CopiesDigest(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()
	e := entry(t, "a", "hello")
	want := append(hashkit.Digest(nil), e.Digest...)

	require.NoError(t, l.Put(ctx, e))
	e.Digest[0] ^= 0xff

	got, err := l.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, want, got.Digest)
}

func TestMemory_ConcurrentFirstWriterWins(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		conflicts int
	)
	contents := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, c := range contents {
		e := entry(t, "shared", c)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Put(ctx, e); errors.Is(err, ErrConflict) {
				mu.Lock()
				conflicts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(contents)-1, conflicts)
	assert.Equal(t, []string{"shared"}, l.Names())
}
