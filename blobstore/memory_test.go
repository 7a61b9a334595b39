package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "x/a", data))
	require.NoError(t, store.Put(ctx, "x/b", []byte("b")))
	require.NoError(t, store.Put(ctx, "y", []byte("y")))

	// Mutating the caller's slice must not affect the stored blob.
	data[0] = 'X'

	blob, err := store.Open(ctx, "x/a")
	require.NoError(t, err)
	assert.Equal(t, int64(10), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "0123", string(buf))

	n, err = blob.ReadAt(ctx, buf, 8)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	rc, err := blob.ReadRange(ctx, 5, 100)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "56789", string(got))

	names, err := store.List(ctx, "x/")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/a", "x/b"}, names)

	require.NoError(t, store.Delete(ctx, "y"))
	_, err = store.Open(ctx, "y")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a", []byte("abc")))
	require.NoError(t, store.Put(ctx, "empty", nil))

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got, err = ReadAll(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadAll(ctx, store, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
