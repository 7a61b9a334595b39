package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Chunks(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, store.Put(ctx, "blob", data))

	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)

	var chunks []int64
	r := NewReader(ctx, blob, 300, WithChunkHook(func(_ context.Context, n int64) error {
		chunks = append(chunks, n)
		return nil
	}))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, data, got)
	assert.Equal(t, []int64{300, 300, 300, 100}, chunks)
}

func TestReader_HookError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "blob", []byte("abc")))
	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)

	boom := errors.New("throttled")
	r := NewReader(ctx, blob, 1, WithChunkHook(func(context.Context, int64) error { return boom }))
	_, err = io.ReadAll(r)
	assert.ErrorIs(t, err, boom)
}

func TestReader_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "blob", []byte("abc")))
	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)

	cancel()
	_, err = io.ReadAll(NewReader(ctx, blob, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
