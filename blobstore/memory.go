package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// ErrInvalidRange is returned for negative offsets or lengths.
var ErrInvalidRange = errors.New("blobstore: invalid range")

// MemoryStore keeps blobs in a map. It backs tests and small batches.
//
// Stored slices are never mutated after Put, so open blobs share them and
// keep seeing the contents they were opened with.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, ErrNotFound)
	}
	return memoryBlob(data), nil
}

func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	owned := bytes.Clone(data)
	if owned == nil {
		owned = []byte{}
	}

	m.mu.Lock()
	m.blobs[name] = owned
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	m.mu.RUnlock()

	slices.Sort(names)
	return names, nil
}

// memoryBlob is an immutable view of a stored slice.
type memoryBlob []byte

func (b memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidRange
	}
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || length < 0 {
		return nil, ErrInvalidRange
	}
	size := int64(len(b))
	off = min(off, size)
	end := min(off+length, size)
	if end < off {
		end = size
	}
	return io.NopCloser(bytes.NewReader(b[off:end])), nil
}

func (b memoryBlob) Size() int64 { return int64(len(b)) }

func (b memoryBlob) Close() error { return nil }

// Bytes returns the shared slice; callers must not modify it.
func (b memoryBlob) Bytes() ([]byte, error) { return b, nil }
