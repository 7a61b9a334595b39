package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrModified is returned when a remote blob changes while it is being read.
var ErrModified = errors.New("blobstore: blob modified during read")

// BlobStore is an abstraction over the places inputs to hash live.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all blob names with the given prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes at off, with io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange streams up to length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that support memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll opens name and returns its full contents.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	if m, ok := blob.(Mappable); ok {
		b, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), b...), nil
	}

	buf := make([]byte, blob.Size())
	if len(buf) == 0 {
		return buf, nil
	}
	n, err := blob.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, err
	}
	return buf[:n], nil
}
