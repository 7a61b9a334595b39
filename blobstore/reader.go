package blobstore

import (
	"context"
	"errors"
	"io"
)

// DefaultChunkSize is the range length used by NewReader when chunkSize <= 0.
const DefaultChunkSize = 4 << 20

// Reader streams a Blob front to back through successive ReadRange calls.
// Each range is at most chunkSize bytes, so remote stores issue bounded GETs.
type Reader struct {
	ctx       context.Context
	blob      Blob
	chunkSize int64
	off       int64
	cur       io.ReadCloser
	curStart  int64
	onChunk   func(ctx context.Context, n int64) error
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithChunkHook calls fn with the length of every range before it is
// requested. An error from fn aborts the read. This is where IO throttling
// plugs in.
func WithChunkHook(fn func(ctx context.Context, n int64) error) ReaderOption {
	return func(r *Reader) {
		r.onChunk = fn
	}
}

// NewReader returns a sequential reader over blob.
func NewReader(ctx context.Context, blob Blob, chunkSize int64, optFns ...ReaderOption) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	r := &Reader{ctx: ctx, blob: blob, chunkSize: chunkSize}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	for {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}

		if r.cur == nil {
			size := r.blob.Size()
			if r.off >= size {
				return 0, io.EOF
			}
			n := min(r.chunkSize, size-r.off)
			if r.onChunk != nil {
				if err := r.onChunk(r.ctx, n); err != nil {
					return 0, err
				}
			}
			rc, err := r.blob.ReadRange(r.ctx, r.off, n)
			if err != nil {
				return 0, err
			}
			r.cur = rc
			r.curStart = r.off
		}

		n, err := r.cur.Read(p)
		r.off += int64(n)
		if errors.Is(err, io.EOF) {
			_ = r.cur.Close()
			r.cur = nil
			if r.off == r.curStart {
				// The store returned an empty range before the blob's end.
				return 0, io.ErrUnexpectedEOF
			}
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Close releases the current range, if any. It does not close the blob.
func (r *Reader) Close() error {
	if r.cur == nil {
		return nil
	}
	err := r.cur.Close()
	r.cur = nil
	return err
}
