package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned by reads on a closed Mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files too large to map on this platform.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for negative offsets or lengths.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)

// Advice is a read-pattern hint passed to the kernel.
type Advice int

const (
	AdviceNormal Advice = iota
	// AdviceSequential suits front-to-back hashing and enables aggressive readahead.
	AdviceSequential
	// AdviceWillNeed prefetches the whole mapping.
	AdviceWillNeed
)

// Mapping is a read-only memory-mapped file.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path into memory.
// The file is mapped as read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}

	data, unmap, err := mapFile(f, int(size))
	if err != nil {
		return nil, err
	}

	return &Mapping{data: data, unmap: unmap}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the mapped file contents, or nil once closed.
// The slice must not be used after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int64 {
	return int64(len(m.data))
}

// Advise passes a read-pattern hint for the whole mapping to the kernel.
func (m *Mapping) Advise(a Advice) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return advise(m.data, a)
}

// Slice returns up to length bytes starting at off without copying.
// A range past the end is clipped; off beyond the end yields an empty slice.
func (m *Mapping) Slice(off, length int64) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || length < 0 {
		return nil, ErrInvalidOffset
	}
	size := int64(len(m.data))
	if off >= size {
		return nil, nil
	}
	end := off + length
	if end > size || end < off {
		end = size
	}
	return m.data[off:end], nil
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
