// Package blockbuf implements the partial-block buffer shared by every
// block-oriented hash engine.
//
// A Buffer accepts writes of any length and hands whole blocks to a Mixer.
// Bytes that do not fill a block are held until the next write or until the
// engine drains them with Tail during finalization. The digest therefore does
// not depend on how the input was split across writes.
package blockbuf

import "fmt"

// MaxBlockSize is the largest block any engine uses (xxHash64 stripes).
const MaxBlockSize = 32

// Mixer consumes whole blocks. len(p) is always a non-zero multiple of the
// buffer's block size.
type Mixer interface {
	Blocks(p []byte)
}

// Buffer holds at most size-1 pending bytes between writes.
type Buffer struct {
	size  int
	n     int
	total uint64
	mem   [MaxBlockSize]byte
}

// New returns a Buffer for the given block size.
// It panics if size is outside [2, MaxBlockSize].
func New(size int) Buffer {
	var b Buffer
	b.Init(size)
	return b
}

// Init prepares an embedded Buffer in place.
func (b *Buffer) Init(size int) {
	if size < 2 || size > MaxBlockSize {
		panic(fmt.Sprintf("blockbuf: block size %d out of range [2, %d]", size, MaxBlockSize))
	}
	b.size = size
	b.Reset()
}

// Write feeds p through m. Full blocks are mixed straight from p; only the
// ragged edges are copied.
func (b *Buffer) Write(m Mixer, p []byte) {
	if len(p) == 0 {
		return
	}
	b.total += uint64(len(p))

	if b.n+len(p) < b.size {
		b.n += copy(b.mem[b.n:b.size], p)
		return
	}

	if b.n > 0 {
		c := copy(b.mem[b.n:b.size], p)
		m.Blocks(b.mem[:b.size])
		p = p[c:]
		b.n = 0
	}

	if full := len(p) - len(p)%b.size; full > 0 {
		m.Blocks(p[:full])
		p = p[full:]
	}

	b.n = copy(b.mem[:], p)
}

// Tail returns the pending bytes. The slice aliases internal storage and is
// valid until the next Write or Reset.
func (b *Buffer) Tail() []byte { return b.mem[:b.n] }

// Len is the number of pending bytes.
func (b *Buffer) Len() int { return b.n }

// Total is the number of bytes written since the last Reset.
func (b *Buffer) Total() uint64 { return b.total }

// BlockSize reports the configured block size.
func (b *Buffer) BlockSize() int { return b.size }

// Reset drops pending bytes and the running length.
func (b *Buffer) Reset() {
	b.n = 0
	b.total = 0
	clear(b.mem[:])
}
