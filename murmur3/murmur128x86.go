package murmur3

import (
	"github.com/hupe1980/hashkit/internal/bitops"
	"github.com/hupe1980/hashkit/internal/blockbuf"
)

const (
	c1x86 uint32 = 0x239b961b
	c2x86 uint32 = 0xab0e9789
	c3x86 uint32 = 0x38b34ae5
	c4x86 uint32 = 0xa1e38b93
)

// Size128 is the digest length of both 128-bit variants in bytes.
const Size128 = 16

type state128x86 struct {
	h1, h2, h3, h4 uint32
}

func mixK1x86(k uint32) uint32 {
	k *= c1x86
	k = bitops.RotateLeft32(k, 15)
	return k * c2x86
}

func mixK2x86(k uint32) uint32 {
	k *= c2x86
	k = bitops.RotateLeft32(k, 16)
	return k * c3x86
}

func mixK3x86(k uint32) uint32 {
	k *= c3x86
	k = bitops.RotateLeft32(k, 17)
	return k * c4x86
}

func mixK4x86(k uint32) uint32 {
	k *= c4x86
	k = bitops.RotateLeft32(k, 18)
	return k * c1x86
}

func (s *state128x86) Blocks(p []byte) {
	h1, h2, h3, h4 := s.h1, s.h2, s.h3, s.h4

	for i := 0; i < len(p); i += 16 {
		k1 := bitops.Load32(p, i)
		k2 := bitops.Load32(p, i+4)
		k3 := bitops.Load32(p, i+8)
		k4 := bitops.Load32(p, i+12)

		h1 ^= mixK1x86(k1)
		h1 = bitops.RotateLeft32(h1, 19)
		h1 += h2
		h1 = h1*5 + 0x561ccd1b

		h2 ^= mixK2x86(k2)
		h2 = bitops.RotateLeft32(h2, 17)
		h2 += h3
		h2 = h2*5 + 0x0bcaa747

		h3 ^= mixK3x86(k3)
		h3 = bitops.RotateLeft32(h3, 15)
		h3 += h4
		h3 = h3*5 + 0x96cd1c35

		h4 ^= mixK4x86(k4)
		h4 = bitops.RotateLeft32(h4, 13)
		h4 += h1
		h4 = h4*5 + 0x32ac3b17
	}

	s.h1, s.h2, s.h3, s.h4 = h1, h2, h3, h4
}

// Hash128x86 is a streaming MurmurHash3_x86_128.
type Hash128x86 struct {
	seed uint32
	s    state128x86
	buf  blockbuf.Buffer
}

// New128x86 returns a MurmurHash3_x86_128 hasher with the given seed.
func New128x86(seed uint32) *Hash128x86 {
	d := &Hash128x86{seed: seed}
	d.buf.Init(16)
	d.Reset()
	return d
}

// Size returns the digest length in bytes.
func (d *Hash128x86) Size() int { return Size128 }

// BlockSize returns the block size the hash consumes.
func (d *Hash128x86) BlockSize() int { return 16 }

// Seed returns the seed the hasher was created with.
func (d *Hash128x86) Seed() uint32 { return d.seed }

// Reset restores the initial state.
func (d *Hash128x86) Reset() {
	d.s = state128x86{h1: d.seed, h2: d.seed, h3: d.seed, h4: d.seed}
	d.buf.Reset()
}

// Write adds p to the running hash. It never returns an error.
func (d *Hash128x86) Write(p []byte) (int, error) {
	d.buf.Write(&d.s, p)
	return len(p), nil
}

// Update is Write without the result.
func (d *Hash128x86) Update(p []byte) { d.buf.Write(&d.s, p) }

// Sum128 returns the four lanes in digest order.
func (d *Hash128x86) Sum128() (h1, h2, h3, h4 uint32) {
	h1, h2, h3, h4 = d.s.h1, d.s.h2, d.s.h3, d.s.h4

	// A zero key mixes to zero, so padding the tail is equivalent to
	// mixing only the lanes that received bytes.
	var tail [16]byte
	if n := copy(tail[:], d.buf.Tail()); n > 0 {
		h4 ^= mixK4x86(bitops.Load32(tail[:], 12))
		h3 ^= mixK3x86(bitops.Load32(tail[:], 8))
		h2 ^= mixK2x86(bitops.Load32(tail[:], 4))
		h1 ^= mixK1x86(bitops.Load32(tail[:], 0))
	}

	n := uint32(d.buf.Total())
	h1 ^= n
	h2 ^= n
	h3 ^= n
	h4 ^= n

	h1 += h2 + h3 + h4
	h2 += h1
	h3 += h1
	h4 += h1

	h1 = fmix32(h1)
	h2 = fmix32(h2)
	h3 = fmix32(h3)
	h4 = fmix32(h4)

	h1 += h2 + h3 + h4
	h2 += h1
	h3 += h1
	h4 += h1

	return h1, h2, h3, h4
}

// Finalize returns a fresh digest without changing the state.
func (d *Hash128x86) Finalize() []byte {
	return d.Sum(make([]byte, 0, Size128))
}

// Sum appends the little-endian digest to b.
func (d *Hash128x86) Sum(b []byte) []byte {
	h1, h2, h3, h4 := d.Sum128()
	b = bitops.PutUint32LE(b, h1)
	b = bitops.PutUint32LE(b, h2)
	b = bitops.PutUint32LE(b, h3)
	return bitops.PutUint32LE(b, h4)
}
