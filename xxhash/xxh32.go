package xxhash

import (
	"github.com/hupe1980/hashkit/internal/bitops"
	"github.com/hupe1980/hashkit/internal/blockbuf"
)

const (
	prime32x1 uint32 = 2654435761
	prime32x2 uint32 = 2246822519
	prime32x3 uint32 = 3266489917
	prime32x4 uint32 = 668265263
	prime32x5 uint32 = 374761393
)

func round32(acc, input uint32) uint32 {
	acc += input * prime32x2
	acc = bitops.RotateLeft32(acc, 13)
	return acc * prime32x1
}

type state32 struct {
	v1, v2, v3, v4 uint32
}

func (s *state32) Blocks(p []byte) {
	v1, v2, v3, v4 := s.v1, s.v2, s.v3, s.v4
	for i := 0; i < len(p); i += 16 {
		v1 = round32(v1, bitops.Load32(p, i))
		v2 = round32(v2, bitops.Load32(p, i+4))
		v3 = round32(v3, bitops.Load32(p, i+8))
		v4 = round32(v4, bitops.Load32(p, i+12))
	}
	s.v1, s.v2, s.v3, s.v4 = v1, v2, v3, v4
}

// Digest32 implements hash.Hash32 for XXH32.
type Digest32 struct {
	seed uint32
	s    state32
	buf  blockbuf.Buffer
}

// New32 returns an XXH32 hasher with the given seed.
func New32(seed uint32) *Digest32 {
	d := &Digest32{seed: seed}
	d.buf.Init(16)
	d.Reset()
	return d
}

// Size always returns 4 bytes.
func (d *Digest32) Size() int { return 4 }

// BlockSize always returns 16 bytes.
func (d *Digest32) BlockSize() int { return 16 }

// Seed returns the seed the hasher was created with.
func (d *Digest32) Seed() uint32 { return d.seed }

// Reset clears the Digest32's state so that it can be reused with the same seed.
func (d *Digest32) Reset() {
	d.s = state32{
		v1: d.seed + prime32x1 + prime32x2,
		v2: d.seed + prime32x2,
		v3: d.seed,
		v4: d.seed - prime32x1,
	}
	d.buf.Reset()
}

// Write adds more data to d. It always returns len(p), nil.
func (d *Digest32) Write(p []byte) (int, error) {
	d.buf.Write(&d.s, p)
	return len(p), nil
}

// Update is Write without the result.
func (d *Digest32) Update(p []byte) { d.buf.Write(&d.s, p) }

// Sum32 returns the current hash without changing the underlying state.
func (d *Digest32) Sum32() uint32 {
	var h uint32
	total := d.buf.Total()

	if total >= 16 {
		h = bitops.RotateLeft32(d.s.v1, 1) +
			bitops.RotateLeft32(d.s.v2, 7) +
			bitops.RotateLeft32(d.s.v3, 12) +
			bitops.RotateLeft32(d.s.v4, 18)
	} else {
		h = d.seed + prime32x5
	}

	h += uint32(total)

	tail := d.buf.Tail()
	i := 0
	for ; i+4 <= len(tail); i += 4 {
		h += bitops.Load32(tail, i) * prime32x3
		h = bitops.RotateLeft32(h, 17) * prime32x4
	}
	for ; i < len(tail); i++ {
		h += uint32(tail[i]) * prime32x5
		h = bitops.RotateLeft32(h, 11) * prime32x1
	}

	h ^= h >> 15
	h *= prime32x2
	h ^= h >> 13
	h *= prime32x3
	h ^= h >> 16

	return h
}

// Finalize returns a fresh 4-byte little-endian digest.
func (d *Digest32) Finalize() []byte {
	return bitops.PutUint32LE(make([]byte, 0, 4), d.Sum32())
}

// Sum appends the current hash to b and returns the resulting slice.
func (d *Digest32) Sum(b []byte) []byte {
	return bitops.PutUint32LE(b, d.Sum32())
}

// Checksum32 returns the XXH32 of data.
func Checksum32(data []byte, seed uint32) uint32 {
	d := New32(seed)
	d.Update(data)
	return d.Sum32()
}
