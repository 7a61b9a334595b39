// Package adler32 implements the Adler-32 checksum from RFC 1950.
//
// The two running sums are reduced modulo 65521 at most once every 5552
// bytes, the largest run for which s2 cannot overflow 32 bits. The digest is
// the little-endian encoding of s2<<16 | s1.
package adler32

import "github.com/hupe1980/hashkit/internal/bitops"

const (
	// Mod is the largest prime less than 65536.
	Mod = 65521
	// NMax is the largest n such that
	// 255 * n * (n+1) / 2 + (n+1) * (Mod-1) <= 2^32-1.
	NMax = 5552
)

// Size is the digest length in bytes.
const Size = 4

// Digest is a streaming Adler-32 checksum.
type Digest struct {
	h uint32
}

// New returns an Adler-32 hasher.
func New() *Digest { return &Digest{h: 1} }

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return Size }

// BlockSize returns the block size the hash consumes.
func (d *Digest) BlockSize() int { return 1 }

// Reset restores the initial state.
func (d *Digest) Reset() { d.h = 1 }

// Sum32 returns the current hash without changing the state.
func (d *Digest) Sum32() uint32 { return d.h }

// Update is Write without the result.
func (d *Digest) Update(p []byte) { d.h = update(d.h, p) }

// Write adds p to the running hash. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.h = update(d.h, p)
	return len(p), nil
}

// Sum appends the little-endian digest to b.
func (d *Digest) Sum(b []byte) []byte { return bitops.PutUint32LE(b, d.h) }

// Finalize returns a fresh digest without changing the state.
func (d *Digest) Finalize() []byte { return d.Sum(make([]byte, 0, Size)) }

func update(h uint32, p []byte) uint32 {
	s1, s2 := h&0xffff, h>>16
	for len(p) > 0 {
		var rest []byte
		if len(p) > NMax {
			p, rest = p[:NMax], p[NMax:]
		}
		for len(p) >= 4 {
			s1 += uint32(p[0])
			s2 += s1
			s1 += uint32(p[1])
			s2 += s1
			s1 += uint32(p[2])
			s2 += s1
			s1 += uint32(p[3])
			s2 += s1
			p = p[4:]
		}
		for _, c := range p {
			s1 += uint32(c)
			s2 += s1
		}
		s1 %= Mod
		s2 %= Mod
		p = rest
	}
	return s2<<16 | s1
}

// Checksum returns the Adler-32 of data.
func Checksum(data []byte) uint32 { return update(1, data) }
