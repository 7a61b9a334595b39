package testutil

import (
	"io"
	"math/rand"
	"sync"
)

// PayloadLengths are the input sizes used by the benchmark harness.
var PayloadLengths = []int{4, 11, 25, 100, 1000, 10000}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.Fill(b)
	return b
}

// Fill overwrites dst with pseudo-random bytes.
// Locks only once per call.
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Payloads returns one random payload per length.
func (r *RNG) Payloads(lengths []int) [][]byte {
	out := make([][]byte, len(lengths))
	for i, n := range lengths {
		out[i] = r.Bytes(n)
	}
	return out
}

// Splits returns random cut points that partition n bytes into chunks of
// at most maxChunk bytes. The result always ends with n.
func (r *RNG) Splits(n, maxChunk int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cuts []int
	for pos := 0; pos < n; {
		pos += r.rand.Intn(maxChunk) + 1
		if pos > n {
			pos = n
		}
		cuts = append(cuts, pos)
	}
	return cuts
}

// WriteChunked writes data to w split at random points.
func WriteChunked(w io.Writer, data []byte, r *RNG) {
	prev := 0
	for _, cut := range r.Splits(len(data), 64) {
		_, _ = w.Write(data[prev:cut])
		prev = cut
	}
}

// SanityBuffer returns the first n bytes of the xxHash reference input:
// each byte is the top byte of a generator that is squared after every step.
func SanityBuffer(n int) []byte {
	const prime32 uint32 = 2654435761

	buf := make([]byte, n)
	gen := prime32
	for i := range buf {
		buf[i] = byte(gen >> 24)
		gen *= gen
	}
	return buf
}

// Repeat returns s repeated to exactly n bytes.
func Repeat(s string, n int) []byte {
	if len(s) == 0 {
		return make([]byte, n)
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		out = append(out, s...)
	}
	return out[:n]
}
