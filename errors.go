package hashkit

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm is returned for an Algorithm value or name that is not supported.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnseeded is returned when a non-zero seed is given to an algorithm without a seed.
	ErrUnseeded = errors.New("algorithm does not take a seed")

	// ErrInvalidDigest is returned for digests of an unexpected length or encoding.
	ErrInvalidDigest = errors.New("invalid digest")

	// ErrMismatch is matched by every *ErrDigestMismatch.
	ErrMismatch = errors.New("digest mismatch")
)

// ErrAlgorithm reports an algorithm name that could not be resolved.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrAlgorithm struct {
	Name  string
	cause error
}

func (e *ErrAlgorithm) Error() string {
	return fmt.Sprintf("algorithm %q: %v", e.Name, e.cause)
}

func (e *ErrAlgorithm) Unwrap() error { return e.cause }

// ErrSeedOutOfRange indicates a seed wider than the algorithm accepts.
type ErrSeedOutOfRange struct {
	Algorithm Algorithm
	Seed      uint64
	Bits      int
}

func (e *ErrSeedOutOfRange) Error() string {
	return fmt.Sprintf("seed %d out of range for %s (%d-bit seed)", e.Seed, e.Algorithm, e.Bits)
}

// ErrDigestMismatch reports a digest that differs from the expected value.
type ErrDigestMismatch struct {
	Name      string
	Algorithm Algorithm
	Expected  Digest
	Actual    Digest
}

func (e *ErrDigestMismatch) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s digest mismatch: expected %s, got %s", e.Algorithm, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: %s digest mismatch: expected %s, got %s", e.Name, e.Algorithm, e.Expected, e.Actual)
}

// Is reports whether target is ErrMismatch.
func (e *ErrDigestMismatch) Is(target error) bool { return target == ErrMismatch }

func checkSeed(alg Algorithm, seed uint64) error {
	bits := alg.SeedBits()
	switch {
	case bits == 0 && seed != 0:
		return fmt.Errorf("%s: %w", alg, ErrUnseeded)
	case bits > 0 && bits < 64 && seed>>bits != 0:
		return &ErrSeedOutOfRange{Algorithm: alg, Seed: seed, Bits: bits}
	}
	return nil
}
