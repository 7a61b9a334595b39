// Package bitops provides the integer primitives shared by the hash engines:
// fixed-width rotations and little-endian loads from byte slices.
//
// Loads never reinterpret memory. Every read is an explicit little-endian
// decode of consecutive bytes, so results do not depend on the host byte
// order or on the alignment of the input slice.
//
// Two flavors of load exist:
//
//	v, err := bitops.Uint64LE(buf, off) // checked, returns ErrOutOfRange
//	v := bitops.Load64(buf, off)         // hot path, panics with *OutOfRangeError
//
// The hot-path form is used by the block mixers, whose offsets are derived
// from the block buffer and are in range by construction. A panic there is a
// programming error, not an input error.
package bitops
