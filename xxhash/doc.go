// Package xxhash implements the 32-bit and 64-bit variants of Yann Collet's
// xxHash (XXH32, XXH64) as streaming hash.Hash values.
//
// XXH32 consumes 16-byte stripes through four 32-bit accumulators, XXH64
// consumes 32-byte stripes through four 64-bit accumulators. Inputs shorter
// than one stripe skip the accumulators and start from seed+prime5.
// Digests are the little-endian bytes of the result, so Digest.Uint32 and
// Digest.Uint64 in the root package recover the reference integers.
package xxhash
