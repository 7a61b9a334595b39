// Package murmur3 implements Austin Appleby's MurmurHash3 in its three
// reference variants:
//
//   - New32: MurmurHash3_x86_32, 4-byte blocks, 32-bit digest
//   - New128x86: MurmurHash3_x86_128, 16-byte blocks, four 32-bit lanes
//   - New128: MurmurHash3_x64_128, 16-byte blocks, two 64-bit lanes
//
// Every hasher satisfies hash.Hash and is fed through a shared block buffer,
// so splitting the input across any number of writes yields the same digest
// as a single write. Digests are the little-endian bytes of each lane in
// order, which matches the canonical test vectors.
//
// Sum and Finalize do not modify the hasher. Writing after Sum continues the
// same stream.
//
// A hasher is not safe for concurrent use.
package murmur3
