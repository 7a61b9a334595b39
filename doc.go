// Package hashkit provides fast non-cryptographic hash functions behind one
// streaming contract.
//
// Every algorithm is an Engine: a hash.Hash that also offers Update and a
// non-destructive Finalize. Input may arrive in chunks of any size; the
// digest only depends on the concatenated bytes.
//
// # Quick Start
//
//	d, _ := hashkit.Sum(hashkit.XXH64, data)
//	fmt.Println(d.Hex())
//
// Streaming with a seed:
//
//	h, _ := hashkit.New(hashkit.Murmur3_128x64, hashkit.WithSeed(42))
//	h.Update(chunk1)
//	h.Update(chunk2)
//	digest := hashkit.Digest(h.Finalize())
//
// From a reader:
//
//	d, n, _ := hashkit.SumReader(hashkit.Adler32, f)
//
// # Algorithms
//
//	Algorithm        Digest  Block  Seed
//	murmur3-32       4       4      32-bit
//	murmur3-128x86   16      16     32-bit
//	murmur3-128x64   16      16     64-bit
//	xxh32            4       16     32-bit
//	xxh64            8       32     64-bit
//	fnv1-32/fnv1a-32 4       1      -
//	fnv1-64/fnv1a-64 8       1      -
//	adler32          4       1      -
//	crc32c           4       1      -
//
// The algorithm packages (murmur3, xxhash, fnv, adler32) can also be used
// directly and return concrete types with Sum32/Sum64/Sum128 accessors.
//
// # Digests
//
// A Digest is the little-endian encoding of each accumulator word in order.
// Hex renders those bytes as uppercase hexadecimal, and Uint32/Uint64 read
// them back as integers.
//
// # Services
//
// The checksum package hashes blobs from a blobstore in parallel, verifies
// manifests and records digests in a ledger. cmd/hashkit exposes the same
// operations on the command line.
package hashkit
