// Package testutil provides testing utilities for hashkit.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic payload generation and the reference inputs
// used by the published hash test vectors.
//
// # Random Payloads
//
//	rng := testutil.NewRNG(42)
//	data := rng.Bytes(1000)
//
// # Reference Inputs
//
//	buf := testutil.SanityBuffer(101) // xxHash "sanity buffer"
//
// # Chunked Writes
//
//	testutil.WriteChunked(h, data, rng) // random split points
package testutil
