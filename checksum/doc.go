// Package checksum hashes blobs from a blobstore.BlobStore.
//
// A Service streams each blob in fixed-size range reads through a fresh
// hashkit engine, optionally decompressing it first. Batches run in parallel
// under an errgroup limit and an optional resource.Controller, and repeated
// digests are flagged with a roaring-backed digestset.
//
//	svc, err := checksum.New(store,
//	    checksum.WithAlgorithm(hashkit.Murmur3_128x64),
//	    checksum.WithSeed(42),
//	    checksum.WithConcurrency(8),
//	)
//	results, err := svc.ComputeAll(ctx, names)
//
// Digests can be checked against a manifest (VerifyManifest) or recorded in
// a write-once ledger (Record, Check).
package checksum
