// Package manifest stores the expected digests of a set of blobs.
//
// A manifest names the algorithm and seed once and lists every blob with its
// size and digest. It is encoded through the codec package and can be kept
// either as a single blob (Save/Load) or as numbered generations with a
// CURRENT pointer (Store).
package manifest
