// Package ledger keeps a write-once record of blob digests.
//
// The first digest recorded for a name wins; later runs either confirm it or
// surface a conflict. Memory serves tests and single-process use, and the
// dynamodb subpackage shares a ledger between machines.
package ledger
