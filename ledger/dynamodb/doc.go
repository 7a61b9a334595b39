// Package dynamodb implements ledger.Ledger on Amazon DynamoDB.
//
// DynamoDB's conditional writes give the ledger its write-once semantics
// across machines: the first digest stored for a name wins and any different
// digest is rejected with ledger.ErrConflict.
//
//	l, err := dynamodb.New(ctx, "hashkit-ledger")
//	svc := checksum.New(store, checksum.WithLedger(l))
package dynamodb
