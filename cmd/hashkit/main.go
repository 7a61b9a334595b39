// Command hashkit computes and verifies non-cryptographic digests of blobs
// in local directories, S3 or MinIO.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashkit:", err)
		os.Exit(2)
	}

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
