package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/checksum"
	"github.com/hupe1980/hashkit/resource"
)

// app carries the resolved configuration to the subcommands.
type app struct {
	cfg Config
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "hashkit",
		Short:        "Compute and verify non-cryptographic digests",
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.cfg.Algorithm, "algorithm", "a", cfg.Algorithm, "hash algorithm (see 'hashkit list')")
	f.Uint64VarP(&a.cfg.Seed, "seed", "s", cfg.Seed, "seed for seeded algorithms")
	f.StringVar(&a.cfg.Store, "store", cfg.Store, "blob store: local, s3 or minio")
	f.StringVar(&a.cfg.Root, "root", cfg.Root, "root directory of the local store")
	f.StringVar(&a.cfg.Bucket, "bucket", cfg.Bucket, "bucket for s3 and minio stores")
	f.StringVar(&a.cfg.Prefix, "prefix", cfg.Prefix, "key prefix for s3 and minio stores")
	f.Int64Var(&a.cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "range read size in bytes")
	f.IntVarP(&a.cfg.Concurrency, "concurrency", "j", cfg.Concurrency, "parallel blobs (0 = GOMAXPROCS)")
	f.Int64Var(&a.cfg.IOLimit, "io-limit", cfg.IOLimit, "read throughput limit in bytes/s (0 = unlimited)")
	f.BoolVarP(&a.cfg.Decompress, "decompress", "z", cfg.Decompress, "hash the decompressed content of gzip, zstd and lz4 blobs")
	f.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(
		newListCmd(a),
		newSumCmd(a),
		newVerifyCmd(a),
		newBenchCmd(a),
	)
	return root
}

// service builds a checksum service from the configuration.
func (a *app) service(cmd *cobra.Command) (*checksum.Service, blobstore.BlobStore, error) {
	ctx := cmd.Context()

	alg, err := a.cfg.algorithm()
	if err != nil {
		return nil, nil, err
	}

	logger, err := a.cfg.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}

	l, err := openLedger(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []checksum.Option{
		checksum.WithAlgorithm(alg),
		checksum.WithSeed(a.cfg.Seed),
		checksum.WithChunkSize(a.cfg.ChunkSize),
		checksum.WithConcurrency(a.cfg.Concurrency),
		checksum.WithDecompression(a.cfg.Decompress),
		checksum.WithLogger(logger),
	}
	if a.cfg.IOLimit > 0 {
		opts = append(opts, checksum.WithController(resource.NewController(resource.Config{
			IOLimitBytesPerSec: a.cfg.IOLimit,
		})))
	}
	if l != nil {
		opts = append(opts, checksum.WithLedger(l))
	}

	svc, err := checksum.New(store, opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, store, nil
}

// names returns args, or every blob under prefix when args is empty.
func names(cmd *cobra.Command, store blobstore.BlobStore, args []string, prefix string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return store.List(cmd.Context(), prefix)
}
