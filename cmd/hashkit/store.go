package main

import (
	"context"
	"fmt"
	"strings"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/blobstore/minio"
	"github.com/hupe1980/hashkit/blobstore/s3"
	"github.com/hupe1980/hashkit/ledger"
	"github.com/hupe1980/hashkit/ledger/dynamodb"
)

func openStore(ctx context.Context, cfg Config) (blobstore.BlobStore, error) {
	switch strings.ToLower(cfg.Store) {
	case "", "local":
		return blobstore.NewLocalStore(cfg.Root), nil
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 store: %s_BUCKET is required", envPrefix)
		}
		opts := []s3.Option{s3.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.Endpoint), s3.WithPathStyle(true))
		}
		return s3.New(ctx, cfg.Bucket, opts...)
	case "minio":
		if cfg.Bucket == "" || cfg.Endpoint == "" {
			return nil, fmt.Errorf("minio store: %s_BUCKET and %s_ENDPOINT are required", envPrefix, envPrefix)
		}
		client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioSecure,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio store: %w", err)
		}
		return minio.NewStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want local, s3 or minio)", cfg.Store)
	}
}

// openLedger returns nil when no ledger table is configured.
func openLedger(ctx context.Context, cfg Config) (ledger.Ledger, error) {
	if cfg.LedgerTable == "" {
		return nil, nil
	}
	l, err := dynamodb.New(ctx, cfg.LedgerTable)
	if err != nil {
		return nil, err
	}
	return l, nil
}
