package checksum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/compression"
	"github.com/hupe1980/hashkit/manifest"
)

func TestBuildAndVerifyManifest(t *testing.T) {
	ctx := context.Background()
	packed, err := compression.Compress(compression.Zstd, []byte("packed content"))
	require.NoError(t, err)

	store := newStore(t, map[string][]byte{
		"a.txt":     []byte("first"),
		"b.txt":     []byte("second"),
		"c.txt.zst": packed,
	})

	svc, err := New(store, WithAlgorithm(hashkit.Murmur3_128x64), WithSeed(42), WithDecompression(true))
	require.NoError(t, err)

	m, err := svc.BuildManifest(ctx, []string{"a.txt", "b.txt", "c.txt.zst"})
	require.NoError(t, err)
	assert.Equal(t, hashkit.Murmur3_128x64, m.Algorithm)
	assert.Equal(t, uint64(42), m.Seed)
	require.Len(t, m.Entries, 3)
	assert.Equal(t, "zstd", m.Entries[2].Compression)
	assert.Equal(t, int64(len("packed content")), m.Entries[2].Size)

	require.NoError(t, manifest.Save(ctx, store, "MANIFEST.json", m))
	loaded, err := manifest.Load(ctx, store, "MANIFEST.json")
	require.NoError(t, err)

	// Verification follows the manifest, not the service defaults.
	verifier, err := New(store, WithAlgorithm(hashkit.CRC32C))
	require.NoError(t, err)

	report, err := verifier.VerifyManifest(ctx, loaded)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.NoError(t, report.Err())

	// Tamper with one blob and drop another.
	require.NoError(t, store.Put(ctx, "a.txt", []byte("FIRST")))
	require.NoError(t, store.Delete(ctx, "b.txt"))

	report, err = verifier.VerifyManifest(ctx, loaded)
	require.NoError(t, err)
	assert.False(t, report.OK())
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, "a.txt", report.Mismatches[0].Name)
	assert.Equal(t, []string{"b.txt"}, report.Missing)
	assert.Empty(t, report.Failed)
	assert.ErrorIs(t, report.Err(), hashkit.ErrMismatch)
	assert.ErrorIs(t, report.Err(), blobstore.ErrNotFound)
}

func TestVerifyManifest_Invalid(t *testing.T) {
	svc, err := New(blobstore.NewMemoryStore())
	require.NoError(t, err)

	m := manifest.New(hashkit.FNV1_32, 5)
	_, err = svc.VerifyManifest(context.Background(), m)
	assert.ErrorIs(t, err, hashkit.ErrUnseeded)

	m = manifest.New(hashkit.FNV1_32, 0)
	m.Add(manifest.Entry{Name: "x", Digest: hashkit.Digest{1, 2, 3, 4}, Compression: "brotli"})
	_, err = svc.VerifyManifest(context.Background(), m)
	assert.ErrorIs(t, err, compression.ErrUnknownKind)
}
