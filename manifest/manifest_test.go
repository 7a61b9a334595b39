package manifest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/codec"
)

func sample(t *testing.T) *Manifest {
	t.Helper()

	m := New(hashkit.XXH64, 42)
	for _, name := range []string{"a.bin", "b.bin"} {
		d, err := hashkit.Sum(hashkit.XXH64, []byte(name), hashkit.WithSeed(42))
		require.NoError(t, err)
		m.Add(Entry{Name: name, Size: int64(len(name)), Digest: d})
	}
	return m
}

func TestEncodeDecode(t *testing.T) {
	m := sample(t)

	for _, c := range []codec.Codec{nil, codec.JSON{}, codec.GoJSON{}} {
		name := "default"
		if c != nil {
			name = c.Name()
		}
		t.Run(name, func(t *testing.T) {
			data, err := Encode(m, c)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"algorithm": "xxh64"`)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, m.Algorithm, got.Algorithm)
			assert.Equal(t, m.Seed, got.Seed)
			assert.Equal(t, m.Entries, got.Entries)
			if c != nil {
				assert.Equal(t, c.Name(), got.Codec)
			}
		})
	}
}

func TestDigestsEncodeAsUppercaseHex(t *testing.T) {
	m := New(hashkit.Murmur3_32, 0)
	d, err := hashkit.Sum(hashkit.Murmur3_32, []byte("aaa"))
	require.NoError(t, err)
	m.Add(Entry{Name: "aaa", Size: 3, Digest: d})

	data, err := Encode(m, nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"digest": "B75FD0B4"`)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"Version", `{"version":2,"algorithm":"xxh64","entries":[]}`, ErrUnsupportedVersion},
		{"Codec", `{"version":1,"codec":"msgpack","algorithm":"xxh64","entries":[]}`, ErrUnknownCodec},
		{"Unseeded", `{"version":1,"algorithm":"fnv1a-32","seed":7,"entries":[]}`, hashkit.ErrUnseeded},
		{"DigestSize", `{"version":1,"algorithm":"xxh64","entries":[{"name":"a","size":1,"digest":"00000000"}]}`, hashkit.ErrInvalidDigest},
		{"Duplicate", `{"version":1,"algorithm":"adler32","entries":[{"name":"a","size":1,"digest":"00000001"},{"name":"a","size":1,"digest":"00000001"}]}`, ErrDuplicateEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("Algorithm", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":1,"algorithm":"md5","entries":[]}`))
		assert.ErrorIs(t, err, hashkit.ErrUnknownAlgorithm)
	})

	t.Run("SeedWidth", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":1,"algorithm":"xxh32","seed":4294967296,"entries":[]}`))
		var seedErr *hashkit.ErrSeedOutOfRange
		assert.ErrorAs(t, err, &seedErr)
	})
}

func TestAddLookup(t *testing.T) {
	m := sample(t)
	assert.Equal(t, []string{"a.bin", "b.bin"}, m.Names())

	m.Add(Entry{Name: "a.bin", Size: 99, Digest: m.Entries[0].Digest})
	assert.Len(t, m.Entries, 2)

	e, ok := m.Lookup("a.bin")
	require.True(t, ok)
	assert.Equal(t, int64(99), e.Size)

	_, ok = m.Lookup("missing")
	assert.False(t, ok)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := sample(t)

	require.NoError(t, Save(ctx, store, "hashes.json", m))
	got, err := Load(ctx, store, "hashes.json")
	require.NoError(t, err)
	assert.Equal(t, m.Entries, got.Entries)

	_, err = Load(ctx, store, "missing.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStore_Generations(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewLocalStore(t.TempDir())
	s := NewStore(blobs, "manifests")

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	m := sample(t)
	require.NoError(t, s.Save(ctx, m))
	assert.Equal(t, uint64(1), m.ID)

	m.Entries = m.Entries[:1]
	require.NoError(t, s.Save(ctx, m))
	assert.Equal(t, uint64(2), m.ID)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)
	assert.Len(t, got.Entries, 1)

	ids, err := s.Generations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)

	current, err := blobstore.ReadAll(ctx, blobs, "manifests/CURRENT")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(current), "000002.json"))

	// A fresh manifest never overwrites an older generation.
	fresh := sample(t)
	require.NoError(t, NewStore(blobs, "manifests").Save(ctx, fresh))
	assert.Equal(t, uint64(3), fresh.ID)
}
