package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(root string) Config {
	return Config{
		Store:     "local",
		Root:      root,
		Algorithm: "murmur3-32",
		ChunkSize: 1 << 20,
		LogLevel:  "error",
		LogFormat: "text",
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func execute(t *testing.T, cfg Config, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSum(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa", "b.txt": "aaa", "c.txt": "hello"})

	out, err := execute(t, testConfig(dir), "sum", "a.txt", "b.txt", "c.txt")
	require.NoError(t, err)
	assert.Equal(t,
		"B75FD0B4  a.txt\n"+
			"B75FD0B4  b.txt  (duplicate)\n"+
			"47FA8B24  c.txt\n",
		out)
}

func TestSum_ListsStoreWhenNoNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa", "c.txt": "hello"})

	out, err := execute(t, testConfig(dir), "sum")
	require.NoError(t, err)
	assert.Contains(t, out, "B75FD0B4  a.txt")
	assert.Contains(t, out, "47FA8B24  c.txt")
}

func TestSum_MissingBlob(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa"})

	out, err := execute(t, testConfig(dir), "sum", "a.txt", "nope.txt")
	require.Error(t, err)
	assert.Equal(t, "B75FD0B4  a.txt\n", out)
}

func TestSum_AlgorithmFlag(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa"})

	_, err := execute(t, testConfig(dir), "sum", "--algorithm", "sha1", "a.txt")
	require.Error(t, err)

	out, err := execute(t, testConfig(dir), "sum", "-a", "fnv1a-32", "a.txt")
	require.NoError(t, err)
	assert.Len(t, out, len("XXXXXXXX  a.txt\n"))
}

func TestVerify_Manifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa", "c.txt": "hello"})
	cfg := testConfig(dir)

	_, err := execute(t, cfg, "sum", "--manifest", "sums.json", "a.txt", "c.txt")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "sums.json"))

	out, err := execute(t, cfg, "verify", "--manifest", "sums.json")
	require.NoError(t, err)
	assert.Equal(t, "a.txt: OK\nc.txt: OK\n", out)

	writeFiles(t, dir, map[string]string{"c.txt": "world"})
	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))

	out, err = execute(t, cfg, "verify", "--manifest", "sums.json")
	require.ErrorIs(t, err, errVerifyFailed)
	assert.Equal(t, "a.txt: MISSING\nc.txt: FAILED\n", out)
}

func TestVerify_ManifestKeepsItsAlgorithm(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa"})

	_, err := execute(t, testConfig(dir), "sum", "-a", "xxh64", "--seed", "7", "-m", "sums.json", "a.txt")
	require.NoError(t, err)

	out, err := execute(t, testConfig(dir), "verify", "-m", "sums.json")
	require.NoError(t, err)
	assert.Equal(t, "a.txt: OK\n", out)
}

func TestVerify_Digest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa"})
	cfg := testConfig(dir)

	out, err := execute(t, cfg, "verify", "--digest", "b75fd0b4", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt: OK\n", out)

	out, err = execute(t, cfg, "verify", "--digest", "00000000", "a.txt")
	require.ErrorIs(t, err, errVerifyFailed)
	assert.Equal(t, "a.txt: FAILED\n", out)

	_, err = execute(t, cfg, "verify", "--digest", "zz", "a.txt")
	require.Error(t, err)
}

func TestVerify_LedgerNotConfigured(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "aaa"})

	_, err := execute(t, testConfig(dir), "verify", "--ledger", "a.txt")
	require.Error(t, err)
}

func TestVerify_NoSource(t *testing.T) {
	_, err := execute(t, testConfig(t.TempDir()), "verify", "a.txt")
	require.Error(t, err)
}

func TestList(t *testing.T) {
	out, err := execute(t, testConfig(t.TempDir()), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "murmur3-128x64")
	assert.Contains(t, out, "crc32c")
	assert.Contains(t, out, "64-bit")
}

func TestBench(t *testing.T) {
	out, err := execute(t, testConfig(t.TempDir()),
		"bench", "-n", "5", "--algorithms", "xxh64,crc32c", "--lengths", "16,1024")
	require.NoError(t, err)
	assert.Contains(t, out, "xxh64")
	assert.Contains(t, out, "crc32c")
	assert.Contains(t, out, "1,024")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "local", cfg.Store)
		assert.Equal(t, "xxh64", cfg.Algorithm)
		assert.Equal(t, int64(1<<20), cfg.ChunkSize)
		assert.True(t, cfg.MinioSecure)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("HASHKIT_ALGORITHM", "crc32c")
		t.Setenv("HASHKIT_SEED", "99")
		t.Setenv("HASHKIT_DECOMPRESS", "true")

		cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "crc32c", cfg.Algorithm)
		assert.Equal(t, uint64(99), cfg.Seed)
		assert.True(t, cfg.Decompress)
	})

	t.Run("dotenv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("HASHKIT_PREFIX=from-file/\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("HASHKIT_PREFIX") })

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "from-file/", cfg.Prefix)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("HASHKIT_SEED", "not-a-number")
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
	})
}

func TestOpenStore_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := openStore(ctx, Config{Store: "s3"})
	require.Error(t, err)

	_, err = openStore(ctx, Config{Store: "minio", Bucket: "b"})
	require.Error(t, err)

	_, err = openStore(ctx, Config{Store: "ftp"})
	require.Error(t, err)

	l, err := openLedger(ctx, Config{})
	require.NoError(t, err)
	assert.Nil(t, l)
}
