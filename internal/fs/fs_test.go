package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "blob.bin")

	require.NoError(t, WriteFileAtomic(Default, path, []byte("hello"), 0o644))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	require.NoError(t, WriteFileAtomic(Default, path, []byte("bye"), 0o644))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bye", string(got))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic_Faults(t *testing.T) {
	faults := map[string]Fault{
		"write":  {FailAfterBytes: 2},
		"sync":   {FailAfterBytes: -1, FailOnSync: true},
		"close":  {FailAfterBytes: -1, FailOnClose: true},
		"rename": {FailAfterBytes: -1, FailOnRename: true},
	}

	for name, fault := range faults {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "blob.bin")
			require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

			ffs := NewFaultyFS(nil)
			ffs.AddRule("blob.bin", fault)

			err := WriteFileAtomic(ffs, path, []byte("new data"), 0o644)
			require.ErrorIs(t, err, ErrInjected)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "old", string(got), "target must be untouched")

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file must be removed")
		})
	}
}

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())
	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.NoError(t, f.Close())

	newPath := filepath.Join(dir, "renamed.txt")
	assert.NoError(t, lfs.Rename(fpath, newPath))
	assert.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}
