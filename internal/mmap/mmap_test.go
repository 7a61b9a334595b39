package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestMmap_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Mmap!")
	m, err := Open(writeTemp(t, content))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(len(content)), m.Size())
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Mmap!", string(buf))

	n, err = m.ReadAt(make([]byte, 10), 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	buf3 := make([]byte, 10)
	n, err = m.ReadAt(buf3, 7)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "Mmap!", string(buf3[:n]))

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMmap_Slice(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("0123456789")))
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Advise(AdviceSequential))

	s, err := m.Slice(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "234", string(s))

	s, err = m.Slice(8, 100)
	require.NoError(t, err)
	assert.Equal(t, "89", string(s))

	s, err = m.Slice(10, 1)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = m.Slice(-1, 1)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestMmap_EmptyFile(t *testing.T) {
	m, err := Open(writeTemp(t, nil))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(0), m.Size())
	assert.NoError(t, m.Advise(AdviceWillNeed))
}

func TestMmap_AfterClose(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("data")))
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.Error(t, m.Advise(AdviceWillNeed))
	_, err = m.Slice(0, 1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMmap_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
