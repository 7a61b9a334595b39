package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ifs "github.com/hupe1980/hashkit/internal/fs"
	"github.com/hupe1980/hashkit/internal/mmap"
)

// LocalStore implements BlobStore using the local file system.
// Reads are memory-mapped; writes go through a temp file and a rename.
type LocalStore struct {
	root string
	fs   ifs.FileSystem
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithFileSystem replaces the file system used for writes.
func WithFileSystem(fsys ifs.FileSystem) LocalOption {
	return func(s *LocalStore) {
		s.fs = fsys
	}
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string, optFns ...LocalOption) *LocalStore {
	s := &LocalStore{root: root, fs: ifs.Default}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Root returns the store's base directory.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	// Hashing reads front to back.
	_ = m.Advise(mmap.AdviceSequential)
	return &localBlob{m: m}, nil
}

// Put writes a blob atomically.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) error {
	return ifs.WriteFileAtomic(s.fs, s.path(name), data, 0o644)
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := s.fs.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// List returns all regular files below root whose slash-separated name has
// the given prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == s.root && errors.Is(err, os.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasSuffix(name, ".tmp") {
			return nil
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.m.ReadAt(p, off)
}

func (b *localBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	data, err := b.m.Slice(off, length)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return b.m.Size()
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}
