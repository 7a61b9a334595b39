package fs

import (
	"io"
	"os"
	"path/filepath"
)

// File represents an open file.
type File interface {
	io.ReadWriteCloser
	Sync() error
	Stat() (os.FileInfo, error)
}

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Remove(name string) error              { return os.Remove(name) }
func (LocalFS) Rename(oldpath, newpath string) error  { return os.Rename(oldpath, newpath) }
func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}

// WriteFileAtomic writes data to a sibling temp file, syncs it and renames it
// over path. Readers see either the old or the new contents, never a prefix.
func WriteFileAtomic(fsys FileSystem, path string, data []byte, perm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	f, err := fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		fsys.Remove(tmpPath)
		return err
	}
	return nil
}
