// Package fs provides filesystem abstractions for testability and fault injection.
//
//   - [File]: an open file with write and sync capabilities
//   - [FileSystem]: open, remove, rename, stat and mkdir
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that fails writes, syncs, closes or renames
//
// [WriteFileAtomic] is the temp-file-and-rename sequence used by the local
// blob store.
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("manifest", fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
package fs
