package types

import (
	"io"
	"io/fs"
	"time"
)

// FS is the filesystem interface a workflow reads and writes through
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	OpenFile(name string, flag int, perm fs.FileMode) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Chtimes(name string, atime, mtime time.Time) error

	// For in-memory filesystems Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Pather resolves per-workflow storage locations
type Pather interface {
	// DataDir returns the persistent data directory for a bundle id
	DataDir(bundleID string) string

	// CacheDir returns the cache directory for a bundle id
	CacheDir(bundleID string) string
}
