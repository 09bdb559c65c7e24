package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/alfredwf/pkg/types"
)

// Exists reports whether name exists. A dangling symlink counts as existing.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Lstat(name)
	return err == nil
}

// IsSymlink reports whether name is a symbolic link.
func IsSymlink(fsys types.FS, name string) bool {
	info, err := fsys.Lstat(name)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeSymlink != 0
}

// IsDir reports whether name is an existing directory.
func IsDir(fsys types.FS, name string) bool {
	info, err := fsys.Stat(name)
	if err != nil {
		return false
	}
	return info.IsDir()
}
