package workflowtest

import (
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
)

// CreateInfoPlist symlinks dest to source. Nothing happens unless source
// exists and dest does not.
func CreateInfoPlist(source, dest string) error {
	fsys := filesystem.NewOS()
	if !filesystem.Exists(fsys, source) || filesystem.Exists(fsys, dest) {
		return nil
	}
	if err := fsys.Symlink(source, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s to %s", dest, source)
	}
	return nil
}

// DeleteInfoPlist removes path if it is a symlink. Regular files are kept.
func DeleteInfoPlist(path string) error {
	fsys := filesystem.NewOS()
	if !filesystem.IsSymlink(fsys, path) {
		return nil
	}
	if err := fsys.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path)
	}
	return nil
}
