package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/types"
)

// Directory names the launcher uses under data-home and cache-home.
// These must match the launcher exactly.
const (
	// AppDataDirName is the launcher's directory under data-home
	AppDataDirName = "Alfred 2"

	// AppCacheDirName is the launcher's directory under cache-home
	AppCacheDirName = "com.runningwithcrayons.Alfred-2"

	// WorkflowDataDirName holds one directory per workflow bundle id
	WorkflowDataDirName = "Workflow Data"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Paths resolves per-workflow storage locations
type Paths interface {
	types.Pather

	// DataRoot is the directory holding every workflow's data directory
	DataRoot() string

	// CacheRoot is the directory holding every workflow's cache directory
	CacheRoot() string
}

type paths struct {
	dataHome  string
	cacheHome string
}

var _ Paths = (*paths)(nil)

// New creates a Paths rooted at home. An empty home uses the XDG base
// directories of the current user.
func New(home string) Paths {
	if home != "" {
		home = ExpandHome(home)
		return &paths{
			dataHome:  filepath.Join(home, "Library", "Application Support"),
			cacheHome: filepath.Join(home, "Library", "Caches"),
		}
	}
	return &paths{
		dataHome:  xdg.DataHome,
		cacheHome: xdg.CacheHome,
	}
}

// DataRoot returns the directory holding all workflow data directories
func (p *paths) DataRoot() string {
	return filepath.Join(p.dataHome, AppDataDirName, WorkflowDataDirName)
}

// CacheRoot returns the directory holding all workflow cache directories
func (p *paths) CacheRoot() string {
	return filepath.Join(p.cacheHome, AppCacheDirName, WorkflowDataDirName)
}

// DataDir returns the data directory for bundleID
func (p *paths) DataDir(bundleID string) string {
	return filepath.Join(p.DataRoot(), bundleID)
}

// CacheDir returns the cache directory for bundleID
func (p *paths) CacheDir(bundleID string) string {
	return filepath.Join(p.CacheRoot(), bundleID)
}

// HomeDir returns the user's home directory: os.UserHomeDir, else $HOME.
func HomeDir() (string, error) {
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		return homeDir, nil
	}
	if homeDir := os.Getenv(EnvHome); homeDir != "" {
		return homeDir, nil
	}
	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := HomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not ours to expand
	return path
}
