package workflow

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/serializer"
)

// DataDir returns the workflow's data directory, creating it if needed.
func (wf *Workflow) DataDir() (string, error) {
	return wf.ensureDir(wf.cfg.DataDir, wf.paths.DataDir)
}

// CacheDir returns the workflow's cache directory, creating it if needed.
func (wf *Workflow) CacheDir() (string, error) {
	return wf.ensureDir(wf.cfg.CacheDir, wf.paths.CacheDir)
}

func (wf *Workflow) ensureDir(fromLauncher string, fallback func(string) string) (string, error) {
	dir := fromLauncher
	if dir == "" {
		bundleID := wf.BundleID()
		if bundleID == "" {
			return "", errors.New(errors.ErrNotFound, "workflow has no bundle id").
				WithDetail("dir", wf.dir)
		}
		dir = fallback(bundleID)
	}
	if err := wf.fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	return dir, nil
}

// DataFile returns the path of name in the data directory.
func (wf *Workflow) DataFile(name string) (string, error) {
	dir, err := wf.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// CacheFile returns the path of name in the cache directory.
func (wf *Workflow) CacheFile(name string) (string, error) {
	dir, err := wf.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// LogFile returns the path of the workflow log.
func (wf *Workflow) LogFile() (string, error) {
	return wf.CacheFile(wf.BundleID() + ".log")
}

// SetSerializer selects the format used by StoreData and CacheData.
func (wf *Workflow) SetSerializer(name string) error {
	if _, err := serializer.Get(name); err != nil {
		return err
	}
	wf.serializer = name
	return nil
}

// Serializer returns the name of the active serializer.
func (wf *Workflow) Serializer() string {
	if wf.serializer == "" {
		return serializer.Default
	}
	return wf.serializer
}

// StoreData saves v under name in the data directory. A nil v deletes it.
func (wf *Workflow) StoreData(name string, v interface{}) error {
	path, s, err := wf.dataPath(wf.DataFile, name)
	if err != nil {
		return err
	}
	if v == nil {
		return wf.removeIfExists(path)
	}
	return wf.write(path, s, v)
}

// StoredData loads the data saved under name into v. It reports false when
// nothing is stored.
func (wf *Workflow) StoredData(name string, v interface{}) (bool, error) {
	path, s, err := wf.dataPath(wf.DataFile, name)
	if err != nil {
		return false, err
	}
	if !filesystem.Exists(wf.fs, path) {
		return false, nil
	}
	return true, wf.read(path, s, v)
}

// CacheData saves v under name in the cache directory. A nil v deletes it.
func (wf *Workflow) CacheData(name string, v interface{}) error {
	path, s, err := wf.dataPath(wf.CacheFile, name)
	if err != nil {
		return err
	}
	if v == nil {
		return wf.removeIfExists(path)
	}
	return wf.write(path, s, v)
}

// CachedData loads the cached value for name into v if it is younger than
// maxAge. A zero maxAge uses the configured cache_max_age; if that is zero
// too, cached data never goes stale.
func (wf *Workflow) CachedData(name string, maxAge time.Duration, v interface{}) (bool, error) {
	if !wf.CachedDataFresh(name, maxAge) {
		return false, nil
	}
	path, s, err := wf.dataPath(wf.CacheFile, name)
	if err != nil {
		return false, err
	}
	return true, wf.read(path, s, v)
}

// CachedDataFresh reports whether cached data for name exists and is younger
// than maxAge.
func (wf *Workflow) CachedDataFresh(name string, maxAge time.Duration) bool {
	age, err := wf.CacheAge(name)
	if err != nil {
		return false
	}
	if maxAge == 0 {
		maxAge = wf.cfg.Options.CacheMaxAge
	}
	return maxAge == 0 || age < maxAge
}

// CacheAge returns how long ago the cached data for name was written.
func (wf *Workflow) CacheAge(name string) (time.Duration, error) {
	path, _, err := wf.dataPath(wf.CacheFile, name)
	if err != nil {
		return 0, err
	}
	info, err := wf.fs.Stat(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrNotFound, "no cached data for %q", name)
	}
	return time.Since(info.ModTime()), nil
}

// ClearCache deletes the cache directory.
func (wf *Workflow) ClearCache() error {
	return wf.clearDir(wf.CacheDir)
}

// ClearData deletes the data directory, settings included.
func (wf *Workflow) ClearData() error {
	wf.settings = nil
	return wf.clearDir(wf.DataDir)
}

// Reset deletes settings, data and cache.
func (wf *Workflow) Reset() error {
	return errors.Join(wf.ClearSettings(), wf.ClearData(), wf.ClearCache())
}

func (wf *Workflow) clearDir(resolve func() (string, error)) error {
	dir, err := resolve()
	if err != nil {
		return err
	}
	logger := wf.Logger()
	logger.Debug().Str("dir", dir).Msg("Deleting directory")
	if err := wf.fs.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrDirRemove, "failed to delete %s", dir)
	}
	return nil
}

func (wf *Workflow) dataPath(resolve func(string) (string, error), name string) (string, serializer.Serializer, error) {
	if name == "" {
		return "", nil, errors.New(errors.ErrInvalidInput, "data name is empty")
	}
	s, err := serializer.Get(wf.Serializer())
	if err != nil {
		return "", nil, err
	}
	path, err := resolve(name + "." + s.Name())
	if err != nil {
		return "", nil, err
	}
	return path, s, nil
}

func (wf *Workflow) write(path string, s serializer.Serializer, v interface{}) error {
	data, err := s.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDataWrite, "failed to serialize %s", filepath.Base(path))
	}
	// Write aside then rename so readers never see a partial file.
	tmp := path + ".tmp"
	if err := wf.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrDataWrite, "failed to write %s", path)
	}
	if err := wf.fs.Rename(tmp, path); err != nil {
		_ = wf.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrDataWrite, "failed to write %s", path)
	}
	logger := wf.Logger()
	logger.Debug().Str("path", path).Str("serializer", s.Name()).Msg("Stored data")
	return nil
}

func (wf *Workflow) read(path string, s serializer.Serializer, v interface{}) error {
	data, err := wf.fs.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDataRead, "failed to read %s", path)
	}
	if err := s.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, errors.ErrDataRead, "failed to decode %s", path)
	}
	return nil
}

func (wf *Workflow) removeIfExists(path string) error {
	if !filesystem.Exists(wf.fs, path) {
		return nil
	}
	if err := wf.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrDataWrite, "failed to delete %s", path)
	}
	return nil
}
