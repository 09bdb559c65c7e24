package workflow

import (
	"sort"

	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// SettingsFile is the settings file name inside the data directory.
const SettingsFile = "settings.toml"

// Settings is a persistent key/value store. Every change is saved at once.
type Settings struct {
	fs   types.FS
	path string
	data map[string]interface{}
}

// Settings returns the workflow settings, loading them on first use.
func (wf *Workflow) Settings() (*Settings, error) {
	if wf.settings != nil {
		return wf.settings, nil
	}
	path, err := wf.DataFile(SettingsFile)
	if err != nil {
		return nil, err
	}
	s, err := LoadSettings(wf.fs, path)
	if err != nil {
		return nil, err
	}
	wf.settings = s
	return s, nil
}

// ClearSettings deletes the settings file.
func (wf *Workflow) ClearSettings() error {
	wf.settings = nil
	path, err := wf.DataFile(SettingsFile)
	if err != nil {
		return err
	}
	return wf.removeIfExists(path)
}

// LoadSettings reads settings from path. A missing file yields empty settings.
func LoadSettings(fsys types.FS, path string) (*Settings, error) {
	s := &Settings{fs: fsys, path: path, data: map[string]interface{}{}}
	if !filesystem.Exists(fsys, path) {
		return s, nil
	}
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to read %s", path)
	}
	if err := toml.Unmarshal(raw, &s.data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to parse %s", path)
	}
	return s, nil
}

// Path returns the settings file path.
func (s *Settings) Path() string { return s.path }

// Get returns the value for key.
func (s *Settings) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the string value for key, or def.
func (s *Settings) GetString(key, def string) string {
	if v, ok := s.data[key].(string); ok {
		return v
	}
	return def
}

// GetInt returns the integer value for key, or def.
func (s *Settings) GetInt(key string, def int64) int64 {
	switch v := s.data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return def
}

// GetBool returns the boolean value for key, or def.
func (s *Settings) GetBool(key string, def bool) bool {
	if v, ok := s.data[key].(bool); ok {
		return v
	}
	return def
}

// Set stores value under key and saves.
func (s *Settings) Set(key string, value interface{}) error {
	s.data[key] = value
	return s.Save()
}

// Delete removes key and saves. Missing keys are ignored.
func (s *Settings) Delete(key string) error {
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.Save()
}

// Keys returns the setting names in sorted order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the settings file.
func (s *Settings) Save() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, errors.ErrSettingsSave, "failed to encode settings")
	}
	if err := s.fs.WriteFile(s.path, raw, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "failed to write %s", s.path)
	}
	return nil
}
