package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/alfredwf/pkg/environ"
)

// Per-workflow options files, read from the workflow directory. When both
// exist the TOML one wins.
const (
	OptionsFile     = "workflow.toml"
	OptionsFileYAML = "workflow.yaml"
)

// Env is the workflow environment object.
type Env struct {
	Preferences          string `koanf:"preferences"`
	PreferencesLocalHash string `koanf:"preferences_localhash"`
	Theme                string `koanf:"theme"`
	ThemeBackground      string `koanf:"theme_background"`
	ThemeSubtext         string `koanf:"theme_subtext"`
	Version              string `koanf:"version"`
	VersionBuild         int    `koanf:"version_build"`
	BundleID             string `koanf:"workflow_bundleid"`
	CacheDir             string `koanf:"workflow_cache"`
	DataDir              string `koanf:"workflow_data"`
	Name                 string `koanf:"workflow_name"`
	UID                  string `koanf:"workflow_uid"`
	Debug                bool   `koanf:"debug"`

	Options Options `koanf:"-"`
}

// Options are library settings, not supplied by the launcher.
type Options struct {
	LogLevel    string        `koanf:"log_level"`
	CacheMaxAge time.Duration `koanf:"cache_max_age"`
	Serializer  string        `koanf:"serializer"`
	QuietErrors bool          `koanf:"quiet_errors"`
}

// New returns an empty environment object.
func New() *Env {
	return &Env{}
}

// InLauncher reports whether the values came from a launcher run.
func (e *Env) InLauncher() bool {
	return e.Version != ""
}

// Clone returns a copy of e.
func (e *Env) Clone() *Env {
	c := *e
	return &c
}

// Environ renders e back into launcher variables. Empty fields are omitted.
func (e *Env) Environ() environ.Environ {
	out := environ.Environ{}
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	set(environ.Preferences, e.Preferences)
	set(environ.PreferencesLocalHash, e.PreferencesLocalHash)
	set(environ.Theme, e.Theme)
	set(environ.ThemeBackground, e.ThemeBackground)
	set(environ.ThemeSubtext, e.ThemeSubtext)
	set(environ.Version, e.Version)
	if e.VersionBuild != 0 {
		out[environ.VersionBuild] = strconv.Itoa(e.VersionBuild)
	}
	set(environ.WorkflowBundleID, e.BundleID)
	set(environ.WorkflowCache, e.CacheDir)
	set(environ.WorkflowData, e.DataDir)
	set(environ.WorkflowName, e.Name)
	set(environ.WorkflowUID, e.UID)
	if e.Debug {
		out[environ.Debug] = "1"
	}
	return out
}

// launcherKey strips the launcher prefix: alfred_workflow_name -> workflow_name
func launcherKey(name string) string {
	return strings.TrimPrefix(name, environ.Prefix)
}
