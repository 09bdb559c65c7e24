// Package environ holds the explicit environment mapping a workflow is built
// from. Code that would read os.Getenv takes an Environ instead, so tests can
// hand it a mapping without touching the process environment.
package environ

import (
	"os"
	"sort"
	"strings"
)

// Variables the launcher sets when it runs a workflow.
const (
	Preferences          = "alfred_preferences"
	PreferencesLocalHash = "alfred_preferences_localhash"
	Theme                = "alfred_theme"
	ThemeBackground      = "alfred_theme_background"
	ThemeSubtext         = "alfred_theme_subtext"
	Version              = "alfred_version"
	VersionBuild         = "alfred_version_build"
	WorkflowBundleID     = "alfred_workflow_bundleid"
	WorkflowCache        = "alfred_workflow_cache"
	WorkflowData         = "alfred_workflow_data"
	WorkflowName         = "alfred_workflow_name"
	WorkflowUID          = "alfred_workflow_uid"

	// Debug is set when the workflow runs with the debugger open.
	Debug = "alfred_debug"
)

// Prefix is shared by every launcher variable.
const Prefix = "alfred_"

// LauncherVars is the fixed set of variables the launcher always provides.
var LauncherVars = []string{
	Preferences,
	PreferencesLocalHash,
	Theme,
	ThemeBackground,
	ThemeSubtext,
	Version,
	VersionBuild,
	WorkflowBundleID,
	WorkflowCache,
	WorkflowData,
	WorkflowName,
	WorkflowUID,
}

// Environ is a set of environment variables.
type Environ map[string]string

// FromOS snapshots the process environment.
func FromOS() Environ {
	return FromPairs(os.Environ())
}

// FromPairs parses KEY=VALUE entries. Entries without '=' are ignored.
func FromPairs(pairs []string) Environ {
	env := make(Environ, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Get returns the value of key, or "" when unset.
func (e Environ) Get(key string) string {
	return e[key]
}

// Lookup returns the value of key and whether it is set.
func (e Environ) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Clone returns an independent copy.
func (e Environ) Clone() Environ {
	out := make(Environ, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge returns a copy of e overlaid with vars.
func (e Environ) Merge(vars map[string]string) Environ {
	out := e.Clone()
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// Without returns a copy of e with keys removed.
func (e Environ) Without(keys ...string) Environ {
	out := e.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Launcher returns the subset of variables carrying the launcher prefix.
func (e Environ) Launcher() Environ {
	out := make(Environ)
	for k, v := range e {
		if strings.HasPrefix(k, Prefix) {
			out[k] = v
		}
	}
	return out
}

// Keys returns the variable names in sorted order.
func (e Environ) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pairs returns sorted KEY=VALUE entries, as exec.Cmd.Env expects.
func (e Environ) Pairs() []string {
	pairs := make([]string, 0, len(e))
	for _, k := range e.Keys() {
		pairs = append(pairs, k+"="+e[k])
	}
	return pairs
}
