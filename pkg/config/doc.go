// Package config holds the workflow environment object: the values the
// launcher passes through alfred_* variables plus library options read from
// an optional workflow.toml. It is built from an explicit environ.Environ,
// never from the process environment, and handed to the code that needs it.
package config
