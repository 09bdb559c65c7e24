package workflow

import (
	"context"

	"github.com/arthur-debert/alfredwf/pkg/config"
	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/process"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/rs/zerolog"
)

// Option configures a Workflow.
type Option func(*Workflow)

// WithEnviron sets the environment the workflow reads launcher variables from.
func WithEnviron(env environ.Environ) Option {
	return func(wf *Workflow) { wf.environ = env }
}

// WithConfig sets the environment object. It takes precedence over WithEnviron
// for every launcher value.
func WithConfig(cfg *config.Env) Option {
	return func(wf *Workflow) { wf.cfg = cfg }
}

// WithProcess sets the host process.
func WithProcess(p process.Process) Option {
	return func(wf *Workflow) { wf.proc = p }
}

// WithDir sets the workflow directory, where info.plist and version live.
func WithDir(dir string) Option {
	return func(wf *Workflow) { wf.dir = dir }
}

// WithFS sets the filesystem.
func WithFS(fsys types.FS) Option {
	return func(wf *Workflow) { wf.fs = fsys }
}

// WithPaths sets the data/cache directory resolver.
func WithPaths(p paths.Paths) Option {
	return func(wf *Workflow) { wf.paths = p }
}

// WithLogger replaces the default file logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(wf *Workflow) {
		wf.logger = logger
		wf.loggerReady = true
	}
}

// WithContext sets the context subprocess calls run under.
func WithContext(ctx context.Context) Option {
	return func(wf *Workflow) { wf.ctx = ctx }
}
