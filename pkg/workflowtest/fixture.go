package workflowtest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/alfredwf/pkg/config"
	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/infoplist"
	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/arthur-debert/alfredwf/pkg/version"
	"github.com/arthur-debert/alfredwf/pkg/workflow"
)

// Fixture simulates a launcher run of the test workflow. It is a
// process.Process through its embedded Mock.
type Fixture struct {
	*Mock

	opts  settings
	fs    types.FS
	paths paths.Paths

	// Process environment
	mapping  environ.Environ
	priorEnv map[string]*string
	osActive bool

	// Files
	filesActive       bool
	ipPath, ipBackup  string
	vPath, vBackup    string
	createdInfoPlist  bool
	createdVersion    bool
	backedUpInfoPlist bool
	backedUpVersion   bool

	// Environment object
	env       *config.Env
	prevEnv   *config.Env
	envActive bool
}

// New returns a Fixture. Nothing changes until SetUp.
func New(opts ...Option) (*Fixture, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFixtureSetup, "failed to get current directory")
		}
		s.dir = cwd
	}
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFixtureSetup, "invalid directory %s", s.dir)
	}
	s.dir = dir
	if s.home == "" {
		s.home = userHome()
	}

	mockOpts := []MockOption{MockExit(s.exit), MockCall(s.call), MockStderr(s.stderr), MockArgv(s.argv)}
	if s.proc != nil {
		mockOpts = append(mockOpts, MockProcess(s.proc))
	}

	pid := os.Getpid()
	return &Fixture{
		Mock:     NewMock(mockOpts...),
		opts:     s,
		fs:       filesystem.NewOS(),
		paths:    paths.New(s.home),
		ipPath:   filepath.Join(dir, infoplist.Filename),
		ipBackup: filepath.Join(dir, fmt.Sprintf("%s.%d", infoplist.Filename, pid)),
		vPath:    filepath.Join(dir, version.Filename),
		vBackup:  filepath.Join(dir, fmt.Sprintf("%s.%d", version.Filename, pid)),
	}, nil
}

// Use creates a Fixture, sets it up and tears it down when t finishes.
func Use(t testing.TB, opts ...Option) *Fixture {
	t.Helper()

	f, err := New(opts...)
	if err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}
	if err := f.SetUp(); err != nil {
		t.Fatalf("Failed to set up fixture: %v", err)
	}
	t.Cleanup(func() {
		if err := f.TearDown(); err != nil {
			t.Errorf("Failed to tear down fixture: %v", err)
		}
	})
	return f
}

// Run sets up, calls fn and tears down, also when fn panics. fn is not
// called if setup fails.
func (f *Fixture) Run(fn func(f *Fixture)) (err error) {
	if err := f.SetUp(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.TearDown())
	}()
	fn(f)
	return nil
}

// SetUp runs every setup step. If one fails, the steps already done are
// reverted before returning.
func (f *Fixture) SetUp() error {
	logger := logging.GetLogger("workflowtest")
	steps := []func() error{f.SetUpOSEnv, f.SetUpFiles, f.SetUpEnv, f.SetUpProcess}
	for _, step := range steps {
		if err := step(); err != nil {
			logger.Debug().Err(err).Msg("Fixture setup failed, reverting")
			return errors.Join(err, f.TearDown())
		}
	}
	logger.Debug().Str("dir", f.opts.dir).Msg("Fixture set up")
	return nil
}

// TearDown runs every teardown step, even after a failed one.
func (f *Fixture) TearDown() error {
	errs := []error{
		f.TearDownOSEnv(),
		f.TearDownFiles(),
		f.TearDownEnv(),
		f.TearDownProcess(),
	}
	if f.opts.reset {
		errs = append(errs, f.TearDownReset())
	}
	logger := logging.GetLogger("workflowtest")
	logger.Debug().Str("dir", f.opts.dir).Msg("Fixture torn down")
	return errors.Join(errs...)
}

// Dir returns the workflow directory.
func (f *Fixture) Dir() string { return f.opts.dir }

// Home returns the home directory the default paths are rooted at.
func (f *Fixture) Home() string { return f.opts.home }

// Paths resolves the default data and cache directories.
func (f *Fixture) Paths() paths.Paths { return f.paths }

// DataDir returns the test workflow's default data directory.
func (f *Fixture) DataDir() string { return f.paths.DataDir(BundleID) }

// CacheDir returns the test workflow's default cache directory.
func (f *Fixture) CacheDir() string { return f.paths.CacheDir(BundleID) }

// Environ returns the fixture mapping: the process environment without
// launcher variables, plus defaults and caller variables.
func (f *Fixture) Environ() environ.Environ {
	if f.mapping == nil {
		f.mapping = f.buildMapping()
	}
	return f.mapping.Clone()
}

// Config returns the substituted environment object, or a pristine one
// outside SetUpEnv.
func (f *Fixture) Config() *config.Env {
	if f.env == nil {
		return config.New()
	}
	return f.env
}

// NewWorkflow builds a workflow wired to the fixture: its mapping,
// environment object, directory and process. opts are applied last.
func (f *Fixture) NewWorkflow(opts ...workflow.Option) (*workflow.Workflow, error) {
	base := []workflow.Option{
		workflow.WithEnviron(f.Environ()),
		workflow.WithConfig(f.Config()),
		workflow.WithProcess(f),
		workflow.WithDir(f.opts.dir),
		workflow.WithPaths(f.paths),
		workflow.WithFS(f.fs),
	}
	return workflow.New(append(base, opts...)...)
}

func (f *Fixture) buildMapping() environ.Environ {
	m := environ.FromOS().Without(environ.LauncherVars...)
	if f.opts.envDefault {
		m = m.Merge(DefaultEnviron(f.opts.home))
	}
	return m.Merge(f.opts.env)
}

// SetUpOSEnv builds the fixture mapping and, unless disabled, writes it into
// the process environment after clearing any launcher variables.
func (f *Fixture) SetUpOSEnv() error {
	if f.osActive {
		return nil
	}
	f.mapping = f.buildMapping()
	if !f.opts.osEnv {
		return nil
	}
	f.osActive = true

	// Only launcher variables and caller keys change; the rest of the
	// mapping mirrors the environment already.
	keys := append([]string(nil), environ.LauncherVars...)
	for k := range f.opts.env {
		keys = append(keys, k)
	}
	f.priorEnv = make(map[string]*string, len(keys))
	for _, k := range keys {
		if _, seen := f.priorEnv[k]; seen {
			continue
		}
		if v, ok := os.LookupEnv(k); ok {
			f.priorEnv[k] = &v
		} else {
			f.priorEnv[k] = nil
		}
	}

	for _, k := range environ.LauncherVars {
		if err := os.Unsetenv(k); err != nil {
			return errors.Wrapf(err, errors.ErrFixtureSetup, "failed to unset %s", k)
		}
	}
	for _, k := range keys {
		v, ok := f.mapping[k]
		if !ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Wrapf(err, errors.ErrFixtureSetup, "failed to set %s", k)
		}
	}
	return nil
}

// TearDownOSEnv removes the injected variables and restores prior values.
func (f *Fixture) TearDownOSEnv() error {
	if !f.osActive {
		return nil
	}
	var errs []error
	for k, prior := range f.priorEnv {
		var err error
		if prior == nil {
			err = os.Unsetenv(k)
		} else {
			err = os.Setenv(k, *prior)
		}
		if err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrFixtureTeardown, "failed to restore %s", k))
		}
	}
	f.priorEnv = nil
	f.osActive = false
	return errors.Join(errs...)
}

// SetUpFiles moves any existing info.plist and version aside, then creates
// the configured ones.
func (f *Fixture) SetUpFiles() error {
	if f.filesActive {
		return nil
	}
	f.filesActive = true

	if !f.backedUpInfoPlist && filesystem.Exists(f.fs, f.ipPath) {
		if err := f.fs.Rename(f.ipPath, f.ipBackup); err != nil {
			return errors.Wrapf(err, errors.ErrFixtureSetup, "failed to back up %s", f.ipPath)
		}
		f.backedUpInfoPlist = true
	}
	if !f.backedUpVersion && filesystem.Exists(f.fs, f.vPath) {
		if err := f.fs.Rename(f.vPath, f.vBackup); err != nil {
			return errors.Wrapf(err, errors.ErrFixtureSetup, "failed to back up %s", f.vPath)
		}
		f.backedUpVersion = true
	}

	if f.opts.version != nil && !f.createdVersion {
		if err := f.fs.WriteFile(f.vPath, []byte(*f.opts.version), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFixtureSetup, "failed to write %s", f.vPath)
		}
		f.createdVersion = true
	}

	if f.opts.infoPlist && !f.createdInfoPlist {
		if err := CreateInfoPlist(InfoPlistTest, f.ipPath); err != nil {
			return err
		}
		if !filesystem.IsSymlink(f.fs, f.ipPath) {
			return errors.Newf(errors.ErrFixtureSetup, "test info.plist not linked from %s", InfoPlistTest)
		}
		f.createdInfoPlist = true
	}
	return nil
}

// TearDownFiles deletes the files SetUpFiles created and restores backups.
func (f *Fixture) TearDownFiles() error {
	f.filesActive = false
	var errs []error
	if f.createdInfoPlist {
		if err := DeleteInfoPlist(f.ipPath); err != nil {
			errs = append(errs, err)
		}
		f.createdInfoPlist = false
	}
	if f.createdVersion {
		if filesystem.Exists(f.fs, f.vPath) {
			if err := f.fs.Remove(f.vPath); err != nil {
				errs = append(errs, errors.Wrapf(err, errors.ErrFixtureTeardown, "failed to remove %s", f.vPath))
			}
		}
		f.createdVersion = false
	}

	if f.backedUpVersion && filesystem.Exists(f.fs, f.vBackup) {
		if err := f.fs.Rename(f.vBackup, f.vPath); err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrFixtureTeardown, "failed to restore %s", f.vPath))
		} else {
			f.backedUpVersion = false
		}
	}
	if f.backedUpInfoPlist && filesystem.Exists(f.fs, f.ipBackup) {
		if err := f.fs.Rename(f.ipBackup, f.ipPath); err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrFixtureTeardown, "failed to restore %s", f.ipPath))
		} else {
			f.backedUpInfoPlist = false
		}
	}
	return errors.Join(errs...)
}

// SetUpEnv replaces the environment object with one freshly loaded from
// the fixture mapping.
func (f *Fixture) SetUpEnv() error {
	if f.envActive {
		return nil
	}
	env, err := config.LoadFS(f.Environ(), f.fs, f.opts.dir)
	if err != nil {
		return errors.Wrap(err, errors.ErrFixtureSetup, "failed to load environment")
	}
	f.prevEnv = f.env
	f.env = env
	f.envActive = true
	return nil
}

// TearDownEnv restores the previous environment object.
func (f *Fixture) TearDownEnv() error {
	if !f.envActive {
		return nil
	}
	f.env = f.prevEnv
	f.prevEnv = nil
	f.envActive = false
	return nil
}

// SetUpProcess activates exit, call, argv and stderr interception.
func (f *Fixture) SetUpProcess() error {
	f.Enter()
	return nil
}

// TearDownProcess deactivates interception, keeping captured stderr.
func (f *Fixture) TearDownProcess() error {
	f.Leave()
	return nil
}

// TearDownReset deletes the test workflow's data and cache directories.
func (f *Fixture) TearDownReset() error {
	var errs []error
	for _, dir := range []string{f.DataDir(), f.CacheDir()} {
		if !filesystem.Exists(f.fs, dir) {
			continue
		}
		if err := f.fs.RemoveAll(dir); err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrDirRemove, "failed to delete %s", dir))
		}
	}
	return errors.Join(errs...)
}
