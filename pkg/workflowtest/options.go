package workflowtest

import (
	"github.com/arthur-debert/alfredwf/pkg/process"
)

// Option configures a Fixture.
type Option func(*settings)

type settings struct {
	version    *string
	infoPlist  bool
	argv       []string
	exit       bool
	call       bool
	stderr     bool
	envDefault bool
	env        map[string]string
	reset      bool
	dir        string
	home       string
	osEnv      bool
	proc       process.Process
}

func defaultSettings() settings {
	return settings{
		infoPlist:  true,
		exit:       true,
		call:       true,
		envDefault: true,
		reset:      true,
		osEnv:      true,
	}
}

// WithVersion writes a version file containing v.
func WithVersion(v string) Option {
	return func(s *settings) { s.version = &v }
}

// WithInfoPlist toggles linking the test info.plist (default on).
func WithInfoPlist(on bool) Option {
	return func(s *settings) { s.infoPlist = on }
}

// WithArgv replaces the command-line arguments.
func WithArgv(argv []string) Option {
	return func(s *settings) { s.argv = append([]string(nil), argv...) }
}

// WithExit toggles exit interception (default on).
func WithExit(on bool) Option {
	return func(s *settings) { s.exit = on }
}

// WithCall toggles subprocess interception (default on).
func WithCall(on bool) Option {
	return func(s *settings) { s.call = on }
}

// WithStderr toggles stderr capture (default off).
func WithStderr(on bool) Option {
	return func(s *settings) { s.stderr = on }
}

// WithEnvDefault toggles the default launcher variables (default on).
func WithEnvDefault(on bool) Option {
	return func(s *settings) { s.envDefault = on }
}

// WithEnv adds variables on top of the defaults. Repeated calls merge.
func WithEnv(env map[string]string) Option {
	return func(s *settings) {
		if s.env == nil {
			s.env = map[string]string{}
		}
		for k, v := range env {
			s.env[k] = v
		}
	}
}

// WithReset toggles deleting the test workflow's data and cache
// directories on teardown (default on).
func WithReset(on bool) Option {
	return func(s *settings) { s.reset = on }
}

// WithDir sets the workflow directory (default: the working directory).
func WithDir(dir string) Option {
	return func(s *settings) { s.dir = dir }
}

// WithHome roots the default data and cache directories at home.
func WithHome(home string) Option {
	return func(s *settings) { s.home = home }
}

// WithOSEnv toggles writing the variables into the process environment
// (default on).
func WithOSEnv(on bool) Option {
	return func(s *settings) { s.osEnv = on }
}

// WithProcess sets the process non-intercepted operations go to.
func WithProcess(p process.Process) Option {
	return func(s *settings) { s.proc = p }
}
