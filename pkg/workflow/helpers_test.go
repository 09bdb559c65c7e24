package workflow_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/process"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/arthur-debert/alfredwf/pkg/workflow"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testDir  = "/workflows/search"
	testHome = "/home/tester"
)

// mockProcess records Exit and Call through testify/mock and buffers output.
type mockProcess struct {
	mock.Mock
	args   []string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (m *mockProcess) Exit(status int) {
	m.Called(status)
}

func (m *mockProcess) Call(_ context.Context, cmd []string, _ ...process.CallOption) (int, error) {
	ret := m.Called(cmd)
	return ret.Int(0), ret.Error(1)
}

func (m *mockProcess) Args() []string    { return m.args }
func (m *mockProcess) Stdout() io.Writer { return &m.stdout }
func (m *mockProcess) Stderr() io.Writer { return &m.stderr }

type testEnv struct {
	wf   *workflow.Workflow
	fs   types.FS
	proc *mockProcess
}

// newTestWorkflow builds a workflow over an in-memory filesystem whose
// directory holds the sample info.plist.
func newTestWorkflow(t *testing.T, env environ.Environ, args ...string) *testEnv {
	t.Helper()

	fsys := filesystem.NewMemory()
	plist, err := os.ReadFile(filepath.Join("..", "infoplist", "testdata", "info.plist"))
	require.NoError(t, err)
	require.NoError(t, fsys.MkdirAll(testDir, 0755))
	require.NoError(t, fsys.WriteFile(filepath.Join(testDir, "info.plist"), plist, 0644))

	if env == nil {
		env = environ.Environ{}
	}
	proc := &mockProcess{args: append([]string{"search"}, args...)}
	wf, err := workflow.New(
		workflow.WithEnviron(env),
		workflow.WithFS(fsys),
		workflow.WithDir(testDir),
		workflow.WithPaths(paths.New(testHome)),
		workflow.WithProcess(proc),
		workflow.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	return &testEnv{wf: wf, fs: fsys, proc: proc}
}

// reload builds a fresh workflow over te's filesystem, picking up any
// workflow.toml written since.
func reload(t *testing.T, te *testEnv) *testEnv {
	t.Helper()
	wf, err := workflow.New(
		workflow.WithEnviron(te.wf.Environ()),
		workflow.WithFS(te.fs),
		workflow.WithDir(testDir),
		workflow.WithPaths(paths.New(testHome)),
		workflow.WithProcess(te.proc),
		workflow.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	return &testEnv{wf: wf, fs: te.fs, proc: te.proc}
}

// closeFailFS hands out files whose Close fails.
type closeFailFS struct {
	types.FS
}

func (c closeFailFS) OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	w, err := c.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return closeFailWriter{w}, nil
}

type closeFailWriter struct {
	io.WriteCloser
}

func (w closeFailWriter) Close() error {
	_ = w.WriteCloser.Close()
	return errors.New(errors.ErrFileWrite, "disk full")
}
