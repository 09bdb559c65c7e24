package workflow_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromInfoPlist(t *testing.T) {
	te := newTestWorkflow(t, nil)

	assert.Equal(t, "net.example.search", te.wf.BundleID())
	assert.Equal(t, "Search", te.wf.Name())
	assert.Equal(t, testDir, te.wf.Dir())
	assert.False(t, te.wf.Debugging())

	info, err := te.wf.Info()
	require.NoError(t, err)
	assert.Equal(t, "A. Developer", info.CreatedBy)
}

func TestIdentityFromEnvironment(t *testing.T) {
	te := newTestWorkflow(t, environ.Environ{
		environ.WorkflowBundleID: "com.example.other",
		environ.WorkflowName:     "Other",
		environ.Debug:            "1",
	})

	assert.Equal(t, "com.example.other", te.wf.BundleID())
	assert.Equal(t, "Other", te.wf.Name())
	assert.True(t, te.wf.Debugging())
}

func TestVersion(t *testing.T) {
	t.Run("from info.plist", func(t *testing.T) {
		te := newTestWorkflow(t, nil)
		v, err := te.wf.Version()
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", v.String())
	})

	t.Run("version file wins", func(t *testing.T) {
		te := newTestWorkflow(t, nil)
		require.NoError(t, te.fs.WriteFile(te.wf.WorkflowFile("version"), []byte("2.0.1\n"), 0644))
		v, err := te.wf.Version()
		require.NoError(t, err)
		assert.Equal(t, "2.0.1", v.String())
	})

	t.Run("missing", func(t *testing.T) {
		te := newTestWorkflow(t, nil)
		require.NoError(t, te.fs.Remove(te.wf.WorkflowFile("info.plist")))
		_, err := te.wf.Version()
		assert.True(t, errors.IsErrorCode(err, errors.ErrVersionNotFound))
	})
}

func TestArgs(t *testing.T) {
	te := newTestWorkflow(t, nil, "foo", "bar")
	assert.Equal(t, []string{"foo", "bar"}, te.wf.Args())

	te = newTestWorkflow(t, nil)
	assert.Empty(t, te.wf.Args())
}

func TestOpen(t *testing.T) {
	te := newTestWorkflow(t, nil)
	te.proc.On("Call", []string{"open", "/tmp/x"}).Return(0, nil).Once()
	te.proc.On("Call", []string{"open", "/tmp/missing"}).Return(1, nil).Once()

	require.NoError(t, te.wf.Open("/tmp/x"))
	err := te.wf.Open("/tmp/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))

	te.proc.AssertExpectations(t)
}

func TestSendFeedback(t *testing.T) {
	te := newTestWorkflow(t, nil)
	te.wf.NewItem("First").Subtitle("one").Arg("1").Valid(true)
	te.wf.NewItem("Second")

	require.NoError(t, te.wf.SendFeedback())
	out := te.proc.stdout.String()
	assert.Contains(t, out, "<items>")
	assert.Contains(t, out, "<title>First</title>")
	assert.Contains(t, out, "<title>Second</title>")

	te.proc.stdout.Reset()
	require.NoError(t, te.wf.SendFeedback())
	assert.NotContains(t, te.proc.stdout.String(), "First")
}

func TestLoggerWritesLogFile(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(testDir, 0755))
	proc := &mockProcess{args: []string{"search"}}
	wf, err := workflow.New(
		workflow.WithEnviron(environ.Environ{environ.WorkflowBundleID: "net.example.log"}),
		workflow.WithFS(fsys),
		workflow.WithDir(testDir),
		workflow.WithPaths(paths.New(testHome)),
		workflow.WithProcess(proc),
	)
	require.NoError(t, err)

	logger := wf.Logger()
	logger.Info().Msg("hello from the workflow")
	require.NoError(t, wf.Close())

	path, err := wf.LogFile()
	require.NoError(t, err)
	assert.Equal(t, "net.example.log.log", filepath.Base(path))

	content, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the workflow")
	assert.Empty(t, proc.stderr.String())
}
