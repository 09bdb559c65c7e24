package workflow_test

import (
	"testing"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	te := newTestWorkflow(t, nil, "query")
	te.proc.On("Exit", 0).Once()

	var got []string
	status := te.wf.Run(func(wf *workflow.Workflow) error {
		got = wf.Args()
		wf.NewItem("Result")
		return wf.SendFeedback()
	})

	assert.Equal(t, 0, status)
	assert.Equal(t, []string{"query"}, got)
	assert.Contains(t, te.proc.stdout.String(), "<title>Result</title>")
	assert.Empty(t, te.proc.stderr.String())
	te.proc.AssertExpectations(t)
}

func TestRunError(t *testing.T) {
	te := newTestWorkflow(t, nil)
	te.proc.On("Exit", 1).Once()

	status := te.wf.Run(func(wf *workflow.Workflow) error {
		wf.NewItem("Half done")
		return errors.New(errors.ErrInvalidInput, "bad query")
	})

	assert.Equal(t, 1, status)
	assert.Contains(t, te.proc.stderr.String(), "ERROR: [INVALID_INPUT] bad query")

	out := te.proc.stdout.String()
	assert.NotContains(t, out, "Half done")
	assert.Contains(t, out, "bad query")
	assert.Contains(t, out, "Error in workflow")
	assert.Contains(t, out, workflow.IconError)
	te.proc.AssertExpectations(t)
}

func TestRunQuietErrors(t *testing.T) {
	te := newTestWorkflow(t, nil)
	te.wf.Config().Options.QuietErrors = true
	te.proc.On("Exit", 1).Once()

	status := te.wf.Run(func(*workflow.Workflow) error {
		return errors.New(errors.ErrInternal, "boom")
	})

	assert.Equal(t, 1, status)
	assert.Contains(t, te.proc.stderr.String(), "boom")
	assert.Empty(t, te.proc.stdout.String())
}

func TestRunRecoversPanic(t *testing.T) {
	te := newTestWorkflow(t, nil)
	te.proc.On("Exit", 1).Once()

	status := te.wf.Run(func(*workflow.Workflow) error {
		panic("kaboom")
	})

	assert.Equal(t, 1, status)
	assert.Contains(t, te.proc.stderr.String(), "panic: kaboom")
	te.proc.AssertExpectations(t)
}

func TestMagicShortCircuitsRun(t *testing.T) {
	te := newTestWorkflow(t, nil, "workflow:version")
	te.proc.On("Exit", 0).Once()

	called := false
	status := te.wf.Run(func(*workflow.Workflow) error {
		called = true
		return nil
	})

	assert.Equal(t, 0, status)
	assert.False(t, called)
	assert.Equal(t, "Version: 1.2.0\n", te.proc.stdout.String())
}

func TestMagicUnknownArgumentPassesThrough(t *testing.T) {
	te := newTestWorkflow(t, nil, "workflow:nonsense")
	te.proc.On("Exit", 0).Once()

	called := false
	te.wf.Run(func(*workflow.Workflow) error {
		called = true
		return nil
	})
	assert.True(t, called)
}

func TestMagicDeleteActions(t *testing.T) {
	p := paths.New(testHome)

	t.Run("delcache", func(t *testing.T) {
		te := newTestWorkflow(t, nil, "workflow:delcache")
		require.NoError(t, te.wf.CacheData("c", 1))
		handled, msg, err := te.wf.HandleMagic()
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Equal(t, "Deleted workflow cache", msg)
		assert.False(t, filesystem.Exists(te.fs, p.CacheDir("net.example.search")))
	})

	t.Run("deldata", func(t *testing.T) {
		te := newTestWorkflow(t, nil, "workflow:deldata")
		require.NoError(t, te.wf.StoreData("d", 1))
		handled, _, err := te.wf.HandleMagic()
		require.NoError(t, err)
		assert.True(t, handled)
		assert.False(t, filesystem.Exists(te.fs, p.DataDir("net.example.search")))
	})

	t.Run("delsettings", func(t *testing.T) {
		te := newTestWorkflow(t, nil, "workflow:delsettings")
		s, err := te.wf.Settings()
		require.NoError(t, err)
		require.NoError(t, s.Set("a", "b"))
		handled, _, err := te.wf.HandleMagic()
		require.NoError(t, err)
		assert.True(t, handled)
		assert.False(t, filesystem.Exists(te.fs, s.Path()))
	})

	t.Run("reset", func(t *testing.T) {
		te := newTestWorkflow(t, nil, "workflow:reset")
		require.NoError(t, te.wf.StoreData("d", 1))
		require.NoError(t, te.wf.CacheData("c", 1))
		handled, msg, err := te.wf.HandleMagic()
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Equal(t, "Reset workflow", msg)
		assert.False(t, filesystem.Exists(te.fs, p.DataDir("net.example.search")))
		assert.False(t, filesystem.Exists(te.fs, p.CacheDir("net.example.search")))
	})
}

func TestMagicOpenActions(t *testing.T) {
	p := paths.New(testHome)
	tests := []struct {
		arg  string
		path string
	}{
		{"workflow:openworkflow", testDir},
		{"workflow:opendata", p.DataDir("net.example.search")},
		{"workflow:opencache", p.CacheDir("net.example.search")},
		{"workflow:openlog", p.CacheDir("net.example.search") + "/net.example.search.log"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			te := newTestWorkflow(t, nil, tt.arg)
			te.proc.On("Call", []string{"open", tt.path}).Return(0, nil).Once()

			handled, _, err := te.wf.HandleMagic()
			require.NoError(t, err)
			assert.True(t, handled)
			te.proc.AssertExpectations(t)
		})
	}
}

func TestRegisterMagic(t *testing.T) {
	te := newTestWorkflow(t, nil, "workflow:hello")
	te.wf.RegisterMagic(workflow.MagicAction{
		Keyword:     "hello",
		Description: "Say hello",
		Run: func(*workflow.Workflow) (string, error) {
			return "hi", nil
		},
	})

	handled, msg, err := te.wf.HandleMagic()
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "hi", msg)

	var keywords []string
	for _, a := range te.wf.MagicActions() {
		keywords = append(keywords, a.Keyword)
	}
	assert.Equal(t, []string{
		"delcache", "deldata", "delsettings", "hello", "magic",
		"opencache", "opendata", "openlog", "openworkflow", "reset", "version",
	}, keywords)
}

func TestRunLogsLogCloseFailure(t *testing.T) {
	te := newTestWorkflow(t, nil)
	proc := &mockProcess{args: []string{"search"}}
	proc.On("Exit", 0).Once()

	wf, err := workflow.New(
		workflow.WithEnviron(environ.Environ{environ.Debug: "1"}),
		workflow.WithFS(closeFailFS{te.fs}),
		workflow.WithDir(testDir),
		workflow.WithPaths(paths.New(testHome)),
		workflow.WithProcess(proc),
	)
	require.NoError(t, err)

	status := wf.Run(func(*workflow.Workflow) error { return nil })

	assert.Equal(t, 0, status)
	assert.Contains(t, proc.stderr.String(), "Failed to close workflow log")
	proc.AssertExpectations(t)
}
