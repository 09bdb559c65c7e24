package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/workflowtest"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	lipgloss.SetColorProfile(termenv.Ascii)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "alfredwf version")
}

func TestInfoCommand(t *testing.T) {
	f := workflowtest.Use(t,
		workflowtest.WithDir(t.TempDir()),
		workflowtest.WithHome(t.TempDir()),
		workflowtest.WithVersion("3.1.0"),
	)

	out, err := execute(t, "info", f.Dir(), "--magic")
	require.NoError(t, err)

	assert.Contains(t, out, workflowtest.WorkflowName)
	assert.Contains(t, out, workflowtest.BundleID)
	assert.Contains(t, out, "3.1.0")
	assert.Contains(t, out, "Dean Jackson")
	assert.Contains(t, out, f.DataDir())
	assert.Contains(t, out, f.CacheDir())
	assert.Contains(t, out, "workflow:reset")

	// Nothing is created just by looking
	assert.False(t, filesystem.Exists(filesystem.NewOS(), f.DataDir()))
}

func TestInfoCommandReadme(t *testing.T) {
	f := workflowtest.Use(t,
		workflowtest.WithDir(t.TempDir()),
		workflowtest.WithHome(t.TempDir()),
	)

	out, err := execute(t, "info", f.Dir(), "--readme")
	require.NoError(t, err)
	assert.Contains(t, out, "Do not install")
}

func TestInfoCommandMissingPlist(t *testing.T) {
	_, err := execute(t, "info", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInfoPlistRead))
}

func TestEnvCommand(t *testing.T) {
	workflowtest.Use(t,
		workflowtest.WithDir(t.TempDir()),
		workflowtest.WithHome(t.TempDir()),
	)

	out, err := execute(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, environ.WorkflowBundleID)
	assert.Contains(t, out, workflowtest.BundleID)
	assert.Contains(t, out, workflowtest.WorkflowUID)
}

func TestEnvCommandEmpty(t *testing.T) {
	for _, k := range environ.LauncherVars {
		if _, ok := os.LookupEnv(k); ok {
			t.Setenv(k, "")
			require.NoError(t, os.Unsetenv(k))
		}
	}

	out, err := execute(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoLauncherVars)
}

func TestResetCommand(t *testing.T) {
	f := workflowtest.Use(t,
		workflowtest.WithDir(t.TempDir()),
		workflowtest.WithHome(t.TempDir()),
	)
	require.NoError(t, os.MkdirAll(f.DataDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.DataDir(), "settings.toml"), []byte("a = 1\n"), 0644))
	require.NoError(t, os.MkdirAll(f.CacheDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.CacheDir(), "results.json"), []byte("[]"), 0644))

	out, err := execute(t, "reset", f.Dir())
	require.NoError(t, err)
	assert.Contains(t, out, "Reset "+workflowtest.BundleID)

	fsys := filesystem.NewOS()
	assert.False(t, filesystem.Exists(fsys, filepath.Join(f.DataDir(), "settings.toml")))
	assert.False(t, filesystem.Exists(fsys, filepath.Join(f.CacheDir(), "results.json")))
}
