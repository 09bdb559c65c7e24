package workflowtest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/paths"
)

// Values of the fixed test workflow. They match testdata/info.plist.test.
const (
	BundleID     = "net.deanishe.alfred-workflow"
	WorkflowName = "Alfred-Workflow Test"
)

// Launcher values injected by default.
const (
	PreferencesPath      = "Dropbox/Alfred/Alfred.alfredpreferences"
	PreferencesLocalHash = "adbd4f66bc3ae8493832af61a41ee609b20d8705"
	Theme                = "alfred.theme.yosemite"
	ThemeBackground      = "rgba(255,255,255,0.98)"
	ThemeSubtext         = "3"
	LauncherVersion      = "2.4"
	LauncherBuild        = "277"
	WorkflowUID          = "user.workflow.B0AC54EC-601C-479A-9428-01F9FD732959"
)

//go:embed testdata/info.plist.test
var infoPlistTestData []byte

// InfoPlistTest is the absolute path of the fixture bundle descriptor. When
// the package source is not on disk (a -trimpath build, a copied test
// binary) it points at a copy written under the temp directory.
var InfoPlistTest = resolveInfoPlistTest(callerFile())

func callerFile() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return file
}

func resolveInfoPlistTest(sourceFile string) string {
	if filepath.IsAbs(sourceFile) {
		path := filepath.Join(filepath.Dir(sourceFile), "testdata", "info.plist.test")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	logger := logging.GetLogger("workflowtest")
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("alfredwf-workflowtest-%d", os.Getpid()))
	path := filepath.Join(dir, "info.plist.test")
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Debug().Err(err).Msg("Cannot write fixture info.plist")
		return path
	}
	if err := os.WriteFile(path, infoPlistTestData, 0644); err != nil {
		logger.Debug().Err(err).Msg("Cannot write fixture info.plist")
	}
	return path
}

// DefaultEnviron returns the launcher variables of the test workflow with
// paths rooted at home.
func DefaultEnviron(home string) environ.Environ {
	p := paths.New(home)
	return environ.Environ{
		environ.Preferences:          filepath.Join(home, PreferencesPath),
		environ.PreferencesLocalHash: PreferencesLocalHash,
		environ.Theme:                Theme,
		environ.ThemeBackground:      ThemeBackground,
		environ.ThemeSubtext:         ThemeSubtext,
		environ.Version:              LauncherVersion,
		environ.VersionBuild:         LauncherBuild,
		environ.WorkflowBundleID:     BundleID,
		environ.WorkflowCache:        p.CacheDir(BundleID),
		environ.WorkflowData:         p.DataDir(BundleID),
		environ.WorkflowName:         WorkflowName,
		environ.WorkflowUID:          WorkflowUID,
	}
}

func userHome() string {
	if home, err := paths.HomeDir(); err == nil {
		return home
	}
	return os.TempDir()
}
