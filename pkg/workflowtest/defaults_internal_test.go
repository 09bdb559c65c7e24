package workflowtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInfoPlistTest_SourceTree(t *testing.T) {
	src, err := filepath.Abs("defaults.go")
	require.NoError(t, err)

	got := resolveInfoPlistTest(src)
	assert.Equal(t, filepath.Join(filepath.Dir(src), "testdata", "info.plist.test"), got)
}

func TestResolveInfoPlistTest_TrimmedPath(t *testing.T) {
	for _, src := range []string{"github.com/arthur-debert/alfredwf/pkg/workflowtest/defaults.go", ""} {
		got := resolveInfoPlistTest(src)
		assert.True(t, filepath.IsAbs(got))

		content, err := os.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, infoPlistTestData, content)
	}
}
