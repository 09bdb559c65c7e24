package workflow_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Count int      `json:"count" yaml:"count" toml:"count"`
	Tags  []string `json:"tags" yaml:"tags" toml:"tags"`
}

func TestDirectories(t *testing.T) {
	t.Run("derived from bundle id", func(t *testing.T) {
		te := newTestWorkflow(t, nil)
		p := paths.New(testHome)

		dataDir, err := te.wf.DataDir()
		require.NoError(t, err)
		assert.Equal(t, p.DataDir("net.example.search"), dataDir)
		assert.True(t, filesystem.IsDir(te.fs, dataDir))

		cacheDir, err := te.wf.CacheDir()
		require.NoError(t, err)
		assert.Equal(t, p.CacheDir("net.example.search"), cacheDir)
		assert.True(t, filesystem.IsDir(te.fs, cacheDir))
	})

	t.Run("launcher values win", func(t *testing.T) {
		te := newTestWorkflow(t, environ.Environ{
			environ.WorkflowData:  "/custom/data",
			environ.WorkflowCache: "/custom/cache",
		})

		dataFile, err := te.wf.DataFile("x.json")
		require.NoError(t, err)
		assert.Equal(t, "/custom/data/x.json", dataFile)

		cacheFile, err := te.wf.CacheFile("y.json")
		require.NoError(t, err)
		assert.Equal(t, "/custom/cache/y.json", cacheFile)
	})

	t.Run("no bundle id", func(t *testing.T) {
		te := newTestWorkflow(t, nil)
		require.NoError(t, te.fs.Remove(te.wf.WorkflowFile("info.plist")))
		_, err := te.wf.DataDir()
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestStoreData(t *testing.T) {
	for _, name := range []string{"json", "yaml", "toml"} {
		t.Run(name, func(t *testing.T) {
			te := newTestWorkflow(t, nil)
			require.NoError(t, te.wf.SetSerializer(name))

			in := record{Name: "alpha", Count: 3, Tags: []string{"a", "b"}}
			require.NoError(t, te.wf.StoreData("records", in))

			path, err := te.wf.DataFile("records." + name)
			require.NoError(t, err)
			assert.True(t, filesystem.Exists(te.fs, path))
			assert.False(t, filesystem.Exists(te.fs, path+".tmp"))

			var out record
			found, err := te.wf.StoredData("records", &out)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, in, out)

			require.NoError(t, te.wf.StoreData("records", nil))
			found, err = te.wf.StoredData("records", &out)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStoreDataErrors(t *testing.T) {
	te := newTestWorkflow(t, nil)

	err := te.wf.SetSerializer("pickle")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSerializerUnknown))
	assert.Equal(t, "json", te.wf.Serializer())

	err = te.wf.StoreData("", 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	dataDir, err := te.wf.DataDir()
	require.NoError(t, err)
	require.NoError(t, te.fs.WriteFile(filepath.Join(dataDir, "broken.json"), []byte("{not json"), 0644))
	var out record
	_, err = te.wf.StoredData("broken", &out)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDataRead))
}

func TestCachedData(t *testing.T) {
	te := newTestWorkflow(t, nil)

	var out []string
	found, err := te.wf.CachedData("results", time.Minute, &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, te.wf.CachedDataFresh("results", time.Minute))

	require.NoError(t, te.wf.CacheData("results", []string{"one", "two"}))
	assert.True(t, te.wf.CachedDataFresh("results", time.Minute))

	found, err = te.wf.CachedData("results", time.Minute, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"one", "two"}, out)

	// Age the file past the limit
	path, err := te.wf.CacheFile("results.json")
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, te.fs.Chtimes(path, old, old))

	age, err := te.wf.CacheAge("results")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, age, time.Hour)

	assert.False(t, te.wf.CachedDataFresh("results", time.Minute))
	found, err = te.wf.CachedData("results", time.Minute, &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Zero max age with no configured default never expires
	assert.True(t, te.wf.CachedDataFresh("results", 0))

	te.wf.Config().Options.CacheMaxAge = time.Minute
	assert.False(t, te.wf.CachedDataFresh("results", 0))
}

func TestClearAndReset(t *testing.T) {
	te := newTestWorkflow(t, nil)

	require.NoError(t, te.wf.StoreData("kept", map[string]int{"a": 1}))
	require.NoError(t, te.wf.CacheData("cached", map[string]int{"b": 2}))
	settings, err := te.wf.Settings()
	require.NoError(t, err)
	require.NoError(t, settings.Set("theme", "dark"))

	dataDir, err := te.wf.DataDir()
	require.NoError(t, err)
	cacheDir, err := te.wf.CacheDir()
	require.NoError(t, err)

	require.NoError(t, te.wf.ClearCache())
	assert.False(t, filesystem.Exists(te.fs, filepath.Join(cacheDir, "cached.json")))
	assert.True(t, filesystem.Exists(te.fs, filepath.Join(dataDir, "kept.json")))

	require.NoError(t, te.wf.Reset())
	assert.False(t, filesystem.Exists(te.fs, filepath.Join(dataDir, "kept.json")))
	assert.False(t, filesystem.Exists(te.fs, filepath.Join(dataDir, "settings.toml")))

	settings, err = te.wf.Settings()
	require.NoError(t, err)
	assert.Equal(t, "light", settings.GetString("theme", "light"))
}

func TestSerializerFromOptions(t *testing.T) {
	te := newTestWorkflow(t, nil)
	require.NoError(t, te.fs.WriteFile(te.wf.WorkflowFile("workflow.toml"), []byte(`serializer = "yaml"`), 0644))

	te = reload(t, te)
	assert.Equal(t, "yaml", te.wf.Serializer())

	require.NoError(t, te.wf.StoreData("doc", record{Name: "x"}))
	path, err := te.wf.DataFile("doc.yaml")
	require.NoError(t, err)
	assert.True(t, filesystem.Exists(te.fs, path))
}
