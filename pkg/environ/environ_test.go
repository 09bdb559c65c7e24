package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPairs(t *testing.T) {
	env := FromPairs([]string{"A=1", "B=x=y", "NOEQUALS", "=bad", "EMPTY="})

	assert.Equal(t, Environ{"A": "1", "B": "x=y", "EMPTY": ""}, env)

	v, ok := env.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = env.Lookup("NOEQUALS")
	assert.False(t, ok)
}

func TestFromOS(t *testing.T) {
	t.Setenv("ALFREDWF_ENVIRON_TEST", "yes")
	assert.Equal(t, "yes", FromOS().Get("ALFREDWF_ENVIRON_TEST"))
}

func TestCopiesAreIndependent(t *testing.T) {
	base := Environ{"A": "1", "B": "2"}

	merged := base.Merge(map[string]string{"B": "3", "C": "4"})
	assert.Equal(t, Environ{"A": "1", "B": "3", "C": "4"}, merged)
	assert.Equal(t, Environ{"A": "1", "B": "2"}, base)

	without := base.Without("A", "missing")
	assert.Equal(t, Environ{"B": "2"}, without)
	assert.Len(t, base, 2)
}

func TestLauncher(t *testing.T) {
	env := Environ{
		WorkflowBundleID: "net.example",
		Version:          "2.4",
		"HOME":           "/home/me",
	}

	assert.Equal(t, Environ{WorkflowBundleID: "net.example", Version: "2.4"}, env.Launcher())
}

func TestPairsSorted(t *testing.T) {
	env := Environ{"b": "2", "a": "1", "c": ""}

	assert.Equal(t, []string{"a", "b", "c"}, env.Keys())
	assert.Equal(t, []string{"a=1", "b=2", "c="}, env.Pairs())
}

func TestLauncherVarsArePrefixed(t *testing.T) {
	assert.Len(t, LauncherVars, 12)
	for _, name := range LauncherVars {
		assert.Contains(t, name, Prefix)
	}
}
