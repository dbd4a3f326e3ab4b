package file

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "state")
	require.False(t, Exists(file))
	require.NoError(t, ioutil.WriteFile(file, []byte("{}"), 0600))
	require.True(t, Exists(file))
	require.True(t, Exists(dir))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir, 0700))
	require.True(t, Exists(dir))
	// Idempotent
	require.NoError(t, EnsureDir(dir, 0700))
}
