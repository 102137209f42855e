// Test Type: Unit Test
package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

func TestFindExecutablePrefersConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, ExecutableName())
	require.NoError(t, os.WriteFile(exe, []byte("binary"), 0o755))

	found, err := FindExecutable(exe)
	require.NoError(t, err)
	assert.Equal(t, exe, found)
}

func TestFindExecutableIgnoresConfiguredDirectory(t *testing.T) {
	// A configured path pointing at a directory is not a usable binary;
	// the search falls through to the other locations.
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("PATH", "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	_, err := FindExecutable(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrLoaderMissing, errors.GetErrorCode(err))
}

func TestSearchDirFindsNestedBinary(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "me3-release", "bin")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	exe := filepath.Join(nested, ExecutableName())
	require.NoError(t, os.WriteFile(exe, []byte("binary"), 0o755))

	assert.Equal(t, exe, searchDir(dir))
	assert.Empty(t, searchDir(t.TempDir()))
}

func TestProfilePath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, ExecutableName())
	require.NoError(t, os.WriteFile(exe, []byte("binary"), 0o755))

	path, err := ProfilePath(exe, "eldenring")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "profiles", "modkeep_eldenring.toml"), path)
	assert.DirExists(t, filepath.Join(dir, "profiles"))
}
