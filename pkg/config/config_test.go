// Test Type: Unit Test
// Description: Tests for the config package - load precedence and round trip

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modkeep/pkg/config"
	"github.com/arthur-debert/modkeep/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaths(t *testing.T) *paths.Paths {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv(paths.EnvDataDir, filepath.Join(dir, "data"))
	return paths.New()
}

func TestLoadDefaults(t *testing.T) {
	p := testPaths(t)

	cfg, err := config.Load(p)
	require.NoError(t, err)

	assert.Empty(t, cfg.ModsDir)
	assert.Empty(t, cfg.LoaderPath)
	assert.True(t, cfg.UseLoader)
	assert.Equal(t, p.GamesOverlayPath(), cfg.GamesOverlay)
}

func TestLoadFromFile(t *testing.T) {
	p := testPaths(t)
	require.NoError(t, os.MkdirAll(p.ConfigDir(), 0755))

	content := "mods_dir = \"/stash/mods\"\nloader_path = \"/opt/me3/me3\"\nuse_loader = false\n"
	require.NoError(t, os.WriteFile(p.ConfigFilePath(), []byte(content), 0644))

	cfg, err := config.Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/stash/mods", cfg.ModsDir)
	assert.Equal(t, "/opt/me3/me3", cfg.LoaderPath)
	assert.False(t, cfg.UseLoader)

	// A configured mods dir repoints the Paths instance
	assert.Equal(t, "/stash/mods", p.ModsDir())
}

func TestEnvOverridesFile(t *testing.T) {
	p := testPaths(t)
	require.NoError(t, os.MkdirAll(p.ConfigDir(), 0755))
	require.NoError(t, os.WriteFile(p.ConfigFilePath(), []byte("loader_path = \"/from/file\"\n"), 0644))

	t.Setenv("MODKEEP_CFG_LOADER_PATH", "/from/env")

	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.LoaderPath)
}

func TestSaveRoundTrip(t *testing.T) {
	p := testPaths(t)

	in := &config.Config{
		ModsDir:    "/stash/mods",
		LoaderPath: "/opt/me3/me3",
		UseLoader:  true,
	}
	require.NoError(t, config.Save(p, in))

	out, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, in.ModsDir, out.ModsDir)
	assert.Equal(t, in.LoaderPath, out.LoaderPath)
	assert.Equal(t, in.UseLoader, out.UseLoader)
}

func TestLoadBadFile(t *testing.T) {
	p := testPaths(t)
	require.NoError(t, os.MkdirAll(p.ConfigDir(), 0755))
	require.NoError(t, os.WriteFile(p.ConfigFilePath(), []byte("not = [valid"), 0644))

	_, err := config.Load(p)
	assert.Error(t, err)
}
