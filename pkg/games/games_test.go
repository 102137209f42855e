// Test Type: Unit Test
// Description: Tests for the games package - layout registry and YAML overlay

package games_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modkeep/pkg/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLayouts(t *testing.T) {
	for _, id := range []string{"ac6", "dsr", "ds3", "er", "ern", "sekiro"} {
		l, ok := games.Get(id)
		require.True(t, ok, "missing builtin game %s", id)
		assert.Equal(t, id, l.ID)
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.ConfigRelative)
		assert.NotEmpty(t, l.MarkerRelative)
	}
}

func TestGetUnknown(t *testing.T) {
	_, ok := games.Get("doom")
	assert.False(t, ok)
}

func TestManaged(t *testing.T) {
	ac6, _ := games.Get("ac6")
	er, _ := games.Get("er")

	// AC6 extracts into the game tree; the rest use managed storage
	assert.False(t, ac6.Managed())
	assert.True(t, er.Managed())
}

func TestIDsSorted(t *testing.T) {
	ids := games.IDs()
	require.NotEmpty(t, ids)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestLoadOverlay(t *testing.T) {
	t.Cleanup(games.ResetOverlays)
	dir := t.TempDir()
	overlay := filepath.Join(dir, "games.yaml")
	content := `
bb:
  name: Bloodborne
  config_relative: Game/BBCoop/bb_settings.ini
  marker_relative: Game/BBCoop
  extract_relative: Game
  loader_game: bloodborne
`
	require.NoError(t, os.WriteFile(overlay, []byte(content), 0644))

	require.NoError(t, games.LoadOverlay(overlay))

	l, ok := games.Get("bb")
	require.True(t, ok)
	assert.Equal(t, "Bloodborne", l.Name)
	assert.Equal(t, "bloodborne", l.LoaderGame)
	assert.NotNil(t, l.Defaults)
}

func TestLoadOverlayDoesNotMutateBuiltins(t *testing.T) {
	t.Cleanup(games.ResetOverlays)
	dir := t.TempDir()
	overlay := filepath.Join(dir, "games.yaml")
	content := `
ac6:
  name: Renamed
  marker_relative: Game/Other
`
	require.NoError(t, os.WriteFile(overlay, []byte(content), 0644))
	require.NoError(t, games.LoadOverlay(overlay))

	l, ok := games.Get("ac6")
	require.True(t, ok)
	assert.Equal(t, "Renamed", l.Name)

	games.ResetOverlays()

	l, ok = games.Get("ac6")
	require.True(t, ok)
	assert.Equal(t, "Armored Core 6", l.Name)
}

func TestLoadOverlayMissingFile(t *testing.T) {
	assert.NoError(t, games.LoadOverlay(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestLoadOverlayBadYAML(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "games.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte(":\n  - ["), 0644))
	assert.Error(t, games.LoadOverlay(overlay))
}
