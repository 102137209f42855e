// Test Type: Unit Test
// Description: Tests for version extraction, comparison, and the marker file

package version_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modkeep/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.0.0", "1.0.0", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.10.0", "1.9.0", 1},
		{"1.9.0", "1.10.0", -1},
		{"1.2", "1.2.0", 0},
		{"2.0.0-beta", "2.0.0", 0},
		{"1.5", "1.5.1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.v1+"_vs_"+tt.v2, func(t *testing.T) {
			assert.Equal(t, tt.want, version.Compare(tt.v1, tt.v2))
		})
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"simple", "SeamlessCoop-v1.7.6.zip", "1.7.6"},
		{"uppercase prefix", "mod-V2.3.zip", "2.3"},
		{"last match wins", "mod-2.0-for-game-1.10.zip", "1.10"},
		{"four components", "tool-1.2.3.4.zip", "1.2.3.4"},
		{"no version", "seamlesscoop.zip", ""},
		{"full path", "/downloads/ersc-1.9.0.7z", "1.9.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, version.FromFilename(tt.filename))
		})
	}
}

func TestFromVersionFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.txt"), []byte("Seamless Co-op\n1.7.6\n"), 0644))

	assert.Equal(t, "1.7.6", version.FromVersionFile(dir))
}

func TestFromVersionFileMissing(t *testing.T) {
	assert.Empty(t, version.FromVersionFile(t.TempDir()))
}

func TestFromBinary(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "ersc.dll")
	payload := append(make([]byte, 100), []byte("FileVersion 1.7.6.2 ")...)
	require.NoError(t, os.WriteFile(lib, payload, 0644))

	parts, ok := version.FromBinary(lib)
	require.True(t, ok)
	assert.Equal(t, [4]int{1, 7, 6, 2}, parts)
	assert.Equal(t, "1.7.6.2", version.FormatBinary(parts))
}

func TestFromBinaryThreeComponents(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "mod.dll")
	require.NoError(t, os.WriteFile(lib, []byte("version 2.1.0 embedded"), 0644))

	parts, ok := version.FromBinary(lib)
	require.True(t, ok)
	assert.Equal(t, [4]int{2, 1, 0, 0}, parts)
	assert.Equal(t, "2.1.0", version.FormatBinary(parts))
}

func TestFromBinaryNoPattern(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "mod.dll")
	require.NoError(t, os.WriteFile(lib, []byte("no numbers here"), 0644))

	_, ok := version.FromBinary(lib)
	assert.False(t, ok)
}

func TestGuessInstalledPrefersVersionFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.5.0"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mod.dll"), []byte("v 9.9.9 "), 0644))

	assert.Equal(t, "1.5.0", version.GuessInstalled(dir, ".dll"))
}

func TestGuessInstalledFallsBackToBinary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mod.dll"), []byte("v 1.2.3 "), 0644))

	assert.Equal(t, "1.2.3", version.GuessInstalled(dir, ".dll"))
}

func TestHasUpdate(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		latest    string
		want      bool
	}{
		{"older installed", "1.0.0", "1.5.0", true},
		{"up to date", "1.5.0", "1.5.0", false},
		{"newer installed", "2.0.0", "1.5.0", false},
		{"unknown installed always offers", "", "1.5.0", true},
		{"unknown latest never offers", "1.0.0", "", false},
		{"both unknown", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, version.HasUpdate(tt.installed, tt.latest))
		})
	}
}

func TestMarkerRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "er", "er-coop")

	require.NoError(t, version.WriteMarker(dir, " 1.7.6 \n"))
	assert.Equal(t, "1.7.6", version.ReadMarker(dir))
}

func TestMarkerBlankVersionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, version.WriteMarker(dir, "  "))
	assert.Empty(t, version.ReadMarker(dir))
}
