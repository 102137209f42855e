package version

import (
	"os"
	"path/filepath"
	"strings"
)

// MarkerFileName is the app-managed version marker written next to a mod's
// files. It is the source of truth when the registry's own version field is
// absent.
const MarkerFileName = "modkeep_version.txt"

// WriteMarker writes the resolved version string into the per-mod metadata
// directory, creating it if needed. A blank version writes nothing.
func WriteMarker(dir, version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MarkerFileName), []byte(version), 0644)
}

// ReadMarker reads the version marker back. Empty string when the marker is
// missing, unreadable, or blank.
func ReadMarker(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, MarkerFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
