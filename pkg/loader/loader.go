// Package loader locates the external mod-loader executable and the
// profile files it consumes. modkeep never invokes the loader; it only
// writes profiles where the loader will find them.
package loader

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

// Name is the loader's binary name without extension.
const Name = "me3"

const profilePrefix = "modkeep_"

// ExecutableName is the platform-specific loader binary name.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return Name + ".exe"
	}
	return Name
}

// DefaultInstallDir is where the loader's own installer unpacks it.
func DefaultInstallDir() string {
	return filepath.Join(xdg.DataHome, Name)
}

// FindExecutable searches for the loader binary: the configured path
// first, then the default install directory (directly, then recursively
// to cover archive layouts with a wrapping folder), then PATH.
func FindExecutable(configured string) (string, error) {
	if configured != "" && isFile(configured) {
		return configured, nil
	}

	installDir := DefaultInstallDir()
	direct := filepath.Join(installDir, ExecutableName())
	if isFile(direct) {
		return direct, nil
	}

	if found := searchDir(installDir); found != "" {
		return found, nil
	}

	if path, err := exec.LookPath(Name); err == nil {
		return path, nil
	}

	return "", errors.New(errors.ErrLoaderMissing, "mod loader executable not found")
}

// searchDir walks dir for the loader binary, returning the first hit.
func searchDir(dir string) string {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == ExecutableName() {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// ProfilesDir returns (and creates) the profiles directory next to the
// loader executable.
func ProfilesDir(exePath string) (string, error) {
	dir := filepath.Join(filepath.Dir(exePath), "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrManifestWrite, "failed to create profiles directory")
	}
	return dir, nil
}

// ProfilePath returns the per-game profile file path next to the loader
// executable, creating the profiles directory on the way.
func ProfilePath(exePath, gameID string) (string, error) {
	dir, err := ProfilesDir(exePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profilePrefix+gameID+".toml"), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
