package installer

import (
	"os"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/logging"
)

// Uninstall deletes a mod's backing files: either the mod directory or a
// single native-library file. A path that is already gone is not an error.
// Registry removal and manifest rewrite are composed by the caller.
func Uninstall(path string) error {
	logger := logging.GetLogger("installer")

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("Mod path already removed")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrCleanFailed, "failed to inspect mod path: %s", path)
	}

	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrCleanFailed, "failed to delete mod files: %s", path)
	}
	logger.Info().Str("path", path).Bool("dir", info.IsDir()).Msg("Deleted mod files")
	return nil
}
