package games

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/logging"
)

// LoadOverlay merges user-supplied game definitions from a YAML file into
// the registry. The file maps game ids to Layout fields; a definition whose
// id matches a built-in game replaces it wholesale. A missing file is not an
// error.
//
// Example:
//
//	mygame:
//	  name: My Game
//	  config_relative: Game/MyMod/settings.ini
//	  marker_relative: Game/MyMod
//	  loader_game: mygame
func LoadOverlay(path string) error {
	logger := logging.GetLogger("games")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat overlay %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse overlay %s", path)
	}

	var overlay map[string]Layout
	if err := k.Unmarshal("", &overlay); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid game definitions in %s", path)
	}

	for id, layout := range overlay {
		layout.ID = id
		if layout.Defaults == nil {
			layout.Defaults = map[string]string{}
		}
		overlays[id] = layout
		logger.Debug().Str("game", id).Str("name", layout.Name).Msg("Loaded game definition overlay")
	}

	return nil
}
