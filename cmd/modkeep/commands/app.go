package commands

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/modkeep/pkg/config"
	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/games"
	"github.com/arthur-debert/modkeep/pkg/loader"
	"github.com/arthur-debert/modkeep/pkg/logging"
	"github.com/arthur-debert/modkeep/pkg/manifest"
	"github.com/arthur-debert/modkeep/pkg/paths"
	"github.com/arthur-debert/modkeep/pkg/registry"
)

// app bundles the state every command needs: resolved directories, the
// user configuration, and the loaded mod registry.
type app struct {
	Paths    *paths.Paths
	Config   *config.Config
	Registry *registry.Registry
}

func newApp() (*app, error) {
	p := paths.New()
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	if err := games.LoadOverlay(cfg.GamesOverlay); err != nil {
		return nil, err
	}
	reg, err := registry.Load(p.RegistryPath())
	if err != nil {
		return nil, err
	}
	return &app{Paths: p, Config: cfg, Registry: reg}, nil
}

// layout resolves a game id against the built-in table plus overlay.
func (a *app) layout(gameID string) (games.Layout, error) {
	l, ok := games.Get(gameID)
	if !ok {
		return games.Layout{}, errors.Newf(errors.ErrGameNotFound, "unknown game: %s (known: %v)", gameID, games.IDs())
	}
	return l, nil
}

// reconcile repairs one game's registry records against the disk and
// persists the result when anything changed.
func (a *app) reconcile(gameID string, layout games.Layout) error {
	if a.Registry.Reconcile(gameID, layout, a.Paths.GameModsDir(gameID)) {
		return a.Registry.Save()
	}
	return nil
}

// syncManifest rewrites the loader profile for gameID from the enabled
// mods. Games the loader does not support, or a disabled loader
// integration, make this a no-op.
func (a *app) syncManifest(gameID string, layout games.Layout) error {
	logger := logging.GetLogger("commands")
	if !a.Config.UseLoader || layout.LoaderGame == "" {
		logger.Debug().Str("game", gameID).Msg("Loader integration disabled, skipping manifest")
		return nil
	}

	exe, err := loader.FindExecutable(a.Config.LoaderPath)
	if err != nil {
		return err
	}
	profilePath, err := loader.ProfilePath(exe, gameID)
	if err != nil {
		return err
	}

	var mods []manifest.Mod
	for _, m := range a.Registry.GameMods(gameID) {
		if m.Enabled && m.Resolved() {
			mods = append(mods, manifest.Mod{Name: m.Name, Path: m.Path})
		}
	}

	profile, silent := manifest.Classify(layout.LoaderGame, mods)
	for _, name := range silent {
		pterm.Warning.Printfln("%s has no native libraries or game assets and will not appear in the loader profile", name)
	}
	if err := manifest.Write(profilePath, profile); err != nil {
		return err
	}
	logger.Info().Str("game", gameID).Str("profile", profilePath).Msg("Rewrote loader profile")
	return nil
}
