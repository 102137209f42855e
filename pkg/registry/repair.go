package registry

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/modkeep/pkg/games"
	"github.com/arthur-debert/modkeep/pkg/logging"
)

// Reconcile brings one game's records in line with the disk: it enriches a
// freshly migrated legacy entry with the game's layout, repoints a stale
// mod path at the game's marker directory, and registers an untracked
// on-disk install. Returns true when anything changed, so the caller knows
// to save.
func (r *Registry) Reconcile(gameID string, layout games.Layout, gameModsDir string) bool {
	logger := logging.GetLogger("registry")
	mods := r.GameMods(gameID)

	g, ok := r.Games[gameID]
	if !ok {
		g = r.Game(gameID)
	}
	markerDir := ""
	if g.InstallPath != "" && layout.MarkerRelative != "" {
		markerDir = filepath.Join(g.InstallPath, layout.MarkerRelative)
		if !isDir(markerDir) {
			markerDir = ""
		}
	}

	coopID := gameID + "-coop"
	changed := false
	var coop *Mod
	for _, m := range mods {
		if m.ID == coopID {
			coop = m
		}
	}

	if coop != nil {
		// A migrated entry carries no path or source reference yet.
		if coop.Path == "" {
			if layout.ModName != "" {
				coop.Name = layout.ModName
			}
			coop.NexusDomain = layout.NexusDomain
			coop.NexusModID = layout.NexusModID
			managed := filepath.Join(gameModsDir, coopID)
			switch {
			case isDir(managed):
				coop.Path = managed
			case markerDir != "":
				coop.Path = markerDir
			}
			changed = true
		}
		if !coop.Resolved() && markerDir != "" && coop.Path != markerDir {
			logger.Info().
				Str("game", gameID).
				Str("mod", coop.ID).
				Str("path", markerDir).
				Msg("Repaired stale mod path")
			coop.Path = markerDir
			changed = true
		}
		return changed
	}

	if markerDir == "" {
		return changed
	}

	// Mod files exist on disk but nothing tracks them.
	name := layout.ModName
	if name == "" {
		name = "Co-op Mod"
	}
	r.Upsert(gameID, &Mod{
		ID:          coopID,
		Name:        name,
		Path:        markerDir,
		NexusDomain: layout.NexusDomain,
		NexusModID:  layout.NexusModID,
		Enabled:     true,
	})
	logger.Info().Str("game", gameID).Str("path", markerDir).Msg("Auto-detected mod install on disk")
	return true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
