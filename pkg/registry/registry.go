// Package registry persists the per-game mod lists as a JSON document.
// Loading migrates legacy single-mod records and repairs entries whose
// backing path has gone missing; saving rewrites the whole file.
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/logging"
)

// Mod is one installed mod's identity and state.
type Mod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Path        string `json:"path"`
	NexusDomain string `json:"nexus_domain"`
	NexusModID  int    `json:"nexus_mod_id"`
	Enabled     bool   `json:"enabled"`
}

// Resolved reports whether the mod's backing path exists on disk.
func (m *Mod) Resolved() bool {
	if m.Path == "" {
		return false
	}
	_, err := os.Stat(m.Path)
	return err == nil
}

// Game is one game's registry record.
type Game struct {
	InstallPath string `json:"install_path,omitempty"`
	Mods        []*Mod `json:"mods"`

	// Legacy single-mod fields, consumed by migration and dropped on
	// the next save.
	LegacyModInstalled bool   `json:"mod_installed,omitempty"`
	LegacyModVersion   string `json:"installed_mod_version,omitempty"`
}

// Registry is the full persisted document plus its file location.
type Registry struct {
	Games map[string]*Game `json:"games"`

	path string
}

// Load reads the registry at path. A missing file yields an empty
// registry bound to that path.
func Load(path string) (*Registry, error) {
	r := &Registry{Games: make(map[string]*Game), path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "failed to read registry: %s", path)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "failed to parse registry: %s", path)
	}
	if r.Games == nil {
		r.Games = make(map[string]*Game)
	}
	return r, nil
}

// Save rewrites the registry file.
func (r *Registry) Save() error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrRegistrySave, "failed to encode registry")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrRegistrySave, "failed to create registry directory")
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrRegistrySave, "failed to write registry: %s", r.path)
	}
	return nil
}

// Game returns the record for gameID, creating it when absent.
func (r *Registry) Game(gameID string) *Game {
	g, ok := r.Games[gameID]
	if !ok {
		g = &Game{}
		r.Games[gameID] = g
	}
	return g
}

// GameMods returns the mod list for gameID, running the legacy
// single-mod migration first when needed.
func (r *Registry) GameMods(gameID string) []*Mod {
	g, ok := r.Games[gameID]
	if !ok {
		return nil
	}
	r.migrateLegacy(gameID, g)
	return g.Mods
}

// Get returns the mod with the given id, or nil.
func (r *Registry) Get(gameID, modID string) *Mod {
	for _, m := range r.GameMods(gameID) {
		if m.ID == modID {
			return m
		}
	}
	return nil
}

// Upsert inserts the mod or replaces the existing entry with its id.
func (r *Registry) Upsert(gameID string, mod *Mod) {
	g := r.Game(gameID)
	for i, m := range g.Mods {
		if m.ID == mod.ID {
			g.Mods[i] = mod
			return
		}
	}
	g.Mods = append(g.Mods, mod)
}

// Remove deletes the mod with the given id. Returns false when absent.
func (r *Registry) Remove(gameID, modID string) bool {
	g, ok := r.Games[gameID]
	if !ok {
		return false
	}
	for i, m := range g.Mods {
		if m.ID == modID {
			g.Mods = append(g.Mods[:i], g.Mods[i+1:]...)
			return true
		}
	}
	return false
}

// SetEnabled toggles the mod with the given id. Returns the mod, or an
// error when it is not registered.
func (r *Registry) SetEnabled(gameID, modID string, enabled bool) (*Mod, error) {
	m := r.Get(gameID, modID)
	if m == nil {
		return nil, errors.Newf(errors.ErrModNotFound, "mod not registered: %s", modID).
			WithDetail("game", gameID)
	}
	m.Enabled = enabled
	return m, nil
}

// migrateLegacy converts the pre-multi-mod record shape, one boolean plus
// a version string, into a single synthetic mod entry.
func (r *Registry) migrateLegacy(gameID string, g *Game) {
	if g.Mods != nil || !g.LegacyModInstalled {
		return
	}
	logger := logging.GetLogger("registry")
	logger.Info().Str("game", gameID).Msg("Migrating legacy single-mod record")

	g.Mods = []*Mod{{
		ID:      gameID + "-coop",
		Name:    "Co-op Mod",
		Version: g.LegacyModVersion,
		Enabled: true,
	}}
	g.LegacyModInstalled = false
	g.LegacyModVersion = ""
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a mod name into a filesystem-safe id.
func Slugify(name string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// UniqueID slugifies name and suffixes it until it does not collide with
// an existing mod id for the game.
func (r *Registry) UniqueID(gameID, name string) string {
	base := Slugify(name)
	if base == "" {
		base = "mod"
	}
	id := base
	for n := 2; r.Get(gameID, id) != nil; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}
