// Package paths provides centralized path handling for modkeep.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvModsDir overrides the managed mods storage directory
	EnvModsDir = "MODKEEP_MODS_DIR"

	// EnvDataDir overrides the XDG data directory for modkeep
	EnvDataDir = "MODKEEP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for modkeep
	EnvConfigDir = "MODKEEP_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for modkeep
	EnvCacheDir = "MODKEEP_CACHE_DIR"
)

// Default directories and files
// IMPORTANT: These constants define modkeep's on-disk layout and are NOT
// user-configurable. The managed mods directory itself is configurable via
// pkg/config; everything nested below it is not.
const (
	// AppDirName is the directory name for modkeep-specific files
	AppDirName = "modkeep"

	// ModsDirName is the subdirectory holding managed per-game mod storage
	ModsDirName = "mods"

	// DownloadStagingDirName is the subdirectory used to stage downloaded archives
	DownloadStagingDirName = "_tmp"

	// RegistryFileName is the name of the persisted mod registry
	RegistryFileName = "registry.json"

	// ConfigFileName is the name of the app configuration file
	ConfigFileName = "config.toml"

	// GamesOverlayFileName is the optional user game-definition overlay
	GamesOverlayFileName = "games.yaml"
)

// Paths provides centralized path management for modkeep
type Paths struct {
	dataDir   string
	configDir string
	cacheDir  string
	modsDir   string
}

// New creates a Paths instance, honoring environment overrides.
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.dataDir = dir
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = dir
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	if dir := os.Getenv(EnvModsDir); dir != "" {
		p.modsDir = dir
	} else {
		p.modsDir = filepath.Join(p.dataDir, ModsDirName)
	}

	return p
}

// DataDir returns the modkeep data directory
func (p *Paths) DataDir() string { return p.dataDir }

// ConfigDir returns the modkeep configuration directory
func (p *Paths) ConfigDir() string { return p.configDir }

// CacheDir returns the modkeep cache directory
func (p *Paths) CacheDir() string { return p.cacheDir }

// ModsDir returns the root of managed mod storage
func (p *Paths) ModsDir() string { return p.modsDir }

// SetModsDir overrides the managed mods directory (from app configuration)
func (p *Paths) SetModsDir(dir string) {
	if dir != "" {
		p.modsDir = dir
	}
}

// GameModsDir returns the managed mod storage directory for one game
func (p *Paths) GameModsDir(gameID string) string {
	return filepath.Join(p.modsDir, gameID)
}

// ModDir returns the app-managed directory for one mod of one game.
// Per-mod metadata (the version marker file) lives here too.
func (p *Paths) ModDir(gameID, modID string) string {
	return filepath.Join(p.GameModsDir(gameID), modID)
}

// DownloadStagingDir returns the staging directory for in-flight archive downloads
func (p *Paths) DownloadStagingDir() string {
	return filepath.Join(p.modsDir, DownloadStagingDirName)
}

// RegistryPath returns the path of the persisted mod registry
func (p *Paths) RegistryPath() string {
	return filepath.Join(p.configDir, RegistryFileName)
}

// ConfigFilePath returns the path of the app configuration file
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// GamesOverlayPath returns the path of the optional game-definition overlay
func (p *Paths) GamesOverlayPath() string {
	return filepath.Join(p.configDir, GamesOverlayFileName)
}

// DownloadsDir returns the user's Downloads folder, used to scan for
// manually downloaded mod archives.
func DownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Downloads")
}
