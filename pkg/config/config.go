// Package config loads and persists modkeep's application configuration.
//
// Precedence, lowest to highest: built-in defaults, the config file in the
// modkeep config directory, MODKEEP_* environment variables. The engine
// itself never mutates configuration; Save is called by the CLI surface.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/paths"
)

// Config holds user-tunable application settings.
type Config struct {
	// ModsDir overrides the managed mod storage directory.
	ModsDir string `koanf:"mods_dir" toml:"mods_dir"`

	// LoaderPath is an explicit path to the external mod-loader executable.
	// Empty means "search the default locations".
	LoaderPath string `koanf:"loader_path" toml:"loader_path"`

	// UseLoader controls whether manifest synthesis runs after registry
	// mutations. Disabled for setups that manage loader profiles by hand.
	UseLoader bool `koanf:"use_loader" toml:"use_loader"`

	// GamesOverlay is an optional YAML file with extra game definitions.
	GamesOverlay string `koanf:"games_overlay" toml:"games_overlay"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"mods_dir":      "",
		"loader_path":   "",
		"use_loader":    true,
		"games_overlay": "",
	}
}

// Load reads the configuration, layering file and environment over defaults.
// A missing config file is not an error.
func Load(p *paths.Paths) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	cfgPath := p.ConfigFilePath()
	if _, err := os.Stat(cfgPath); err == nil {
		if err := k.Load(file.Provider(cfgPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", cfgPath)
		}
	}

	err := k.Load(env.Provider("MODKEEP_CFG_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "MODKEEP_CFG_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if cfg.ModsDir != "" {
		p.SetModsDir(cfg.ModsDir)
	}
	if cfg.GamesOverlay == "" {
		cfg.GamesOverlay = p.GamesOverlayPath()
	}

	return &cfg, nil
}

// Save writes the configuration to the config file, creating the
// config directory if needed.
func Save(p *paths.Paths, cfg *Config) error {
	if err := os.MkdirAll(p.ConfigDir(), 0755); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to create config directory")
	}

	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to marshal configuration")
	}

	if err := os.WriteFile(p.ConfigFilePath(), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", p.ConfigFilePath())
	}
	return nil
}
