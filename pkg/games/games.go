// Package games holds the per-game layout constants the install engine
// consumes: where configuration files live relative to the game install,
// where legacy single-mod installs land, and per-game defaults for
// configuration-field inference. The engine treats these as read-only.
package games

import "sort"

// Layout describes the canonical on-disk shape of one supported game.
type Layout struct {
	ID          string `koanf:"id" json:"id"`
	Name        string `koanf:"name" json:"name"`
	SteamAppID  int    `koanf:"steam_app_id" json:"steam_app_id"`
	SteamFolder string `koanf:"steam_folder" json:"steam_folder"`

	// ConfigRelative is the primary configuration file, relative to the
	// game install directory.
	ConfigRelative string `koanf:"config_relative" json:"config_relative"`

	// ExtractRelative is where legacy in-game-dir installs extract to,
	// relative to the game install directory.
	ExtractRelative string `koanf:"extract_relative" json:"extract_relative"`

	// MarkerRelative is the canonical legacy single-mod directory, relative
	// to the game install directory. It is the scan root for configuration
	// backup and the repair target for stale registry paths.
	MarkerRelative string `koanf:"marker_relative" json:"marker_relative"`

	// LauncherRelative is the mod's own launcher, relative to the game
	// install directory. Informational; the engine never runs it.
	LauncherRelative string `koanf:"launcher_relative" json:"launcher_relative"`

	// ModName is the display name of the game's canonical co-op mod.
	ModName string `koanf:"mod_name" json:"mod_name"`

	// NexusDomain and NexusModID locate the canonical mod on the remote
	// repository. Stored on registry entries; the engine never fetches.
	NexusDomain string `koanf:"nexus_domain" json:"nexus_domain"`
	NexusModID  int    `koanf:"nexus_mod_id" json:"nexus_mod_id"`

	// ArchivePattern matches downloaded archive filenames for this game's
	// canonical mod when scanning the Downloads folder.
	ArchivePattern string `koanf:"archive_pattern" json:"archive_pattern"`

	// LoaderGame is the game identifier known to the external mod loader.
	// Empty means the loader does not support this game.
	LoaderGame string `koanf:"loader_game" json:"loader_game"`

	// InstallInGameDir marks games whose mods extract into the game tree
	// (ExtractRelative/MarkerRelative) instead of managed per-mod storage.
	InstallInGameDir bool `koanf:"install_in_game_dir" json:"install_in_game_dir"`

	// Defaults are per-key default values used as the highest-precedence
	// source during configuration-field inference.
	Defaults map[string]string `koanf:"defaults" json:"defaults"`
}

// Managed reports whether this game's mods live in modkeep's managed
// per-mod storage (true) or inside the game directory itself (false).
func (l Layout) Managed() bool {
	return !l.InstallInGameDir
}

var builtin = map[string]Layout{
	"ac6": {
		ID:               "ac6",
		Name:             "Armored Core 6",
		SteamAppID:       1888160,
		SteamFolder:      "ARMORED CORE VI FIRES OF RUBICON",
		ConfigRelative:   "Game/AC6Coop/ac6_coop_settings.ini",
		ExtractRelative:  "Game",
		MarkerRelative:   "Game/AC6Coop",
		LauncherRelative: "Game/ac6_for_coop_launcher.exe",
		ModName:          "AC6 Seamless Co-op",
		NexusDomain:      "armoredcore6firesofrubicon",
		NexusModID:       3,
		ArchivePattern:   `armored\s*core.*co-?op.*\.zip$`,
		LoaderGame:       "armoredcore6",
		InstallInGameDir: true,
		Defaults: map[string]string{
			"enemy_health_scaling":          "100",
			"enemy_posture_scaling":         "100",
			"enemy_damage_scaling":          "0",
			"display_party_members":         "1",
			"enable_friendly_fire":          "0",
			"auto_mission_failure_on_death": "0",
			"allow_evil_guest":              "0",
			"mod_language_override":         "",
		},
	},
	"dsr": {
		ID:               "dsr",
		Name:             "Dark Souls Remastered",
		SteamAppID:       211420,
		SteamFolder:      "DARK SOULS REMASTERED",
		ConfigRelative:   "Game/SeamlessCoop/dsr_settings.ini",
		ExtractRelative:  "Game",
		MarkerRelative:   "Game/SeamlessCoop",
		LauncherRelative: "Game/dsr_launcher.exe",
		ModName:          "DSR Seamless Co-op",
		NexusDomain:      "darksoulsremastered",
		NexusModID:       899,
		ArchivePattern:   `ds1.*seamless.*co-?op.*\.zip$`,
		LoaderGame:       "darksoulsremastered",
		Defaults: map[string]string{
			"allow_invaders":          "1",
			"death_debuffs":           "1",
			"overhead_player_display": "2",
			"skip_intros":             "0",
			"enemy_health_scaling":    "35",
			"enemy_damage_scaling":    "0",
			"enemy_posture_scaling":   "15",
			"boss_health_scaling":     "100",
			"boss_damage_scaling":     "0",
			"boss_posture_scaling":    "20",
			"cooppassword":            "",
			"save_file_extension":     "co2",
			"mod_language_override":   "",
		},
	},
	"ds3": {
		ID:               "ds3",
		Name:             "Dark Souls III",
		SteamAppID:       374320,
		SteamFolder:      "DARK SOULS III",
		ConfigRelative:   "Game/SeamlessCoop/ds3sc_settings.ini",
		ExtractRelative:  "Game",
		MarkerRelative:   "Game/SeamlessCoop",
		LauncherRelative: "Game/ds3sc_launcher.exe",
		ModName:          "DS3 Seamless Co-op",
		NexusDomain:      "darksouls3",
		NexusModID:       1895,
		ArchivePattern:   `ds3.*seamless.*co-?op.*\.zip$`,
		LoaderGame:       "darksouls3",
		Defaults: map[string]string{
			"allow_invaders":        "1",
			"death_debuffs":         "1",
			"enemy_health_scaling":  "35",
			"enemy_damage_scaling":  "0",
			"enemy_posture_scaling": "15",
			"boss_health_scaling":   "100",
			"boss_damage_scaling":   "0",
			"boss_posture_scaling":  "20",
			"cooppassword":          "",
			"save_file_extension":   "co2",
			"mod_language_override": "",
		},
	},
	"er": {
		ID:               "er",
		Name:             "Elden Ring",
		SteamAppID:       1245620,
		SteamFolder:      "ELDEN RING",
		ConfigRelative:   "Game/SeamlessCoop/ersc_settings.ini",
		ExtractRelative:  "Game",
		MarkerRelative:   "Game/SeamlessCoop",
		LauncherRelative: "Game/ersc_launcher.exe",
		ModName:          "Elden Ring Seamless Co-op",
		NexusDomain:      "eldenring",
		NexusModID:       510,
		ArchivePattern:   `^(seamless|er\s+seamless|eldenring\s+seamless|elden\s+ring\s+seamless)\s+co-?op.*\.zip$`,
		LoaderGame:       "eldenring",
		Defaults: map[string]string{
			"allow_invaders":          "1",
			"death_debuffs":           "1",
			"allow_summons":           "1",
			"overhead_player_display": "0",
			"skip_splash_screens":     "1",
			"enemy_health_scaling":    "35",
			"enemy_damage_scaling":    "0",
			"enemy_posture_scaling":   "15",
			"boss_health_scaling":     "100",
			"boss_damage_scaling":     "0",
			"boss_posture_scaling":    "20",
			"cooppassword":            "",
			"save_file_extension":     "co2",
			"mod_language_override":   "",
		},
	},
	"ern": {
		ID:               "ern",
		Name:             "Elden Ring Nightreign",
		SteamAppID:       2778580,
		SteamFolder:      "ELDEN RING NIGHTREIGN",
		ConfigRelative:   "Game/SeamlessCoop/ersc_settings.ini",
		ExtractRelative:  "Game",
		MarkerRelative:   "Game/SeamlessCoop",
		LauncherRelative: "Game/ersc_launcher.exe",
		ModName:          "ER Nightreign Seamless Co-op",
		NexusDomain:      "eldenringnightreign",
		NexusModID:       3,
		ArchivePattern:   `nightreign.*seamless.*co-?op.*\.zip$`,
		LoaderGame:       "nightreign",
		Defaults: map[string]string{
			"allow_invaders":          "1",
			"death_debuffs":           "1",
			"allow_summons":           "1",
			"overhead_player_display": "0",
			"skip_splash_screens":     "1",
			"enemy_health_scaling":    "35",
			"enemy_damage_scaling":    "0",
			"enemy_posture_scaling":   "15",
			"boss_health_scaling":     "100",
			"boss_damage_scaling":     "0",
			"boss_posture_scaling":    "20",
			"cooppassword":            "",
			"save_file_extension":     "co2",
			"mod_language_override":   "",
		},
	},
	"sekiro": {
		ID:               "sekiro",
		Name:             "Sekiro: Shadows Die Twice",
		SteamAppID:       814380,
		SteamFolder:      "Sekiro",
		ConfigRelative:   "SeamlessCoop/sekiro_settings.ini",
		ExtractRelative:  "",
		MarkerRelative:   "SeamlessCoop",
		ModName:          "Sekiro Online",
		NexusDomain:      "sekiro",
		NexusModID:       584,
		ArchivePattern:   `sekiro.*online.*\.zip$`,
		LoaderGame:       "sekiro",
		Defaults:         map[string]string{},
	},
}

// overlays holds user-supplied definitions layered over the built-in
// table. The builtins themselves are never mutated.
var overlays = map[string]Layout{}

// Get returns the layout for a game id plus whether it is known. Overlay
// definitions shadow built-in ones.
func Get(gameID string) (Layout, bool) {
	if l, ok := overlays[gameID]; ok {
		return l, true
	}
	l, ok := builtin[gameID]
	return l, ok
}

// IDs returns the known game ids in sorted order.
func IDs() []string {
	seen := make(map[string]struct{}, len(builtin)+len(overlays))
	ids := make([]string, 0, len(builtin)+len(overlays))
	for id := range builtin {
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for id := range overlays {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// All returns every known layout keyed by game id. The returned map is a
// copy; mutating it does not affect the registry.
func All() map[string]Layout {
	out := make(map[string]Layout, len(builtin)+len(overlays))
	for id, l := range builtin {
		out[id] = l
	}
	for id, l := range overlays {
		out[id] = l
	}
	return out
}

// ResetOverlays discards all loaded overlay definitions, restoring the
// built-in table. Tests use it to keep loads from leaking across cases.
func ResetOverlays() {
	overlays = map[string]Layout{}
}
