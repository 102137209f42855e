package commands

// User-facing command descriptions.
const (
	MsgRootShort = "A mod installer and updater for FromSoftware games"
	MsgRootLong  = `modkeep installs, updates, and tracks game mods: it ingests mod
archives safely, preserves your tuned configuration values across updates,
and keeps the external mod loader's profile in sync with what is enabled.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	MsgInstallShort   = "Install or update a mod from an archive"
	MsgUninstallShort = "Remove a mod and its files"
	MsgListShort      = "List games and their installed mods"
	MsgEnableShort    = "Enable a mod and resync the loader profile"
	MsgDisableShort   = "Disable a mod and resync the loader profile"
	MsgSyncShort      = "Rewrite the loader profile for a game"
	MsgSettingsShort  = "Show a mod's configuration values with their inferred types"
	MsgSetShort       = "Change a value in a mod's configuration file"
	MsgConfigShort    = "Show or change modkeep's own settings"
	MsgVersionShort   = "Print version information"
)
