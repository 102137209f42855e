package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/games"
	"github.com/arthur-debert/modkeep/pkg/installer"
	"github.com/arthur-debert/modkeep/pkg/paths"
	"github.com/arthur-debert/modkeep/pkg/registry"
	"github.com/arthur-debert/modkeep/pkg/version"
)

func newInstallCmd() *cobra.Command {
	var (
		modName string
		gameDir string
	)

	cmd := &cobra.Command{
		Use:   "install <game> [archive]",
		Short: MsgInstallShort,
		Long: MsgInstallShort + `

Without an archive argument, the Downloads folder is scanned for the
newest archive matching the game's known mod filename pattern.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			gameID := args[0]
			layout, err := a.layout(gameID)
			if err != nil {
				return err
			}
			if gameDir != "" {
				a.Registry.Game(gameID).InstallPath = gameDir
			}

			archivePath, err := resolveArchive(args, layout)
			if err != nil {
				return err
			}
			return runInstall(a, gameID, layout, archivePath, modName)
		},
	}

	cmd.Flags().StringVar(&modName, "name", "", "Display name for the mod (defaults to the archive filename)")
	cmd.Flags().StringVar(&gameDir, "game-dir", "", "Record the game's install directory before installing")
	return cmd
}

// resolveArchive returns the explicit archive argument, or the newest
// Downloads-folder match for the game's filename pattern.
func resolveArchive(args []string, layout games.Layout) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	if layout.ArchivePattern == "" {
		return "", errors.New(errors.ErrArchiveNotFound, "no archive given and the game has no known download pattern")
	}
	found, err := installer.FindArchives(paths.DownloadsDir(), layout.ArchivePattern)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", errors.Newf(errors.ErrArchiveNotFound, "no archive matching %q in %s", layout.ArchivePattern, paths.DownloadsDir())
	}
	pterm.Info.Printfln("Using %s", found[0].Path)
	return found[0].Path, nil
}

func runInstall(a *app, gameID string, layout games.Layout, archivePath, modName string) error {
	if modName == "" {
		modName = displayNameFromArchive(archivePath)
	}

	target, modID, modPath, err := installTarget(a, gameID, layout, modName)
	if err != nil {
		return err
	}

	if existing := a.Registry.Get(gameID, modID); existing != nil && existing.Version != "" {
		latest := version.FromFilename(archivePath)
		if latest != "" && !version.HasUpdate(existing.Version, latest) {
			pterm.Info.Printfln("Installed version %s is already up to date, reinstalling", existing.Version)
		}
	}

	coordinator := installer.New(target)
	spinner, _ := pterm.DefaultSpinner.Start("Installing " + modName)
	coordinator.OnProgress(func(state installer.State, detail string) {
		if detail != "" {
			spinner.UpdateText(detail)
		}
	})
	result := coordinator.Install(archivePath)
	if result.Success {
		spinner.Success(result.Message)
	} else {
		spinner.Fail(result.Message)
	}
	renderSteps(result.Steps)
	if !result.Success {
		return fmt.Errorf("install failed: %s", result.Message)
	}

	if result.Version != "" {
		if err := version.WriteMarker(target.ScanRoot, result.Version); err != nil {
			pterm.Warning.Printfln("Could not write version marker: %v", err)
		}
	}

	mod := a.Registry.Get(gameID, modID)
	if mod == nil {
		mod = &registry.Mod{
			ID:          modID,
			Name:        modName,
			NexusDomain: layout.NexusDomain,
			NexusModID:  layout.NexusModID,
			Enabled:     true,
		}
	}
	mod.Path = modPath
	if result.Version != "" {
		mod.Version = result.Version
	}
	a.Registry.Upsert(gameID, mod)
	if err := a.Registry.Save(); err != nil {
		return err
	}

	if err := a.syncManifest(gameID, layout); err != nil {
		pterm.Warning.Printfln("Loader profile not updated: %v", err)
	}
	return nil
}

// installTarget computes where the archive lands. Managed games get a
// per-mod directory under modkeep's storage; legacy games extract into
// the game install itself, scanning the marker directory for configs.
func installTarget(a *app, gameID string, layout games.Layout, modName string) (installer.Target, string, string, error) {
	if layout.Managed() {
		modID := a.Registry.UniqueID(gameID, modName)
		if existing := findModByName(a.Registry, gameID, modName); existing != nil {
			modID = existing.ID
		}
		dir := a.Paths.ModDir(gameID, modID)
		return installer.SameRootTarget(dir), modID, dir, nil
	}

	installPath := a.Registry.Game(gameID).InstallPath
	if installPath == "" {
		return installer.Target{}, "", "", errors.Newf(errors.ErrGameNotFound,
			"no install directory recorded for %s; pass --game-dir", gameID)
	}
	extractRoot := installPath
	if layout.ExtractRelative != "" {
		extractRoot = filepath.Join(installPath, filepath.FromSlash(layout.ExtractRelative))
	}
	scanRoot := filepath.Join(installPath, filepath.FromSlash(layout.MarkerRelative))
	return installer.Target{ScanRoot: scanRoot, ExtractRoot: extractRoot}, gameID + "-coop", scanRoot, nil
}

func findModByName(reg *registry.Registry, gameID, name string) *registry.Mod {
	for _, m := range reg.GameMods(gameID) {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// displayNameFromArchive derives a readable mod name from the archive
// filename, dropping the extension and any trailing version token.
func displayNameFromArchive(archivePath string) string {
	base := filepath.Base(archivePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if v := version.FromFilename(filepath.Base(archivePath)); v != "" {
		base = strings.TrimRight(strings.TrimSuffix(base, v), " -_v.")
	}
	if base == "" {
		base = "Unnamed Mod"
	}
	return base
}

func renderSteps(steps []installer.StepResult) {
	for _, step := range steps {
		if step.Success {
			pterm.Success.Printfln("%-12s %s", step.Phase, step.Message)
		} else {
			pterm.Error.Printfln("%-12s %s", step.Phase, step.Message)
		}
	}
}
