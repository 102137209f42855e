package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/installer"
)

func newUninstallCmd() *cobra.Command {
	var keepFiles bool

	cmd := &cobra.Command{
		Use:   "uninstall <game> <mod-id>",
		Short: MsgUninstallShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			gameID, modID := args[0], args[1]
			layout, err := a.layout(gameID)
			if err != nil {
				return err
			}

			mod := a.Registry.Get(gameID, modID)
			if mod == nil {
				return errors.Newf(errors.ErrModNotFound, "mod not registered: %s", modID)
			}

			if !keepFiles && mod.Path != "" {
				if err := installer.Uninstall(mod.Path); err != nil {
					return err
				}
			}
			a.Registry.Remove(gameID, modID)
			if err := a.Registry.Save(); err != nil {
				return err
			}
			if err := a.syncManifest(gameID, layout); err != nil {
				pterm.Warning.Printfln("Loader profile not updated: %v", err)
			}
			pterm.Success.Printfln("Uninstalled %s", mod.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepFiles, "keep-files", false, "Remove the registry entry but leave the mod files on disk")
	return cmd
}
