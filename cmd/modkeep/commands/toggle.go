package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <game> <mod-id>",
		Short: MsgEnableShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleMod(args[0], args[1], true)
		},
	}
}

func newDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <game> <mod-id>",
		Short: MsgDisableShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleMod(args[0], args[1], false)
		},
	}
}

func toggleMod(gameID, modID string, enabled bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	layout, err := a.layout(gameID)
	if err != nil {
		return err
	}

	mod, err := a.Registry.SetEnabled(gameID, modID, enabled)
	if err != nil {
		return err
	}
	if err := a.Registry.Save(); err != nil {
		return err
	}
	if err := a.syncManifest(gameID, layout); err != nil {
		pterm.Warning.Printfln("Loader profile not updated: %v", err)
	}

	if enabled {
		pterm.Success.Printfln("Enabled %s", mod.Name)
	} else {
		pterm.Success.Printfln("Disabled %s", mod.Name)
	}
	return nil
}
