package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <game>",
		Short: MsgSyncShort,
		Args:  cobra.ExactArgs(1),
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
			if err := a.reconcile(gameID, layout); err != nil {
				return err
			}
			if err := a.syncManifest(gameID, layout); err != nil {
				return err
			}
			pterm.Success.Printfln("Loader profile for %s is up to date", gameID)
			return nil
		},
	}
}
