package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modkeep/pkg/games"
	"github.com/arthur-debert/modkeep/pkg/version"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [game]",
		Short: MsgListShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ids := games.IDs()
			if len(args) == 1 {
				if _, err := a.layout(args[0]); err != nil {
					return err
				}
				ids = args[0:1]
			}

			for _, gameID := range ids {
				layout, _ := games.Get(gameID)
				if err := a.reconcile(gameID, layout); err != nil {
					return err
				}
				mods := a.Registry.GameMods(gameID)
				if len(mods) == 0 && len(args) == 0 {
					continue
				}

				pterm.DefaultSection.Printfln("%s (%s)", layout.Name, gameID)
				if len(mods) == 0 {
					pterm.Info.Println("No mods installed")
					continue
				}

				rows := pterm.TableData{{"ID", "NAME", "VERSION", "ENABLED", "PATH"}}
				for _, m := range mods {
					ver := m.Version
					if ver == "" && m.Resolved() {
						// Marker file first, then a version string embedded
						// in a native library.
						ver = version.ReadMarker(m.Path)
						if ver == "" {
							ver = version.GuessInstalled(m.Path, ".dll")
						}
					}
					if ver == "" {
						ver = "?"
					}
					enabled := "no"
					if m.Enabled {
						enabled = "yes"
					}
					path := m.Path
					if !m.Resolved() {
						path += " (missing)"
					}
					rows = append(rows, []string{m.ID, m.Name, ver, enabled, path})
				}
				if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
