package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modkeep/pkg/config"
	"github.com/arthur-debert/modkeep/pkg/errors"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: MsgConfigShort,
		Long: MsgConfigShort + `

Keys: mods_dir, loader_path, use_loader.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if len(args) < 2 {
				rows := pterm.TableData{
					{"KEY", "VALUE"},
					{"mods_dir", a.Config.ModsDir},
					{"loader_path", a.Config.LoaderPath},
					{"use_loader", strconv.FormatBool(a.Config.UseLoader)},
				}
				return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
			}

			key, value := args[0], args[1]
			switch key {
			case "mods_dir":
				a.Config.ModsDir = value
			case "loader_path":
				a.Config.LoaderPath = value
			case "use_loader":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return errors.Newf(errors.ErrInvalidInput, "use_loader wants true or false, got %q", value)
				}
				a.Config.UseLoader = b
			default:
				return errors.Newf(errors.ErrInvalidInput, "unknown configuration key: %s", key)
			}

			if err := config.Save(a.Paths, a.Config); err != nil {
				return err
			}
			pterm.Success.Printfln("Set %s = %s", key, value)
			return nil
		},
	}
}
