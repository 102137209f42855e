package commands

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/inifile"
)

func newSetCmd() *cobra.Command {
	var fileName string

	cmd := &cobra.Command{
		Use:   "set <game> <mod-id> <key> <value>",
		Short: MsgSetShort,
		Long: MsgSetShort + `

Only the matching key's value is rewritten; comments, layout, and every
other line of the file are preserved byte for byte.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			gameID, modID, key, value := args[0], args[1], args[2], args[3]
			if _, err := a.layout(gameID); err != nil {
				return err
			}
			mod := a.Registry.Get(gameID, modID)
			if mod == nil {
				return errors.Newf(errors.ErrModNotFound, "mod not registered: %s", modID)
			}

			files, err := configFiles(mod)
			if err != nil {
				return err
			}
			if fileName != "" {
				files = filterByName(files, fileName)
			}

			for _, file := range files {
				if _, ok := inifile.ReadValue(file, key); !ok {
					continue
				}
				n, err := inifile.WriteValues(file, map[string]string{key: value})
				if err != nil {
					return err
				}
				if n > 0 {
					pterm.Success.Printfln("Set %s = %s in %s", key, value, filepath.Base(file))
					return nil
				}
			}
			return errors.Newf(errors.ErrConfigWrite, "key %q not found in any configuration file of %s", key, mod.Name)
		},
	}

	cmd.Flags().StringVar(&fileName, "file", "", "Restrict the change to the configuration file with this name")
	return cmd
}

func filterByName(files []string, name string) []string {
	var out []string
	for _, f := range files {
		if filepath.Base(f) == name {
			out = append(out, f)
		}
	}
	return out
}
