package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/arthur-debert/modkeep/pkg/inifile"
	"github.com/arthur-debert/modkeep/pkg/installer"
	"github.com/arthur-debert/modkeep/pkg/registry"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings <game> <mod-id>",
		Short: MsgSettingsShort,
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

			files, err := configFiles(mod)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				pterm.Info.Printfln("%s has no configuration files", mod.Name)
				return nil
			}

			for _, file := range files {
				sections, err := inifile.ParseFile(file, layout.Defaults)
				if err != nil {
					pterm.Warning.Printfln("Could not parse %s: %v", file, err)
					continue
				}
				pterm.DefaultSection.Println(filepath.Base(file))
				renderSections(sections)
			}
			return nil
		},
	}
}

// configFiles collects the mod's configuration files, skipping the backup
// directory.
func configFiles(mod *registry.Mod) ([]string, error) {
	if !mod.Resolved() {
		return nil, errors.Newf(errors.ErrModNotFound, "mod files missing: %s", mod.Path)
	}

	var files []string
	err := filepath.WalkDir(mod.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == installer.BackupDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".ini") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func renderSections(sections []inifile.Section) {
	for _, section := range sections {
		pterm.DefaultBasicText.Println(pterm.Bold.Sprintf("[%s]", section.Name))
		rows := pterm.TableData{{"KEY", "VALUE", "TYPE", "DETAILS"}}
		for _, field := range section.Fields {
			value := field.Value
			if field.Secret {
				value = strings.Repeat("*", 8)
			}
			rows = append(rows, []string{field.Key, value, string(field.Type), fieldDetails(field)})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}
}

// fieldDetails summarizes the inferred metadata for display.
func fieldDetails(f inifile.Field) string {
	var parts []string
	if len(f.Options) > 0 {
		labels := make([]string, len(f.Options))
		for i, opt := range f.Options {
			labels[i] = fmt.Sprintf("%s=%s", opt.Value, opt.Label)
		}
		parts = append(parts, strings.Join(labels, ", "))
	}
	if f.Min != nil && f.Max != nil {
		parts = append(parts, fmt.Sprintf("range %d..%d", *f.Min, *f.Max))
	}
	if f.HasDefault {
		parts = append(parts, "default "+f.Default)
	}
	return strings.Join(parts, "; ")
}
