package cmd

import (
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/csscolor/ui"
)

func newPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <file>",
		Short: "Edit the colors of a file with a desktop color picker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, err := a.fs.Stat(path)
			if err != nil {
				return err
			}

			load := func() (string, error) {
				data, err := afero.ReadFile(a.fs, path)
				return string(data), err
			}
			save := func(src string) error {
				a.logger.Debug("writing file", "file", path)
				return afero.WriteFile(a.fs, path, []byte(src), info.Mode().Perm())
			}

			picker, err := ui.NewPickerUI(fyneapp.NewWithID("io.github.chrisuehlinger.csscolor"), path, a.providerFor(path), load, save)
			if err != nil {
				return err
			}
			picker.Run()
			return nil
		},
	}
}
