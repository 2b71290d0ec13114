package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/csscolor/css"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <index> <color>",
		Short: "Rewrite one color literal of a file in place",
		Long: `Replaces the index-th color literal of a file (as numbered by
"csscolor find") with the given color, keeping the literal's notation.`,
		Example: `  csscolor set site.css 2 '#7b2d43'`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			c, _, err := css.Parse(args[2])
			if err != nil {
				return err
			}

			src, refs, err := a.colorsIn(path)
			if err != nil {
				return err
			}
			if index < 1 || index > len(refs) {
				return fmt.Errorf("%s has %d colors, no color %d", path, len(refs), index)
			}
			ref := refs[index-1]

			rendered, err := a.providerFor(path).Render(ref, c)
			if err != nil {
				return err
			}
			updated, err := css.Replace(src, ref.Match(), rendered)
			if err != nil {
				return fmt.Errorf("set color: %w", err)
			}

			info, err := a.fs.Stat(path)
			if err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, path, []byte(updated), info.Mode().Perm()); err != nil {
				return err
			}

			line, col := lineCol(src, ref.Start)
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d %s -> %s\n", path, line, col, ref.Text, rendered)
			return nil
		},
	}
}
