package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/csscolor/css"
)

func newConvertCmd(a *app) *cobra.Command {
	var copyResult bool

	cmd := &cobra.Command{
		Use:   "convert <literal> <color>",
		Short: "Write a color in the notation of an existing literal",
		Example: `  csscolor convert 'hsl(270grad, 60%, 70%)' '#85d18980'
  csscolor convert 'rgb(255 0 153 / 100%)' 'rgba(123, 45, 67, .5)' --copy`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := convert(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if copyResult {
				if err := clipboard.WriteAll(out); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				a.logger.Info("copied to clipboard", "value", out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "also copy the result to the clipboard")
	return cmd
}

// convert renders the color written as value in the style of literal.
func convert(literal, value string) (string, error) {
	_, style, err := css.Parse(literal)
	if err != nil {
		return "", err
	}
	c, _, err := css.Parse(value)
	if err != nil {
		return "", err
	}
	return css.Render(c, style, literal)
}
