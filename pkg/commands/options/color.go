package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/printers"
)

// ColorOptions
type ColorOptions struct {
	Color string
}

func AddColorArg(cmd *cobra.Command, o *ColorOptions) {
	cmd.Flags().StringVar(&o.Color, "color", string(printers.ColorAuto),
		"Colour output. One of auto, always or never.")
	_ = cmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// Mode validates the --color value.
func (o *ColorOptions) Mode() (printers.ColorMode, error) {
	switch m := printers.ColorMode(o.Color); m {
	case printers.ColorAuto, printers.ColorAlways, printers.ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("unknown --color %q, want auto, always or never", o.Color)
}
