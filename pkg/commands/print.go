package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/commands/options"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/printers"
)

func addPrint(topLevel *cobra.Command, e *env) {
	po := &options.PeriodOptions{}
	co := &options.ColorOptions{}
	pin := ""

	cmd := &cobra.Command{
		Use:   "print",
		Short: "print the heatmap once",
		Example: `
heatcal print
heatcal print --month 2024-11 --pin 2024-11-08
heatcal print --year 2024 --color never
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := po.Period()
			if err != nil {
				return err
			}
			mode, err := co.Mode()
			if err != nil {
				return err
			}
			events, _, err := e.events()
			if err != nil {
				return err
			}

			pp := printers.NewPrettyPrint(cmd.OutOrStdout(), mode)
			c := pp.Canvas()
			eng, err := e.engine(c, events, p, heatmap.TextGeometry())
			if err != nil {
				return err
			}
			if pin != "" {
				if err := pinDay(eng, pin); err != nil {
					return err
				}
			}
			pp.Heatmap(c)
			return nil
		},
	}
	options.AddPeriodArgs(cmd, po)
	options.AddColorArg(cmd, co)
	cmd.Flags().StringVar(&pin, "pin", "",
		"List the events of a day below the grid, example: --pin=2024-11-08.")

	topLevel.AddCommand(cmd)
}
