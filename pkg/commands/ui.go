package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/commands/options"
	"tableflip.dev/heatcal/pkg/heatmap"
	teaui "tableflip.dev/heatcal/pkg/tui/app"
)

func addUI(topLevel *cobra.Command, e *env) {
	po := &options.PeriodOptions{}
	watch := false

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive heatmap",
		Example: `
heatcal ui
heatcal ui --events posts.json --watch
heatcal ui --year 2024
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := po.Period()
			if err != nil {
				return err
			}
			events, src, err := e.events()
			if err != nil {
				return err
			}
			opts, yearView, err := e.engineOptions(p)
			if err != nil {
				return err
			}
			mode := heatmap.ModeMonth
			if yearView {
				mode = heatmap.ModeYear
			}
			return teaui.Run(teaui.Options{
				Source: src,
				Events: events,
				Engine: opts,
				Mode:   mode,
				Watch:  watch,
				Logger: e.log,
			})
		},
	}
	options.AddPeriodArgs(cmd, po)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Reload the event file when it changes.")

	topLevel.AddCommand(cmd)
}
