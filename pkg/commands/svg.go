package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/commands/options"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/svg"
)

func addSVG(topLevel *cobra.Command, e *env) {
	po := &options.PeriodOptions{}
	out := ""
	pin := ""

	cmd := &cobra.Command{
		Use:   "svg",
		Short: "write the heatmap as an SVG document",
		Example: `
heatcal svg -o november.svg --month 2024-11
heatcal svg --year 2024 --pin 2024-03-14 > 2024.svg
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := po.Period()
			if err != nil {
				return err
			}
			events, _, err := e.events()
			if err != nil {
				return err
			}

			r := svg.New(svg.DefaultOptions())
			eng, err := e.engine(r, events, p, heatmap.PixelGeometry())
			if err != nil {
				return err
			}
			if pin != "" {
				if err := pinDay(eng, pin); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if _, err := r.WriteTo(w); err != nil {
				return err
			}
			e.log.WithField("output", out).WithField("period", eng.Period().String()).Info("svg written")
			return nil
		},
	}
	options.AddPeriodArgs(cmd, po)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to a file instead of stdout.")
	cmd.Flags().StringVar(&pin, "pin", "",
		"Draw the pinned panel for a day, example: --pin=2024-11-08.")

	topLevel.AddCommand(cmd)
}
