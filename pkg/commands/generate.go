package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/sample"
	"tableflip.dev/heatcal/pkg/source"
)

func addGenerate(topLevel *cobra.Command, e *env) {
	so := sample.Options{}
	out := ""

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "write synthetic blog posts to use as an event file",
		Example: `
heatcal generate -o posts.json
heatcal generate --count 50 --year 2023 --seed 7 -o posts.yaml
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := source.FormatJSON
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := source.Detect(out)
				if err != nil {
					return err
				}
				format = f
			}
			if so.Year == 0 {
				so.Year = calendar.Today().Year
			}
			posts := sample.Posts(so)

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := source.Encode(w, format, posts); err != nil {
				return err
			}
			e.log.WithField("count", len(posts)).WithField("output", out).Info("sample posts written")
			return nil
		},
	}
	cmd.Flags().IntVarP(&so.Count, "count", "n", sample.DefaultCount, "Number of posts.")
	cmd.Flags().IntVar(&so.Year, "year", 0, "Year the posts fall in. Defaults to the current year.")
	cmd.Flags().Int64Var(&so.Seed, "seed", 0, "Random seed for repeatable output. Zero picks one from the clock.")
	cmd.Flags().StringVarP(&out, "output", "o", "",
		"Write to a file; .json or .yaml picks the encoding. Defaults to JSON on stdout.")

	topLevel.AddCommand(cmd)
}
