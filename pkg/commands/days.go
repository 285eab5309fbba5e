package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/commands/options"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/printers"
)

type dayRecord struct {
	Date   calendar.Day    `json:"date"`
	Count  int             `json:"count"`
	Events []heatmap.Event `json:"events"`
}

func dayRecords(b heatmap.Buckets) []dayRecord {
	out := make([]dayRecord, 0, len(b))
	for _, d := range b.Days() {
		rec := dayRecord{Date: d, Count: b.Count(d)}
		for _, ev := range b.Events(d) {
			rec.Events = append(rec.Events, *ev)
		}
		out = append(out, rec)
	}
	return out
}

func addDays(topLevel *cobra.Command, e *env) {
	po := &options.PeriodOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "days",
		Short: "list the days that have events",
		Example: `
heatcal days
heatcal days --year 2024 --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.HandleError(runDays(cmd, e, po, oo))
		},
	}
	options.AddPeriodArgs(cmd, po)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runDays(cmd *cobra.Command, e *env, po *options.PeriodOptions, oo *options.OutputOptions) error {
	p, err := po.Period()
	if err != nil {
		return err
	}
	events, _, err := e.events()
	if err != nil {
		return err
	}
	eng, err := e.engine(nil, events, p, heatmap.TextGeometry())
	if err != nil {
		return err
	}
	if oo.JSON {
		return options.WriteJSON(cmd.OutOrStdout(), dayRecords(eng.Buckets()))
	}
	printers.NewPrettyPrint(cmd.OutOrStdout(), printers.ColorAuto).Days(eng.Buckets())
	return nil
}
