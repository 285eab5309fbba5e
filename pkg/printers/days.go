package printers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
)

// Days lists every day with events, grouped by month, oldest first.
func (pp *PrettyPrint) Days(buckets heatmap.Buckets) {
	days := buckets.Days()
	if len(days) == 0 {
		f := color.New(color.Faint, color.Italic)
		pp.noColor(f)
		_, _ = f.Fprint(pp.Out, " none\n\n")
		return
	}

	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	pp.noColor(t, c)

	var tbl *uitable.Table
	var month calendar.Period
	flush := func() {
		if tbl != nil {
			_, _ = fmt.Fprintln(pp.Out, tbl)
			_, _ = fmt.Fprintln(pp.Out)
		}
	}
	for _, d := range days {
		if m := calendar.MonthOf(d); m != month || tbl == nil {
			flush()
			month = m
			total := 0
			for _, o := range days {
				if m.Contains(o) {
					total += buckets.Count(o)
				}
			}
			_, _ = t.Fprint(pp.Out, m.String())
			_, _ = c.Fprintf(pp.Out, " - %s\n", countLabel(total))

			tbl = uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.Wrap = true
			tbl.RightAlign(1)
		}
		titles := make([]string, 0, buckets.Count(d))
		for _, ev := range buckets.Events(d) {
			titles = append(titles, ev.Title)
		}
		tbl.AddRow(d.String(), strconv.Itoa(buckets.Count(d)), strings.Join(titles, ", "))
	}
	flush()
}

func countLabel(n int) string {
	if n == 1 {
		return "1 post"
	}
	return fmt.Sprintf("%d posts", n)
}
