package heatmap

import (
	"tableflip.dev/heatcal/pkg/calendar"
)

// MaxWeeks is the most grid rows any month can need.
const MaxWeeks = 6

// Cell is one day placed in a month grid. Row and Col are relative to the
// month's own origin.
type Cell struct {
	Day calendar.Day
	Row int
	Col int

	// Count is the number of events on Day.
	Count int
	// Intensity is the normalized count; meaningless when Empty.
	Intensity float64
	// Empty marks days with no events.
	Empty bool
}

// Block is the grid of a single month.
type Block struct {
	Month calendar.Period
	// Label is the month name shown above the block in year view.
	Label string
	// Offset is the column of the first day.
	Offset int
	// Weeks is the number of rows in use, 4 to 6.
	Weeks int
	Cells []Cell
}

// Layout returns one block per month of p, in calendar order. Every day of
// each month gets exactly one cell and each block restarts its row and column
// origin.
func Layout(p calendar.Period, ws calendar.WeekStart) []Block {
	months := p.Months()
	blocks := make([]Block, 0, len(months))
	for _, m := range months {
		blocks = append(blocks, layoutMonth(m, ws))
	}
	return blocks
}

func layoutMonth(m calendar.Period, ws calendar.WeekStart) Block {
	days := calendar.DaysIn(m.Year, m.Month)
	offset := ws.Offset(m.Year, m.Month)
	b := Block{
		Month:  m,
		Label:  m.Month.String(),
		Offset: offset,
		Weeks:  (offset + days + 6) / 7,
		Cells:  make([]Cell, 0, days),
	}
	for i := 0; i < days; i++ {
		d := calendar.Day{Year: m.Year, Month: m.Month, Day: i + 1}
		b.Cells = append(b.Cells, Cell{
			Day:   d,
			Row:   (i + offset) / 7,
			Col:   ws.Column(d.Weekday()),
			Empty: true,
		})
	}
	return b
}

// Shade fills Count, Intensity and Empty on every cell from buckets and scale.
func Shade(blocks []Block, buckets Buckets, scale Scale) {
	for bi := range blocks {
		cells := blocks[bi].Cells
		for ci := range cells {
			count := buckets.Count(cells[ci].Day)
			t, ok := scale.Intensity(count)
			cells[ci].Count = count
			cells[ci].Intensity = t
			cells[ci].Empty = !ok
		}
	}
}
