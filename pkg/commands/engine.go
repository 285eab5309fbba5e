package commands

import (
	"fmt"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/sample"
	"tableflip.dev/heatcal/pkg/source"
)

// events loads the configured event file. Without one it falls back to a
// year of sample posts so every command has something to show.
func (e *env) events() ([]heatmap.Event, *source.Source, error) {
	if e.cfg.Events == "" {
		year := calendar.Today().Year
		e.log.WithField("year", year).Warn("no event file configured, showing sample posts")
		return sample.Posts(sample.Options{Year: year}), nil, nil
	}
	src, err := e.cfg.Source(e.log)
	if err != nil {
		return nil, nil, err
	}
	events, err := src.Load()
	if err != nil {
		return nil, nil, err
	}
	return events, src, nil
}

// engineOptions resolves week start, palette and period. yearView is set
// when no period was asked for and the configured mode is year.
func (e *env) engineOptions(p calendar.Period) (opts heatmap.Options, yearView bool, err error) {
	opts = heatmap.DefaultOptions()
	if opts.WeekStart, err = e.cfg.Weeks(); err != nil {
		return opts, false, err
	}
	if opts.Palette, err = e.cfg.Palette(); err != nil {
		return opts, false, err
	}
	mode, err := e.cfg.ViewMode()
	if err != nil {
		return opts, false, err
	}
	opts.Period = p
	opts.Logger = e.log
	return opts, p == (calendar.Period{}) && mode == heatmap.ModeYear, nil
}

func (e *env) engine(r heatmap.Renderer, events []heatmap.Event, p calendar.Period, g heatmap.Geometry) (*heatmap.Engine, error) {
	opts, yearView, err := e.engineOptions(p)
	if err != nil {
		return nil, err
	}
	opts.Geometry = g
	eng, err := heatmap.New(r, events, opts)
	if err != nil {
		return nil, err
	}
	if yearView {
		eng.ShowYears()
	}
	return eng, nil
}

// pinDay pins the day written as s, clicking the centre of its cell.
func pinDay(eng *heatmap.Engine, s string) error {
	d, err := calendar.ParseDay(s)
	if err != nil {
		return err
	}
	for _, c := range eng.Frame().Cells {
		if c.Day != d {
			continue
		}
		if c.Count == 0 {
			return fmt.Errorf("no events on %s", d)
		}
		b := c.Bounds
		eng.Click(d, heatmap.Point{X: b.X + b.W/2, Y: b.Y + b.H/2})
		return nil
	}
	return fmt.Errorf("%s is outside %s", d, eng.Period())
}
