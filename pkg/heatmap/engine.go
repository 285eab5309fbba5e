package heatmap

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"tableflip.dev/heatcal/pkg/calendar"
)

// Mode selects between the navigable month view and the year view.
type Mode int

const (
	// ModeMonth shows one month at a time.
	ModeMonth Mode = iota
	// ModeYear shows every month of one or more years.
	ModeYear
)

// String returns the config spelling of m.
func (m Mode) String() string {
	if m == ModeYear {
		return "year"
	}
	return "month"
}

// Options configures an Engine.
type Options struct {
	// Period is the starting period. The zero value means the month that
	// contains Now. A year period starts in year view.
	Period    calendar.Period
	WeekStart calendar.WeekStart
	Palette   Palette
	Geometry  Geometry
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

// DefaultOptions returns Monday-first, text geometry and the default palette.
func DefaultOptions() Options {
	return Options{
		WeekStart: calendar.Monday,
		Palette:   DefaultPalette(),
		Geometry:  TextGeometry(),
		Now:       time.Now,
	}
}

// Engine owns the displayed period, the interaction state and the derived
// grid. Every input change runs one synchronous render cycle.
//
// An Engine is not safe for concurrent use; feed it from one event loop.
type Engine struct {
	renderer Renderer
	log      logrus.FieldLogger
	now      func() time.Time
	ws       calendar.WeekStart
	palette  Palette
	geom     Geometry

	events []Event
	nav    *Navigator
	mode   Mode
	// year pins year view to one year; 0 spans the years in events.
	year int

	interaction Interaction
	view        view
	frame       Frame
}

type view struct {
	periods []calendar.Period
	buckets Buckets
	scale   Scale
	blocks  []Block
	labels  []Label
	cells   []DrawCell
	index   map[calendar.Day]int
	bounds  Rect
}

// New creates an engine over events and draws the first frame to r.
func New(r Renderer, events []Event, opts Options) (*Engine, error) {
	if r == nil {
		r = Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if opts.Geometry == (Geometry{}) {
		opts.Geometry = TextGeometry()
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette()
	}

	e := &Engine{
		renderer: r,
		log:      opts.Logger,
		now:      opts.Now,
		ws:       opts.WeekStart,
		palette:  opts.Palette,
		geom:     opts.Geometry,
		events:   events,
	}

	start := opts.Period
	if start == (calendar.Period{}) {
		start = calendar.MonthOf(calendar.DayOf(e.now()))
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("heatmap: start period: %w", err)
	}
	month := start
	if start.IsYear() {
		e.mode, e.year = ModeYear, start.Year
		month = calendar.MonthOf(calendar.DayOf(e.now()))
	}
	nav, err := NewNavigator(month)
	if err != nil {
		return nil, fmt.Errorf("heatmap: start period: %w", err)
	}
	e.nav = nav

	e.rebuild()
	e.render()
	return e, nil
}

// SetEvents replaces the event list. Any hover or pin is dropped.
func (e *Engine) SetEvents(events []Event) {
	e.events = events
	e.interaction.Reset()
	e.rebuild()
	e.log.WithFields(logrus.Fields{
		"events":  len(events),
		"buckets": len(e.view.buckets),
	}).Debug("heatmap: events replaced")
	e.render()
}

// SetPeriod shows p. A month period selects month view; a year period pins
// year view to that year.
func (e *Engine) SetPeriod(p calendar.Period) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsYear() {
		e.mode, e.year = ModeYear, p.Year
	} else {
		if err := e.nav.Set(p); err != nil {
			return err
		}
		e.mode = ModeMonth
	}
	e.periodChanged()
	return nil
}

// ShowYears switches to year view over every year that has events.
func (e *Engine) ShowYears() {
	e.mode, e.year = ModeYear, 0
	e.periodChanged()
}

// ShowMonth switches back to month view at the last navigated month.
func (e *Engine) ShowMonth() {
	if e.mode == ModeMonth {
		return
	}
	e.mode = ModeMonth
	e.periodChanged()
}

// Today shows the month that contains the current date.
func (e *Engine) Today() error {
	return e.SetPeriod(calendar.MonthOf(calendar.DayOf(e.now())))
}

// Next moves to the following month. Year view has nothing to navigate.
func (e *Engine) Next() calendar.Period {
	if e.mode == ModeMonth {
		e.nav.Next()
		e.periodChanged()
	}
	return e.Period()
}

// Previous moves to the preceding month. Year view has nothing to navigate.
func (e *Engine) Previous() calendar.Period {
	if e.mode == ModeMonth {
		e.nav.Previous()
		e.periodChanged()
	}
	return e.Period()
}

func (e *Engine) periodChanged() {
	e.interaction.Reset()
	e.rebuild()
	e.log.WithFields(logrus.Fields{
		"mode":   e.mode.String(),
		"period": e.Period().String(),
	}).Debug("heatmap: period changed")
	e.render()
}

// PointerEnter reports the pointer over day at screen position at.
func (e *Engine) PointerEnter(day calendar.Day, at Point) {
	if _, ok := e.view.index[day]; !ok {
		return
	}
	if e.interaction.PointerEnter(day, e.view.buckets.Count(day), at) {
		e.render()
	}
}

// PointerMove reports pointer motion within the hovered cell.
func (e *Engine) PointerMove(at Point) {
	if e.interaction.PointerMove(at) {
		e.render()
	}
}

// PointerLeave reports the pointer leaving the cell it was over.
func (e *Engine) PointerLeave() {
	if e.interaction.PointerLeave() {
		e.render()
	}
}

// Click reports a click on day at screen position at.
func (e *Engine) Click(day calendar.Day, at Point) {
	if _, ok := e.view.index[day]; !ok {
		return
	}
	if e.interaction.Click(day, e.view.buckets.Count(day), at) {
		e.log.WithField("day", day.String()).Debug("heatmap: day pinned")
		e.render()
	}
}

// ClickOutside reports a click that hit neither a day nor the panel.
func (e *Engine) ClickOutside() {
	if e.interaction.ClickOutside() {
		e.log.Debug("heatmap: panel dismissed")
		e.render()
	}
}

// HitTest finds the day whose cell contains pt.
func (e *Engine) HitTest(pt Point) (calendar.Day, bool) {
	for _, c := range e.view.cells {
		if c.Bounds.Contains(pt) {
			return c.Day, true
		}
	}
	return calendar.Day{}, false
}

// Mode is the current view mode.
func (e *Engine) Mode() Mode { return e.mode }

// Period is the displayed month, or the first displayed year in year view.
func (e *Engine) Period() calendar.Period {
	if e.mode == ModeMonth {
		return e.nav.Current()
	}
	if len(e.view.periods) > 0 {
		return e.view.periods[0]
	}
	return calendar.Period{Year: e.year}
}

// Periods lists everything on screen: one month, or years newest first.
func (e *Engine) Periods() []calendar.Period { return e.view.periods }

// State is the interaction state.
func (e *Engine) State() State { return e.interaction.State() }

// Events is the current event list.
func (e *Engine) Events() []Event { return e.events }

// Buckets are the per-day groups for the displayed periods.
func (e *Engine) Buckets() Buckets { return e.view.buckets }

// Scale is the colour scale for the displayed periods.
func (e *Engine) Scale() Scale { return e.view.scale }

// Blocks are the month grids for the displayed periods.
func (e *Engine) Blocks() []Block { return e.view.blocks }

// Frame is the last batch handed to the renderer.
func (e *Engine) Frame() Frame { return e.frame }

// Bounds is the screen area covered by the grid and its labels.
func (e *Engine) Bounds() Rect { return e.view.bounds }

// WeekStart is the column convention in use.
func (e *Engine) WeekStart() calendar.WeekStart { return e.ws }

// Render redraws the current state.
func (e *Engine) Render() { e.render() }

func (e *Engine) displayed() []calendar.Period {
	if e.mode == ModeMonth {
		return []calendar.Period{e.nav.Current()}
	}
	if e.year != 0 {
		return []calendar.Period{{Year: e.year}}
	}
	years := YearsFor(e.events)
	if len(years) == 0 {
		years = []int{calendar.DayOf(e.now()).Year}
	}
	periods := make([]calendar.Period, 0, len(years))
	for _, y := range years {
		periods = append(periods, calendar.Period{Year: y})
	}
	return periods
}

func (e *Engine) rebuild() {
	v := view{periods: e.displayed()}
	v.buckets = Aggregate(e.events, v.periods...)
	v.scale = NewScale(v.buckets.Counts(), e.palette)
	v.index = make(map[calendar.Day]int)

	g := e.geom
	bw, bh := g.BlockSize()
	origin := g.Origin

	if e.mode == ModeMonth {
		p := v.periods[0]
		blocks := Layout(p, e.ws)
		Shade(blocks, v.buckets, v.scale)
		v.labels = append(v.labels, Label{Text: p.String(), At: origin, Kind: LabelTitle, Width: bw})
		e.placeBlock(&v, blocks[0], origin)
		v.blocks = blocks
		v.bounds = Rect{X: origin.X, Y: origin.Y, W: bw, H: bh}
		e.view = v
		return
	}

	yw, yh := g.YearSize()
	for i, p := range v.periods {
		yo := Point{X: origin.X, Y: origin.Y + i*(yh+g.BlockGapY)}
		v.labels = append(v.labels, Label{Text: p.String(), At: yo, Kind: LabelTitle, Width: yw})
		blocks := Layout(p, e.ws)
		Shade(blocks, v.buckets, v.scale)
		for bi, b := range blocks {
			bo := g.BlockOrigin(yo, bi)
			v.labels = append(v.labels, Label{Text: b.Label, At: bo, Kind: LabelMonth, Width: bw})
			e.placeBlock(&v, b, bo)
		}
		v.blocks = append(v.blocks, blocks...)
	}
	n := len(v.periods)
	v.bounds = Rect{X: origin.X, Y: origin.Y, W: yw, H: n*yh + (n-1)*g.BlockGapY}
	e.view = v
}

func (e *Engine) placeBlock(v *view, b Block, origin Point) {
	g := e.geom
	header := g.HeaderOrigin(origin)
	for col, name := range e.ws.Headers() {
		v.labels = append(v.labels, Label{
			Text:  name,
			At:    Point{X: g.ColumnX(origin, col), Y: header.Y},
			Kind:  LabelWeekday,
			Width: g.CellWidth,
		})
	}
	for _, c := range b.Cells {
		v.index[c.Day] = len(v.cells)
		v.cells = append(v.cells, DrawCell{
			Cell:        c,
			Bounds:      g.CellRect(origin, c),
			Fill:        v.scale.Color(c.Count),
			Interactive: c.Count > 0,
		})
	}
}

func (e *Engine) buildFrame() Frame {
	cells := make([]DrawCell, len(e.view.cells))
	copy(cells, e.view.cells)

	if hot, ok := e.interaction.Hot(); ok {
		if i, found := e.view.index[hot]; found {
			cells[i].Highlighted = true
			cells[i].Fill = e.palette.Hover
		}
	}

	f := Frame{Bounds: e.view.bounds, Labels: e.view.labels, Cells: cells}

	st := e.interaction.State()
	if st.Kind == Pinned {
		if i, found := e.view.index[st.Day]; found {
			cells[i].Selected = true
		}
	}
	if st.Kind != Idle {
		p := e.panel(st)
		f.Panel = &p
	}
	return f
}

func (e *Engine) panel(st State) Panel {
	events := e.view.buckets.Events(st.Day)
	p := Panel{
		Day:    st.Day,
		Pinned: st.Kind == Pinned,
		Anchor: e.interaction.Anchor(),
	}
	if !p.Pinned {
		p.Heading = countLabel(len(events))
		p.Detail = "Date: " + st.Day.String()
		return p
	}
	p.Heading = st.Day.String()
	p.Detail = countLabel(len(events))
	p.Entries = make([]Entry, 0, len(events))
	for _, ev := range events {
		p.Entries = append(p.Entries, Entry{Title: ev.Title, Link: ev.Link})
	}
	return p
}

func countLabel(n int) string {
	if n == 1 {
		return "1 post"
	}
	return fmt.Sprintf("%d posts", n)
}

func (e *Engine) render() {
	e.frame = e.buildFrame()
	e.frame.Draw(e.renderer)
}
