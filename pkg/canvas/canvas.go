// Package canvas implements heatmap.FrameRenderer on a grid of terminal
// cells. A frame is drawn into a back buffer and becomes visible at EndFrame.
package canvas

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tableflip.dev/heatcal/pkg/heatmap"
)

// ASCIIShades is a shade ramp for output without colour. The first glyph
// marks days with no events.
const ASCIIShades = " .oO@"

// Style is the look of one cell. Colours are "#rrggbb"; empty means the
// terminal default.
type Style struct {
	FG        string
	BG        string
	Bold      bool
	Underline bool
}

// Cell is one terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Painter turns a run of equally styled text into terminal output.
type Painter interface {
	Paint(text string, st Style) string
}

// Plain drops all styling.
var Plain Painter = plain{}

type plain struct{}

func (plain) Paint(text string, _ Style) string { return text }

// Options tunes how cells are drawn.
type Options struct {
	// Shades, when set, replaces the last column of each day with a glyph
	// picked by intensity. Use it when colour is unavailable.
	Shades string
	// Colour disables fills when false.
	Colour bool
}

// Canvas is a double-buffered cell grid.
type Canvas struct {
	opts   Options
	shades []rune

	back  *buffer
	front *buffer
}

// New returns an empty canvas.
func New(opts Options) *Canvas {
	return &Canvas{
		opts:   opts,
		shades: []rune(opts.Shades),
		front:  &buffer{},
	}
}

var _ heatmap.FrameRenderer = (*Canvas)(nil)

// BeginFrame starts a fresh back buffer covering bounds.
func (c *Canvas) BeginFrame(bounds heatmap.Rect) {
	c.back = newBuffer(bounds.X+bounds.W, bounds.Y+bounds.H)
}

// EndFrame makes the back buffer visible.
func (c *Canvas) EndFrame() {
	if c.back == nil {
		return
	}
	c.front, c.back = c.back, nil
}

func (c *Canvas) target() *buffer {
	if c.back == nil {
		// Unbuffered use draws straight to the visible grid.
		return c.front
	}
	return c.back
}

// DrawLabel writes l. Titles are centred in their width.
func (c *Canvas) DrawLabel(l heatmap.Label) {
	text := l.Text
	st := Style{}
	x := l.At.X
	switch l.Kind {
	case heatmap.LabelTitle:
		st.Bold = true
		x += center(text, l.Width)
	case heatmap.LabelMonth:
		st.Underline = true
		x += center(text, l.Width)
	}
	if l.Width > 0 {
		text = truncate(text, l.Width)
	}
	c.target().write(x, l.At.Y, text, st)
}

// DrawGrid paints every day cell.
func (c *Canvas) DrawGrid(cells []heatmap.DrawCell) {
	b := c.target()
	for _, dc := range cells {
		st := Style{Bold: dc.Selected, Underline: dc.Highlighted && !c.opts.Colour}
		if c.opts.Colour {
			st.BG = dc.Fill.Hex()
			st.FG = heatmap.Contrast(dc.Fill).Hex()
		}
		r := dc.Bounds
		for y := r.Y; y < r.Y+r.H; y++ {
			b.write(r.X, y, strings.Repeat(" ", r.W), st)
		}
		b.write(r.X, r.Y, c.dayText(dc), st)
	}
}

func (c *Canvas) dayText(dc heatmap.DrawCell) string {
	w := dc.Bounds.W
	if w <= 1 {
		return string(c.marker(dc))
	}
	num := fmt.Sprintf("%*d", w-1, dc.Day.Day)
	if len(num) > w-1 {
		num = num[len(num)-(w-1):]
	}
	return num + string(c.marker(dc))
}

func (c *Canvas) marker(dc heatmap.DrawCell) rune {
	switch {
	case dc.Selected:
		return '*'
	case dc.Highlighted && !c.opts.Colour:
		return '+'
	case len(c.shades) == 0:
		return ' '
	case dc.Empty:
		return c.shades[0]
	}
	n := len(c.shades) - 1
	if n <= 0 {
		return c.shades[0]
	}
	i := 1 + int(dc.Intensity*float64(n-1)+0.5)
	if i > n {
		i = n
	}
	return c.shades[i]
}

// DrawPanel records p for the frame. Panels float over the grid, so the
// canvas keeps them aside for the caller to place.
func (c *Canvas) DrawPanel(p heatmap.Panel) {
	c.target().panel = &p
}

// ClearPanel drops the panel from the frame.
func (c *Canvas) ClearPanel() {
	c.target().panel = nil
}

// Panel is the panel of the visible frame, if any.
func (c *Canvas) Panel() (heatmap.Panel, bool) {
	if c.front.panel == nil {
		return heatmap.Panel{}, false
	}
	return *c.front.panel, true
}

// Size is the visible grid size in cells.
func (c *Canvas) Size() (int, int) {
	return c.front.w, c.front.h
}

// At returns the visible cell at x, y.
func (c *Canvas) At(x, y int) Cell {
	if y < 0 || y >= c.front.h || x < 0 || x >= c.front.w {
		return Cell{Rune: ' '}
	}
	return c.front.cells[y][x]
}

// Lines renders the visible grid one string per row.
func (c *Canvas) Lines(p Painter) []string {
	if p == nil {
		p = Plain
	}
	out := make([]string, 0, c.front.h)
	for _, row := range c.front.cells {
		var sb strings.Builder
		var run []rune
		var cur Style
		for i, cell := range row {
			if i > 0 && cell.Style != cur {
				sb.WriteString(p.Paint(string(run), cur))
				run = run[:0]
			}
			cur = cell.Style
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(p.Paint(string(run), cur))
		}
		out = append(out, sb.String())
	}
	return out
}

// String renders the visible grid with p.
func (c *Canvas) String(p Painter) string {
	return strings.Join(c.Lines(p), "\n")
}

type buffer struct {
	w, h  int
	cells [][]Cell
	panel *heatmap.Panel
}

func newBuffer(w, h int) *buffer {
	b := &buffer{}
	b.grow(w, h)
	return b
}

func (b *buffer) grow(w, h int) {
	if w > b.w {
		for y := range b.cells {
			for len(b.cells[y]) < w {
				b.cells[y] = append(b.cells[y], Cell{Rune: ' '})
			}
		}
		b.w = w
	}
	for b.h < h {
		row := make([]Cell, b.w)
		for x := range row {
			row[x] = Cell{Rune: ' '}
		}
		b.cells = append(b.cells, row)
		b.h++
	}
}

func (b *buffer) write(x, y int, text string, st Style) {
	if x < 0 || y < 0 {
		return
	}
	b.grow(x+utf8.RuneCountInString(text), y+1)
	for _, r := range text {
		b.cells[y][x] = Cell{Rune: r, Style: st}
		x++
	}
}

func center(text string, width int) int {
	n := utf8.RuneCountInString(text)
	if width <= n {
		return 0
	}
	return (width - n) / 2
}

func truncate(text string, width int) string {
	r := []rune(text)
	if len(r) <= width {
		return text
	}
	return string(r[:width])
}
