package heatmap

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/heatcal/pkg/calendar"
)

// DrawCell is a draw instruction for one day.
type DrawCell struct {
	Cell
	Bounds Rect
	Fill   colorful.Color
	// Interactive is true for days with events.
	Interactive bool
	// Highlighted marks the day under the pointer.
	Highlighted bool
	// Selected marks the pinned day.
	Selected bool
}

// LabelKind tells renderers how to style a label.
type LabelKind int

const (
	// LabelTitle is a period title such as "November 2024" or "2024".
	LabelTitle LabelKind = iota
	// LabelMonth names a month block in year view.
	LabelMonth
	// LabelWeekday is a weekday column header.
	LabelWeekday
)

// Label is a draw instruction for text.
type Label struct {
	Text string
	At   Point
	Kind LabelKind
	// Width is the space available to the label, 0 for unbounded.
	Width int
}

// Entry is one line of panel content.
type Entry struct {
	Title string
	Link  string
}

// Panel is the detail overlay for a day.
type Panel struct {
	Day     calendar.Day
	Pinned  bool
	Heading string
	Detail  string
	Entries []Entry
	Anchor  Point
}

// Renderer paints draw instructions. The engine drives one complete batch
// per cycle.
type Renderer interface {
	DrawGrid(cells []DrawCell)
	DrawLabel(label Label)
	DrawPanel(panel Panel)
	ClearPanel()
}

// FrameRenderer is implemented by renderers that buffer a cycle and swap it in
// at EndFrame so the previous output is replaced in one step.
type FrameRenderer interface {
	Renderer
	BeginFrame(bounds Rect)
	EndFrame()
}

// Frame is a complete batch of draw instructions.
type Frame struct {
	Bounds Rect
	Labels []Label
	Cells  []DrawCell
	Panel  *Panel
}

// Draw replays f onto r.
func (f Frame) Draw(r Renderer) {
	fr, buffered := r.(FrameRenderer)
	if buffered {
		fr.BeginFrame(f.Bounds)
	}
	for _, l := range f.Labels {
		r.DrawLabel(l)
	}
	r.DrawGrid(f.Cells)
	if f.Panel != nil {
		r.DrawPanel(*f.Panel)
	} else {
		r.ClearPanel()
	}
	if buffered {
		fr.EndFrame()
	}
}

// Discard is a Renderer that draws nothing.
var Discard Renderer = discard{}

type discard struct{}

func (discard) DrawGrid([]DrawCell) {}
func (discard) DrawLabel(Label)     {}
func (discard) DrawPanel(Panel)     {}
func (discard) ClearPanel()         {}
