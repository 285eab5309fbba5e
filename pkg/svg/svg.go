// Package svg renders heatmap frames as standalone SVG documents.
package svg

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"tableflip.dev/heatcal/pkg/heatmap"
)

// Options styles the document.
type Options struct {
	FontFamily string
	FontSize   int
	Stroke     string
	// Margin is added around the frame bounds.
	Margin int
}

// DefaultOptions matches pixel geometry.
func DefaultOptions() Options {
	return Options{
		FontFamily: "Arial, sans-serif",
		FontSize:   16,
		Stroke:     "#ccc",
		Margin:     20,
	}
}

// Panel placement relative to its anchor, in pixels.
const (
	panelOffsetX = 10
	panelOffsetY = -10
	panelPadding = 10
)

// Renderer collects one frame and serializes it at EndFrame.
type Renderer struct {
	opts Options

	bounds heatmap.Rect
	labels []heatmap.Label
	cells  []heatmap.DrawCell
	panel  *heatmap.Panel

	doc string
}

var _ heatmap.FrameRenderer = (*Renderer)(nil)

// New returns an SVG renderer.
func New(opts Options) *Renderer {
	d := DefaultOptions()
	if opts.FontFamily == "" {
		opts.FontFamily = d.FontFamily
	}
	if opts.FontSize <= 0 {
		opts.FontSize = d.FontSize
	}
	if opts.Stroke == "" {
		opts.Stroke = d.Stroke
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) BeginFrame(bounds heatmap.Rect) {
	r.bounds = bounds
	r.labels, r.cells, r.panel = nil, nil, nil
}

func (r *Renderer) DrawLabel(l heatmap.Label)        { r.labels = append(r.labels, l) }
func (r *Renderer) DrawGrid(cells []heatmap.DrawCell) { r.cells = append(r.cells, cells...) }
func (r *Renderer) DrawPanel(p heatmap.Panel)         { r.panel = &p }
func (r *Renderer) ClearPanel()                       { r.panel = nil }

func (r *Renderer) EndFrame() {
	r.doc = r.build()
}

// Document is the last completed frame.
func (r *Renderer) Document() string {
	return r.doc
}

// WriteTo writes the last completed frame to w.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.doc)
	return int64(n), err
}

func (r *Renderer) build() string {
	o := r.opts
	width := r.bounds.X + r.bounds.W + o.Margin
	height := r.bounds.Y + r.bounds.H + o.Margin
	if r.panel != nil {
		pr := r.panelRect(*r.panel)
		if pr.X+pr.W > width {
			width = pr.X + pr.W
		}
		if pr.Y+pr.H > height {
			height = pr.Y + pr.H
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}.label{font-family:%s;font-size:%dpx;fill:#666}.day{font-family:%s;font-size:%dpx}.panel{font-family:%s;font-size:%dpx;fill:#333}</style>`+"\n",
		o.FontFamily, o.FontSize+8, o.FontFamily, o.FontSize-2, o.FontFamily, o.FontSize-4, o.FontFamily, o.FontSize-2))

	for _, l := range r.labels {
		r.writeLabel(&sb, l)
	}
	for _, c := range r.cells {
		r.writeCell(&sb, c)
	}
	if r.panel != nil {
		r.writePanel(&sb, *r.panel)
	}

	sb.WriteString(`</svg>` + "\n")
	return sb.String()
}

func (r *Renderer) writeLabel(sb *strings.Builder, l heatmap.Label) {
	class, anchor, x := "label", "start", l.At.X
	// Text is placed on its baseline.
	y := l.At.Y + r.opts.FontSize
	if l.Kind == heatmap.LabelTitle {
		class = "title"
		y += 8
	}
	if l.Width > 0 {
		anchor, x = "middle", l.At.X+l.Width/2
	}
	sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="%s" text-anchor="%s">%s</text>`+"\n",
		x, y, class, anchor, html.EscapeString(l.Text)))
}

func (r *Renderer) writeCell(sb *strings.Builder, c heatmap.DrawCell) {
	b := c.Bounds
	attrs := ""
	if c.Interactive {
		attrs += ` style="cursor:pointer"`
	}
	if c.Highlighted {
		attrs += ` data-highlighted="true"`
	}
	if c.Selected {
		attrs += ` data-selected="true"`
	}
	sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1" data-date="%s" data-count="%d"%s>`+"\n",
		b.X, b.Y, b.W, b.H, c.Fill.Hex(), r.opts.Stroke, c.Day, c.Count, attrs))
	if c.Count > 0 {
		sb.WriteString(fmt.Sprintf(`    <title>%s&#10;Date: %s</title>`+"\n", countLabel(c.Count), c.Day))
	}
	sb.WriteString(`  </rect>` + "\n")
	sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="day" fill="%s" pointer-events="none">%d</text>`+"\n",
		b.X+4, b.Y+r.opts.FontSize-2, heatmap.Contrast(c.Fill).Hex(), c.Day.Day))
}

func (r *Renderer) panelLines(p heatmap.Panel) []string {
	lines := []string{p.Heading, p.Detail}
	for _, e := range p.Entries {
		lines = append(lines, e.Title)
	}
	return lines
}

func (r *Renderer) panelRect(p heatmap.Panel) heatmap.Rect {
	lines := r.panelLines(p)
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	lineHeight := r.opts.FontSize + 4
	// Average glyph width is roughly 0.6em.
	w := longest*r.opts.FontSize*6/10 + 2*panelPadding
	h := len(lines)*lineHeight + 2*panelPadding
	x := p.Anchor.X + panelOffsetX
	y := p.Anchor.Y + panelOffsetY
	if y < 0 {
		y = 0
	}
	return heatmap.Rect{X: x, Y: y, W: w, H: h}
}

func (r *Renderer) writePanel(sb *strings.Builder, p heatmap.Panel) {
	pr := r.panelRect(p)
	lineHeight := r.opts.FontSize + 4
	kind := "hover"
	if p.Pinned {
		kind = "pinned"
	}
	sb.WriteString(fmt.Sprintf(`  <g class="panel" data-date="%s" data-state="%s">`+"\n", p.Day, kind))
	sb.WriteString(fmt.Sprintf(`    <rect x="%d" y="%d" width="%d" height="%d" rx="6" fill="#fff" stroke="#333" stroke-width="1"/>`+"\n",
		pr.X, pr.Y, pr.W, pr.H))

	x := pr.X + panelPadding
	y := pr.Y + panelPadding + r.opts.FontSize
	sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d" font-weight="bold">%s</text>`+"\n", x, y, html.EscapeString(p.Heading)))
	y += lineHeight
	sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d">%s</text>`+"\n", x, y, html.EscapeString(p.Detail)))
	for _, e := range p.Entries {
		y += lineHeight
		text := fmt.Sprintf(`<text x="%d" y="%d">%s</text>`, x, y, html.EscapeString(e.Title))
		if e.Link != "" {
			text = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(e.Link), text)
		}
		sb.WriteString("    " + text + "\n")
	}
	sb.WriteString(`  </g>` + "\n")
}

func countLabel(n int) string {
	if n == 1 {
		return "1 post"
	}
	return fmt.Sprintf("%d posts", n)
}
