package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/heatcal/pkg/canvas"
	"tableflip.dev/heatcal/pkg/heatmap"
)

// ColorMode chooses between coloured and plain output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// PrettyPrint writes heatmaps and day listings for humans.
type PrettyPrint struct {
	Out    io.Writer
	Colour bool

	term *termenv.Output
}

// NewPrettyPrint prepares output to w. In auto mode colour is used when w is
// a terminal.
func NewPrettyPrint(w io.Writer, mode ColorMode) *PrettyPrint {
	colour := false
	switch mode {
	case ColorAlways:
		colour = true
	case ColorNever:
	default:
		if f, ok := w.(*os.File); ok {
			colour = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	pp := &PrettyPrint{Out: w, Colour: colour}
	if !colour {
		pp.term = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	} else if mode == ColorAlways {
		pp.term = termenv.NewOutput(w, termenv.WithProfile(termenv.TrueColor))
	} else {
		pp.term = termenv.NewOutput(w)
	}
	return pp
}

// Canvas returns a canvas suited to this printer: colour fills on a colour
// terminal, a shade ramp otherwise.
func (pp *PrettyPrint) Canvas() *canvas.Canvas {
	if pp.Colour {
		return canvas.New(canvas.Options{Colour: true})
	}
	return canvas.New(canvas.Options{Shades: canvas.ASCIIShades})
}

// Painter paints canvas runs through termenv.
func (pp *PrettyPrint) Painter() canvas.Painter {
	return termenvPainter{out: pp.term}
}

type termenvPainter struct {
	out *termenv.Output
}

func (p termenvPainter) Paint(text string, st canvas.Style) string {
	s := p.out.String(text)
	if st.FG != "" {
		s = s.Foreground(p.out.Color(st.FG))
	}
	if st.BG != "" {
		s = s.Background(p.out.Color(st.BG))
	}
	if st.Bold {
		s = s.Bold()
	}
	if st.Underline {
		s = s.Underline()
	}
	return s.String()
}

// Heatmap writes the visible frame of c followed by its panel, if any.
func (pp *PrettyPrint) Heatmap(c *canvas.Canvas) {
	for _, line := range c.Lines(pp.Painter()) {
		fmt.Fprintln(pp.Out, strings.TrimRight(line, " "))
	}
	if p, ok := c.Panel(); ok {
		fmt.Fprintln(pp.Out)
		pp.Panel(p)
	}
}

// Panel writes a day panel as a titled list.
func (pp *PrettyPrint) Panel(p heatmap.Panel) {
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)
	pp.noColor(t, f)

	_, _ = t.Fprint(pp.Out, p.Heading)
	_, _ = f.Fprintf(pp.Out, " - %s\n", p.Detail)
	for _, e := range p.Entries {
		if e.Link != "" {
			_, _ = fmt.Fprintf(pp.Out, "  • %s ", e.Title)
			_, _ = f.Fprintf(pp.Out, "%s\n", e.Link)
			continue
		}
		_, _ = fmt.Fprintf(pp.Out, "  • %s\n", e.Title)
	}
}

func (pp *PrettyPrint) noColor(cs ...*color.Color) {
	for _, c := range cs {
		if pp.Colour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}
