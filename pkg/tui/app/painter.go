package teaui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/heatcal/pkg/canvas"
)

// stylePainter paints canvas runs with Lip Gloss, caching one style per
// distinct cell style.
type stylePainter struct {
	styles map[canvas.Style]lipgloss.Style
}

func newStylePainter() *stylePainter {
	return &stylePainter{styles: make(map[canvas.Style]lipgloss.Style)}
}

func (p *stylePainter) Paint(text string, st canvas.Style) string {
	if st == (canvas.Style{}) {
		return text
	}
	s, ok := p.styles[st]
	if !ok {
		s = lipgloss.NewStyle().Bold(st.Bold).Underline(st.Underline)
		if st.FG != "" {
			s = s.Foreground(lipgloss.Color(st.FG))
		}
		if st.BG != "" {
			s = s.Background(lipgloss.Color(st.BG))
		}
		p.styles[st] = s
	}
	return s.Render(text)
}
