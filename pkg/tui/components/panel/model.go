// Package panel renders the day panel shown over the heatmap grid.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/tui/theme"
)

// DefaultMaxWidth bounds the panel body width in cells.
const DefaultMaxWidth = 40

// Model holds the panel currently shown, if any.
type Model struct {
	panel     heatmap.Panel
	visible   bool
	maxWidth  int
	// maxHeight caps the rendered height, frame included. Zero is unbounded.
	maxHeight int
	th        theme.PanelTheme
}

// New returns an empty panel model.
func New(th theme.PanelTheme) Model {
	return Model{th: th, maxWidth: DefaultMaxWidth}
}

// SetMaxWidth limits how wide body lines may grow before wrapping.
func (m *Model) SetMaxWidth(w int) {
	if w < 8 {
		w = 8
	}
	m.maxWidth = w
}

// SetMaxHeight limits the panel to h lines. Entries that do not fit are
// summarized as "+N more".
func (m *Model) SetMaxHeight(h int) {
	m.maxHeight = max(h, 0)
}

// SetContent shows p.
func (m *Model) SetContent(p heatmap.Panel) {
	m.panel = p
	m.visible = true
}

// Reset hides the panel.
func (m *Model) Reset() {
	m.panel = heatmap.Panel{}
	m.visible = false
}

// Visible reports whether a panel is shown.
func (m Model) Visible() bool { return m.visible }

// Panel returns the panel being shown.
func (m Model) Panel() heatmap.Panel { return m.panel }

// View returns the rendered panel and its height in lines. It is empty when
// nothing is shown.
func (m Model) View() (string, int) {
	if !m.visible {
		return "", 0
	}
	frame := m.th.Frame
	if m.panel.Pinned {
		frame = m.th.Pinned
	}
	content := []string{
		m.th.Title.Render(m.wrap(m.panel.Heading)),
		m.th.Detail.Render(m.wrap(m.panel.Detail)),
	}
	budget := -1
	if m.maxHeight > 0 {
		budget = m.maxHeight - frame.GetVerticalFrameSize() - lineCount(content...)
	}
	for i, e := range m.panel.Entries {
		line := m.th.Body.Render(m.wrap("• " + e.Title))
		if e.Link != "" {
			line += "\n" + m.th.Link.Render(m.wrap("  "+e.Link))
		}
		if budget >= 0 {
			need := lineCount(line)
			if i < len(m.panel.Entries)-1 {
				// Room for the summary line if later entries are dropped.
				need++
			}
			if need > budget {
				more := fmt.Sprintf("+%d more", len(m.panel.Entries)-i)
				content = append(content, m.th.Detail.Render(more))
				break
			}
			budget -= lineCount(line)
		}
		content = append(content, line)
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}

func lineCount(blocks ...string) int {
	n := 0
	for _, b := range blocks {
		n += strings.Count(b, "\n") + 1
	}
	return n
}

func (m Model) wrap(s string) string {
	if lipgloss.Width(s) <= m.maxWidth {
		return s
	}
	return wordwrap.String(s, m.maxWidth)
}
