package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the heatmap UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
}

// FooterTheme groups styles used by the bottom status and help lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Mode   lipgloss.Style
}

// PanelTheme styles the day panel drawn over the grid.
type PanelTheme struct {
	Frame  lipgloss.Style
	Pinned lipgloss.Style
	Title  lipgloss.Style
	Detail lipgloss.Style
	Body   lipgloss.Style
	Link   lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("244")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Panel: PanelTheme{
			Frame:  frame,
			Pinned: frame.BorderForeground(lipgloss.Color("#ff9933")),
			Title:  lipgloss.NewStyle().Bold(true),
			Detail: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Body:   lipgloss.NewStyle(),
			Link:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		},
	}
}
