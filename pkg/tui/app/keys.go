package teaui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Toggle  key.Binding
	Up      key.Binding
	Down    key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Toggle:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year/month")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unpin")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Toggle, k.Up, k.Down, k.Dismiss, k.Quit}
}

// FullHelp groups the bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Toggle},
		{k.Up, k.Down, k.Dismiss, k.Quit},
	}
}
