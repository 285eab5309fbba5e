package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/source"
)

type watchStartedMsg struct {
	ch     <-chan source.Change
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	change source.Change
}

type watchStoppedMsg struct{}

// reloadedMsg carries the result of reading the event file again.
type reloadedMsg struct {
	events []heatmap.Event
	err    error
}

func startWatchCmd(parent context.Context, src *source.Source) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := src.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if c, ok := <-ch; ok {
			return watchEventMsg{change: c}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func reloadCmd(src *source.Source) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		events, err := src.Load()
		return reloadedMsg{events: events, err: err}
	}
}

func (m *Model) handleWatchEvent(c source.Change, cmds *[]tea.Cmd) {
	if c.Err != nil {
		m.setError("watch " + c.Err.Error())
		return
	}
	*cmds = append(*cmds, reloadCmd(m.src))
}

func (m *Model) handleReload(msg reloadedMsg) {
	if msg.err != nil {
		m.setError("reload " + msg.err.Error())
		m.log.WithError(msg.err).Warn("reload failed, keeping previous events")
		return
	}
	m.hovering = false
	m.engine.SetEvents(msg.events)
	m.setStatus(countStatus(len(msg.events)))
}
