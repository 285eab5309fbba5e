// Package teaui hosts the Bubble Tea program for the heatcal TUI.
package teaui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/canvas"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/source"
	"tableflip.dev/heatcal/pkg/tui/components/panel"
	"tableflip.dev/heatcal/pkg/tui/theme"
	"tableflip.dev/heatcal/pkg/tui/ui/overlay"
)

const (
	// marginX is the blank column left of the grid.
	marginX      = 1
	footerHeight = 2
	// The panel opens below and right of the pointer.
	panelOffsetX = 2
	panelOffsetY = 1

	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the program.
type Options struct {
	// Source is read again on file changes. It may be nil.
	Source *source.Source
	Events []heatmap.Event
	Engine heatmap.Options
	// Mode opens year view when set to ModeYear and Engine.Period is not
	// already a year.
	Mode   heatmap.Mode
	// Watch reloads Source whenever the file changes.
	Watch  bool
	Logger logrus.FieldLogger
}

// Model is the Bubble Tea model driving one heatmap engine.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    logrus.FieldLogger
	src    *source.Source
	watch  bool

	engine  *heatmap.Engine
	canvas  *canvas.Canvas
	painter *stylePainter

	termWidth  int
	termHeight int
	scroll     int

	// hovering tracks the cell under the pointer, with or without events.
	hovering bool
	hoverDay calendar.Day

	panelModel panel.Model
	panelRect  overlay.Rect

	keys      keyMap
	help      help.Model
	theme     theme.Theme
	status    string
	statusErr bool

	watchCh     <-chan source.Change
	watchCancel context.CancelFunc
}

// New creates a model and draws the first frame.
func New(opts Options) (*Model, error) {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	cv := canvas.New(canvas.Options{Colour: true})
	eopts := opts.Engine
	if eopts.Logger == nil {
		eopts.Logger = log
	}
	engine, err := heatmap.New(cv, opts.Events, eopts)
	if err != nil {
		return nil, err
	}
	if opts.Mode == heatmap.ModeYear && engine.Mode() != heatmap.ModeYear {
		engine.ShowYears()
	}

	th := theme.Default()
	h := help.New()
	h.ShortSeparator = "  "

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:        ctx,
		cancel:     cancel,
		log:        log,
		src:        opts.Source,
		watch:      opts.Watch && opts.Source != nil,
		engine:     engine,
		canvas:     cv,
		painter:    newStylePainter(),
		panelModel: panel.New(th.Panel),
		keys:       defaultKeys(),
		help:       h,
		theme:      th,
	}
	m.setStatus(countStatus(len(opts.Events)))
	return m, nil
}

// Init starts the file watcher when enabled.
func (m *Model) Init() tea.Cmd {
	if !m.watch {
		return nil
	}
	return startWatchCmd(m.ctx, m.src)
}

// Engine exposes the engine for callers embedding the model.
func (m *Model) Engine() *heatmap.Engine { return m.engine }

// Update handles input and watcher messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.panelModel.SetMaxWidth(msg.Width / 2)
		m.scrollBy(0)
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.pointerAt(mouse.X, mouse.Y)
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.clickAt(mouse.X, mouse.Y)
		}
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.scrollBy(-1)
		case tea.MouseWheelDown:
			m.scrollBy(1)
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.setError("watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		m.log.WithField("path", m.src.Path).Info("watching for changes")
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.change, &cmds)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.src))
		}
	case reloadedMsg:
		m.handleReload(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatch()
		m.cancel()
		*cmds = append(*cmds, tea.Quit)
	case key.Matches(msg, m.keys.Prev):
		m.navigated(m.engine.Previous())
	case key.Matches(msg, m.keys.Next):
		m.navigated(m.engine.Next())
	case key.Matches(msg, m.keys.Today):
		if err := m.engine.Today(); err != nil {
			m.setError(err.Error())
			break
		}
		m.navigated(m.engine.Period())
	case key.Matches(msg, m.keys.Toggle):
		if m.engine.Mode() == heatmap.ModeYear {
			m.engine.ShowMonth()
		} else {
			m.engine.ShowYears()
		}
		m.navigated(m.engine.Period())
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.Dismiss):
		m.engine.ClickOutside()
	}
}

func (m *Model) navigated(p calendar.Period) {
	m.hovering = false
	m.scroll = 0
	m.setStatus(fmt.Sprintf("%s · %s", p, countStatus(m.engine.Buckets().Total())))
}

// gridPoint converts a screen position to engine coordinates.
func (m *Model) gridPoint(x, y int) heatmap.Point {
	return heatmap.Point{X: x - marginX, Y: y + m.scroll}
}

func (m *Model) gridHeight() int {
	_, h := m.size()
	return max(h-footerHeight, 1)
}

// pointerAt turns pointer motion into enter, move and leave calls.
func (m *Model) pointerAt(x, y int) {
	pt := m.gridPoint(x, y)
	day, ok := m.engine.HitTest(pt)
	if y >= m.gridHeight() {
		ok = false
	}
	switch {
	case ok && m.hovering && day == m.hoverDay:
		m.engine.PointerMove(pt)
	case ok:
		if m.hovering {
			m.engine.PointerLeave()
		}
		m.hovering, m.hoverDay = true, day
		m.engine.PointerEnter(day, pt)
	case m.hovering:
		m.hovering = false
		m.engine.PointerLeave()
	}
}

// clickAt pins a day, ignores clicks on the open panel and dismisses on
// anything else.
func (m *Model) clickAt(x, y int) {
	if m.panelModel.Visible() && m.panelRect.Contains(x, y) {
		return
	}
	pt := m.gridPoint(x, y)
	if day, ok := m.engine.HitTest(pt); ok && y < m.gridHeight() {
		m.engine.Click(day, pt)
		return
	}
	m.engine.ClickOutside()
}

func (m *Model) scrollBy(n int) {
	_, h := m.canvas.Size()
	limit := max(h-m.gridHeight(), 0)
	m.scroll = min(max(m.scroll+n, 0), limit)
}

func (m *Model) size() (int, int) {
	w, h := m.termWidth, m.termHeight
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// View renders the visible part of the grid, the panel and the footer.
func (m *Model) View() string {
	width, _ := m.size()
	height := m.gridHeight()

	lines := m.canvas.Lines(m.painter)
	if m.scroll < len(lines) {
		lines = lines[m.scroll:]
	} else {
		lines = nil
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	pad := strings.Repeat(" ", marginX)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	grid := strings.Join(lines, "\n")

	m.panelRect = overlay.Rect{}
	if p, ok := m.canvas.Panel(); ok {
		m.panelModel.SetMaxHeight(height)
		m.panelModel.SetContent(p)
		view, _ := m.panelModel.View()
		at := overlay.At(p.Anchor.X+marginX+panelOffsetX, p.Anchor.Y-m.scroll+panelOffsetY)
		grid, m.panelRect = overlay.Compose(grid, width, height, view, at)
	} else {
		m.panelModel.Reset()
		grid, _ = overlay.Compose(grid, width, height, "", overlay.Placement{})
	}

	return lipgloss.JoinVertical(lipgloss.Left, grid, m.statusLine(), m.helpLine())
}

func (m *Model) statusLine() string {
	mode := m.theme.Footer.Mode.Render(m.engine.Mode().String())
	style := m.theme.Footer.Status
	if m.statusErr {
		style = m.theme.Footer.Error
	}
	return mode + " " + style.Render(m.status)
}

func (m *Model) helpLine() string {
	return m.theme.Footer.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = "ERR: " + msg
	m.statusErr = true
}

func countStatus(n int) string {
	if n == 1 {
		return "1 post"
	}
	return fmt.Sprintf("%d posts", n)
}

// Run starts the Bubble Tea program with mouse motion reporting.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
