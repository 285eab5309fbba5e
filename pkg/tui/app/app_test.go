package teaui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/source"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func testEvents() []heatmap.Event {
	return []heatmap.Event{
		{Date: calendar.Date(2024, time.November, 8), Title: "A"},
		{Date: calendar.Date(2024, time.November, 8), Title: "B", Link: "/b"},
		{Date: calendar.Date(2024, time.November, 7), Title: "C"},
	}
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Events == nil {
		opts.Events = testEvents()
	}
	opts.Engine = heatmap.DefaultOptions()
	opts.Engine.Now = func() time.Time {
		return time.Date(2024, time.November, 20, 12, 0, 0, 0, time.UTC)
	}
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.cancel)
	m.termWidth = 80
	m.termHeight = 20
	return m
}

// Screen positions of November 2024 cells: the grid starts one column in,
// the 7th and 8th sit on the second week row.
const (
	rowWeek2 = 3
	col7th   = 13
	col8th   = 18
	col6th   = 9
)

func TestViewRendersMonthAndFooter(t *testing.T) {
	m := newTestModel(t, Options{})
	view := stripANSI(m.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected the view to fill 20 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "November 2024") {
		t.Fatalf("expected month title first, got %q", lines[0])
	}
	if got := strings.Fields(lines[1]); len(got) != 7 || got[0] != "Mon" {
		t.Fatalf("expected weekday header, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], " ") {
		t.Fatalf("expected the grid inset by the margin, got %q", lines[4])
	}
	if !strings.Contains(lines[18], "month") || !strings.Contains(lines[18], "3 posts") {
		t.Fatalf("expected status line, got %q", lines[18])
	}
	if !strings.Contains(lines[19], "quit") {
		t.Fatalf("expected key help, got %q", lines[19])
	}
}

func TestHoverFollowsPointer(t *testing.T) {
	m := newTestModel(t, Options{})

	m.pointerAt(col8th, rowWeek2)
	if st := m.engine.State(); st.Kind != heatmap.Hovering || st.Day != calendar.Date(2024, time.November, 8) {
		t.Fatalf("expected hover on the 8th, got %s", st)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "2 posts") || !strings.Contains(view, "Date: 2024-11-08") {
		t.Fatalf("expected hover panel, got:\n%s", view)
	}

	m.pointerAt(col7th, rowWeek2)
	if st := m.engine.State(); st.Day != calendar.Date(2024, time.November, 7) {
		t.Fatalf("expected hover to move to the 7th, got %s", st)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "1 post") {
		t.Fatalf("expected singular count, got:\n%s", view)
	}

	m.pointerAt(col6th, rowWeek2)
	if st := m.engine.State(); st.Kind != heatmap.Idle {
		t.Fatalf("expected empty day to close the hover panel, got %s", st)
	}

	m.pointerAt(col8th, rowWeek2)
	m.pointerAt(70, 15)
	if st := m.engine.State(); st.Kind != heatmap.Idle {
		t.Fatalf("expected leaving the grid to close the panel, got %s", st)
	}
	if view := stripANSI(m.View()); strings.Contains(view, "Date:") {
		t.Fatalf("expected no panel, got:\n%s", view)
	}
}

func TestClickPinsAndDismisses(t *testing.T) {
	m := newTestModel(t, Options{})

	m.clickAt(col8th, rowWeek2)
	if st := m.engine.State(); st.Kind != heatmap.Pinned {
		t.Fatalf("expected pinned, got %s", st)
	}
	view := stripANSI(m.View())
	for _, want := range []string{"2024-11-08", "• A", "• B", "/b"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in pinned panel:\n%s", want, view)
		}
	}

	r := m.panelRect
	if r.W == 0 || r.X != col8th-1+marginX+panelOffsetX {
		t.Fatalf("expected panel placed next to the click, got %+v", r)
	}
	m.clickAt(r.X+1, r.Y+1)
	if st := m.engine.State(); st.Kind != heatmap.Pinned {
		t.Fatalf("expected a click on the panel to keep it, got %s", st)
	}

	m.clickAt(col6th, rowWeek2)
	if st := m.engine.State(); st.Kind != heatmap.Pinned {
		t.Fatalf("expected an empty day to leave the pin alone, got %s", st)
	}

	m.pointerAt(col7th, rowWeek2)
	if st := m.engine.State(); st.Kind != heatmap.Pinned || st.Day != calendar.Date(2024, time.November, 8) {
		t.Fatalf("expected hover to keep the pin, got %s", st)
	}

	m.clickAt(70, 15)
	if st := m.engine.State(); st.Kind != heatmap.Idle {
		t.Fatalf("expected a click outside to dismiss, got %s", st)
	}
}

func TestKeysNavigate(t *testing.T) {
	m := newTestModel(t, Options{})

	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if p := m.engine.Period(); p.Month != time.December || p.Year != 2024 {
		t.Fatalf("expected December 2024, got %s", p)
	}
	if !strings.Contains(m.status, "December 2024") {
		t.Fatalf("expected status to name the period, got %q", m.status)
	}
	m.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	m.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if p := m.engine.Period(); p.Month != time.October {
		t.Fatalf("expected October, got %s", p)
	}
	m.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	if p := m.engine.Period(); p.Month != time.November {
		t.Fatalf("expected today to return to November, got %s", p)
	}

	m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if m.engine.Mode() != heatmap.ModeYear {
		t.Fatalf("expected year mode")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "2024") || !strings.Contains(view, "January") {
		t.Fatalf("expected year view, got:\n%s", view)
	}
	m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if m.engine.Mode() != heatmap.ModeMonth {
		t.Fatalf("expected month mode again")
	}

	m.clickAt(col8th, rowWeek2)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if st := m.engine.State(); st.Kind != heatmap.Idle {
		t.Fatalf("expected esc to dismiss, got %s", st)
	}

	if _, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"}); cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.ctx.Err() == nil {
		t.Fatalf("expected quitting to cancel the model context")
	}
}

func TestScrollYearView(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})

	m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.scroll != 0 {
		t.Fatalf("expected scroll to stop at the top, got %d", m.scroll)
	}
	m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.scroll != 2 {
		t.Fatalf("expected scroll 2, got %d", m.scroll)
	}
	first := strings.Split(stripANSI(m.View()), "\n")[0]
	if strings.Contains(first, "2024") {
		t.Fatalf("expected the year title scrolled away, got %q", first)
	}
	for i := 0; i < 100; i++ {
		m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, h := m.canvas.Size()
	if m.scroll != h-m.gridHeight() {
		t.Fatalf("expected scroll clamped to %d, got %d", h-m.gridHeight(), m.scroll)
	}
}

func TestReloadKeepsEventsOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(`[{"date": "2024-11-08", "title": "A"}]`)
	src, err := source.New(path, source.FormatAuto, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, Options{Source: src})
	m.clickAt(col8th, rowWeek2)

	write(`[{"date": "2024-11-08", "title": "A"}, {"date": "2024-11-09", "title": "B"}]`)
	m.Update(reloadCmd(src)())
	if got := len(m.engine.Events()); got != 2 {
		t.Fatalf("expected 2 events after reload, got %d", got)
	}
	if st := m.engine.State(); st.Kind != heatmap.Idle {
		t.Fatalf("expected reload to drop the pin, got %s", st)
	}
	if m.statusErr || m.status != "2 posts" {
		t.Fatalf("unexpected status %q", m.status)
	}

	write(`[{"date": "someday"}]`)
	m.Update(reloadCmd(src)())
	if got := len(m.engine.Events()); got != 2 {
		t.Fatalf("expected previous events kept, got %d", got)
	}
	if !m.statusErr || !strings.HasPrefix(m.status, "ERR: reload") {
		t.Fatalf("expected reload error in status, got %q", m.status)
	}
}

func TestWatchStartsOnlyWhenEnabled(t *testing.T) {
	m := newTestModel(t, Options{})
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("expected no watcher without a source")
	}

	path := filepath.Join(t.TempDir(), "posts.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := source.New(path, source.FormatAuto, nil)
	if err != nil {
		t.Fatal(err)
	}
	m = newTestModel(t, Options{Source: src, Watch: true})
	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("expected a watch command")
	}
	started, ok := cmd().(watchStartedMsg)
	if !ok || started.err != nil {
		t.Fatalf("expected watcher to start, got %+v", started)
	}
	m.Update(started)
	if m.watchCh == nil {
		t.Fatalf("expected the model to hold the watch channel")
	}
	m.stopWatch()
	if m.watchCh != nil || m.watchCancel != nil {
		t.Fatalf("expected stopWatch to clear state")
	}
}
