package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
)

func TestDecodeJSON(t *testing.T) {
	in := `[
  {"date": "2024-11-08", "title": "A"},
  {"date": "2024-11-08T23:30:00-05:00", "title": "B", "slug": "/b"},
  {"date": "2024-11-07", "title": "C", "link": "https://example.com/c", "slug": "/ignored"}
]`
	events, err := DecodeJSON(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[1].Date != calendar.Date(2024, time.November, 8) {
		t.Fatalf("expected the written date 2024-11-08, got %s", events[1].Date)
	}
	if events[1].Link != "/b" {
		t.Fatalf("expected slug to fill link, got %q", events[1].Link)
	}
	if events[2].Link != "https://example.com/c" {
		t.Fatalf("expected link to win over slug, got %q", events[2].Link)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := map[string]string{
		"bad date":     `[{"date": "2024-11-08"}, {"date": "2024-13-01"}]`,
		"missing date": `[{"title": "x"}]`,
		"not a list":   `{"date": "2024-11-08"}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeJSON(strings.NewReader(in)); err == nil {
				t.Fatalf("expected error for %s", in)
			}
		})
	}
	_, err := DecodeJSON(strings.NewReader(`[{"date": "2024-11-08"}, {"date": "nope"}]`))
	if err == nil || !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("expected error to name record 1, got %v", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		events, err := Decode(strings.NewReader(""), f, nil)
		if err != nil || len(events) != 0 {
			t.Fatalf("%s: expected no events from an empty file, got %v (%v)", f, events, err)
		}
	}
}

func TestDecodeYAML(t *testing.T) {
	in := `
- date: 2024-11-08
  title: A
- date: "2024-11-07"
  title: C
  slug: /blog-post-3
`
	events, err := DecodeYAML(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Date != calendar.Date(2024, time.November, 8) {
		t.Fatalf("unexpected events %+v", events)
	}
	if events[1].Link != "/blog-post-3" {
		t.Fatalf("expected slug alias, got %q", events[1].Link)
	}
}

func TestDecodeICS(t *testing.T) {
	in := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//heatcal//test//EN",
		"BEGIN:VEVENT",
		"UID:a@test",
		"DTSTART;VALUE=DATE:20241108",
		"SUMMARY:All day",
		"URL:https://example.com/a",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b@test",
		"DTSTART:20241107T233000Z",
		"SUMMARY:Late",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:c@test",
		"SUMMARY:No start",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	events, err := DecodeICS(strings.NewReader(in), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events with a start, got %d", len(events))
	}
	if events[0].Date != calendar.Date(2024, time.November, 8) || events[0].Title != "All day" || events[0].Link != "https://example.com/a" {
		t.Fatalf("unexpected all-day event %+v", events[0])
	}
	if events[1].Date != calendar.Date(2024, time.November, 7) || events[1].Title != "Late" {
		t.Fatalf("unexpected timed event %+v", events[1])
	}
}

func TestFormats(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "JSON": FormatJSON, "yml": FormatYAML, "ical": FormatICS} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q): expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	for in, want := range map[string]Format{"a.json": FormatJSON, "a.YAML": FormatYAML, "a.yml": FormatYAML, "cal.ics": FormatICS} {
		got, err := Detect(in)
		if err != nil || got != want {
			t.Fatalf("Detect(%q): expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := Detect("events.txt"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	events := []heatmap.Event{
		{Date: calendar.Date(2024, time.January, 2), Title: "Blog Post 1", Link: "/blog-post-1"},
		{Date: calendar.Date(2024, time.March, 4), Title: "Blog Post 2"},
	}
	for _, f := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := Encode(&buf, f, events); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		got, err := Decode(&buf, f, nil)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if len(got) != 2 || got[0] != events[0] || got[1] != events[1] {
			t.Fatalf("%s: expected %+v, got %+v", f, events, got)
		}
	}
	if err := Encode(&bytes.Buffer{}, FormatICS, events); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ics encoding to be refused, got %v", err)
	}
}

func TestSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	if err := os.WriteFile(path, []byte(`[{"date":"2024-11-08","title":"A"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := New(path, FormatAuto, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Format != FormatJSON {
		t.Fatalf("expected detected json, got %s", s.Format)
	}
	events, err := s.Load()
	if err != nil || len(events) != 1 {
		t.Fatalf("expected 1 event, got %v (%v)", events, err)
	}

	missing, _ := New(filepath.Join(t.TempDir(), "gone.json"), FormatAuto, nil)
	if _, err := missing.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestSourceWatchEmitsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := New(path, FormatAuto, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`[{"date":"2024-11-08","title":"A"}]`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-ch:
		if c.Path != s.Path || c.Err != nil {
			t.Fatalf("expected change for %s, got %+v", s.Path, c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("expected channel to close after cancel")
		}
	}
}

func TestThrottleCoalesces(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	got := make(chan Change, 10)
	send := func(c Change) { got <- c }
	for i := 0; i < 5; i++ {
		th.Enqueue(Change{Path: "p"}, send)
	}
	time.Sleep(100 * time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("expected one coalesced change, got %d", len(got))
	}
}
