package sample

import (
	"testing"
	"time"

	"tableflip.dev/heatcal/pkg/calendar"
)

func TestPostsDefaults(t *testing.T) {
	events := Posts(Options{Seed: 1})
	if len(events) != DefaultCount {
		t.Fatalf("expected %d posts, got %d", DefaultCount, len(events))
	}
	first, last := calendar.Date(2024, time.January, 1), calendar.Date(2024, time.December, 30)
	for i, ev := range events {
		if ev.Date.Before(first) || last.Before(ev.Date) {
			t.Fatalf("post %d: %s outside the first 365 days of 2024", i, ev.Date)
		}
	}
	if events[0].Title != "Blog Post 1" || events[0].Link != "/blog-post-1" {
		t.Fatalf("unexpected first post %+v", events[0])
	}
	if events[499].Title != "Blog Post 500" {
		t.Fatalf("unexpected last post %+v", events[499])
	}
}

func TestPostsSeeded(t *testing.T) {
	a := Posts(Options{Count: 20, Year: 2023, Seed: 42})
	b := Posts(Options{Count: 20, Year: 2023, Seed: 42})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical output for a fixed seed, differs at %d", i)
		}
		if a[i].Date.Year != 2023 {
			t.Fatalf("expected 2023 dates, got %s", a[i].Date)
		}
	}
}
