// Package heatmap implements the calendar heatmap engine: per-day aggregation,
// colour scaling, weekday-aligned grid layout, period navigation and the
// hover/pin interaction model. Drawing is delegated to a Renderer.
package heatmap

import (
	"sort"

	"tableflip.dev/heatcal/pkg/calendar"
)

// Event is a dated record shown on the heatmap.
type Event struct {
	Date  calendar.Day `json:"date" yaml:"date"`
	Title string       `json:"title" yaml:"title"`
	Link  string       `json:"link,omitempty" yaml:"link,omitempty"`
}

// Bucket holds the events that fall on one day, in source order. Events point
// into the caller's slice.
type Bucket struct {
	Day    calendar.Day
	Events []*Event
}

// Count is the number of events in the bucket.
func (b *Bucket) Count() int {
	if b == nil {
		return 0
	}
	return len(b.Events)
}

// Buckets maps a day to its bucket. Days without events have no entry.
type Buckets map[calendar.Day]*Bucket

// Aggregate groups events by day, keeping only days inside one of periods.
// The source slice is never modified.
func Aggregate(events []Event, periods ...calendar.Period) Buckets {
	out := make(Buckets)
	for i := range events {
		ev := &events[i]
		if !within(ev.Date, periods) {
			continue
		}
		b, ok := out[ev.Date]
		if !ok {
			b = &Bucket{Day: ev.Date}
			out[ev.Date] = b
		}
		b.Events = append(b.Events, ev)
	}
	return out
}

func within(d calendar.Day, periods []calendar.Period) bool {
	for _, p := range periods {
		if p.Contains(d) {
			return true
		}
	}
	return false
}

// Count returns the number of events on d.
func (b Buckets) Count(d calendar.Day) int {
	return b[d].Count()
}

// Events returns the events on d in source order.
func (b Buckets) Events(d calendar.Day) []*Event {
	if bucket, ok := b[d]; ok {
		return bucket.Events
	}
	return nil
}

// Counts returns the count of every non-empty day.
func (b Buckets) Counts() []int {
	counts := make([]int, 0, len(b))
	for _, bucket := range b {
		counts = append(counts, bucket.Count())
	}
	return counts
}

// Total is the number of events across all buckets.
func (b Buckets) Total() int {
	total := 0
	for _, bucket := range b {
		total += bucket.Count()
	}
	return total
}

// Days returns the non-empty days in chronological order.
func (b Buckets) Days() []calendar.Day {
	days := make([]calendar.Day, 0, len(b))
	for d := range b {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
