// Package sample generates synthetic blog-post events for demos and tests.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
)

// Options controls Posts.
type Options struct {
	// Count is the number of posts, 500 when zero.
	Count int
	// Year is the first year covered, 2024 when zero. Dates fall within the
	// 365 days starting on January 1.
	Year int
	// Seed makes the output repeatable. Zero picks a seed from the clock.
	Seed int64
}

// DefaultCount is the number of posts generated when Options.Count is zero.
const DefaultCount = 500

// Posts returns Count posts titled "Blog Post i" with links "/blog-post-i",
// in generation order.
func Posts(opts Options) []heatmap.Event {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Year == 0 {
		opts.Year = 2024
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	start := calendar.Date(opts.Year, time.January, 1)

	events := make([]heatmap.Event, 0, opts.Count)
	for i := 1; i <= opts.Count; i++ {
		events = append(events, heatmap.Event{
			Date:  start.AddDays(rng.Intn(365)),
			Title: fmt.Sprintf("Blog Post %d", i),
			Link:  fmt.Sprintf("/blog-post-%d", i),
		})
	}
	return events
}
