package heatmap

import (
	"fmt"
	"sort"

	"tableflip.dev/heatcal/pkg/calendar"
)

// Navigator owns the displayed month and steps between months. It does not
// bound navigation to months with data.
type Navigator struct {
	current calendar.Period
}

// NewNavigator starts at the given month.
func NewNavigator(start calendar.Period) (*Navigator, error) {
	n := &Navigator{}
	if err := n.Set(start); err != nil {
		return nil, err
	}
	return n, nil
}

// Current is the displayed month.
func (n *Navigator) Current() calendar.Period {
	return n.current
}

// Set jumps to month p.
func (n *Navigator) Set(p calendar.Period) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsYear() {
		return fmt.Errorf("%w: navigator takes a month, got year %d", calendar.ErrInvalidPeriod, p.Year)
	}
	n.current = p
	return nil
}

// Next advances one month, wrapping December into January.
func (n *Navigator) Next() calendar.Period {
	n.current = n.current.Next()
	return n.current
}

// Previous steps back one month, wrapping January into December.
func (n *Navigator) Previous() calendar.Period {
	n.current = n.current.Previous()
	return n.current
}

// YearsFor returns every year from the latest event year down to the
// earliest, inclusive. It returns nil for no events.
func YearsFor(events []Event) []int {
	if len(events) == 0 {
		return nil
	}
	lo, hi := events[0].Date.Year, events[0].Date.Year
	for _, ev := range events[1:] {
		if ev.Date.Year < lo {
			lo = ev.Date.Year
		}
		if ev.Date.Year > hi {
			hi = ev.Date.Year
		}
	}
	years := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
