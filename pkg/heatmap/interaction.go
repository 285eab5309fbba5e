package heatmap

import (
	"fmt"

	"tableflip.dev/heatcal/pkg/calendar"
)

// StateKind enumerates the interaction states.
type StateKind int

const (
	// Idle shows no panel.
	Idle StateKind = iota
	// Hovering shows a transient panel for the day under the pointer.
	Hovering
	// Pinned shows a persistent panel until dismissed.
	Pinned
)

// State is the interaction state. Day is set for Hovering and Pinned.
type State struct {
	Kind StateKind
	Day  calendar.Day
}

// String renders the state for logs and tests.
func (s State) String() string {
	switch s.Kind {
	case Hovering:
		return fmt.Sprintf("Hovering(%s)", s.Day)
	case Pinned:
		return fmt.Sprintf("Pinned(%s)", s.Day)
	}
	return "Idle"
}

// Interaction tracks hover and pin state for one engine. Callers pass the
// event count of the day involved; days with no events never open a panel.
type Interaction struct {
	state  State
	anchor Point

	hot    calendar.Day
	hasHot bool
}

// State returns the current state.
func (i *Interaction) State() State {
	return i.state
}

// Anchor is where the open panel is positioned.
func (i *Interaction) Anchor() Point {
	return i.anchor
}

// Hot returns the highlighted day, if any. A day can be highlighted while a
// different day is pinned.
func (i *Interaction) Hot() (calendar.Day, bool) {
	return i.hot, i.hasHot
}

// PointerEnter handles the pointer moving onto day. An empty day acts as a
// leave. It reports whether anything visible changed.
func (i *Interaction) PointerEnter(day calendar.Day, count int, at Point) bool {
	if count <= 0 {
		return i.PointerLeave()
	}
	i.hot, i.hasHot = day, true
	if i.state.Kind == Pinned {
		return true
	}
	i.state = State{Kind: Hovering, Day: day}
	i.anchor = at
	return true
}

// PointerMove keeps a hover panel under the pointer.
func (i *Interaction) PointerMove(at Point) bool {
	if i.state.Kind != Hovering || i.anchor == at {
		return false
	}
	i.anchor = at
	return true
}

// PointerLeave handles the pointer leaving the hovered cell.
func (i *Interaction) PointerLeave() bool {
	changed := i.hasHot
	i.hot, i.hasHot = calendar.Day{}, false
	if i.state.Kind == Hovering {
		i.state = State{Kind: Idle}
		return true
	}
	return changed
}

// Click pins day if it has events.
func (i *Interaction) Click(day calendar.Day, count int, at Point) bool {
	if count <= 0 {
		return false
	}
	i.state = State{Kind: Pinned, Day: day}
	i.anchor = at
	return true
}

// ClickOutside dismisses a pinned panel. The caller guarantees the click hit
// neither the panel nor a day cell.
func (i *Interaction) ClickOutside() bool {
	if i.state.Kind != Pinned {
		return false
	}
	i.state = State{Kind: Idle}
	return true
}

// Reset returns to Idle and drops any highlight.
func (i *Interaction) Reset() bool {
	changed := i.state.Kind != Idle || i.hasHot
	*i = Interaction{}
	return changed
}
