package heatmap

import (
	"testing"
	"time"
)

func TestInteractionTransitions(t *testing.T) {
	d8 := day(2024, time.November, 8)
	d7 := day(2024, time.November, 7)
	d6 := day(2024, time.November, 6)
	at := Point{X: 3, Y: 4}

	tests := []struct {
		name  string
		steps func(i *Interaction)
		want  State
	}{{
		name:  "enter hovers",
		steps: func(i *Interaction) { i.PointerEnter(d8, 2, at) },
		want:  State{Kind: Hovering, Day: d8},
	}, {
		name: "enter another day moves hover",
		steps: func(i *Interaction) {
			i.PointerEnter(d8, 2, at)
			i.PointerEnter(d7, 1, at)
		},
		want: State{Kind: Hovering, Day: d7},
	}, {
		name:  "empty day is ignored",
		steps: func(i *Interaction) { i.PointerEnter(d6, 0, at) },
		want:  State{Kind: Idle},
	}, {
		name: "empty day clears hover",
		steps: func(i *Interaction) {
			i.PointerEnter(d8, 2, at)
			i.PointerEnter(d6, 0, at)
		},
		want: State{Kind: Idle},
	}, {
		name: "leave returns to idle",
		steps: func(i *Interaction) {
			i.PointerEnter(d8, 2, at)
			i.PointerLeave()
		},
		want: State{Kind: Idle},
	}, {
		name: "click pins",
		steps: func(i *Interaction) {
			i.PointerEnter(d8, 2, at)
			i.Click(d8, 2, at)
		},
		want: State{Kind: Pinned, Day: d8},
	}, {
		name: "pin survives leave",
		steps: func(i *Interaction) {
			i.Click(d8, 2, at)
			i.PointerLeave()
		},
		want: State{Kind: Pinned, Day: d8},
	}, {
		name: "hover does not replace pin",
		steps: func(i *Interaction) {
			i.Click(d8, 2, at)
			i.PointerEnter(d7, 1, at)
		},
		want: State{Kind: Pinned, Day: d8},
	}, {
		name: "click on empty day keeps pin",
		steps: func(i *Interaction) {
			i.Click(d8, 2, at)
			i.Click(d6, 0, at)
		},
		want: State{Kind: Pinned, Day: d8},
	}, {
		name: "click another day re-pins",
		steps: func(i *Interaction) {
			i.Click(d8, 2, at)
			i.Click(d7, 1, at)
		},
		want: State{Kind: Pinned, Day: d7},
	}, {
		name: "click outside dismisses",
		steps: func(i *Interaction) {
			i.Click(d8, 2, at)
			i.ClickOutside()
		},
		want: State{Kind: Idle},
	}, {
		name: "click outside while hovering does nothing",
		steps: func(i *Interaction) {
			i.PointerEnter(d8, 2, at)
			i.ClickOutside()
		},
		want: State{Kind: Hovering, Day: d8},
	}, {
		name: "reset clears pin",
		steps: func(i *Interaction) {
			i.Click(d8, 2, at)
			i.Reset()
		},
		want: State{Kind: Idle},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i Interaction
			tt.steps(&i)
			if got := i.State(); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInteractionHighlightWhilePinned(t *testing.T) {
	var i Interaction
	d8 := day(2024, time.November, 8)
	d7 := day(2024, time.November, 7)

	i.Click(d8, 2, Point{X: 1, Y: 1})
	if !i.PointerEnter(d7, 1, Point{X: 9, Y: 9}) {
		t.Fatalf("expected highlight change to be reported")
	}
	hot, ok := i.Hot()
	if !ok || hot != d7 {
		t.Fatalf("expected %s highlighted, got %s (%v)", d7, hot, ok)
	}
	if i.Anchor() != (Point{X: 1, Y: 1}) {
		t.Fatalf("expected pinned anchor to stay at the click, got %+v", i.Anchor())
	}
	i.PointerLeave()
	if _, ok := i.Hot(); ok {
		t.Fatalf("expected highlight to clear on leave")
	}
}

func TestInteractionPointerMove(t *testing.T) {
	var i Interaction
	if i.PointerMove(Point{X: 1}) {
		t.Fatalf("expected move while idle to be ignored")
	}
	i.PointerEnter(day(2024, time.November, 8), 2, Point{X: 1})
	if !i.PointerMove(Point{X: 2}) || i.Anchor() != (Point{X: 2}) {
		t.Fatalf("expected hover anchor to follow the pointer, got %+v", i.Anchor())
	}
	i.Click(day(2024, time.November, 8), 2, Point{X: 5})
	if i.PointerMove(Point{X: 7}) || i.Anchor() != (Point{X: 5}) {
		t.Fatalf("expected pinned anchor to stay put, got %+v", i.Anchor())
	}
}

func TestStateString(t *testing.T) {
	s := State{Kind: Pinned, Day: day(2024, time.November, 8)}
	if s.String() != "Pinned(2024-11-08)" {
		t.Fatalf("expected Pinned(2024-11-08), got %s", s)
	}
	if (State{}).String() != "Idle" {
		t.Fatalf("expected Idle")
	}
}
