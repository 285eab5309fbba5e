package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekStart selects which weekday occupies the first grid column.
type WeekStart int

const (
	// Monday puts Monday in column 0 and Sunday in column 6.
	Monday WeekStart = iota
	// Sunday puts Sunday in column 0 and Saturday in column 6.
	Sunday
)

// ParseWeekStart reads "monday" or "sunday". An empty string means Monday.
func ParseWeekStart(s string) (WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday", "mon":
		return Monday, nil
	case "sunday", "sun":
		return Sunday, nil
	}
	return Monday, fmt.Errorf("calendar: unknown week start %q, expected monday or sunday", s)
}

// Column returns the grid column [0, 6] of weekday w.
func (ws WeekStart) Column(w time.Weekday) int {
	if ws == Sunday {
		return int(w)
	}
	return (int(w) + 6) % 7
}

// Offset is the column of the first day of p's first month, i.e. how many
// leading cells pad the first week.
func (ws WeekStart) Offset(year int, month time.Month) int {
	return ws.Column(Day{Year: year, Month: month, Day: 1}.Weekday())
}

// Weeks is the number of grid rows a month occupies (4 to 6).
func (ws WeekStart) Weeks(year int, month time.Month) int {
	return (ws.Offset(year, month) + DaysIn(year, month) + 6) / 7
}

// Headers returns short weekday names in column order.
func (ws WeekStart) Headers() []string {
	if ws == Sunday {
		return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	}
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

// String returns the config spelling of ws.
func (ws WeekStart) String() string {
	if ws == Sunday {
		return "sunday"
	}
	return "monday"
}
