package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

// ErrInvalidPeriod is returned for months or years outside the representable
// range.
var ErrInvalidPeriod = errors.New("calendar: invalid period")

// Period is the unit of display: one month, or a whole year when Month is
// zero.
type Period struct {
	Year  int
	Month time.Month
}

// Month returns the period for a single month.
func Month(year int, month time.Month) (Period, error) {
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("%w: year %d not in [%d, %d]", ErrInvalidPeriod, year, minYear, maxYear)
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: month %d not in [1, 12]", ErrInvalidPeriod, int(month))
	}
	return Period{Year: year, Month: month}, nil
}

// Year returns the period covering all twelve months of year.
func Year(year int) (Period, error) {
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("%w: year %d not in [%d, %d]", ErrInvalidPeriod, year, minYear, maxYear)
	}
	return Period{Year: year}, nil
}

// MonthOf returns the month period containing d.
func MonthOf(d Day) Period {
	return Period{Year: d.Year, Month: d.Month}
}

// ParsePeriod reads "2006-01" as a month or "2006" as a year.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return Year(y)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q is neither YYYY-MM nor YYYY", ErrInvalidPeriod, s)
	}
	return Month(t.Year(), t.Month())
}

// IsYear reports whether p spans a whole year.
func (p Period) IsYear() bool {
	return p.Month == 0
}

// Validate checks that p is representable.
func (p Period) Validate() error {
	if p.IsYear() {
		_, err := Year(p.Year)
		return err
	}
	_, err := Month(p.Year, p.Month)
	return err
}

// Months returns the month periods covered by p in calendar order.
func (p Period) Months() []Period {
	if !p.IsYear() {
		return []Period{p}
	}
	months := make([]Period, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, Period{Year: p.Year, Month: m})
	}
	return months
}

// First returns the first day of the period.
func (p Period) First() Day {
	if p.IsYear() {
		return Day{Year: p.Year, Month: time.January, Day: 1}
	}
	return Day{Year: p.Year, Month: p.Month, Day: 1}
}

// Days returns every day in the period in chronological order.
func (p Period) Days() []Day {
	var days []Day
	for _, m := range p.Months() {
		n := DaysIn(m.Year, m.Month)
		for d := 1; d <= n; d++ {
			days = append(days, Day{Year: m.Year, Month: m.Month, Day: d})
		}
	}
	return days
}

// Contains reports whether d falls inside p.
func (p Period) Contains(d Day) bool {
	if d.Year != p.Year {
		return false
	}
	if p.IsYear() {
		return d.Month >= time.January && d.Month <= time.December
	}
	return d.Month == p.Month && d.Day >= 1 && d.Day <= DaysIn(p.Year, p.Month)
}

// Next returns the following month. Year periods advance by a year.
func (p Period) Next() Period {
	if p.IsYear() {
		return Period{Year: p.Year + 1}
	}
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Previous returns the preceding month. Year periods step back by a year.
func (p Period) Previous() Period {
	if p.IsYear() {
		return Period{Year: p.Year - 1}
	}
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// String renders "November 2024" for months and "2024" for years.
func (p Period) String() string {
	if p.IsYear() {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}
