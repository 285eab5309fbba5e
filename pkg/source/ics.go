package source

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
)

// DecodeICS reads every VEVENT as an event on its DTSTART day. Events without
// a usable start are logged and skipped.
func DecodeICS(r io.Reader, log logrus.FieldLogger) ([]heatmap.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("decode ics: %w", err)
	}

	var events []heatmap.Event
	for i, ve := range cal.Events() {
		ev, err := vevent(ve)
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("index", i).Warn("source: skipping vevent")
			}
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func vevent(ve *ical.VEvent) (heatmap.Event, error) {
	var ev heatmap.Event

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil || strings.TrimSpace(start.Value) == "" {
		return ev, fmt.Errorf("missing DTSTART")
	}
	d, err := startDay(ve, start)
	if err != nil {
		return ev, err
	}
	ev.Date = d

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		ev.Link = p.Value
	}
	return ev, nil
}

// startDay reads all-day values as written and timed values in the start's
// own zone.
func startDay(ve *ical.VEvent, prop *ical.IANAProperty) (calendar.Day, error) {
	val := strings.TrimSpace(prop.Value)
	allDay := !strings.Contains(val, "T")
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}
	if allDay {
		t, err := time.Parse("20060102", val)
		if err != nil {
			return calendar.Day{}, fmt.Errorf("DTSTART %q: %w", val, err)
		}
		return calendar.DayOf(t), nil
	}

	t, err := ve.GetStartAt()
	if err != nil {
		return calendar.Day{}, fmt.Errorf("DTSTART %q: %w", val, err)
	}
	return calendar.DayOf(t), nil
}
