package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
)

// record is the on-disk shape shared by JSON and YAML files. Slug is an
// alias for Link.
type record struct {
	Date  string `json:"date" yaml:"date"`
	Title string `json:"title" yaml:"title"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
	Slug  string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

func (r record) event(i int) (heatmap.Event, error) {
	if r.Date == "" {
		return heatmap.Event{}, fmt.Errorf("record %d: missing date", i)
	}
	d, err := calendar.ParseDay(r.Date)
	if err != nil {
		return heatmap.Event{}, fmt.Errorf("record %d: %w", i, err)
	}
	link := r.Link
	if link == "" {
		link = r.Slug
	}
	return heatmap.Event{Date: d, Title: r.Title, Link: link}, nil
}

func toEvents(recs []record) ([]heatmap.Event, error) {
	events := make([]heatmap.Event, 0, len(recs))
	for i, r := range recs {
		ev, err := r.event(i)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func toRecords(events []heatmap.Event) []record {
	recs := make([]record, 0, len(events))
	for _, ev := range events {
		recs = append(recs, record{Date: ev.Date.String(), Title: ev.Title, Link: ev.Link})
	}
	return recs
}

// DecodeJSON reads a JSON array of records. An empty stream is no events.
func DecodeJSON(r io.Reader) ([]heatmap.Event, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return toEvents(recs)
}

// DecodeYAML reads a YAML sequence of records. An empty stream is no events.
func DecodeYAML(r io.Reader) ([]heatmap.Event, error) {
	var recs []record
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return toEvents(recs)
}

// EncodeJSON writes events as an indented JSON array.
func EncodeJSON(w io.Writer, events []heatmap.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toRecords(events))
}

// EncodeYAML writes events as a YAML sequence.
func EncodeYAML(w io.Writer, events []heatmap.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toRecords(events)); err != nil {
		return err
	}
	return enc.Close()
}
