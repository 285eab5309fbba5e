// Package source loads dated events from JSON, YAML and iCalendar files and
// watches them for changes.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"tableflip.dev/heatcal/pkg/heatmap"
)

// ErrUnknownFormat is returned for a format name or file extension that no
// decoder handles.
var ErrUnknownFormat = errors.New("source: unknown format")

// Format names an event file encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// ParseFormat reads a format name. An empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML, FormatICS:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "ical":
		return FormatICS, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Detect picks a format from the file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ics", ".ical":
		return FormatICS, nil
	}
	return "", fmt.Errorf("%w: cannot detect format of %s", ErrUnknownFormat, path)
}

// Source is an event file on disk.
type Source struct {
	Path   string
	Format Format
	Log    logrus.FieldLogger
}

// New resolves path (expanding ~) and the effective format.
func New(path string, format Format, log logrus.FieldLogger) (*Source, error) {
	if path == "" {
		return nil, errors.New("source: no event file given")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("source: expand %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", path, err)
	}
	if format == "" || format == FormatAuto {
		if format, err = Detect(abs); err != nil {
			return nil, err
		}
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Source{Path: abs, Format: format, Log: log}, nil
}

// Load reads and decodes the file.
func (s *Source) Load() ([]heatmap.Event, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	events, err := Decode(f, s.Format, s.Log)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", s.Path, err)
	}
	s.Log.WithFields(logrus.Fields{
		"path":   s.Path,
		"format": string(s.Format),
		"events": len(events),
	}).Info("source: loaded")
	return events, nil
}

// Decode reads events in format f from r. FormatAuto is not accepted here.
func Decode(r io.Reader, f Format, log logrus.FieldLogger) ([]heatmap.Event, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatICS:
		return DecodeICS(r, log)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

// Encode writes events in format f. Only record formats can be written.
func Encode(w io.Writer, f Format, events []heatmap.Event) error {
	switch f {
	case FormatJSON:
		return EncodeJSON(w, events)
	case FormatYAML:
		return EncodeYAML(w, events)
	}
	return fmt.Errorf("%w %q for writing", ErrUnknownFormat, f)
}
