package heatmap

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Blend selects the colour space used to interpolate between Low and High.
type Blend string

const (
	// BlendRGB interpolates red, green and blue linearly.
	BlendRGB Blend = "rgb"
	// BlendLab interpolates in CIE L*a*b*.
	BlendLab Blend = "lab"
	// BlendHCL interpolates hue, chroma and luminance.
	BlendHCL Blend = "hcl"
)

// ParseBlend reads a blend name. Empty means BlendRGB.
func ParseBlend(s string) (Blend, error) {
	switch b := Blend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BlendRGB, nil
	case BlendRGB, BlendLab, BlendHCL:
		return b, nil
	}
	return BlendRGB, fmt.Errorf("heatmap: unknown blend %q, expected rgb, lab or hcl", s)
}

// Palette holds the colours of the heatmap.
type Palette struct {
	// Empty fills days with no events.
	Empty colorful.Color
	// Low and High are the ends of the interpolated range.
	Low  colorful.Color
	High colorful.Color
	// Hover fills the highlighted day. A pinned day keeps its scale fill.
	Hover colorful.Color
	Blend Blend
}

// DefaultPalette is white for empty days and light blue to dark blue for
// counts.
func DefaultPalette() Palette {
	p, _ := ParsePalette("#ffffff", "#add8e6", "#00008b", "#ff9933", BlendRGB)
	return p
}

// ParsePalette builds a palette from hex strings.
func ParsePalette(empty, low, high, hover string, blend Blend) (Palette, error) {
	var p Palette
	var err error
	if p.Empty, err = parseHex("empty", empty); err != nil {
		return Palette{}, err
	}
	if p.Low, err = parseHex("low", low); err != nil {
		return Palette{}, err
	}
	if p.High, err = parseHex("high", high); err != nil {
		return Palette{}, err
	}
	if p.Hover, err = parseHex("hover", hover); err != nil {
		return Palette{}, err
	}
	if p.Blend, err = ParseBlend(string(blend)); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func parseHex(name, hex string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("heatmap: %s colour %q: %w", name, hex, err)
	}
	return c, nil
}

// Scale maps event counts onto the palette. The domain is [min, max] over the
// non-empty counts it was built from.
type Scale struct {
	min, max int
	ok       bool
	palette  Palette
}

// NewScale builds a scale over counts. Counts of zero or less are not part of
// the domain.
func NewScale(counts []int, palette Palette) Scale {
	s := Scale{palette: palette}
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		if !s.ok {
			s.min, s.max, s.ok = c, c, true
			continue
		}
		if c < s.min {
			s.min = c
		}
		if c > s.max {
			s.max = c
		}
	}
	return s
}

// Domain returns the smallest and largest counts, and false when no day has
// events.
func (s Scale) Domain() (int, int, bool) {
	return s.min, s.max, s.ok
}

// Palette returns the palette the scale draws from.
func (s Scale) Palette() Palette {
	return s.palette
}

// Intensity normalizes count into [0, 1]. It reports false for a count of
// zero, which is the separate "empty" state. A zero-width domain maps every
// count to 0.
func (s Scale) Intensity(count int) (float64, bool) {
	if count <= 0 {
		return 0, false
	}
	if !s.ok || s.max == s.min {
		return 0, true
	}
	t := float64(count-s.min) / float64(s.max-s.min)
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return t, true
}

// Color returns the fill for count.
func (s Scale) Color(count int) colorful.Color {
	t, ok := s.Intensity(count)
	if !ok {
		return s.palette.Empty
	}
	return s.palette.At(t)
}

// At interpolates between Low (t=0) and High (t=1).
func (p Palette) At(t float64) colorful.Color {
	switch p.Blend {
	case BlendLab:
		return p.Low.BlendLab(p.High, t).Clamped()
	case BlendHCL:
		return p.Low.BlendHcl(p.High, t).Clamped()
	default:
		return p.Low.BlendRgb(p.High, t)
	}
}

// Contrast picks black or white text for legibility on fill.
func Contrast(fill colorful.Color) colorful.Color {
	l, _, _ := fill.Lab()
	if l > 0.6 {
		return colorful.Color{R: 0, G: 0, B: 0}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}
