// Package overlay composes a foreground view over a background view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls where the overlay lands. When Absolute is set, X and Y
// give the top-left corner, clamped so the overlay stays on screen.
// Otherwise the overlay is aligned with Horizontal and Vertical.
type Placement struct {
	Absolute bool
	X, Y     int

	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// At places the overlay's top-left corner at x, y.
func At(x, y int) Placement {
	return Placement{Absolute: true, X: x, Y: y}
}

// Compose overlays foreground atop background while preserving background
// content outside the overlay bounds. It returns the composed view and the
// rectangle the overlay occupies.
func Compose(background string, width, height int, foreground string, placement Placement) (string, Rect) {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n"), Rect{}
	}

	fgLines := strings.Split(foreground, "\n")
	overlayWidth := 0
	for _, line := range fgLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}
	if overlayWidth <= 0 {
		return strings.Join(bgLines, "\n"), Rect{}
	}
	overlayWidth = min(overlayWidth, width)
	overlayHeight := min(len(fgLines), height)

	offsetX, offsetY := computeOffsets(width, height, overlayWidth, overlayHeight, placement)

	for row := 0; row < overlayHeight; row++ {
		destY := offsetY + row
		fgLine := padToWidth(fgLines[row], overlayWidth)
		base := bgLines[destY]
		prefix := ansi.Truncate(base, offsetX, "")
		suffix := ansi.TruncateLeft(base, offsetX+overlayWidth, "")
		bgLines[destY] = prefix + fgLine + suffix
	}

	return strings.Join(bgLines, "\n"), Rect{X: offsetX, Y: offsetY, W: overlayWidth, H: overlayHeight}
}

// Rect is the screen area covered by an overlay.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether x, y is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := lipgloss.Width(s)
	if currWidth > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-currWidth)
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	var offsetX, offsetY int
	if placement.Absolute {
		offsetX, offsetY = placement.X, placement.Y
	} else {
		offsetX = align(width, overlayWidth, placement.Horizontal, placement.MarginX)
		offsetY = align(height, overlayHeight, placement.Vertical, placement.MarginY)
	}
	return clamp(offsetX, 0, width-overlayWidth), clamp(offsetY, 0, height-overlayHeight)
}

func align(total, size int, pos lipgloss.Position, margin int) int {
	switch {
	case pos <= lipgloss.Left:
		return margin
	case pos >= lipgloss.Right:
		return total - size - margin
	default:
		return int(float64(total-size) * float64(pos))
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
