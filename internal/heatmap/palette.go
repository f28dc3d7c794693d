package heatmap

import "fmt"

// Palette maps a contribution level (0..4) to a display color.
type Palette [MaxLevel + 1]string

// DefaultPalette runs from zinc-700 for empty days up to white for the busiest.
var DefaultPalette = Palette{
	"#3f3f46",
	"#52525b",
	"#71717a",
	"#a1a1aa",
	"#ffffff",
}

// ClampLevel maps levels outside 0..MaxLevel to 0.
func ClampLevel(level int) int {
	if level < 0 || level > MaxLevel {
		return 0
	}
	return level
}

// Color returns the color for level. Unknown levels render as level 0.
func (p Palette) Color(level int) string {
	if c := p[ClampLevel(level)]; c != "" {
		return c
	}
	return p[0]
}

// NewPalette builds a palette from exactly five colors.
func NewPalette(colors []string) (Palette, error) {
	var p Palette
	if len(colors) != len(p) {
		return p, fmt.Errorf("palette needs %d colors, got %d", len(p), len(colors))
	}
	for i, c := range colors {
		if c == "" {
			return p, fmt.Errorf("palette color %d is empty", i)
		}
		p[i] = c
	}
	return p, nil
}
