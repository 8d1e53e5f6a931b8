package sample

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns k visually distinct colors as "#rrggbb" strings. Hues are
// spread evenly so the result is deterministic.
func Palette(k int) []string {
	colors := make([]string, k)
	for i := range colors {
		hue := 360 * float64(i) / float64(k)
		colors[i] = colorful.Hsv(hue, 0.65, 0.85).Clamped().Hex()
	}
	return colors
}

// RandomPalette returns k random pleasant colors as "#rrggbb" strings.
func RandomPalette(k int) []string {
	palette := colorful.FastHappyPalette(k)
	colors := make([]string, len(palette))
	for i, c := range palette {
		colors[i] = c.Clamped().Hex()
	}
	return colors
}
