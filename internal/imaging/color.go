package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Overlay colours. Boxes default to yellow, the highlighted box is blue.
var (
	BoxColor       = color.RGBA{255, 255, 0, 255}
	HighlightColor = color.RGBA{0, 0, 255, 255}
	TextColor      = color.RGBA{0, 0, 0, 255}
	DotColor       = color.RGBA{0, 255, 0, 255}
	WarningColor   = color.RGBA{255, 0, 0, 255}
)

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
func ParseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(hex) {
	case 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8(val >> 16),
			B: uint8(val >> 8),
			A: uint8(val),
		}, nil
	case 0:
		return color.RGBA{}, fmt.Errorf("empty color string")
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length %d", len(hex))
	}
}

// Palette returns n opaque colours with evenly spaced hues. The sequence is
// deterministic so a column keeps its colour between runs. Hues near the
// highlight blue are skipped.
func Palette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		// 0..200 degrees, then 280..360: keep clear of the 240 highlight hue
		h := float64(i) * 280.0 / float64(n)
		if h > 200 {
			h += 80
		}
		r, g, b := colorful.Hsv(h, 0.85, 0.95).Clamped().RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}
