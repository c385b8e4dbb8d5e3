package geometry

import (
	"fmt"
	"image"
)

// Rect is a named region of interest in original-image pixels.
type Rect struct {
	Field string `json:"field"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
}

// Bounds returns the rectangle as an image.Rectangle (max exclusive).
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Check reports whether r is a non-empty rectangle lying fully inside a
// width x height image.
func (r Rect) Check(width, height int) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%s: empty rectangle %dx%d", r.Field, r.W, r.H)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%s: negative origin (%d,%d)", r.Field, r.X, r.Y)
	}
	if r.X+r.W > width || r.Y+r.H > height {
		return fmt.Errorf("%s: (%d,%d %dx%d) exceeds image %dx%d",
			r.Field, r.X, r.Y, r.W, r.H, width, height)
	}
	return nil
}

// RectToOriginal rescales a rectangle drawn on the display copy into original
// pixels and clamps it to the width x height image. Rounding can push the far
// edge one pixel past the border; clamping keeps x+w <= width and y+h <= height.
func RectToOriginal(field string, d image.Rectangle, s float64, width, height int) Rect {
	r := Rect{
		Field: field,
		X:     ToOriginal(d.Min.X, s),
		Y:     ToOriginal(d.Min.Y, s),
		W:     ToOriginal(d.Dx(), s),
		H:     ToOriginal(d.Dy(), s),
	}
	r.X = clamp(r.X, 0, width)
	r.Y = clamp(r.Y, 0, height)
	if r.X+r.W > width {
		r.W = width - r.X
	}
	if r.Y+r.H > height {
		r.H = height - r.Y
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
