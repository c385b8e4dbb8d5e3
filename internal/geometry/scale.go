package geometry

import (
	"fmt"
	"math"
)

// FitScale returns the uniform factor that fits a w x h image inside
// maxW x maxH without upscaling: min(maxW/w, maxH/h, 1).
//
// Returns an error when any dimension is not positive.
func FitScale(w, h, maxW, maxH int) (float64, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if maxW <= 0 || maxH <= 0 {
		return 0, fmt.Errorf("invalid display caps %dx%d", maxW, maxH)
	}
	s := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return math.Min(s, 1.0), nil
}

// ToOriginal converts a display-space coordinate back to original pixels.
func ToOriginal(c int, s float64) int {
	return int(math.Round(float64(c) / s))
}

// ToDisplay converts an original-space coordinate to display pixels.
func ToDisplay(c int, s float64) int {
	return int(math.Round(float64(c) * s))
}

// DisplaySize returns the size of the display copy of a w x h image at scale s.
// Each side is at least one pixel.
func DisplaySize(w, h int, s float64) (int, int) {
	dw := ToDisplay(w, s)
	dh := ToDisplay(h, s)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	return dw, dh
}
