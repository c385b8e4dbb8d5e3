package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
)

// Fit returns the display copy of img at uniform scale s. When s is 1 (or
// larger) the original image is returned unchanged.
func Fit(img image.Image, s float64) image.Image {
	if s >= 1.0 {
		return img
	}
	b := img.Bounds()
	w, h := geometry.DisplaySize(b.Dx(), b.Dy(), s)
	return imaging.Resize(img, w, h, imaging.Linear)
}
