package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// Guides describes gridline positions to preview over an image.
type Guides struct {
	// Vertical holds x positions, Horizontal holds y positions, both in the
	// pixel space of the image being drawn on.
	Vertical   []int
	Horizontal []int

	Color     color.Color
	Thickness int

	// ShowCoordinates labels each line with its position.
	ShowCoordinates bool
	LabelScale      int
}

// DrawGuides draws full-length vertical and horizontal lines on dst.
func DrawGuides(dst draw.Image, g Guides) {
	b := dst.Bounds()
	c := g.Color
	if c == nil {
		c = color.NRGBA{255, 0, 0, 160}
	}
	t := g.Thickness
	if t < 1 {
		t = 1
	}
	half := t / 2

	for _, x := range g.Vertical {
		FillRect(dst, image.Rect(x-half, b.Min.Y, x-half+t, b.Max.Y), c)
	}
	for _, y := range g.Horizontal {
		FillRect(dst, image.Rect(b.Min.X, y-half, b.Max.X, y-half+t), c)
	}

	if !g.ShowCoordinates {
		return
	}
	labelColor := color.RGBA{255, 255, 255, 255}
	bgColor := color.RGBA{0, 0, 0, 180}
	h := LabelSize("0", g.LabelScale).Y
	for _, x := range g.Vertical {
		DrawLabel(dst, x+2, b.Min.Y+h+2, strconv.Itoa(x), labelColor, bgColor, g.LabelScale)
	}
	for _, y := range g.Horizontal {
		DrawLabel(dst, b.Min.X+2, y-1, strconv.Itoa(y), labelColor, bgColor, g.LabelScale)
	}
}
