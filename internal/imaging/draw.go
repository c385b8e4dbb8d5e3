package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph metrics of basicfont.Face7x13.
const (
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
)

// Canvas returns a mutable RGBA copy of img with bounds starting at (0,0).
func Canvas(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FillRect paints r with c, clipped to dst.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawRect outlines r with a stroke of the given thickness drawn inward from
// its edges, clipped to dst.
func DrawRect(dst draw.Image, r image.Rectangle, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	t := thickness
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c) // top
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c) // bottom
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c) // left
	FillRect(dst, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c) // right
}

// DrawDot paints a filled square of the given radius centred on p.
func DrawDot(dst draw.Image, p image.Point, radius int, c color.Color) {
	FillRect(dst, image.Rect(p.X-radius, p.Y-radius, p.X+radius+1, p.Y+radius+1), c)
}

// LabelSize returns the pixel size of a label rendered at the given scale,
// padding included.
func LabelSize(text string, scale int) image.Point {
	if scale < 1 {
		scale = 1
	}
	return image.Pt((len(text)*glyphWidth+6)*scale, (glyphHeight+4)*scale)
}

// DrawLabel draws text on a filled background whose bottom-left corner sits
// at (x, y), so a label drawn at a box's top-left corner sits just above the
// box. When there is no room above, the label moves inside the box.
//
// The text is rendered with basicfont at 7x13 and enlarged by scale with
// nearest-neighbour resampling.
func DrawLabel(dst draw.Image, x, y int, text string, fg, bg color.Color, scale int) {
	if scale < 1 {
		scale = 1
	}
	size := LabelSize(text, 1)

	small := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(small, small.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(3, 2+glyphAscent),
	}
	d.DrawString(text)

	var label image.Image = small
	if scale > 1 {
		label = imaging.Resize(small, size.X*scale, size.Y*scale, imaging.NearestNeighbor)
	}

	lb := label.Bounds()
	top := y - lb.Dy()
	if top < dst.Bounds().Min.Y {
		top = y + 1
	}
	target := image.Rect(x, top, x+lb.Dx(), top+lb.Dy())
	clipped := target.Intersect(dst.Bounds())
	if clipped.Empty() {
		return
	}
	draw.Draw(dst, clipped, label, lb.Min.Add(clipped.Min.Sub(target.Min)), draw.Over)
}

// DrawBanner writes one line of status text in the top-left corner of dst,
// offset by line*label height.
func DrawBanner(dst draw.Image, line int, text string, fg color.Color, scale int) {
	h := LabelSize(text, scale).Y
	b := dst.Bounds()
	DrawLabel(dst, b.Min.X+4, b.Min.Y+4+(line+1)*(h+2), text, fg, color.NRGBA{255, 255, 255, 220}, scale)
}
