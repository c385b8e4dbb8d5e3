package verify

import (
	"image"
	"image/color"
	"strings"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
	"github.com/ironsheep/form-roi-tools/internal/imaging"
)

// Stroke widths in original pixels.
const (
	BoxThickness       = 2
	HighlightThickness = 3
)

// RenderOptions controls overlay appearance.
type RenderOptions struct {
	// ColorByColumn gives every table column its own colour; header fields
	// keep imaging.BoxColor.
	ColorByColumn bool

	// LabelScale enlarges field labels; values below 1 mean 1.
	LabelScale int

	// HighlightColor overrides imaging.HighlightColor when non-nil.
	HighlightColor color.Color
}

// Render draws every rectangle with its field label on a copy of img at
// original resolution. The rectangle at index highlight is drawn last, in
// the highlight colour with a thicker stroke; pass -1 for none.
func Render(img image.Image, rois []geometry.Rect, highlight int, opts RenderOptions) *image.RGBA {
	canvas := imaging.Canvas(img)
	colors := boxColors(rois, opts.ColorByColumn)

	for i, r := range rois {
		if i == highlight {
			continue
		}
		drawROI(canvas, r, colors[i], BoxThickness, opts.LabelScale)
	}
	if highlight >= 0 && highlight < len(rois) {
		hc := opts.HighlightColor
		if hc == nil {
			hc = imaging.HighlightColor
		}
		drawROI(canvas, rois[highlight], hc, HighlightThickness, opts.LabelScale)
	}
	return canvas
}

func drawROI(dst *image.RGBA, r geometry.Rect, c color.Color, thickness, labelScale int) {
	imaging.DrawRect(dst, r.Bounds(), c, thickness)
	imaging.DrawLabel(dst, r.X, r.Y, r.Field, imaging.TextColor, c, labelScale)
}

// boxColors assigns each rectangle its stroke colour.
func boxColors(rois []geometry.Rect, byColumn bool) []color.Color {
	out := make([]color.Color, len(rois))
	for i := range out {
		out[i] = imaging.BoxColor
	}
	if !byColumn {
		return out
	}

	var columns []string
	index := make(map[string]int)
	for _, r := range rois {
		col, ok := columnOf(r.Field)
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = len(columns)
			columns = append(columns, col)
		}
	}

	palette := imaging.Palette(len(columns))
	for i, r := range rois {
		if col, ok := columnOf(r.Field); ok {
			out[i] = palette[index[col]]
		}
	}
	return out
}

// columnOf returns the column part of a "<column>__<row>" cell name.
func columnOf(field string) (string, bool) {
	col, _, ok := strings.Cut(field, "__")
	return col, ok && col != ""
}
