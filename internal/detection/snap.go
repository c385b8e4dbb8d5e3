package detection

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
)

const (
	// DefaultInkLevel is the luminance below which a pixel counts as ink.
	DefaultInkLevel = 128

	// DefaultMinCoverage is the fraction of a column or row that must be ink
	// before it is treated as a printed rule.
	DefaultMinCoverage = 0.5
)

// RuleProfile holds per-column and per-row ink counts of a binarised template.
type RuleProfile struct {
	columns []int // ink pixels in each x
	rows    []int // ink pixels in each y

	// MinCoverage overrides DefaultMinCoverage when positive.
	MinCoverage float64
}

// NewRuleProfile binarises img at DefaultInkLevel and counts ink along both
// axes. Coordinates in the profile are relative to img.Bounds().Min.
func NewRuleProfile(img image.Image) *RuleProfile {
	return NewRuleProfileLevel(img, DefaultInkLevel)
}

// NewRuleProfileLevel is NewRuleProfile with an explicit ink level.
func NewRuleProfileLevel(img image.Image, level uint8) *RuleProfile {
	gray := effect.Grayscale(img)
	bin := segment.Threshold(gray, level)

	b := bin.Bounds()
	p := &RuleProfile{
		columns: make([]int, b.Dx()),
		rows:    make([]int, b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if bin.GrayAt(x, y).Y == 0 {
				p.columns[x-b.Min.X]++
				p.rows[y-b.Min.Y]++
			}
		}
	}
	return p
}

// Coverage returns the ink fraction of column (Vertical) or row (Horizontal)
// v, or 0 when v is outside the image.
func (p *RuleProfile) Coverage(axis geometry.Axis, v int) float64 {
	counts, span := p.counts(axis)
	if v < 0 || v >= len(counts) || span == 0 {
		return 0
	}
	return float64(counts[v]) / float64(span)
}

// Snap moves v to the strongest rule within radius pixels. A vertical gridline
// snaps to a column, a horizontal one to a row. When no candidate reaches the
// minimum coverage, or radius is zero, v is returned unchanged. Ties go to the
// candidate closest to v.
func (p *RuleProfile) Snap(axis geometry.Axis, v, radius int) int {
	if radius <= 0 {
		return v
	}
	counts, span := p.counts(axis)
	if span == 0 || len(counts) == 0 {
		return v
	}

	minCoverage := p.MinCoverage
	if minCoverage <= 0 {
		minCoverage = DefaultMinCoverage
	}
	need := int(minCoverage * float64(span))
	if need < 1 {
		need = 1
	}

	best, bestCount, bestDist := v, 0, radius+1
	for c := v - radius; c <= v+radius; c++ {
		if c < 0 || c >= len(counts) || counts[c] < need {
			continue
		}
		d := abs(c - v)
		if counts[c] > bestCount || (counts[c] == bestCount && d < bestDist) {
			best, bestCount, bestDist = c, counts[c], d
		}
	}
	return best
}

// counts returns the ink counts along axis and the length of each line.
func (p *RuleProfile) counts(axis geometry.Axis) ([]int, int) {
	if axis == geometry.Horizontal {
		return p.rows, len(p.columns)
	}
	return p.columns, len(p.rows)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
