package annotate

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
)

// ErrGridCount reports that the number of distinct gridlines differs from the
// number the layout expects. It is a warning; collection still completes.
var ErrGridCount = errors.New("unexpected gridline count")

// GridCountWarning carries the details of an ErrGridCount.
type GridCountWarning struct {
	Axis     geometry.Axis
	Expected int
	Got      int
}

func (w *GridCountWarning) Error() string {
	return fmt.Sprintf("expected %d %s gridlines, got %d", w.Expected, w.Axis, w.Got)
}

func (w *GridCountWarning) Unwrap() error { return ErrGridCount }

// Snapper moves an original-pixel gridline coordinate onto a nearby printed
// rule. detection.RuleProfile implements it.
type Snapper interface {
	Snap(axis geometry.Axis, v, radius int) int
}

// GridSession accumulates gridline clicks for one axis. Points are kept in
// display pixels in click order; Finish converts them.
type GridSession struct {
	Axis geometry.Axis

	// Scale is the display factor the clicks were made at.
	Scale float64

	// Expected is the number of gridlines the layout needs, or 0 if unknown.
	Expected int

	// Snapper and SnapRadius are optional; a nil Snapper or zero radius
	// keeps clicked positions as they are.
	Snapper    Snapper
	SnapRadius int

	points []image.Point
}

// NewGridSession starts an empty session.
func NewGridSession(axis geometry.Axis, scale float64, expected int) *GridSession {
	return &GridSession{Axis: axis, Scale: scale, Expected: expected}
}

// Record appends a click.
func (g *GridSession) Record(p image.Point) {
	g.points = append(g.points, p)
}

// UndoLast removes the most recent click. It reports false when there was
// nothing to remove.
func (g *GridSession) UndoLast() bool {
	if len(g.points) == 0 {
		return false
	}
	g.points = g.points[:len(g.points)-1]
	return true
}

// Reset discards every click.
func (g *GridSession) Reset() {
	g.points = g.points[:0]
}

// Count returns the number of recorded clicks.
func (g *GridSession) Count() int {
	return len(g.points)
}

// Points returns a copy of the recorded clicks in click order.
func (g *GridSession) Points() []image.Point {
	return append([]image.Point(nil), g.points...)
}

// Values returns each click projected onto the session axis, rescaled to
// original pixels and snapped, in click order.
func (g *GridSession) Values() []int {
	vals := make([]int, len(g.points))
	for i, p := range g.points {
		v := geometry.ToOriginal(g.Axis.Project(p), g.Scale)
		if g.Snapper != nil && g.SnapRadius > 0 {
			v = g.Snapper.Snap(g.Axis, v, g.SnapRadius)
		}
		vals[i] = v
	}
	return vals
}

// Finish returns the gridline coordinates in original pixels, sorted
// ascending. Sorting, not click order, defines which lines are adjacent.
func (g *GridSession) Finish() []int {
	vals := g.Values()
	sort.Ints(vals)
	return vals
}

// Distinct returns the number of distinct gridline values recorded so far.
func (g *GridSession) Distinct() int {
	return distinct(g.Values())
}

// CheckCount compares the number of distinct values against Expected and
// returns a *GridCountWarning on mismatch.
func (g *GridSession) CheckCount(vals []int) error {
	if g.Expected <= 0 {
		return nil
	}
	if n := distinct(vals); n != g.Expected {
		return &GridCountWarning{Axis: g.Axis, Expected: g.Expected, Got: n}
	}
	return nil
}

// Duplicates returns, once each and ascending, the values of a sorted
// gridline set that occur more than once. Two equal adjacent lines would
// produce a cell with no width or height.
func Duplicates(sorted []int) []int {
	var dup []int
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			continue
		}
		if len(dup) == 0 || dup[len(dup)-1] != sorted[i] {
			dup = append(dup, sorted[i])
		}
	}
	return dup
}

func distinct(vals []int) int {
	seen := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}
