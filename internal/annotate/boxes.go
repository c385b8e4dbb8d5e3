package annotate

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
)

var (
	// ErrBoxCount is returned when the operator draws a different number of
	// boxes than there are header fields.
	ErrBoxCount = errors.New("box count mismatch")

	// ErrEmptyBox is returned when a drawn box has no area after rescaling.
	ErrEmptyBox = errors.New("empty box")
)

// BoxCountError carries the expected and actual number of drawn boxes.
type BoxCountError struct {
	Expected int
	Got      int
}

func (e *BoxCountError) Error() string {
	return fmt.Sprintf("expected %d boxes, got %d", e.Expected, e.Got)
}

func (e *BoxCountError) Unwrap() error { return ErrBoxCount }

// PairBoxes pairs box i with name i and rescales every box from the display
// copy (scale s) to original pixels of a width x height image.
//
// The counts must match exactly; extra or missing boxes are never truncated
// or padded.
func PairBoxes(names []string, boxes []image.Rectangle, s float64, width, height int) ([]geometry.Rect, error) {
	if len(boxes) != len(names) {
		return nil, &BoxCountError{Expected: len(names), Got: len(boxes)}
	}

	out := make([]geometry.Rect, 0, len(names))
	for i, name := range names {
		r := geometry.RectToOriginal(name, boxes[i], s, width, height)
		if r.W <= 0 || r.H <= 0 {
			return nil, fmt.Errorf("%w: %q (box %d of %d)", ErrEmptyBox, name, i+1, len(names))
		}
		out = append(out, r)
	}
	return out, nil
}
