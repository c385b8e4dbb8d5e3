package annotate

import (
	"errors"
	"image"
	"testing"
)

var headerNames = []string{"product", "sku", "batch_no", "incharge_sign", "posting_done_by"}

func boxes(n int) []image.Rectangle {
	out := make([]image.Rectangle, n)
	for i := range out {
		out[i] = image.Rect(10*i, 5, 10*i+8, 15)
	}
	return out
}

func TestPairBoxes(t *testing.T) {
	rects, err := PairBoxes(headerNames, boxes(5), 0.5, 1000, 1000)
	if err != nil {
		t.Fatalf("PairBoxes failed: %v", err)
	}
	if len(rects) != 5 {
		t.Fatalf("got %d rects, want 5", len(rects))
	}
	for i, r := range rects {
		if r.Field != headerNames[i] {
			t.Errorf("rect %d field: got %q, want %q", i, r.Field, headerNames[i])
		}
		if r.X != 20*i || r.Y != 10 || r.W != 16 || r.H != 20 {
			t.Errorf("rect %d: got %+v", i, r)
		}
	}
}

func TestPairBoxes_CountMismatch(t *testing.T) {
	for _, n := range []int{0, 4, 6} {
		rects, err := PairBoxes(headerNames, boxes(n), 1.0, 100, 100)
		if rects != nil {
			t.Errorf("%d boxes: rects should be nil", n)
		}
		if !errors.Is(err, ErrBoxCount) {
			t.Fatalf("%d boxes: expected ErrBoxCount, got %v", n, err)
		}
		var bc *BoxCountError
		if !errors.As(err, &bc) || bc.Expected != 5 || bc.Got != n {
			t.Errorf("%d boxes: details %+v", n, bc)
		}
	}
}

func TestPairBoxes_EmptyBox(t *testing.T) {
	b := boxes(5)
	b[2] = image.Rect(30, 30, 30, 30)

	_, err := PairBoxes(headerNames, b, 1.0, 100, 100)
	if !errors.Is(err, ErrEmptyBox) {
		t.Errorf("expected ErrEmptyBox, got %v", err)
	}
}

func TestPairBoxes_ClampedToImage(t *testing.T) {
	// A box touching the right border of a 0.7 display rounds one pixel past
	// the original border
	rects, err := PairBoxes([]string{"edge"}, []image.Rectangle{image.Rect(600, 0, 700, 10)}, 0.7, 999, 100)
	if err != nil {
		t.Fatalf("PairBoxes failed: %v", err)
	}
	r := rects[0]
	if r.X+r.W > 999 {
		t.Errorf("rect leaves the image: %+v", r)
	}
}
