package geometry

import (
	"image"
	"math"
	"testing"
)

func TestFitScale(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		want       float64
	}{
		{"fits", 800, 600, 1400, 900, 1.0},
		{"exact", 1400, 900, 1400, 900, 1.0},
		{"width bound", 2800, 900, 1400, 900, 0.5},
		{"height bound", 1400, 1800, 1400, 900, 0.5},
		{"both bound, height wins", 2480, 3508, 1400, 900, 900.0 / 3508.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitScale(tt.w, tt.h, tt.maxW, tt.maxH)
			if err != nil {
				t.Fatalf("FitScale failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("FitScale(%d,%d,%d,%d) = %v, want %v", tt.w, tt.h, tt.maxW, tt.maxH, got, tt.want)
			}
		})
	}
}

func TestFitScale_Invalid(t *testing.T) {
	if _, err := FitScale(0, 100, 1400, 900); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := FitScale(100, 100, 0, 900); err == nil {
		t.Error("expected error for zero cap")
	}
}

func TestFitScale_Bounds(t *testing.T) {
	caps := [][2]int{{1400, 900}, {640, 480}, {333, 777}, {1, 1}}
	for _, c := range caps {
		for w := 1; w <= 5000; w += 97 {
			for h := 1; h <= 5000; h += 131 {
				s, err := FitScale(w, h, c[0], c[1])
				if err != nil {
					t.Fatalf("FitScale(%d,%d): %v", w, h, err)
				}
				if s <= 0 || s > 1 {
					t.Fatalf("scale out of range: %v for %dx%d caps %v", s, w, h, c)
				}
				if w <= c[0] && h <= c[1] && s != 1 {
					t.Fatalf("image %dx%d fits caps %v but scale is %v", w, h, c, s)
				}
				if s < 1 {
					dw, dh := ToDisplay(w, s), ToDisplay(h, s)
					if dw > c[0] || dh > c[1] {
						t.Fatalf("display %dx%d exceeds caps %v (image %dx%d, s=%v)", dw, dh, c, w, h, s)
					}
				}
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	sizes := [][2]int{{2480, 3508}, {4000, 1000}, {1500, 950}, {800, 600}}
	for _, sz := range sizes {
		s, err := FitScale(sz[0], sz[1], 1400, 900)
		if err != nil {
			t.Fatalf("FitScale failed: %v", err)
		}
		limit := sz[0]
		if sz[1] > limit {
			limit = sz[1]
		}
		for c := 0; c <= limit; c++ {
			back := ToDisplay(ToOriginal(c, s), s)
			if d := back - c; d < -1 || d > 1 {
				t.Fatalf("round trip of %d at s=%v gave %d", c, s, back)
			}
		}
	}
}

func TestDisplaySize(t *testing.T) {
	w, h := DisplaySize(2800, 1800, 0.5)
	if w != 1400 || h != 900 {
		t.Errorf("DisplaySize: got %dx%d, want 1400x900", w, h)
	}

	w, h = DisplaySize(3, 3, 0.01)
	if w != 1 || h != 1 {
		t.Errorf("DisplaySize minimum: got %dx%d, want 1x1", w, h)
	}
}

func TestRectToOriginal(t *testing.T) {
	r := RectToOriginal("sku", image.Rect(10, 20, 60, 45), 0.5, 1000, 1000)
	want := Rect{Field: "sku", X: 20, Y: 40, W: 100, H: 50}
	if r != want {
		t.Errorf("RectToOriginal: got %+v, want %+v", r, want)
	}
}

func TestRectToOriginal_ClampsToImage(t *testing.T) {
	// x=857, w=143 after rounding: one pixel past the 999px border
	r := RectToOriginal("edge", image.Rect(600, 0, 700, 10), 0.7, 999, 999)
	if r.X+r.W > 999 {
		t.Errorf("rect exceeds width: %+v", r)
	}
	if err := r.Check(999, 999); err != nil {
		t.Errorf("clamped rect invalid: %v", err)
	}
}

func TestRect_Check(t *testing.T) {
	tests := []struct {
		name    string
		r       Rect
		wantErr bool
	}{
		{"inside", Rect{"a", 0, 0, 10, 10}, false},
		{"touches edge", Rect{"a", 90, 90, 10, 10}, false},
		{"zero width", Rect{"a", 0, 0, 0, 10}, true},
		{"negative origin", Rect{"a", -1, 0, 5, 5}, true},
		{"past right edge", Rect{"a", 95, 0, 10, 5}, true},
		{"past bottom edge", Rect{"a", 0, 95, 5, 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Check(100, 100)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRect_Bounds(t *testing.T) {
	b := Rect{"a", 5, 6, 7, 8}.Bounds()
	if b != image.Rect(5, 6, 12, 14) {
		t.Errorf("Bounds: got %v", b)
	}
}
