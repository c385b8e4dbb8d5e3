package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, image.Rect(0, 0, 50, 50), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	b := result.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}

	// Top-left quadrant is red
	r, g, bl := rgbAt(result, b.Min.X+10, b.Min.Y+10)
	if r != 255 || g != 0 || bl != 0 {
		t.Errorf("crop color: got (%d,%d,%d), want (255,0,0)", r, g, bl)
	}
}

func TestCrop_Offset(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, image.Rect(60, 60, 90, 80), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	b := result.Bounds()
	if b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", b.Dx(), b.Dy())
	}
	// Bottom-right quadrant is white
	r, g, bl := rgbAt(result, b.Min.X, b.Min.Y)
	if r != 255 || g != 255 || bl != 255 {
		t.Errorf("crop color: got (%d,%d,%d), want white", r, g, bl)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Scale up 2x
	result, err := Crop(img, image.Rect(0, 0, 50, 50), 2.0)
	if err != nil {
		t.Fatalf("Crop with scale failed: %v", err)
	}

	if result.Bounds().Dx() != 100 || result.Bounds().Dy() != 100 {
		t.Errorf("scaled dimensions: got %v, want 100x100", result.Bounds())
	}
}

func TestCrop_ScaleDown(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := Crop(img, image.Rect(0, 0, 100, 100), 0.5)
	if err != nil {
		t.Fatalf("Crop with scale down failed: %v", err)
	}

	if result.Bounds().Dx() != 50 || result.Bounds().Dy() != 50 {
		t.Errorf("scaled dimensions: got %v, want 50x50", result.Bounds())
	}
}

func TestCrop_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name   string
		region image.Rectangle
	}{
		{"outside right", image.Rect(90, 0, 110, 10)},
		{"negative origin", image.Rect(-5, 0, 10, 10)},
		{"empty", image.Rect(10, 10, 10, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.region, 1.0); err == nil {
				t.Errorf("Crop(%v) should fail", tt.region)
			}
		})
	}
}

func TestFit(t *testing.T) {
	img := createInMemoryImage(400, 200, color.White)

	if Fit(img, 1.0) != img {
		t.Error("Fit at scale 1 should return the input")
	}

	small := Fit(img, 0.25)
	if small.Bounds().Dx() != 100 || small.Bounds().Dy() != 50 {
		t.Errorf("Fit(0.25): got %v, want 100x50", small.Bounds())
	}
}
