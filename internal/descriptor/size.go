package descriptor

import "fmt"

// SizeMismatch reports that an image does not have the dimensions recorded
// in its descriptor. Rectangles are still usable but will be misaligned.
type SizeMismatch struct {
	ImageWidth, ImageHeight int
	Width, Height           int
}

func (e *SizeMismatch) Error() string {
	return fmt.Sprintf("image size (%dx%d) differs from descriptor (%dx%d)",
		e.ImageWidth, e.ImageHeight, e.Width, e.Height)
}

// CheckSize compares the recorded dimensions with an image's actual size.
// It returns nil when they agree or when the descriptor has no size recorded.
func (d *Descriptor) CheckSize(imageWidth, imageHeight int) *SizeMismatch {
	if d.Width == 0 && d.Height == 0 {
		return nil
	}
	if d.Width == imageWidth && d.Height == imageHeight {
		return nil
	}
	return &SizeMismatch{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		Width:       d.Width,
		Height:      d.Height,
	}
}
