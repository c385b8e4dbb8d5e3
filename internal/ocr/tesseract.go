package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
	"github.com/ironsheep/form-roi-tools/internal/imaging"
)

const (
	// DefaultLanguage is used when the caller passes an empty language.
	DefaultLanguage = "eng"

	// Upscale enlarges each crop before recognition. Form cells are small and
	// Tesseract reads noticeably better at twice the scan resolution.
	Upscale = 2.0
)

// ErrRegion is returned when a region cannot be cropped from the image.
var ErrRegion = errors.New("invalid OCR region")

// Result is the text recognised inside one region of interest.
type Result struct {
	// Field is the name of the region that was read.
	Field string `json:"field"`

	// Text is the recognised text with surrounding whitespace removed.
	Text string `json:"text"`

	// Confidence is the mean word confidence (0.0 to 1.0), or 0 when no
	// words were found.
	Confidence float64 `json:"confidence"`
}

// ReadRegion performs OCR on one region of a template image.
//
// Parameters:
//   - img: The template image at original resolution.
//   - roi: The region to read, in original-image pixels.
//   - language: Tesseract language code (e.g., "eng"); empty selects
//     DefaultLanguage. The language data must be installed on the system.
//
// Returns:
//   - *Result: The trimmed text and its confidence.
//   - error: ErrRegion when roi is empty or outside img, otherwise non-nil if
//     Tesseract cannot be initialised or recognition fails.
//
// The crop is enlarged by Upscale and handed to Tesseract in memory as PNG,
// so no temporary files are created.
func ReadRegion(img image.Image, roi geometry.Rect, language string) (*Result, error) {
	if language == "" {
		language = DefaultLanguage
	}

	region := roi.Bounds().Add(img.Bounds().Min)
	cropped, err := imaging.Crop(img, region, Upscale)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrRegion, roi.Field, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &Result{
		Field: roi.Field,
		Text:  strings.TrimSpace(text),
	}

	// Confidence is best effort; keep the text if boxes are unavailable
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}
	sum, words := 0.0, 0
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		sum += box.Confidence
		words++
	}
	if words > 0 {
		result.Confidence = sum / float64(words) / 100.0
	}
	return result, nil
}

// Version returns the version string of the linked Tesseract library.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
