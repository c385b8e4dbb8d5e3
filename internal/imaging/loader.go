package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultPDFDPI is the rasterisation resolution for PDF templates when the
// caller passes zero.
const DefaultPDFDPI = 200

// Load reads a template image from disk.
//
// Parameters:
//   - path: File path to a PNG, JPEG, GIF, WebP or PDF file.
//   - pdfDPI: Render resolution for PDF input; zero selects DefaultPDFDPI.
//     Ignored for raster formats.
//
// Returns:
//   - image.Image: The decoded image. Raster images are returned with EXIF
//     orientation applied.
//   - error: Non-nil if the file does not exist, cannot be decoded, or is a
//     PDF without pages.
//
// The returned error distinguishes a missing file (wrapping os.ErrNotExist)
// from an unreadable one so callers can report which happened.
func Load(path string, pdfDPI int) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("image not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("image path %s is a directory", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path, pdfDPI)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// loadPDF renders the first page of a PDF template.
func loadPDF(path string, dpi int) (image.Image, error) {
	if dpi <= 0 {
		dpi = DefaultPDFDPI
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF %s has no pages", path)
	}

	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF page: %w", err)
	}
	return img, nil
}

// ImageInfo contains metadata about a loaded template image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "webp", "pdf" or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Describe returns size and format details for an image already loaded from
// path. It is used for the start-up log line of both tools.
func Describe(img image.Image, path string) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".webp":
		format = "webp"
	case ".pdf":
		format = "pdf"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
