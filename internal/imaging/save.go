package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// DefaultQuality is used for lossy formats when the caller passes zero.
const DefaultQuality = 92

// Save writes img to path, creating the parent directory. The format follows
// the extension: .png, .jpg/.jpeg or .webp. Quality applies to JPEG and WebP
// (1-100, zero selects DefaultQuality).
func Save(path string, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".webp" {
		return saveWebP(path, img, quality)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", ext, err)
	}
	if format != imaging.PNG && format != imaging.JPEG {
		return fmt.Errorf("unsupported output format %q", ext)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func saveWebP(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := webp.Encode(f, img, &webp.Options{Quality: float32(quality)}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return f.Close()
}
