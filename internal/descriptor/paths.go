package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default directories, relative to the working directory.
const (
	DefaultOutputDir    = "outputs"
	DefaultTemplatesDir = "templates"
)

// ImageExtensions lists the template image suffixes tried, in order, when a
// template is located by id.
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

// ErrImageNotFound is returned when no template image exists for an id.
var ErrImageNotFound = errors.New("template image not found")

// Path returns the descriptor location for a template id.
func Path(outputDir, templateID string) string {
	return filepath.Join(outputDir, templateID+".json")
}

// ResolveImage returns the first existing <templatesDir>/<id><ext> for the
// extensions in ImageExtensions. The error lists every candidate tried.
func ResolveImage(templatesDir, templateID string) (string, error) {
	candidates := make([]string, 0, len(ImageExtensions))
	for _, ext := range ImageExtensions {
		p := filepath.Join(templatesDir, templateID+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
		candidates = append(candidates, p)
	}
	return "", fmt.Errorf("%w for %q; tried:\n%s", ErrImageNotFound, templateID, strings.Join(candidates, "\n"))
}

// OverlayPath returns a timestamped export location such as
// outputs/<id>_overlay_20240131_154502.png. An empty id becomes "template".
func OverlayPath(outputDir, templateID string, at time.Time, ext string) string {
	if templateID == "" {
		templateID = "template"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := fmt.Sprintf("%s_overlay_%s%s", templateID, at.Format("20060102_150405"), ext)
	return filepath.Join(outputDir, name)
}
