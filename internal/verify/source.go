package verify

import (
	"errors"

	"github.com/ironsheep/form-roi-tools/internal/descriptor"
)

// ErrNoSource is returned when neither a template id nor both explicit paths
// were given.
var ErrNoSource = errors.New("provide either a template id or both a JSON path and an image path")

// Source names the descriptor and image a verification session reads.
type Source struct {
	JSONPath  string
	ImagePath string
}

// Resolve picks the descriptor and image paths.
//
// With a template id the descriptor is <outputDir>/<id>.json and the image is
// the first existing <templatesDir>/<id>.png, .jpg or .jpeg. An explicit
// jsonPath or imagePath replaces the corresponding conventional path. Without
// a template id both explicit paths are required.
func Resolve(templateID, jsonPath, imagePath, outputDir, templatesDir string) (Source, error) {
	if templateID == "" {
		if jsonPath == "" || imagePath == "" {
			return Source{}, ErrNoSource
		}
		return Source{JSONPath: jsonPath, ImagePath: imagePath}, nil
	}

	src := Source{JSONPath: jsonPath, ImagePath: imagePath}
	if src.JSONPath == "" {
		src.JSONPath = descriptor.Path(outputDir, templateID)
	}
	if src.ImagePath == "" {
		p, err := descriptor.ResolveImage(templatesDir, templateID)
		if err != nil {
			return Source{}, err
		}
		src.ImagePath = p
	}
	return src, nil
}
