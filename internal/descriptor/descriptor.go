// Package descriptor defines the template descriptor JSON shared by the
// annotator (writer) and the verifier (reader).
package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
)

var (
	// ErrNoROIs is returned when a descriptor has no rectangles.
	ErrNoROIs = errors.New("no ROIs found in descriptor")

	// ErrDuplicateField is returned when two rectangles share a field name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrDegenerateCell is returned when a rectangle is empty or leaves the image.
	ErrDegenerateCell = errors.New("invalid rectangle")
)

// Descriptor maps field names to pixel rectangles for one template image.
// Coordinates are valid only for an image of exactly Width x Height pixels.
type Descriptor struct {
	TemplateID string          `json:"template_id"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	ROIs       []geometry.Rect `json:"rois"`
}

// Assemble combines header rectangles and table cells (in that order) into a
// descriptor and validates it.
func Assemble(templateID string, width, height int, header, cells []geometry.Rect) (*Descriptor, error) {
	rois := make([]geometry.Rect, 0, len(header)+len(cells))
	rois = append(rois, header...)
	rois = append(rois, cells...)

	d := &Descriptor{
		TemplateID: templateID,
		Width:      width,
		Height:     height,
		ROIs:       rois,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the descriptor invariants: positive dimensions, at least one
// rectangle, unique field names and every rectangle inside the image.
func (d *Descriptor) Validate() error {
	if d.TemplateID == "" {
		return errors.New("template_id is empty")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid template size %dx%d", d.Width, d.Height)
	}
	if len(d.ROIs) == 0 {
		return ErrNoROIs
	}
	seen := make(map[string]bool, len(d.ROIs))
	for _, r := range d.ROIs {
		if seen[r.Field] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, r.Field)
		}
		seen[r.Field] = true
		if err := r.Check(d.Width, d.Height); err != nil {
			return fmt.Errorf("%w: %v", ErrDegenerateCell, err)
		}
	}
	return nil
}

// Field returns the rectangle for a field name.
func (d *Descriptor) Field(name string) (geometry.Rect, bool) {
	for _, r := range d.ROIs {
		if r.Field == name {
			return r, true
		}
	}
	return geometry.Rect{}, false
}

// Save writes the descriptor as indented JSON, creating the parent directory.
// An existing file at path is replaced.
func (d *Descriptor) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}

// Load reads a descriptor from path. A missing or empty "rois" list is
// reported as ErrNoROIs; rectangle bounds are not checked here so that a
// descriptor made for a different scan can still be inspected.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	if len(d.ROIs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoROIs)
	}
	return &d, nil
}
