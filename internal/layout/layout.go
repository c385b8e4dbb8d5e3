// Package layout describes which fields an annotation session collects for a
// template: the header fields drawn as boxes, the table columns and rows
// derived from gridlines, and the display caps used while collecting them.
//
// Layouts are read from YAML:
//
//	template_id: template1_Paste-Production-Base-Sheet
//	image: templates/template1_Paste-Production-Base-Sheet.png
//	output_dir: outputs
//	display:
//	  max_width: 1400
//	  max_height: 900
//	header_fields: [product, sku, batch_no]
//	table:
//	  columns: [material, line_no, packed_qty_fg]
//	  rows: [tube, carton]
//	  include_label_column: false
//	  strict_grid: false
//	snap_radius: 0
//
// Only display, output_dir and pdf_dpi have defaults. Header fields and the
// table come from the file alone, and an omitted image is looked up as
// templates/<template_id>.png, .jpg or .jpeg.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/form-roi-tools/internal/descriptor"
)

// Layout is the validated configuration for one annotator run.
type Layout struct {
	TemplateID   string   `yaml:"template_id"`
	Image        string   `yaml:"image"`
	OutputDir    string   `yaml:"output_dir"`
	Display      Display  `yaml:"display"`
	HeaderFields []string `yaml:"header_fields"`
	Table        Table    `yaml:"table"`

	// SnapRadius moves each clicked gridline to the strongest printed rule
	// within this many original pixels. Zero disables snapping.
	SnapRadius int `yaml:"snap_radius"`

	// PDFDPI is the render resolution used when Image is a PDF.
	PDFDPI int `yaml:"pdf_dpi"`

	// imageFromID is set while Image is the conventional path for TemplateID.
	imageFromID bool
}

// Display holds the fit-to-screen caps for interactive windows.
type Display struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// Table names the columns and data rows of the tabular section.
type Table struct {
	Columns []string `yaml:"columns"`
	Rows    []string `yaml:"rows"`

	// IncludeLabelColumn keeps column 0 (the printed row labels) as cells.
	IncludeLabelColumn bool `yaml:"include_label_column"`

	// StrictGrid makes missing vertical gridlines a fatal error instead of
	// a warning.
	StrictGrid bool `yaml:"strict_grid"`
}

// DefaultPDFDPI is the render resolution for PDF templates.
const DefaultPDFDPI = 200

// Generic returns the settings shared by every layout: display caps, output
// directory and PDF resolution. It names no template, image or fields.
func Generic() *Layout {
	return &Layout{
		OutputDir: descriptor.DefaultOutputDir,
		Display: Display{
			MaxWidth:  1400,
			MaxHeight: 900,
		},
		PDFDPI: DefaultPDFDPI,
	}
}

// Default returns the layout of the paste production base sheet.
func Default() *Layout {
	l := Generic()
	l.SetTemplateID("template1_Paste-Production-Base-Sheet")
	l.HeaderFields = []string{
		"product",
		"sku",
		"batch_no",
		"incharge_sign",
		"posting_done_by",
	}
	l.Table = Table{
		Columns: []string{
			"material",
			"line_no",
			"previous_batch_balance_qty",
			"total_received_qty_after_mrn",
			"packed_qty_fg",
			"loose_fg_qty",
			"sample",
			"rejection",
			"difference",
			"remark",
			"supervis_1",
			"supervis_2",
		},
		Rows: []string{"tube", "carton", "sleeve", "cld", "hanger"},
	}
	return l
}

// SetTemplateID changes the template id. An image path that was derived from
// the previous id follows the new one.
func (l *Layout) SetTemplateID(id string) {
	l.TemplateID = id
	if l.Image == "" || l.imageFromID {
		l.Image = imageFor(id)
		l.imageFromID = true
	}
}

// SetImage sets an explicit template image path.
func (l *Layout) SetImage(path string) {
	l.Image = path
	l.imageFromID = false
}

// imageFor returns the first existing templates/<id>.png|.jpg|.jpeg, or the
// .png path when none exists so the load error names it.
func imageFor(id string) string {
	if id == "" {
		return ""
	}
	if p, err := descriptor.ResolveImage(descriptor.DefaultTemplatesDir, id); err == nil {
		return p
	}
	return filepath.Join(descriptor.DefaultTemplatesDir, id+descriptor.ImageExtensions[0])
}

// Load reads a YAML layout on top of Generic. Template id, image, header
// fields and table come only from the file; when image is omitted it is
// derived from template_id as templates/<id>.png, .jpg or .jpeg. Unknown keys
// are rejected so a misspelled option does not silently fall back to a
// default.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	l := Generic()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(l); err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	if l.Image == "" {
		l.SetTemplateID(l.TemplateID)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return l, nil
}

// Save writes the layout as YAML, creating the parent directory.
func (l *Layout) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the layout can produce a well-formed descriptor.
func (l *Layout) Validate() error {
	var errs []error

	if strings.TrimSpace(l.TemplateID) == "" {
		errs = append(errs, errors.New("template_id is required"))
	}
	if strings.ContainsAny(l.TemplateID, `/\`) {
		errs = append(errs, fmt.Errorf("template_id %q must not contain path separators", l.TemplateID))
	}
	if l.Image == "" {
		errs = append(errs, errors.New("image is required"))
	}
	if l.Display.MaxWidth <= 0 || l.Display.MaxHeight <= 0 {
		errs = append(errs, fmt.Errorf("display caps must be positive, got %dx%d",
			l.Display.MaxWidth, l.Display.MaxHeight))
	}
	if l.SnapRadius < 0 {
		errs = append(errs, fmt.Errorf("snap_radius must not be negative, got %d", l.SnapRadius))
	}
	if l.PDFDPI <= 0 {
		errs = append(errs, fmt.Errorf("pdf_dpi must be positive, got %d", l.PDFDPI))
	}

	if len(l.Table.Columns) > 0 && len(l.ColumnIndices()) == 0 {
		errs = append(errs, errors.New("table needs a data column besides the label column"))
	}
	if len(l.Table.Columns) > 0 && len(l.Table.Rows) == 0 {
		errs = append(errs, errors.New("table.rows is empty"))
	}
	if len(l.HeaderFields) == 0 && len(l.Table.Columns) == 0 {
		errs = append(errs, errors.New("layout defines no header fields and no table"))
	}

	errs = append(errs, checkNames(l.FieldNames())...)
	return errors.Join(errs...)
}

func checkNames(names []string) []error {
	var errs []error
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" || strings.HasSuffix(n, "__") || strings.HasPrefix(n, "__") {
			errs = append(errs, fmt.Errorf("invalid field name %q", n))
			continue
		}
		if seen[n] {
			errs = append(errs, fmt.Errorf("duplicate field name %q", n))
		}
		seen[n] = true
	}
	return errs
}

// ColumnIndices returns the indices of table columns that produce cells.
func (l *Layout) ColumnIndices() []int {
	start := 1
	if l.Table.IncludeLabelColumn {
		start = 0
	}
	var idx []int
	for i := start; i < len(l.Table.Columns); i++ {
		idx = append(idx, i)
	}
	return idx
}

// ExpectedVerticalLines is the number of vertical gridlines that delimit every
// column, outer borders included.
func (l *Layout) ExpectedVerticalLines() int {
	return len(l.Table.Columns) + 1
}

// ExpectedHorizontalLines is the number of horizontal gridlines that delimit
// every named row.
func (l *Layout) ExpectedHorizontalLines() int {
	return len(l.Table.Rows) + 1
}

// HasTable reports whether the layout collects gridlines at all.
func (l *Layout) HasTable() bool {
	return len(l.Table.Columns) > 0
}

// FieldNames lists every field the layout can produce for its named rows:
// header fields first, then cells in row-major order.
func (l *Layout) FieldNames() []string {
	names := append([]string(nil), l.HeaderFields...)
	for _, row := range l.Table.Rows {
		for _, c := range l.ColumnIndices() {
			names = append(names, CellName(l.Table.Columns[c], row))
		}
	}
	return names
}

// OutputPath returns where the descriptor for this layout is written.
func (l *Layout) OutputPath() string {
	return descriptor.Path(l.OutputDir, l.TemplateID)
}

// CellName joins a column and a row into a table cell field name.
func CellName(column, row string) string {
	return column + "__" + row
}
