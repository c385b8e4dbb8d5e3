package verify

import (
	"fmt"
	"image"
	"log"
	"math"
	"strings"
	"time"

	"github.com/ironsheep/form-roi-tools/internal/descriptor"
	"github.com/ironsheep/form-roi-tools/internal/geometry"
	"github.com/ironsheep/form-roi-tools/internal/imaging"
	"github.com/ironsheep/form-roi-tools/internal/ocr"
	"github.com/ironsheep/form-roi-tools/internal/ui"
)

// Default display caps, matching the annotator.
const (
	DefaultMaxWidth  = 1400
	DefaultMaxHeight = 900
)

// ExportFormats lists the overlay formats accepted by Options.ExportFormat.
var ExportFormats = []string{"png", "jpg", "webp"}

// OCRFunc reads the text inside one rectangle. ocr.ReadRegion satisfies it.
type OCRFunc func(img image.Image, roi geometry.Rect, language string) (*ocr.Result, error)

// Options configures a verification session.
type Options struct {
	// Export enables the 'e' key. Without it the key does nothing.
	Export       bool
	ExportFormat string
	OutputDir    string

	// OCR enables the 'o' key.
	OCR      bool
	Language string

	MaxWidth  int
	MaxHeight int

	Render RenderOptions
}

// Verifier replays a descriptor over its template image.
type Verifier struct {
	Descriptor *descriptor.Descriptor
	Image      image.Image
	Display    ui.Display
	Options    Options

	// Logger receives warnings and status lines; nil means log.Default().
	Logger *log.Logger

	// Now and ReadText default to time.Now and ocr.ReadRegion.
	Now      func() time.Time
	ReadText OCRFunc

	nav     *Navigator
	overlay *image.RGBA
}

// New creates a verifier. Zero option values are replaced by defaults.
func New(d *descriptor.Descriptor, img image.Image, display ui.Display, opts Options, logger *log.Logger) *Verifier {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultMaxHeight
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = "png"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = descriptor.DefaultOutputDir
	}
	if opts.Language == "" {
		opts.Language = ocr.DefaultLanguage
	}
	return &Verifier{
		Descriptor: d,
		Image:      img,
		Display:    display,
		Options:    opts,
		Logger:     logger,
		Now:        time.Now,
		ReadText:   ocr.ReadRegion,
	}
}

func (v *Verifier) logger() *log.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return log.Default()
}

// Title returns the window title for the descriptor.
func (v *Verifier) Title() string {
	id := v.Descriptor.TemplateID
	if id == "" {
		id = "unknown"
	}
	return "Verify ROIs - " + id
}

// Highlighted returns the index of the highlighted rectangle.
func (v *Verifier) Highlighted() int {
	if v.nav == nil {
		return 0
	}
	return v.nav.Index()
}

// Run shows the overlay and handles keys until the operator quits.
func (v *Verifier) Run() error {
	rois := v.Descriptor.ROIs
	if len(rois) == 0 {
		return descriptor.ErrNoROIs
	}
	if !validFormat(v.Options.ExportFormat) {
		return fmt.Errorf("unsupported export format %q (want one of %s)",
			v.Options.ExportFormat, strings.Join(ExportFormats, ", "))
	}

	b := v.Image.Bounds()
	mismatch := v.Descriptor.CheckSize(b.Dx(), b.Dy())
	if mismatch != nil {
		v.logger().Printf("WARNING: %v", mismatch)
		v.logger().Printf("If this is a scanned copy with a different size, it must be deskewed and resized before cropping.")
	}

	s, err := geometry.FitScale(b.Dx(), b.Dy(), v.Options.MaxWidth, v.Options.MaxHeight)
	if err != nil {
		return fmt.Errorf("failed to fit image: %w", err)
	}
	if v.Options.Render.LabelScale == 0 {
		v.Options.Render.LabelScale = labelScale(s)
	}

	v.nav = NewNavigator(len(rois))
	title := v.Title()
	defer v.Display.Close(title)

	v.logger().Printf("Controls: a/d or Left/Right to highlight prev/next ROI, 'e' to export overlay, 'o' to OCR, 'q' or ESC to quit")

	dirty := true
	for {
		if dirty {
			v.overlay = Render(v.Image, rois, v.nav.Index(), v.Options.Render)
			if err := v.Display.Show(title, v.frame(s, mismatch)); err != nil {
				return fmt.Errorf("failed to show %s: %w", title, err)
			}
			dirty = false
		}

		ev := v.Display.NextEvent(title, 0)
		switch ev.Kind {
		case ui.EventNone, ui.EventClick:
			continue
		case ui.EventKey:
			quit, changed := v.handleKey(ev)
			if quit {
				return nil
			}
			dirty = changed
		}
	}
}

// handleKey routes one key press. It reports whether the session should end
// and whether the overlay needs redrawing.
func (v *Verifier) handleKey(ev ui.Event) (quit, changed bool) {
	switch {
	case ev.Key == ui.KeyEsc || ui.IsKey(ev, 'q'):
		return true, false
	case ev.Key == ui.KeyLeftGTK || ev.Key == ui.KeyLeftWin || ui.IsKey(ev, 'a'):
		v.nav.Prev()
		return false, true
	case ev.Key == ui.KeyRightGTK || ev.Key == ui.KeyRightWin || ui.IsKey(ev, 'd'):
		v.nav.Next()
		return false, true
	case ui.IsKey(ev, 'e'):
		v.export()
	case ui.IsKey(ev, 'o'):
		v.readHighlighted()
	}
	return false, false
}

// frame builds the display copy of the current overlay with a status banner.
func (v *Verifier) frame(s float64, mismatch *descriptor.SizeMismatch) image.Image {
	disp := imaging.Canvas(imaging.Fit(v.overlay, s))

	r := v.Descriptor.ROIs[v.nav.Index()]
	status := fmt.Sprintf("%d/%d %s (%d,%d %dx%d)", v.nav.Index()+1, v.nav.Len(), r.Field, r.X, r.Y, r.W, r.H)
	imaging.DrawBanner(disp, 0, status, imaging.TextColor, 1)
	if mismatch != nil {
		imaging.DrawBanner(disp, 1, "WARNING: "+mismatch.Error(), imaging.WarningColor, 1)
	}
	return disp
}

// export writes the current overlay. Failures are logged; the session goes on.
func (v *Verifier) export() {
	if !v.Options.Export {
		return
	}
	path := descriptor.OverlayPath(v.Options.OutputDir, v.Descriptor.TemplateID, v.Now(), v.Options.ExportFormat)
	if err := imaging.Save(path, v.overlay, 0); err != nil {
		v.logger().Printf("Failed to export overlay: %v", err)
		return
	}
	v.logger().Printf("Saved overlay -> %s", path)
}

// readHighlighted logs the OCR text of the highlighted rectangle.
func (v *Verifier) readHighlighted() {
	if !v.Options.OCR || v.ReadText == nil {
		return
	}
	roi := v.Descriptor.ROIs[v.nav.Index()]
	res, err := v.ReadText(v.Image, roi, v.Options.Language)
	if err != nil {
		v.logger().Printf("OCR %s failed: %v", roi.Field, err)
		return
	}
	v.logger().Printf("OCR %s: %q (confidence %.2f)", res.Field, res.Text, res.Confidence)
}

// labelScale keeps labels roughly 13px tall after the overlay is shrunk for
// display.
func labelScale(s float64) int {
	n := int(math.Round(1 / s))
	if n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}

func validFormat(f string) bool {
	for _, v := range ExportFormats {
		if strings.EqualFold(f, v) {
			return true
		}
	}
	return false
}
