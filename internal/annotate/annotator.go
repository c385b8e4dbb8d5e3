package annotate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/ironsheep/form-roi-tools/internal/descriptor"
	"github.com/ironsheep/form-roi-tools/internal/geometry"
	"github.com/ironsheep/form-roi-tools/internal/imaging"
	"github.com/ironsheep/form-roi-tools/internal/layout"
	"github.com/ironsheep/form-roi-tools/internal/ui"
)

// ErrAborted is returned when the operator presses Esc during gridline
// collection. Nothing has been written at that point.
var ErrAborted = errors.New("annotation aborted by operator")

// HeaderTitle is the window used for header box selection.
const HeaderTitle = "Draw header fields in order"

// PollInterval is how long each gridline loop iteration waits for input.
const PollInterval = 20 * time.Millisecond

const dotRadius = 4

var guideColor = color.NRGBA{0, 200, 0, 140}

// Annotator runs one interactive annotation session for a layout.
type Annotator struct {
	Layout  *layout.Layout
	Display ui.Display

	// Logger receives instructions and warnings; nil means log.Default().
	Logger *log.Logger

	// Snapper, when set and Layout.SnapRadius is positive, snaps gridline
	// clicks to printed rules.
	Snapper Snapper
}

// New creates an annotator for l that draws through d.
func New(l *layout.Layout, d ui.Display, logger *log.Logger) *Annotator {
	return &Annotator{Layout: l, Display: d, Logger: logger}
}

func (a *Annotator) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}

// Run collects header boxes and gridlines over img and returns the assembled
// descriptor. It writes nothing; the caller saves the result.
//
// Returned errors:
//   - *BoxCountError (ErrBoxCount) or ErrEmptyBox from header collection
//   - ErrAborted when the operator quits gridline collection
//   - *MissingColumnsError (ErrMissingColumns) when the layout is strict
//   - descriptor validation errors such as ErrDegenerateCell
func (a *Annotator) Run(img image.Image) (*descriptor.Descriptor, error) {
	l := a.Layout
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	s, err := geometry.FitScale(width, height, l.Display.MaxWidth, l.Display.MaxHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to fit image: %w", err)
	}
	disp := imaging.Fit(img, s)
	a.logger().Printf("Template %s: %dx%d, display scale %.3f", l.TemplateID, width, height, s)

	header, err := a.collectHeader(disp, s, width, height)
	if err != nil {
		return nil, err
	}

	var cells []geometry.Rect
	if l.HasTable() {
		cells, err = a.collectTable(disp, s)
		if err != nil {
			return nil, err
		}
	}

	d, err := descriptor.Assemble(l.TemplateID, width, height, header, cells)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble descriptor: %w", err)
	}
	return d, nil
}

// collectHeader asks for one box per header field, in order.
func (a *Annotator) collectHeader(disp image.Image, s float64, width, height int) ([]geometry.Rect, error) {
	names := a.Layout.HeaderFields
	if len(names) == 0 {
		return nil, nil
	}

	a.logger().Printf("==> Draw rectangles for: %s", strings.Join(names, ", "))
	a.logger().Printf("Instructions: drag a box for each field IN ORDER; press ENTER after each box, ESC when done")

	boxes, err := a.Display.SelectBoxes(HeaderTitle, disp)
	a.Display.Close(HeaderTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to select header boxes: %w", err)
	}
	return PairBoxes(names, boxes, s, width, height)
}

// collectTable runs both gridline phases and derives the cells.
func (a *Annotator) collectTable(disp image.Image, s float64) ([]geometry.Rect, error) {
	l := a.Layout

	xs, err := a.collectGridlines(disp, s, geometry.Vertical, l.ExpectedVerticalLines())
	if err != nil {
		return nil, err
	}
	ys, err := a.collectGridlines(disp, s, geometry.Horizontal, l.ExpectedHorizontalLines())
	if err != nil {
		return nil, err
	}
	if len(ys) != len(l.Table.Rows)+1 {
		a.logger().Printf("NOTE: for %d rows you typically want %d horizontal clicks, got %d",
			len(l.Table.Rows), len(l.Table.Rows)+1, len(ys))
	}

	cells, err := DeriveCells(xs, ys, l.Table.Columns, l.Table.Rows, l.ColumnIndices())
	if err != nil {
		if l.Table.StrictGrid || !errors.Is(err, ErrMissingColumns) {
			return nil, err
		}
		a.logger().Printf("WARNING: %v", err)
	}
	if len(cells) == 0 {
		a.logger().Printf("WARNING: no table cells derived from %d vertical and %d horizontal lines", len(xs), len(ys))
	}
	return cells, nil
}

// collectGridlines runs the click loop for one axis until Enter or Esc.
func (a *Annotator) collectGridlines(disp image.Image, s float64, axis geometry.Axis, expected int) ([]int, error) {
	sess := NewGridSession(axis, s, expected)
	if a.Snapper != nil && a.Layout.SnapRadius > 0 {
		sess.Snapper = a.Snapper
		sess.SnapRadius = a.Layout.SnapRadius
	}

	title := fmt.Sprintf("Click %s grid lines", strings.ToUpper(axis.String()))
	defer a.Display.Close(title)

	switch axis {
	case geometry.Vertical:
		a.logger().Printf("==> Click ALL %d vertical grid lines, left border first, right border last", expected)
	case geometry.Horizontal:
		a.logger().Printf("==> Click %d horizontal grid lines, top of the first data row to bottom of the last", expected)
	}
	a.logger().Printf("Controls: ENTER=finish, C=undo last, R=reset, ESC=abort")

	var dupes []int
	dirty := true
	for {
		if dirty {
			if err := a.Display.Show(title, renderGrid(disp, sess, dupes)); err != nil {
				return nil, fmt.Errorf("failed to show %s: %w", title, err)
			}
			dirty = false
		}

		ev := a.Display.NextEvent(title, PollInterval)
		switch ev.Kind {
		case ui.EventNone:
			continue
		case ui.EventClick:
			sess.Record(ev.Point)
			dupes = nil
			dirty = true
		case ui.EventKey:
			switch {
			case ev.Key == ui.KeyEsc:
				return nil, ErrAborted
			case ev.Key == ui.KeyEnter || ev.Key == ui.KeyNewline:
				vals := sess.Finish()
				if d := Duplicates(vals); len(d) > 0 {
					a.logger().Printf("WARNING: duplicate %s gridline at %s; press C to undo or R to reset",
						axis, joinInts(d))
					dupes = d
					dirty = true
					continue
				}
				if err := sess.CheckCount(vals); err != nil {
					a.logger().Printf("WARNING: %v; continuing with the clicked lines", err)
				}
				return vals, nil
			case ui.IsKey(ev, 'c'):
				dirty = sess.UndoLast() || dupes != nil
				dupes = nil
			case ui.IsKey(ev, 'r'):
				dirty = sess.Count() > 0 || dupes != nil
				sess.Reset()
				dupes = nil
			}
		}
	}
}

// renderGrid draws the click dots, the resulting guides and the banners on a
// copy of the display image. dupes lists gridlines rejected at the last Enter.
func renderGrid(disp image.Image, sess *GridSession, dupes []int) image.Image {
	canvas := imaging.Canvas(disp)

	var guides imaging.Guides
	for _, v := range sess.Values() {
		d := geometry.ToDisplay(v, sess.Scale)
		if sess.Axis == geometry.Vertical {
			guides.Vertical = append(guides.Vertical, d)
		} else {
			guides.Horizontal = append(guides.Horizontal, d)
		}
	}
	guides.Color = guideColor
	imaging.DrawGuides(canvas, guides)

	for _, p := range sess.Points() {
		imaging.DrawDot(canvas, p, dotRadius, imaging.DotColor)
	}

	scale := bannerScale(canvas.Bounds().Dx())
	for i, line := range gridBanners(sess, dupes) {
		c := imaging.WarningColor
		if i == 0 {
			c = imaging.TextColor
		}
		imaging.DrawBanner(canvas, i, line, c, scale)
	}
	return canvas
}

// gridBanners returns the status line followed by any warnings. Counts are
// distinct gridlines, the same measure CheckCount uses.
func gridBanners(sess *GridSession, dupes []int) []string {
	n := sess.Distinct()
	expected := "?"
	if sess.Expected > 0 {
		expected = fmt.Sprint(sess.Expected)
	}
	lines := []string{fmt.Sprintf("Clicks: %d/%s  (ENTER=done, C=undo, R=reset, ESC=quit)", n, expected)}

	if sess.Expected > 0 && n != sess.Expected {
		lines = append(lines, fmt.Sprintf("Need exactly %d clicks; you have %d", sess.Expected, n))
	}
	if len(dupes) > 0 {
		lines = append(lines, fmt.Sprintf("Duplicate line at %s: press C or R", joinInts(dupes)))
	}
	return lines
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// bannerScale picks a label scale that stays readable on large displays.
func bannerScale(displayWidth int) int {
	if displayWidth >= 1000 {
		return 2
	}
	return 1
}
