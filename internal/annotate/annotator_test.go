package annotate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/ironsheep/form-roi-tools/internal/geometry"
	"github.com/ironsheep/form-roi-tools/internal/layout"
	"github.com/ironsheep/form-roi-tools/internal/ui"
	"github.com/ironsheep/form-roi-tools/internal/ui/uitest"
)

const (
	verticalTitle   = "Click VERTICAL grid lines"
	horizontalTitle = "Click HORIZONTAL grid lines"
)

// createTemplate creates a blank 200x100 template; with 100x100 caps the
// display copy is 100x50 at scale 0.5.
func createTemplate() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func testLayout() *layout.Layout {
	return &layout.Layout{
		TemplateID:   "t1",
		Display:      layout.Display{MaxWidth: 100, MaxHeight: 100},
		HeaderFields: []string{"product", "sku"},
		Table: layout.Table{
			Columns: []string{"material", "sku_col", "qty"},
			Rows:    []string{"a", "b"},
		},
	}
}

func newTestAnnotator(l *layout.Layout, d *uitest.Display) (*Annotator, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(l, d, log.New(&buf, "", 0)), &buf
}

func enter() ui.Event { return uitest.Key(ui.KeyEnter) }

func TestRun(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			// vertical: out of order, one stray click undone
			uitest.Click(30, 45), uitest.Idle(), uitest.Click(0, 45), uitest.Click(45, 45),
			uitest.Char('c'), uitest.Click(10, 45), uitest.Click(20, 45), enter(),
			// horizontal
			uitest.Click(5, 40), uitest.Click(5, 20), uitest.Idle(), uitest.Click(5, 30), uitest.Key(ui.KeyNewline),
		},
	}
	a, logs := newTestAnnotator(testLayout(), d)

	desc, err := a.Run(createTemplate())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if desc.TemplateID != "t1" || desc.Width != 200 || desc.Height != 100 {
		t.Errorf("descriptor header: %+v", desc)
	}
	want := []geometry.Rect{
		{Field: "product", X: 0, Y: 0, W: 20, H: 10},
		{Field: "sku", X: 40, Y: 0, W: 40, H: 20},
		{Field: "sku_col__a", X: 20, Y: 40, W: 20, H: 20},
		{Field: "qty__a", X: 40, Y: 40, W: 20, H: 20},
		{Field: "sku_col__b", X: 20, Y: 60, W: 20, H: 20},
		{Field: "qty__b", X: 40, Y: 60, W: 20, H: 20},
	}
	if !reflect.DeepEqual(desc.ROIs, want) {
		t.Errorf("ROIs:\n got %+v\nwant %+v", desc.ROIs, want)
	}

	if d.Remaining() != 0 {
		t.Errorf("%d events left unconsumed", d.Remaining())
	}
	if strings.Contains(logs.String(), "WARNING") {
		t.Errorf("unexpected warning:\n%s", logs.String())
	}

	// The header selection sees the display copy, not the original
	if len(d.Selected) != 1 || d.Selected[0] != HeaderTitle {
		t.Errorf("SelectBoxes calls: %v", d.Selected)
	}
	if frame, _ := d.LastFrame(HeaderTitle); frame.Bounds().Dx() != 100 || frame.Bounds().Dy() != 50 {
		t.Errorf("header frame size: %v", frame.Bounds())
	}
	for _, title := range []string{HeaderTitle, verticalTitle, horizontalTitle} {
		if !contains(d.Closed, title) {
			t.Errorf("window %q not closed", title)
		}
	}
	for _, w := range d.Waits {
		if w != PollInterval {
			t.Errorf("NextEvent wait: got %v, want %v", w, PollInterval)
		}
	}
}

func TestRun_HeaderCountMismatch(t *testing.T) {
	for _, n := range []int{1, 3} {
		d := &uitest.Display{Boxes: make([]image.Rectangle, n)}
		for i := range d.Boxes {
			d.Boxes[i] = image.Rect(0, 0, 10, 10)
		}
		a, _ := newTestAnnotator(testLayout(), d)

		desc, err := a.Run(createTemplate())
		if desc != nil {
			t.Errorf("%d boxes: descriptor should be nil", n)
		}
		if !errors.Is(err, ErrBoxCount) {
			t.Errorf("%d boxes: expected ErrBoxCount, got %v", n, err)
		}
		// Gridline collection never starts
		if len(d.Waits) != 0 {
			t.Errorf("%d boxes: gridline loop ran", n)
		}
	}
}

func TestRun_SelectError(t *testing.T) {
	boom := errors.New("window closed")
	d := &uitest.Display{BoxErr: boom}
	a, _ := newTestAnnotator(testLayout(), d)

	if _, err := a.Run(createTemplate()); !errors.Is(err, boom) {
		t.Errorf("expected select error, got %v", err)
	}
}

func TestRun_Abort(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(10, 45), uitest.Key(ui.KeyEsc), uitest.Click(20, 45),
		},
	}
	a, _ := newTestAnnotator(testLayout(), d)

	desc, err := a.Run(createTemplate())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if desc != nil {
		t.Error("abort must not produce a descriptor")
	}
	if d.Remaining() != 1 {
		t.Errorf("loop kept reading after Esc: %d events left", d.Remaining())
	}
	if !contains(d.Closed, verticalTitle) {
		t.Error("vertical window not closed on abort")
	}
}

func TestRun_ResetClearsClicks(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(70, 45), uitest.Click(80, 45), uitest.Char('R'),
			uitest.Click(0, 45), uitest.Click(10, 45), uitest.Click(20, 45), uitest.Click(30, 45), enter(),
			uitest.Click(5, 20), uitest.Click(5, 30), uitest.Click(5, 40), enter(),
		},
	}
	a, _ := newTestAnnotator(testLayout(), d)

	desc, err := a.Run(createTemplate())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if r, ok := desc.Field("qty__b"); !ok || r.X != 40 || r.W != 20 {
		t.Errorf("qty__b after reset: %+v (found %v)", r, ok)
	}
}

func TestRun_GridCountWarning(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(0, 45), uitest.Click(10, 45), uitest.Click(20, 45), enter(),
			uitest.Click(5, 20), uitest.Click(5, 30), uitest.Click(5, 40), enter(),
		},
	}
	a, logs := newTestAnnotator(testLayout(), d)

	desc, err := a.Run(createTemplate())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := logs.String()
	if !strings.Contains(out, "expected 4 vertical gridlines, got 3") {
		t.Errorf("missing count warning:\n%s", out)
	}
	if !strings.Contains(out, "no cells for qty") {
		t.Errorf("missing column warning:\n%s", out)
	}

	// Only the sku_col cells survive
	if len(desc.ROIs) != 4 {
		t.Errorf("got %d ROIs, want 4", len(desc.ROIs))
	}
	if _, ok := desc.Field("qty__a"); ok {
		t.Error("qty__a should not exist without its right gridline")
	}
}

func TestRun_StrictGrid(t *testing.T) {
	l := testLayout()
	l.Table.StrictGrid = true
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(0, 45), uitest.Click(10, 45), enter(),
			uitest.Click(5, 20), uitest.Click(5, 30), enter(),
		},
	}
	a, _ := newTestAnnotator(l, d)

	_, err := a.Run(createTemplate())
	var mc *MissingColumnsError
	if !errors.As(err, &mc) {
		t.Fatalf("expected *MissingColumnsError, got %v", err)
	}
	if !reflect.DeepEqual(mc.Columns, []string{"sku_col", "qty"}) {
		t.Errorf("missing columns: %v", mc.Columns)
	}
}

func TestRun_DuplicateGridlines(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			// x = [0 20 20]: Enter is refused until the duplicate is undone
			uitest.Click(0, 45), uitest.Click(10, 45), uitest.Click(10, 45), enter(),
			uitest.Char('c'), uitest.Click(20, 45), uitest.Click(30, 45), enter(),
			uitest.Click(5, 20), uitest.Click(5, 30), uitest.Click(5, 40), enter(),
		},
	}
	a, logs := newTestAnnotator(testLayout(), d)

	desc, err := a.Run(createTemplate())
	if err != nil {
		t.Fatalf("a duplicate gridline must not fail the session: %v", err)
	}
	if !strings.Contains(logs.String(), "WARNING: duplicate vertical gridline at 20") {
		t.Errorf("missing duplicate warning:\n%s", logs.String())
	}
	if len(desc.ROIs) != 6 {
		t.Errorf("got %d ROIs, want 6", len(desc.ROIs))
	}
	if r, ok := desc.Field("qty__b"); !ok || r != (geometry.Rect{Field: "qty__b", X: 40, Y: 60, W: 20, H: 20}) {
		t.Errorf("qty__b: got %+v", r)
	}
	if d.Remaining() != 0 {
		t.Errorf("%d events left unread", d.Remaining())
	}
}

func TestRun_DuplicateGridlinesAbort(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(0, 45), uitest.Click(10, 45), uitest.Click(10, 45), uitest.Click(30, 45), enter(),
			enter(),
		},
	}
	a, _ := newTestAnnotator(testLayout(), d)

	// Enter keeps refusing; the script then runs out and Esc aborts
	if _, err := a.Run(createTemplate()); !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestGridBanners(t *testing.T) {
	sess := NewGridSession(geometry.Vertical, 0.5, 4)
	for _, x := range []int{0, 10, 10, 20, 30} {
		sess.Record(pt(x, 0))
	}

	lines := gridBanners(sess, nil)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "Clicks: 4/4") {
		t.Errorf("five clicks on four lines: got %q", lines)
	}

	sess.UndoLast()
	lines = gridBanners(sess, []int{20})
	want := []string{"Need exactly 4 clicks; you have 3", "Duplicate line at 20: press C or R"}
	if len(lines) != 3 || lines[1] != want[0] || lines[2] != want[1] {
		t.Errorf("banners: got %q", lines)
	}
	// the banner and the logged warning agree
	var w *GridCountWarning
	if err := sess.CheckCount(sess.Finish()); !errors.As(err, &w) || w.Got != 3 {
		t.Errorf("CheckCount: got %v", err)
	}
}

func TestRun_HeaderOnly(t *testing.T) {
	l := testLayout()
	l.Table = layout.Table{}
	d := &uitest.Display{Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)}}
	a, _ := newTestAnnotator(l, d)

	desc, err := a.Run(createTemplate())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(desc.ROIs) != 2 {
		t.Errorf("got %d ROIs, want 2", len(desc.ROIs))
	}
	if len(d.Waits) != 0 {
		t.Error("gridline loop ran without a table")
	}
}

func TestRun_Snapping(t *testing.T) {
	l := testLayout()
	l.SnapRadius = 3
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(0, 45), uitest.Click(11, 45), uitest.Click(20, 45), uitest.Click(30, 45), enter(),
			uitest.Click(5, 20), uitest.Click(5, 30), uitest.Click(5, 40), enter(),
		},
	}
	a, _ := newTestAnnotator(l, d)
	a.Snapper = &fixedSnapper{to: map[int]int{22: 20}}

	desc, err := a.Run(createTemplate())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if r, _ := desc.Field("sku_col__a"); r.X != 20 || r.W != 20 {
		t.Errorf("snapped cell: %+v", r)
	}
}

func TestRun_DrawsClicks(t *testing.T) {
	d := &uitest.Display{
		Boxes: []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		Events: []ui.Event{
			uitest.Click(30, 45), uitest.Key(ui.KeyEsc),
		},
	}
	a, _ := newTestAnnotator(testLayout(), d)
	a.Run(createTemplate())

	frame, ok := d.LastFrame(verticalTitle)
	if !ok {
		t.Fatal("vertical window never shown")
	}
	r, g, b, _ := frame.At(30, 45).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("click dot: got (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}

	// Initial frame plus one redraw after the click
	shown := 0
	for _, f := range d.Frames {
		if f.Title == verticalTitle {
			shown++
		}
	}
	if shown != 2 {
		t.Errorf("vertical frames: got %d, want 2", shown)
	}
}

func TestRun_ShowError(t *testing.T) {
	boom := errors.New("no display")
	d := &uitest.Display{
		Boxes:   []image.Rectangle{image.Rect(0, 0, 10, 5), image.Rect(20, 0, 40, 10)},
		ShowErr: boom,
	}
	a, _ := newTestAnnotator(testLayout(), d)

	if _, err := a.Run(createTemplate()); !errors.Is(err, boom) {
		t.Errorf("expected show error, got %v", err)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
