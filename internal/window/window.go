// Package window implements ui.Display with OpenCV highgui windows through
// gocv. It is the only package that needs OpenCV at build time.
package window

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ironsheep/form-roi-tools/internal/ui"
)

// highgui mouse event code for a left button press.
const eventLButtonDown = 1

// Display is a set of named highgui windows.
type Display struct {
	mu      sync.Mutex
	windows map[string]*gocv.Window
	frames  map[string]gocv.Mat
	clicks  map[string][]image.Point
}

// New returns an empty display. Windows are created on first use.
func New() *Display {
	// Without this highgui masks key codes to 8 bits and the arrow keys
	// collide with ordinary characters.
	if os.Getenv("OPENCV_LEGACY_WAITKEY") == "" {
		os.Setenv("OPENCV_LEGACY_WAITKEY", "1")
	}
	return &Display{
		windows: make(map[string]*gocv.Window),
		frames:  make(map[string]gocv.Mat),
		clicks:  make(map[string][]image.Point),
	}
}

func (d *Display) window(title string, size image.Point) *gocv.Window {
	if w, ok := d.windows[title]; ok {
		return w
	}
	w := gocv.NewWindow(title)
	w.ResizeWindow(size.X, size.Y)
	w.SetMouseHandler(func(event, x, y, flags int, _ interface{}) {
		if event != eventLButtonDown {
			return
		}
		d.mu.Lock()
		d.clicks[title] = append(d.clicks[title], image.Pt(x, y))
		d.mu.Unlock()
	}, nil)
	d.windows[title] = w
	return w
}

// Show implements ui.Display.
func (d *Display) Show(title string, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}
	w := d.window(title, img.Bounds().Size())
	w.IMShow(mat)

	if prev, ok := d.frames[title]; ok {
		prev.Close()
	}
	d.frames[title] = mat
	return nil
}

// SelectBoxes implements ui.Display with highgui's multi-ROI selector:
// drag a box, press Space or Enter to accept it, Esc to finish.
func (d *Display) SelectBoxes(title string, img image.Image) ([]image.Rectangle, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	w := d.window(title, img.Bounds().Size())
	return w.SelectROIs(mat), nil
}

// NextEvent implements ui.Display. Pending clicks are reported before keys.
// A window closed with its title-bar button reports Esc.
func (d *Display) NextEvent(title string, wait time.Duration) ui.Event {
	if ev, ok := d.popClick(title); ok {
		return ev
	}
	w, ok := d.windows[title]
	if !ok {
		return ui.Event{Kind: ui.EventKey, Key: ui.KeyEsc}
	}

	ms := int(wait / time.Millisecond)
	if wait > 0 && ms == 0 {
		ms = 1
	}
	key := w.WaitKey(ms)

	if ev, ok := d.popClick(title); ok {
		return ev
	}
	if !w.IsOpen() {
		return ui.Event{Kind: ui.EventKey, Key: ui.KeyEsc}
	}
	if key < 0 {
		return ui.Event{Kind: ui.EventNone}
	}
	return ui.Event{Kind: ui.EventKey, Key: normalizeKey(key)}
}

func (d *Display) popClick(title string) (ui.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q := d.clicks[title]
	if len(q) == 0 {
		return ui.Event{}, false
	}
	p := q[0]
	d.clicks[title] = q[1:]
	return ui.Event{Kind: ui.EventClick, Point: p}, true
}

// Close implements ui.Display.
func (d *Display) Close(title string) {
	if w, ok := d.windows[title]; ok {
		w.Close()
		delete(d.windows, title)
	}
	if m, ok := d.frames[title]; ok {
		m.Close()
		delete(d.frames, title)
	}
	d.mu.Lock()
	delete(d.clicks, title)
	d.mu.Unlock()
}

// normalizeKey strips modifier bits from GTK key codes. The Win32 arrow
// codes are kept whole.
func normalizeKey(k int) int {
	switch k {
	case ui.KeyLeftWin, ui.KeyRightWin:
		return k
	}
	if k > 0xFFFF {
		return k & 0xFFFF
	}
	return k
}
