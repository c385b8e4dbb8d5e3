// Package uitest provides a scripted ui.Display for testing the interactive
// loops without opening windows.
package uitest

import (
	"image"
	"time"

	"github.com/ironsheep/form-roi-tools/internal/ui"
)

// Frame is one image passed to Show.
type Frame struct {
	Title string
	Image image.Image
}

// Display replays scripted input and records what the loops displayed.
//
// NextEvent returns Events in order; once they run out it returns an Esc
// key press so a loop under test always terminates.
type Display struct {
	// Boxes is returned by SelectBoxes, BoxErr alongside it.
	Boxes  []image.Rectangle
	BoxErr error

	// ShowErr, when set, is returned by every Show call.
	ShowErr error

	Events []ui.Event

	Frames   []Frame
	Selected []string
	Closed   []string
	Waits    []time.Duration
	consumed int
}

// Show records the frame.
func (d *Display) Show(title string, img image.Image) error {
	if d.ShowErr != nil {
		return d.ShowErr
	}
	d.Frames = append(d.Frames, Frame{Title: title, Image: img})
	return nil
}

// SelectBoxes returns the scripted boxes.
func (d *Display) SelectBoxes(title string, img image.Image) ([]image.Rectangle, error) {
	d.Selected = append(d.Selected, title)
	d.Frames = append(d.Frames, Frame{Title: title, Image: img})
	return d.Boxes, d.BoxErr
}

// NextEvent returns the next scripted event.
func (d *Display) NextEvent(title string, wait time.Duration) ui.Event {
	d.Waits = append(d.Waits, wait)
	if d.consumed >= len(d.Events) {
		return Key(ui.KeyEsc)
	}
	ev := d.Events[d.consumed]
	d.consumed++
	return ev
}

// Close records the closed window.
func (d *Display) Close(title string) {
	d.Closed = append(d.Closed, title)
}

// Remaining reports how many scripted events were not consumed.
func (d *Display) Remaining() int {
	return len(d.Events) - d.consumed
}

// LastFrame returns the most recent frame shown in the titled window.
func (d *Display) LastFrame(title string) (image.Image, bool) {
	for i := len(d.Frames) - 1; i >= 0; i-- {
		if d.Frames[i].Title == title {
			return d.Frames[i].Image, true
		}
	}
	return nil, false
}

// Click builds a click event at (x, y).
func Click(x, y int) ui.Event {
	return ui.Event{Kind: ui.EventClick, Point: image.Pt(x, y)}
}

// Key builds a key event.
func Key(code int) ui.Event {
	return ui.Event{Kind: ui.EventKey, Key: code}
}

// Char builds a key event for a printable character.
func Char(c rune) ui.Event {
	return Key(int(c))
}

// Idle builds a poll timeout.
func Idle() ui.Event {
	return ui.Event{Kind: ui.EventNone}
}
