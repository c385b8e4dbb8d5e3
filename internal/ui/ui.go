// Package ui defines the small display surface the interactive loops run
// against. The gocv implementation lives in internal/window; tests drive the
// loops with scripted fakes.
package ui

import (
	"image"
	"time"
)

// EventKind identifies what NextEvent observed.
type EventKind int

const (
	// EventNone means the poll interval passed without input.
	EventNone EventKind = iota
	// EventClick is a left-button press at Event.Point (display pixels).
	EventClick
	// EventKey is a key press with code Event.Key.
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventClick:
		return "click"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is one input observation from a window.
type Event struct {
	Kind  EventKind
	Point image.Point
	Key   int
}

// Key codes shared by the loops. Arrow codes are those reported by
// OpenCV's highgui on GTK and Win32 backends.
const (
	KeyEnter    = 13
	KeyNewline  = 10
	KeyEsc      = 27
	KeyLeftGTK  = 65361
	KeyRightGTK = 65363
	KeyLeftWin  = 2424832
	KeyRightWin = 2555904
)

// Display shows images in named windows and reports input.
type Display interface {
	// Show replaces the content of the named window, creating it on first use
	// at the image's size.
	Show(title string, img image.Image) error

	// SelectBoxes lets the operator drag any number of boxes over img and
	// returns them in drawing order, in img's pixel space.
	SelectBoxes(title string, img image.Image) ([]image.Rectangle, error)

	// NextEvent blocks up to wait for input on the named window. A zero wait
	// blocks until a key is pressed.
	NextEvent(title string, wait time.Duration) Event

	// Close destroys the named window.
	Close(title string)
}

// IsKey reports whether ev is a key press matching any of the given
// characters, ignoring case for letters.
func IsKey(ev Event, chars ...rune) bool {
	if ev.Kind != EventKey || ev.Key < 0 || ev.Key > 0xFF {
		return false
	}
	k := ev.Key
	for _, c := range chars {
		if k == int(c) {
			return true
		}
		if c >= 'a' && c <= 'z' && k == int(c-'a'+'A') {
			return true
		}
		if c >= 'A' && c <= 'Z' && k == int(c-'A'+'a') {
			return true
		}
	}
	return false
}
