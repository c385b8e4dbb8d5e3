package geometry

import "image"

// Axis selects the coordinate a gridline is measured along.
type Axis int

const (
	// Vertical gridlines are positioned by x.
	Vertical Axis = iota
	// Horizontal gridlines are positioned by y.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Project returns the coordinate of p that positions a gridline on axis a.
func (a Axis) Project(p image.Point) int {
	if a == Horizontal {
		return p.Y
	}
	return p.X
}
