package tracker

import (
	"errors"
	"fmt"
)

// ErrDegenerateRect is returned for bounding boxes with zero or
// negative width or height
var ErrDegenerateRect = errors.New("degenerate bounding box")

// Rect represents an axis aligned bounding box in pixel coordinates,
// X1,Y1 being the top left corner and X2,Y2 the bottom right
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// NewRect creates a new Rect with given corner coordinates
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the width of the rectangle
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the height of the rectangle
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Centroid returns the geometric center point of the rectangle
func (r Rect) Centroid() Point {
	return Point{
		X: (r.X1 + r.X2) / 2,
		Y: (r.Y1 + r.Y2) / 2,
	}
}

// Valid checks the rectangle has positive width and height.  Degenerate
// boxes are rejected before centroid computation so a malformed
// detection never enters the tracked set
func (r Rect) Valid() error {
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("%w: (%v,%v,%v,%v)", ErrDegenerateRect,
			r.X1, r.Y1, r.X2, r.Y2)
	}

	return nil
}
