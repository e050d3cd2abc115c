package tracker

import "math"

// Point represents the x,y pixel coordinates of a centroid, the
// geometric center of an object bounding box
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}
