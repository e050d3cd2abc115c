package tracker

import (
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// Zone is a polygon region of interest used to filter detections
// before tracking.  A detection is kept when the intersection of its
// bounding box with the zone polygon covers at least the configured
// fraction of the box area
type Zone struct {
	path clipper.Path
	// minOverlap is the fraction of box area, in (0,1], that must fall
	// inside the zone
	minOverlap float64
}

// NewZone builds a zone from polygon vertices given in pixel
// coordinates.  minOverlap is the fraction of a detection box that must
// overlap the polygon for the detection to pass the filter
func NewZone(points []Point, minOverlap float64) (*Zone, error) {

	if len(points) < 3 {
		return nil, fmt.Errorf("%w: zone polygon needs at least 3 points, got %d",
			ErrConfig, len(points))
	}

	if minOverlap <= 0 || minOverlap > 1 {
		return nil, fmt.Errorf("%w: zone overlap must be within (0,1], got %v",
			ErrConfig, minOverlap)
	}

	path := make(clipper.Path, 0, len(points))

	for _, p := range points {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(p.X),
			Y: clipper.CInt(p.Y),
		})
	}

	return &Zone{
		path:       path,
		minOverlap: minOverlap,
	}, nil
}

// Contains reports whether the rectangle overlaps the zone polygon by
// at least the configured fraction of the rectangle's area
func (z *Zone) Contains(r Rect) bool {

	boxArea := r.Area()

	if boxArea <= 0 {
		return false
	}

	// convert the rectangle to a closed clipper path
	box := clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(r.X1), Y: clipper.CInt(r.Y1)},
		&clipper.IntPoint{X: clipper.CInt(r.X2), Y: clipper.CInt(r.Y1)},
		&clipper.IntPoint{X: clipper.CInt(r.X2), Y: clipper.CInt(r.Y2)},
		&clipper.IntPoint{X: clipper.CInt(r.X1), Y: clipper.CInt(r.Y2)},
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPath(box, clipper.PtSubject, true)
	c.AddPath(z.path, clipper.PtClip, true)

	solution, ok := c.Execute1(clipper.CtIntersection,
		clipper.PftEvenOdd, clipper.PftEvenOdd)

	if !ok {
		return false
	}

	var overlap float64

	for _, poly := range solution {
		overlap += polygonArea(poly)
	}

	return overlap/boxArea >= z.minOverlap
}

// polygonArea returns the absolute shoelace area of a clipper path
func polygonArea(path clipper.Path) float64 {

	n := len(path)

	if n < 3 {
		return 0
	}

	var area float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(path[i].X)*float64(path[j].Y) -
			float64(path[j].X)*float64(path[i].Y)
	}

	return math.Abs(area) / 2
}
