package tracker

import (
	"gonum.org/v1/gonum/stat"
)

// TrackedObject is a persistent identity assigned to detections matched
// across frames.  It is created when a detection fails to match any
// existing object and removed once it has gone unmatched for more than
// MaxDisappeared consecutive frames
type TrackedObject struct {
	// ID uniquely identifies the object for the lifetime of the
	// tracker instance.  IDs are assigned monotonically and never
	// reused
	ID int
	// Centroid is the most recent known position
	Centroid Point
	// Rect is the bounding box of the last matched detection
	Rect Rect
	// Label is the class label of the last matched detection
	Label int
	// Disappeared is the number of consecutive frames since the object
	// was last matched to a detection.  Zero while actively matched
	Disappeared int
	// Appearances is the number of frames the object has been matched,
	// used to gate when counting is considered reliable
	Appearances int
	// History holds the object's past centroid positions.  A new entry
	// is appended on every matched frame
	History []Point
	// Counted marks whether the object has already contributed to a
	// count.  An object is counted at most once in its lifetime
	Counted bool
	// Direction is the compass movement label set by the trajectory
	// estimator
	Direction Direction
	// Speed is the current estimated speed in km/h set by the speed
	// estimator
	Speed float64
	// Action is the movement action classified from Speed
	Action Action
	// speeds holds recent per frame speed samples for averaging
	speeds []float64
}

// newTrackedObject registers a brand new object at the given centroid.
// Registration counts as the object's first appearance
func newTrackedObject(id int, centroid Point) *TrackedObject {
	return &TrackedObject{
		ID:          id,
		Centroid:    centroid,
		Appearances: 1,
		History:     []Point{centroid},
	}
}

// update refreshes the object with the centroid it matched this frame
func (t *TrackedObject) update(centroid Point) {
	t.Centroid = centroid
	t.History = append(t.History, centroid)
	t.Disappeared = 0
	t.Appearances++
}

// VerticalDisplacement returns the object's current vertical position
// relative to the mean of its prior history.  The image y axis grows
// downward, so positive displacement is movement down the frame and
// negative displacement movement up.  Returns 0 until the object has
// been seen in at least two frames
func (t *TrackedObject) VerticalDisplacement() float64 {

	if len(t.History) < 2 {
		return 0
	}

	// mean over past positions, excluding the current frame's entry
	past := t.History[:len(t.History)-1]

	ys := make([]float64, len(past))
	for i, p := range past {
		ys[i] = p.Y
	}

	return t.Centroid.Y - stat.Mean(ys, nil)
}

// TrajectoryMean returns the mean position over the object's full
// centroid history
func (t *TrackedObject) TrajectoryMean() Point {

	xs := make([]float64, len(t.History))
	ys := make([]float64, len(t.History))

	for i, p := range t.History {
		xs[i] = p.X
		ys[i] = p.Y
	}

	return Point{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
	}
}
