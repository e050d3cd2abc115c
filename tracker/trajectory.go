package tracker

// Direction is a compass label describing an object's recent movement
// on the image plane
type Direction string

const (
	// DirectionNone means the object has not moved or has no usable
	// history yet
	DirectionNone Direction = ""

	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"

	UpLeft    Direction = "upleft"
	UpRight   Direction = "upright"
	DownLeft  Direction = "downleft"
	DownRight Direction = "downright"
)

// DefaultCentroidIndex is how many history entries back the trajectory
// estimator compares the current position against
const DefaultCentroidIndex = 3

// TrajectoryEstimator derives per object movement direction labels by
// comparing the current centroid against an earlier position in the
// object's history
type TrajectoryEstimator struct {
	// centroidIndex is the nth most recent history entry used as the
	// reference position.  Objects with shorter histories fall back to
	// their oldest entry
	centroidIndex int
}

// NewTrajectoryEstimator returns an estimator comparing positions
// centroidIndex frames apart.  Values below 1 fall back to
// DefaultCentroidIndex
func NewTrajectoryEstimator(centroidIndex int) *TrajectoryEstimator {

	if centroidIndex < 1 {
		centroidIndex = DefaultCentroidIndex
	}

	return &TrajectoryEstimator{centroidIndex: centroidIndex}
}

// Estimate sets the Direction on every live object and returns the
// labels keyed by object id
func (te *TrajectoryEstimator) Estimate(objects map[int]*TrackedObject) map[int]Direction {

	dirs := make(map[int]Direction, len(objects))

	for id, obj := range objects {
		obj.Direction = te.direction(obj)
		dirs[id] = obj.Direction
	}

	return dirs
}

// direction compares the reference and current history positions on
// both axes.  The vertical component leads, so a diagonal move down
// and to the right yields "downright".  The image y axis grows
// downward and x grows rightward
func (te *TrajectoryEstimator) direction(obj *TrackedObject) Direction {

	n := len(obj.History)

	if n < 2 {
		return DirectionNone
	}

	back := te.centroidIndex
	if back > n {
		back = n
	}

	prev := obj.History[n-back]
	cur := obj.History[n-1]

	var d Direction

	switch {
	case prev.Y < cur.Y:
		d += Down
	case prev.Y > cur.Y:
		d += Up
	}

	switch {
	case prev.X < cur.X:
		d += Right
	case prev.X > cur.X:
		d += Left
	}

	return d
}
