package tracker

import "sync"

// Track represents a track history
type Track struct {
	points []Point
}

// Trail keeps a bounded history of tracked centroid positions per
// object id, used for drawing a movement trail
type Trail struct {
	// size is the maximum number of most recent points to keep in history
	size int
	// history of tracked points
	history map[int]*Track
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size is the number of
// most recent points to keep and specifies the maximum length of the
// trail to maintain
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int]*Track),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int]*Track)
}

// Add records the object's current centroid in its trail history
func (t *Trail) Add(obj *TrackedObject) {
	t.Lock()
	defer t.Unlock()

	// init map if no history exists yet for the object id
	if _, exists := t.history[obj.ID]; !exists {
		t.history[obj.ID] = &Track{}
	}

	track := t.history[obj.ID]
	track.points = append(track.points, obj.Centroid)

	// check if history is exceeded and drop oldest point
	if len(track.points) > t.size {
		track.points = track.points[1:]
	}
}

// Remove drops the trail history for an object id that is no longer
// tracked
func (t *Trail) Remove(id int) {
	t.Lock()
	defer t.Unlock()

	delete(t.history, id)
}

// GetPoints gets the point history for a specific object id
func (t *Trail) GetPoints(id int) []Point {
	t.Lock()
	defer t.Unlock()

	if _, exists := t.history[id]; exists {
		return t.history[id].points
	}

	// no history yet
	return nil
}
