package tracker

import (
	"fmt"
	"sort"
)

// CountMode identifies which counting mode produced a Count
type CountMode int

const (
	// Directional counting assumes all motion moves one way and
	// produces a single total
	Directional CountMode = 0
	// Bidirectional counting distinguishes two opposite motion
	// directions and produces separate up and down totals
	Bidirectional CountMode = 1
)

// Count is a per frame counting result.  Mode selects which fields are
// meaningful: Total for Directional, Up and Down for Bidirectional.
// Counts are for the current frame only, a host wanting a running
// total accumulates them across frames
type Count struct {
	Mode  CountMode
	Total int
	Up    int
	Down  int
}

// Add accumulates another frame's count into this one.  Both counts
// must share the same mode
func (c *Count) Add(other Count) {
	c.Total += other.Total
	c.Up += other.Up
	c.Down += other.Down
}

// String returns the count formatted for logging or display
func (c Count) String() string {

	if c.Mode == Bidirectional {
		return fmt.Sprintf("up=%d down=%d", c.Up, c.Down)
	}

	return fmt.Sprintf("count=%d", c.Total)
}

// Counter classifies the aggregate motion of tracked objects into
// directional or bidirectional per frame counts.  It runs once per
// frame over the live set returned by the matcher
type Counter struct {
	cfg Config
}

// NewCounter returns a Counter for the given configuration.  Returns an
// error when the configuration is invalid
func NewCounter(cfg Config) (*Counter, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Counter{cfg: cfg}, nil
}

// Count tallies the objects that become countable this frame.  An
// object is countable once it has been matched MinAppearance frames and
// contributes to a count at most once in its lifetime.
//
// In directional mode every countable object increments the frame
// total.  In bidirectional mode the object's vertical displacement,
// current position against the mean of its history, must reach the
// configured threshold magnitude; the displacement sign selects the up
// or down bucket.  An object still below the threshold is left
// uncounted and remains eligible on later frames.
//
// Objects are visited in ascending id order so results are
// deterministic
func (cn *Counter) Count(objects map[int]*TrackedObject) Count {

	count := Count{Mode: Directional}

	if cn.cfg.BidirectionalMode {
		count.Mode = Bidirectional
	}

	ids := make([]int, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {

		obj := objects[id]

		if obj.Counted || obj.Appearances < cn.cfg.MinAppearance {
			continue
		}

		if !cn.cfg.BidirectionalMode {
			count.Total++
			obj.Counted = true
			continue
		}

		disp := obj.VerticalDisplacement()

		switch {
		case disp <= -cn.cfg.BidirectionalThreshold:
			count.Up++
			obj.Counted = true

		case disp >= cn.cfg.BidirectionalThreshold:
			count.Down++
			obj.Counted = true
		}
	}

	return count
}
