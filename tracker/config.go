package tracker

import (
	"errors"
	"fmt"
)

// ErrConfig is the base error wrapped by all configuration validation
// failures
var ErrConfig = errors.New("invalid tracker configuration")

// AssignmentMode selects the algorithm used to associate existing
// tracked objects with the new frame's centroids
type AssignmentMode int

const (
	// Greedy assignment processes objects in ascending order of their
	// nearest centroid distance, each claiming the closest unclaimed
	// centroid
	Greedy AssignmentMode = 0
	// Optimal assignment solves the full assignment problem with the
	// Munkres algorithm for a globally minimal total distance.  Match
	// results can differ from Greedy at the margin when centroids are
	// ambiguous
	Optimal AssignmentMode = 1
)

// Config defines the tracking and counting parameters.  It is supplied
// once at construction, not per frame
type Config struct {
	// MaxDisappeared is the number of consecutive missed frames
	// tolerated before a tracked object is dropped
	MaxDisappeared int
	// DistanceThreshold is the maximum Euclidean centroid distance
	// accepted as a valid match between frames.  A distance equal to
	// the threshold still matches
	DistanceThreshold float64
	// BidirectionalMode selects bidirectional counting with separate
	// up/down totals instead of a single directional count
	BidirectionalMode bool
	// BidirectionalThreshold is the minimum vertical displacement
	// magnitude an object must have moved before it is counted in
	// bidirectional mode.  Required and positive when
	// BidirectionalMode is set
	BidirectionalThreshold float64
	// MinAppearance is the minimum number of matched frames before an
	// object becomes countable
	MinAppearance int
	// Assignment selects greedy or optimal centroid association
	Assignment AssignmentMode
}

// DefaultConfig returns the default tracking parameters
func DefaultConfig() Config {
	return Config{
		MaxDisappeared:    50,
		DistanceThreshold: 530,
		MinAppearance:     1,
	}
}

// Validate checks the configuration is usable.  Misconfiguration is
// fatal at construction time, there are no fatal errors during steady
// state tracking
func (c Config) Validate() error {

	if c.MaxDisappeared <= 0 {
		return fmt.Errorf("%w: max disappeared must be positive, got %d",
			ErrConfig, c.MaxDisappeared)
	}

	if c.DistanceThreshold <= 0 {
		return fmt.Errorf("%w: distance threshold must be positive, got %v",
			ErrConfig, c.DistanceThreshold)
	}

	if c.MinAppearance <= 0 {
		return fmt.Errorf("%w: min appearance must be positive, got %d",
			ErrConfig, c.MinAppearance)
	}

	// a missing or zero threshold would degenerate to counting any
	// nonzero displacement, so reject it here rather than defaulting
	if c.BidirectionalMode && c.BidirectionalThreshold <= 0 {
		return fmt.Errorf("%w: bidirectional threshold must be positive "+
			"when bidirectional mode is enabled, got %v",
			ErrConfig, c.BidirectionalThreshold)
	}

	return nil
}
