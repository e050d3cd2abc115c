package tracker

import (
	"testing"
)

// TestTrajectoryDirections tests compass labels derived from centroid
// history
func TestTrajectoryDirections(t *testing.T) {

	tests := []struct {
		name    string
		history []Point
		want    Direction
	}{
		{
			name:    "no history",
			history: nil,
			want:    DirectionNone,
		},
		{
			name:    "single position",
			history: []Point{{X: 10, Y: 10}},
			want:    DirectionNone,
		},
		{
			name:    "stationary",
			history: []Point{{X: 10, Y: 10}, {X: 10, Y: 10}},
			want:    DirectionNone,
		},
		{
			name:    "moving down",
			history: []Point{{X: 10, Y: 10}, {X: 10, Y: 30}},
			want:    Down,
		},
		{
			name:    "moving up",
			history: []Point{{X: 10, Y: 30}, {X: 10, Y: 10}},
			want:    Up,
		},
		{
			name:    "moving right",
			history: []Point{{X: 10, Y: 10}, {X: 30, Y: 10}},
			want:    Right,
		},
		{
			name:    "moving left",
			history: []Point{{X: 30, Y: 10}, {X: 10, Y: 10}},
			want:    Left,
		},
		{
			name:    "moving down and left",
			history: []Point{{X: 30, Y: 10}, {X: 10, Y: 30}},
			want:    DownLeft,
		},
		{
			name:    "moving up and right",
			history: []Point{{X: 10, Y: 30}, {X: 30, Y: 10}},
			want:    UpRight,
		},
	}

	te := NewTrajectoryEstimator(DefaultCentroidIndex)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			obj := &TrackedObject{History: tt.history}

			objects := map[int]*TrackedObject{0: obj}
			dirs := te.Estimate(objects)

			if dirs[0] != tt.want {
				t.Errorf("expected direction %q, got %q", tt.want, dirs[0])
			}

			if obj.Direction != tt.want {
				t.Errorf("expected object direction %q, got %q", tt.want, obj.Direction)
			}
		})
	}
}

// TestTrajectoryCentroidIndex tests that the estimator compares against
// the nth oldest history entry, clamped to the history length
func TestTrajectoryCentroidIndex(t *testing.T) {

	// history trends down overall but the last step moves up
	history := []Point{
		{X: 10, Y: 10},
		{X: 10, Y: 40},
		{X: 10, Y: 80},
		{X: 10, Y: 70},
	}

	obj := &TrackedObject{History: history}
	objects := map[int]*TrackedObject{0: obj}

	// comparing 3 frames back (y=40 vs y=70) still reads as down
	te := NewTrajectoryEstimator(3)

	if dirs := te.Estimate(objects); dirs[0] != Down {
		t.Errorf("expected down with index 3, got %q", dirs[0])
	}

	// comparing 2 frames back (y=80 vs y=70) reads as up
	te = NewTrajectoryEstimator(2)

	if dirs := te.Estimate(objects); dirs[0] != Up {
		t.Errorf("expected up with index 2, got %q", dirs[0])
	}

	// index larger than history clamps to the oldest entry
	te = NewTrajectoryEstimator(10)

	if dirs := te.Estimate(objects); dirs[0] != Down {
		t.Errorf("expected down with clamped index, got %q", dirs[0])
	}
}
