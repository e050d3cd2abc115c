package tracker

import (
	"testing"
)

// speedTestConfig returns a camera geometry chosen so the view covers
// exactly 1 meter of ground in each axis, with a 90 degree view angle
// and a camera distance of 0.5 meters
func speedTestConfig() SpeedConfig {
	return SpeedConfig{
		CameraLength:            0.5,
		FPS:                     10,
		CameraHorizontalDegrees: 90,
		CameraVerticalDegrees:   90,
		PersonAction:            true,
	}
}

// TestSpeedEstimate tests the pixel to ground speed conversion.  With a
// 1 meter view over a 100 pixel frame, a 10 pixel step at 10 fps is
// 1 m/s, or 3.6 km/h
func TestSpeedEstimate(t *testing.T) {

	se := NewSpeedEstimator(speedTestConfig())

	obj := &TrackedObject{
		History: []Point{{X: 40, Y: 50}, {X: 50, Y: 50}},
	}

	speeds := se.Estimate(map[int]*TrackedObject{0: obj}, 100, 100)

	if !almostEqual(speeds[0], 3.6, 1e-9) {
		t.Errorf("expected speed 3.6 km/h, got %v", speeds[0])
	}

	if !almostEqual(obj.Speed, 3.6, 1e-9) {
		t.Errorf("expected object speed 3.6 km/h, got %v", obj.Speed)
	}

	if obj.Action != ActionWalking {
		t.Errorf("expected walking action, got %q", obj.Action)
	}
}

// TestSpeedActions tests the speed thresholds separating the action
// classes
func TestSpeedActions(t *testing.T) {

	tests := []struct {
		name string
		past Point
		cur  Point
		want Action
	}{
		{
			name: "stationary is standing",
			past: Point{X: 50, Y: 50},
			cur:  Point{X: 50, Y: 50},
			want: ActionStanding,
		},
		{
			name: "slow drift is standing",
			past: Point{X: 50, Y: 50},
			cur:  Point{X: 51, Y: 50},
			want: ActionStanding,
		},
		{
			name: "moderate movement is walking",
			past: Point{X: 50, Y: 50},
			cur:  Point{X: 60, Y: 50},
			want: ActionWalking,
		},
		{
			name: "fast movement is running",
			past: Point{X: 50, Y: 50},
			cur:  Point{X: 80, Y: 50},
			want: ActionRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			se := NewSpeedEstimator(speedTestConfig())

			obj := &TrackedObject{History: []Point{tt.past, tt.cur}}

			se.Estimate(map[int]*TrackedObject{0: obj}, 100, 100)

			if obj.Action != tt.want {
				t.Errorf("expected action %q, got %q (speed %v)",
					tt.want, obj.Action, obj.Speed)
			}
		})
	}
}

// TestSpeedAveraging tests that the reported speed is the mean over the
// last second of samples
func TestSpeedAveraging(t *testing.T) {

	cfg := speedTestConfig()
	cfg.FPS = 2

	se := NewSpeedEstimator(cfg)

	obj := &TrackedObject{
		History: []Point{{X: 10, Y: 50}, {X: 20, Y: 50}},
	}
	objects := map[int]*TrackedObject{0: obj}

	// 10 pixel step at 2 fps over a 1 meter view is 0.2 m/s, 0.72 km/h
	se.Estimate(objects, 100, 100)

	if !almostEqual(obj.Speed, 0.72, 1e-9) {
		t.Fatalf("expected speed 0.72 km/h, got %v", obj.Speed)
	}

	// 30 pixel step is 2.16 km/h, window mean over both samples is 1.44
	obj.History = append(obj.History, Point{X: 50, Y: 50})
	se.Estimate(objects, 100, 100)

	if !almostEqual(obj.Speed, 1.44, 1e-9) {
		t.Fatalf("expected window mean 1.44 km/h, got %v", obj.Speed)
	}

	// third sample of 2.16 pushes the oldest out of the 2 sample window
	obj.History = append(obj.History, Point{X: 80, Y: 50})
	se.Estimate(objects, 100, 100)

	if !almostEqual(obj.Speed, 2.16, 1e-9) {
		t.Fatalf("expected window mean 2.16 km/h, got %v", obj.Speed)
	}
}

// TestSpeedLensDerivedAngles tests that view angles derived from the
// lens geometry match explicit degrees.  A 2000 lens dimension with a
// 1000 focal length gives a 90 degree view
func TestSpeedLensDerivedAngles(t *testing.T) {

	lens := NewSpeedEstimator(SpeedConfig{
		CameraLength:  0.5,
		FPS:           10,
		LensDimension: 2000,
		FocalLength:   1000,
	})

	degrees := NewSpeedEstimator(speedTestConfig())

	lensObj := &TrackedObject{
		History: []Point{{X: 40, Y: 50}, {X: 50, Y: 50}},
	}
	degObj := &TrackedObject{
		History: []Point{{X: 40, Y: 50}, {X: 50, Y: 50}},
	}

	lens.Estimate(map[int]*TrackedObject{0: lensObj}, 100, 100)
	degrees.Estimate(map[int]*TrackedObject{0: degObj}, 100, 100)

	if !almostEqual(lensObj.Speed, degObj.Speed, 1e-9) {
		t.Errorf("expected matching speeds, lens derived %v, degrees %v",
			lensObj.Speed, degObj.Speed)
	}
}

// TestSpeedShortHistory tests that objects seen in fewer than two
// frames report zero speed
func TestSpeedShortHistory(t *testing.T) {

	se := NewSpeedEstimator(speedTestConfig())

	obj := &TrackedObject{History: []Point{{X: 50, Y: 50}}}

	speeds := se.Estimate(map[int]*TrackedObject{0: obj}, 100, 100)

	if speeds[0] != 0 {
		t.Errorf("expected zero speed for short history, got %v", speeds[0])
	}
}
