package centroidtrack

import (
	"errors"
	"testing"

	"github.com/swdee/go-centroidtrack/tracker"
)

// testConfig returns a valid tracking config for processor tests
func testConfig() tracker.Config {
	return tracker.Config{
		MaxDisappeared:    5,
		DistanceThreshold: 100,
		MinAppearance:     1,
	}
}

// TestProcessorCount tests the end to end frame pipeline from
// detections through matching to counting
func TestProcessorCount(t *testing.T) {

	proc, err := NewProcessor(testConfig())

	if err != nil {
		t.Fatalf("error creating processor: %v", err)
	}

	res := proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
		NewDetection(tracker.NewRect(200, 10, 240, 50), 0, 0.8),
	})

	if res.Count.Total != 2 {
		t.Errorf("expected count 2 on first frame, got %d", res.Count.Total)
	}

	if len(res.Objects) != 2 {
		t.Errorf("expected 2 tracked objects, got %d", len(res.Objects))
	}

	// same objects again, nothing new to count
	res = proc.Process([]Detection{
		NewDetection(tracker.NewRect(12, 12, 52, 52), 0, 0.9),
		NewDetection(tracker.NewRect(202, 12, 242, 52), 0, 0.8),
	})

	if res.Count.Total != 0 {
		t.Errorf("expected count 0 on second frame, got %d", res.Count.Total)
	}
}

// TestProcessorSkipsMalformed tests that a degenerate bounding box is
// skipped while the rest of the frame is still processed
func TestProcessorSkipsMalformed(t *testing.T) {

	proc, err := NewProcessor(testConfig())

	if err != nil {
		t.Fatalf("error creating processor: %v", err)
	}

	res := proc.Process([]Detection{
		NewDetection(tracker.NewRect(50, 50, 50, 50), 0, 0.9),
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
	})

	if res.Skipped != 1 {
		t.Errorf("expected 1 skipped detection, got %d", res.Skipped)
	}

	if len(res.Objects) != 1 {
		t.Errorf("expected 1 tracked object from the valid box, got %d",
			len(res.Objects))
	}

	if res.Count.Total != 1 {
		t.Errorf("expected the valid detection counted, got %d", res.Count.Total)
	}
}

// TestProcessorEmptyFrame tests that an empty frame ages the tracked
// set rather than erroring
func TestProcessorEmptyFrame(t *testing.T) {

	proc, _ := NewProcessor(testConfig())

	proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
	})

	res := proc.Process(nil)

	if res.Objects[0].Disappeared != 1 {
		t.Errorf("expected object to age on empty frame, disappeared %d",
			res.Objects[0].Disappeared)
	}
}

// TestProcessorZoneFilter tests that detections outside the zone are
// dropped before matching
func TestProcessorZoneFilter(t *testing.T) {

	zone, err := tracker.NewZone([]tracker.Point{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
	}, 0.5)

	if err != nil {
		t.Fatalf("error creating zone: %v", err)
	}

	proc, err := NewProcessor(testConfig(), WithZone(zone))

	if err != nil {
		t.Fatalf("error creating processor: %v", err)
	}

	res := proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
		NewDetection(tracker.NewRect(200, 200, 240, 240), 0, 0.9),
	})

	if res.Filtered != 1 {
		t.Errorf("expected 1 filtered detection, got %d", res.Filtered)
	}

	if len(res.Objects) != 1 {
		t.Errorf("expected 1 tracked object inside the zone, got %d",
			len(res.Objects))
	}
}

// TestProcessorEstimators tests that attached trajectory and speed
// estimators populate the frame result
func TestProcessorEstimators(t *testing.T) {

	proc, err := NewProcessor(testConfig(),
		WithTrajectory(tracker.NewTrajectoryEstimator(tracker.DefaultCentroidIndex)),
		WithSpeed(tracker.NewSpeedEstimator(tracker.DefaultSpeedConfig()), 1920, 1080),
	)

	if err != nil {
		t.Fatalf("error creating processor: %v", err)
	}

	proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
	})

	res := proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 40, 50, 80), 0, 0.9),
	})

	if res.Directions[0] != tracker.Down {
		t.Errorf("expected direction down, got %q", res.Directions[0])
	}

	if _, ok := res.Speeds[0]; !ok {
		t.Errorf("expected speed estimate for object 0")
	}
}

// TestProcessorReset tests that reset starts a fresh session with the
// id counter back at zero
func TestProcessorReset(t *testing.T) {

	proc, _ := NewProcessor(testConfig())

	proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
	})

	proc.Reset()

	if len(proc.Objects()) != 0 {
		t.Errorf("expected empty registry after reset")
	}

	res := proc.Process([]Detection{
		NewDetection(tracker.NewRect(10, 10, 50, 50), 0, 0.9),
	})

	if _, ok := res.Objects[0]; !ok {
		t.Errorf("expected id counter restart at 0 after reset")
	}
}

// TestProcessorInvalidConfig tests that misconfiguration surfaces at
// construction
func TestProcessorInvalidConfig(t *testing.T) {

	_, err := NewProcessor(tracker.Config{})

	if !errors.Is(err, tracker.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

// TestBoxesToDetections tests the raw box conversion helper
func TestBoxesToDetections(t *testing.T) {

	dets := BoxesToDetections([][4]float64{
		{10, 20, 30, 40},
		{50, 60, 70, 80},
	})

	if len(dets) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(dets))
	}

	if dets[1].Rect != tracker.NewRect(50, 60, 70, 80) {
		t.Errorf("unexpected rect %v", dets[1].Rect)
	}
}
