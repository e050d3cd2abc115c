package centroidtrack

import (
	"github.com/swdee/go-centroidtrack/tracker"
)

// Detection is a single object detected in the current frame.
// Detections are ephemeral, supplied fresh on every Process call and
// never stored by the tracker
type Detection struct {
	// Rect is the bounding box of the detected object
	Rect tracker.Rect
	// Label is the class label of the object detected
	Label int
	// Score is the confidence of the detection.  It is carried through
	// for rendering and is never used for matching
	Score float32
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(rect tracker.Rect, label int, score float32) Detection {
	return Detection{
		Rect:  rect,
		Label: label,
		Score: score,
	}
}

// BoxesToDetections converts raw (x1,y1,x2,y2) bounding boxes into
// detections, for hosts that track a single object class
func BoxesToDetections(boxes [][4]float64) []Detection {

	dets := make([]Detection, 0, len(boxes))

	for _, b := range boxes {
		dets = append(dets, Detection{
			Rect: tracker.NewRect(b[0], b[1], b[2], b[3]),
		})
	}

	return dets
}
