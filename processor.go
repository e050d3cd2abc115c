package centroidtrack

import (
	"github.com/swdee/go-centroidtrack/tracker"
)

// FrameResult is the per frame result container handed back to the
// host pipeline
type FrameResult struct {
	// Count is the frame's count in the configured counting mode
	Count tracker.Count
	// Objects is the full live object registry keyed by object id, for
	// downstream consumers such as debugging or visualization
	Objects map[int]*tracker.TrackedObject
	// Directions maps object ids to compass movement labels when a
	// trajectory estimator is attached
	Directions map[int]tracker.Direction
	// Speeds maps object ids to km/h estimates when a speed estimator
	// is attached
	Speeds map[int]float64
	// Skipped is the number of detections dropped this frame for
	// having malformed bounding boxes
	Skipped int
	// Filtered is the number of valid detections dropped this frame by
	// the zone filter
	Filtered int
}

// ProcessorOption configures optional pipeline stages on a Processor
type ProcessorOption func(*Processor)

// WithZone filters detections to those overlapping the given zone
// before they reach the matcher
func WithZone(z *tracker.Zone) ProcessorOption {
	return func(p *Processor) {
		p.zone = z
	}
}

// WithTrajectory attaches per object movement direction estimation
func WithTrajectory(te *tracker.TrajectoryEstimator) ProcessorOption {
	return func(p *Processor) {
		p.trajectory = te
	}
}

// WithSpeed attaches per object speed estimation.  frameWidth and
// frameHeight are the source video dimensions in pixels
func WithSpeed(se *tracker.SpeedEstimator, frameWidth, frameHeight int) ProcessorOption {
	return func(p *Processor) {
		p.speed = se
		p.frameWidth = frameWidth
		p.frameHeight = frameHeight
	}
}

// Processor wires the centroid matcher and motion counter into the per
// frame host pipeline contract.  Each Processor owns an independent
// tracking session.
//
// Process must be called exactly once per frame in stream order and is
// not safe for concurrent use on the same instance
type Processor struct {
	ct      *tracker.CentroidTracker
	counter *tracker.Counter

	// optional stages
	zone       *tracker.Zone
	trajectory *tracker.TrajectoryEstimator
	speed      *tracker.SpeedEstimator

	frameWidth  int
	frameHeight int
}

// NewProcessor returns a Processor for the given tracking
// configuration.  Returns an error when the configuration is invalid
func NewProcessor(cfg tracker.Config, opts ...ProcessorOption) (*Processor, error) {

	ct, err := tracker.NewCentroidTracker(cfg)

	if err != nil {
		return nil, err
	}

	counter, err := tracker.NewCounter(cfg)

	if err != nil {
		return nil, err
	}

	p := &Processor{
		ct:      ct,
		counter: counter,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Process runs one frame's detections through the pipeline: validate
// boxes, derive centroids, match against the tracked set, then count
// newly countable objects.  A malformed detection is skipped with the
// rest of the frame still processed, and an empty frame is a valid
// "nothing seen" steady state
func (p *Processor) Process(dets []Detection) FrameResult {

	res := FrameResult{}

	rects := make([]tracker.Rect, 0, len(dets))
	labels := make([]int, 0, len(dets))

	for _, det := range dets {

		if err := det.Rect.Valid(); err != nil {
			res.Skipped++
			continue
		}

		if p.zone != nil && !p.zone.Contains(det.Rect) {
			res.Filtered++
			continue
		}

		rects = append(rects, det.Rect)
		labels = append(labels, det.Label)
	}

	res.Objects = p.ct.UpdateRects(rects, labels)
	res.Count = p.counter.Count(res.Objects)

	if p.trajectory != nil {
		res.Directions = p.trajectory.Estimate(res.Objects)
	}

	if p.speed != nil {
		res.Speeds = p.speed.Estimate(res.Objects, p.frameWidth, p.frameHeight)
	}

	return res
}

// Objects returns the current live object registry keyed by id
func (p *Processor) Objects() map[int]*tracker.TrackedObject {
	return p.ct.Objects()
}

// Reset drops all tracked state, starting an independent tracking
// session on the same configuration
func (p *Processor) Reset() {
	p.ct.Reset()
}
