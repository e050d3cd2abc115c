package tracker

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Action classifies a person's movement from their estimated speed
type Action string

const (
	ActionStanding Action = "standing"
	ActionWalking  Action = "walking"
	ActionRunning  Action = "running"
)

const (
	// conversion factor from m/s to km/h
	kphPerMps = 3.6
	// speed thresholds in km/h separating the action classes
	runningKPH = 8.4
	walkingKPH = 2.5
)

// SpeedConfig holds the camera geometry used to convert pixel
// displacement to ground distance.  The horizontal and vertical view
// angles may be given directly in degrees; when zero they are derived
// from the lens dimension and focal length
type SpeedConfig struct {
	// CameraLength is the distance from the camera to the furthest
	// landmark in view, in meters
	CameraLength float64
	// FPS is the input frame rate
	FPS int
	// LensDimension is the camera lens dimension in millimeters
	LensDimension float64
	// FocalLength is the camera focal length in millimeters
	FocalLength float64
	// CameraHorizontalDegrees is the horizontal view angle in degrees
	CameraHorizontalDegrees float64
	// CameraVerticalDegrees is the vertical view angle in degrees
	CameraVerticalDegrees float64
	// PersonAction enables classifying standing/walking/running
	// actions from the estimated speed
	PersonAction bool
}

// DefaultSpeedConfig returns speed estimation defaults for a typical
// indoor camera
func DefaultSpeedConfig() SpeedConfig {
	return SpeedConfig{
		CameraLength:  4.5,
		FPS:           30,
		LensDimension: 2000,
		FocalLength:   4000,
		PersonAction:  true,
	}
}

// SpeedEstimator estimates per object ground speed from consecutive
// centroid positions and camera geometry, averaged over roughly the
// last second of samples
type SpeedEstimator struct {
	cfg SpeedConfig
}

// NewSpeedEstimator returns a SpeedEstimator.  Zero valued config
// fields fall back to the defaults
func NewSpeedEstimator(cfg SpeedConfig) *SpeedEstimator {

	def := DefaultSpeedConfig()

	if cfg.CameraLength <= 0 {
		cfg.CameraLength = def.CameraLength
	}
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.LensDimension <= 0 {
		cfg.LensDimension = def.LensDimension
	}
	if cfg.FocalLength <= 0 {
		cfg.FocalLength = def.FocalLength
	}

	return &SpeedEstimator{cfg: cfg}
}

// viewAngles returns the horizontal and vertical view angles in
// radians, derived from the lens geometry when not configured directly
func (se *SpeedEstimator) viewAngles() (ax, ay float64) {

	ax = se.cfg.CameraHorizontalDegrees * math.Pi / 180
	ay = se.cfg.CameraVerticalDegrees * math.Pi / 180

	if ax == 0 {
		ax = 2 * math.Atan(se.cfg.LensDimension/(2*se.cfg.FocalLength))
	}

	if ay == 0 {
		ay = 2 * math.Atan(se.cfg.LensDimension/(2*se.cfg.FocalLength))
	}

	return ax, ay
}

// Estimate updates the Speed, and when enabled the Action, of every
// live object from its last two centroid positions.  frameWidth and
// frameHeight are the source video dimensions in pixels.  Returns the
// km/h estimates keyed by object id
func (se *SpeedEstimator) Estimate(objects map[int]*TrackedObject,
	frameWidth, frameHeight int) map[int]float64 {

	speeds := make(map[int]float64, len(objects))

	ax, ay := se.viewAngles()

	// ground plane dimensions covered by the camera view
	xReal := 2 * se.cfg.CameraLength * math.Tan(ax/2)
	yReal := 2 * se.cfg.CameraLength * math.Tan(ay/2)

	fps := float64(se.cfg.FPS)

	for id, obj := range objects {

		n := len(obj.History)

		if n < 2 {
			obj.speeds = append(obj.speeds, 0)
			speeds[id] = obj.Speed
			continue
		}

		past := obj.History[n-2]
		cur := obj.History[n-1]

		vx := (xReal / float64(frameWidth)) * (cur.X - past.X) * fps
		vy := (yReal / float64(frameHeight)) * (cur.Y - past.Y) * fps

		v := math.Hypot(vx, vy) * kphPerMps

		obj.speeds = append(obj.speeds, v)

		// average over the samples of the past second
		window := obj.speeds
		if len(window) > se.cfg.FPS {
			window = window[len(window)-se.cfg.FPS:]
		}

		obj.Speed = stat.Mean(window, nil)

		if se.cfg.PersonAction {
			obj.Action = movementAction(obj.Speed)
		}

		speeds[id] = obj.Speed
	}

	return speeds
}

// movementAction maps a km/h speed onto a person action class
func movementAction(speed float64) Action {

	switch {
	case speed >= runningKPH:
		return ActionRunning
	case speed >= walkingKPH:
		return ActionWalking
	default:
		return ActionStanding
	}
}
