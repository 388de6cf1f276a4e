package ride

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/physics"
	"coaster-studio/internal/track"
)

// Input is everything one tick reads from the editing layer. Curve must be the most
// recently built curve; the session never keeps it between ticks.
type Input struct {
	Curve     *track.Curve
	FirstPeak float64 // curve parameter where the chain lift releases
	ChainLift bool
	Speed     float64 // rider speed multiplier, > 0
	Delta     float64 // seconds since the previous frame
}

// Frame is the result of one tick.
type Frame struct {
	Progress float64
	Speed    float64 // m/s used for this tick
	Height   float64 // cart height before the move
	OnLift   bool
	Lapped   bool // progress wrapped past the end of a looped track
	Pose     Pose
}

// Session is the mutable state of one ride: progress along the curve, the energy
// budget and the smoothed camera. Sessions are independent of each other.
type Session struct {
	cfg    Config
	id     uuid.UUID
	riding bool

	progress float64
	budget   *physics.Budget

	camPos r3.Vec
	lookAt r3.Vec
	roll   float64
}

// NewSession returns an idle session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg, budget: physics.NewBudget(0)}
}

// ID identifies the current (or last) ride. It changes on every Start.
func (s *Session) ID() uuid.UUID { return s.id }

// Riding reports whether the session is advancing.
func (s *Session) Riding() bool { return s.riding }

// Progress returns the cart's curve parameter in [0,1).
func (s *Session) Progress() float64 { return s.progress }

// PeakHeight returns the highest point reached in the current energy budget.
func (s *Session) PeakHeight() float64 { return s.budget.Peak() }

// Pose returns the current smoothed camera pose.
func (s *Session) Pose() Pose {
	return Pose{Position: s.camPos, Target: s.lookAt, Roll: s.roll}
}

// Start arms a new ride at the start of c. It returns false and leaves the session
// untouched when there is no curve. The camera is placed at its start pose so the
// smoothing does not sweep in from wherever the previous ride ended.
func (s *Session) Start(c *track.Curve) bool {
	if c == nil {
		return false
	}
	s.id = uuid.New()
	s.riding = true
	s.progress = 0
	s.budget.Reset(c.PointAt(0).Y)
	s.camPos, s.lookAt = s.cfg.CameraTarget(c, 0)
	s.roll = degToRad(c.TiltAt(0))
	return true
}

// Stop ends the ride and rewinds progress.
func (s *Session) Stop() {
	s.riding = false
	s.progress = 0
}

// Tick advances the ride by in.Delta seconds. It returns false when the session is
// not riding, or when the ride ended during this tick (no curve any more, or an open
// track ran off its end, or has zero length); in that case no camera update happens.
func (s *Session) Tick(in Input) (Frame, bool) {
	if !s.riding {
		return Frame{}, false
	}
	c := in.Curve
	if c == nil {
		s.Stop()
		return Frame{}, false
	}

	height := c.PointAt(s.progress).Y
	drop := s.budget.Observe(height)

	onLift := in.ChainLift && s.progress < in.FirstPeak
	var speed float64
	if onLift {
		speed = s.cfg.ChainSpeed(in.Speed)
	} else {
		speed = s.cfg.FreeRollSpeed(drop, in.Speed)
	}

	// A zero-length track is crossed instantly: open tracks end, looped tracks lap.
	next := s.progress + 1
	if length := c.Length(); length > 0 {
		next = s.progress + speed*in.Delta/length
	}

	lapped := false
	if next >= 1 {
		if !c.Looped() {
			s.Stop()
			return Frame{}, false
		}
		next = math.Mod(next, 1)
		lapped = true
		if in.ChainLift {
			s.budget.Reset(c.PointAt(0).Y)
		}
	}
	s.progress = next

	pos, look := s.cfg.CameraTarget(c, next)
	k := s.cfg.Smoothing
	s.camPos = track.Lerp(s.camPos, pos, k)
	s.lookAt = track.Lerp(s.lookAt, look, k)
	s.roll += (degToRad(c.TiltAt(next)) - s.roll) * k

	return Frame{
		Progress: next,
		Speed:    speed,
		Height:   height,
		OnLift:   onLift,
		Lapped:   lapped,
		Pose:     s.Pose(),
	}, true
}
