// Package coaster is the editing and ride session layer. It owns the control-point
// list and rebuilds the curve synchronously after every change, so the ride and the
// renderer always query a curve that matches the current points.
package coaster

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/logger"
	"coaster-studio/internal/ride"
	"coaster-studio/internal/track"
)

// Mode is what the user is doing with the coaster.
type Mode int

const (
	ModeBuild Mode = iota
	ModeRide
)

func (m Mode) String() string {
	switch m {
	case ModeBuild:
		return "build"
	case ModeRide:
		return "ride"
	default:
		return "unknown"
	}
}

// Options configures a State.
type Options struct {
	Loop  track.LoopConfig
	Ride  ride.Config
	Curve track.CurveConfig
	Log   *logger.Logger    // optional
	IDs   track.IDAllocator // optional; defaults to a fresh counter
}

// State is the coaster being edited and ridden. It is driven from the frame loop and
// is not safe for concurrent use.
type State struct {
	opts    Options
	log     *logger.Logger
	ids     track.IDAllocator
	session *ride.Session

	mode      Mode
	points    []track.TrackPoint
	selected  track.ID
	looped    bool
	chainLift bool
	rideSpeed float64

	curve     *track.Curve
	firstPeak float64
	lastFrame ride.Frame
}

// New returns an empty coaster in build mode with chain lift on and a 1x speed.
func New(opts Options) *State {
	ids := opts.IDs
	if ids == nil {
		ids = track.NewCounter(0)
	}
	log := opts.Log
	if log == nil {
		log = logger.New("")
	}
	return &State{
		opts:      opts,
		log:       log,
		ids:       ids,
		session:   ride.NewSession(opts.Ride),
		mode:      ModeBuild,
		chainLift: true,
		rideSpeed: 1,
	}
}

// Mode returns the current mode.
func (s *State) Mode() Mode { return s.mode }

// Points returns a snapshot of the control points.
func (s *State) Points() []track.TrackPoint { return track.Clone(s.points) }

// Len returns the number of control points.
func (s *State) Len() int { return len(s.points) }

// Curve returns the curve built from the current points, or nil.
func (s *State) Curve() *track.Curve { return s.curve }

// FirstPeak returns where the chain lift releases on the current curve.
func (s *State) FirstPeak() float64 { return s.firstPeak }

// Selected returns the selected point id, or 0.
func (s *State) Selected() track.ID { return s.selected }

func (s *State) Looped() bool       { return s.looped }
func (s *State) ChainLift() bool    { return s.chainLift }
func (s *State) RideSpeed() float64 { return s.rideSpeed }

// Riding reports whether a ride is in progress.
func (s *State) Riding() bool { return s.session.Riding() }

// RideID identifies the current or most recent ride.
func (s *State) RideID() string { return s.session.ID().String() }

// Progress returns the ride progress in [0,1).
func (s *State) Progress() float64 { return s.session.Progress() }

// LastFrame returns the most recent ride tick result.
func (s *State) LastFrame() ride.Frame { return s.lastFrame }

// LoopConfig returns the loop constants in use.
func (s *State) LoopConfig() track.LoopConfig { return s.opts.Loop }

// rebuild recomputes the curve and everything derived from it. Every mutation of
// points or looped calls it before returning.
func (s *State) rebuild() {
	s.curve = track.BuildWith(s.points, s.looped, s.opts.Curve)
	s.firstPeak = ride.FirstPeak(s.curve, s.opts.Ride)
}

// AddPoint appends a control point with tilt 0 and returns its id.
func (s *State) AddPoint(pos r3.Vec) track.ID {
	id := s.ids.Next()
	s.points = append(s.points, track.TrackPoint{ID: id, Position: pos})
	s.rebuild()
	s.log.Logf("added %s at (%.1f, %.1f, %.1f)", id, pos.X, pos.Y, pos.Z)
	return id
}

// UpdatePoint moves a point. It reports whether the id exists.
func (s *State) UpdatePoint(id track.ID, pos r3.Vec) bool {
	i := track.Index(s.points, id)
	if i < 0 {
		return false
	}
	s.points[i].Position = pos
	s.rebuild()
	return true
}

// UpdateTilt sets a point's banking angle in degrees. It reports whether the id exists.
func (s *State) UpdateTilt(id track.ID, tilt float64) bool {
	i := track.Index(s.points, id)
	if i < 0 {
		return false
	}
	s.points[i].Tilt = tilt
	s.rebuild()
	return true
}

// RemovePoint deletes a point, clearing the selection if it pointed at it.
func (s *State) RemovePoint(id track.ID) bool {
	i := track.Index(s.points, id)
	if i < 0 {
		return false
	}
	out := make([]track.TrackPoint, 0, len(s.points)-1)
	out = append(out, s.points[:i]...)
	s.points = append(out, s.points[i+1:]...)
	if s.selected == id {
		s.selected = 0
	}
	s.rebuild()
	s.log.Logf("removed %s", id)
	return true
}

// InsertLoop splices a loop in at the given point. It reports whether the id exists.
func (s *State) InsertLoop(id track.ID) bool {
	if track.Index(s.points, id) < 0 {
		return false
	}
	before := len(s.points)
	next := track.InsertLoop(s.points, id, s.opts.Loop, s.ids)
	s.points = next
	s.rebuild()
	s.log.Logf("loop inserted at %s: %d -> %d points", id, before, len(next))
	return true
}

// Select marks a point as selected; 0 clears the selection. Unknown ids are ignored.
func (s *State) Select(id track.ID) bool {
	if id != 0 && track.Index(s.points, id) < 0 {
		return false
	}
	s.selected = id
	return true
}

// Clear removes every point and ends any ride.
func (s *State) Clear() {
	s.points = nil
	s.selected = 0
	s.session.Stop()
	s.mode = ModeBuild
	s.lastFrame = ride.Frame{}
	s.rebuild()
	s.log.Log("track cleared")
}

// SetLooped closes or opens the track.
func (s *State) SetLooped(looped bool) {
	if s.looped == looped {
		return
	}
	s.looped = looped
	s.rebuild()
}

// SetChainLift toggles the lift hill.
func (s *State) SetChainLift(on bool) { s.chainLift = on }

// SetRideSpeed sets the rider speed multiplier.
func (s *State) SetRideSpeed(v float64) error {
	if v <= 0 {
		return fmt.Errorf("ride speed must be positive, got %g", v)
	}
	s.rideSpeed = v
	return nil
}

// StartRide starts a ride from the beginning of the track. It returns false and changes
// nothing when there are fewer than two points.
func (s *State) StartRide() bool {
	if !s.session.Start(s.curve) {
		return false
	}
	s.mode = ModeRide
	s.lastFrame = ride.Frame{Pose: s.session.Pose()}
	s.log.Logf("ride %s started on %d points (%.1f m)", s.session.ID(), len(s.points), s.curve.Length())
	return true
}

// StopRide aborts the ride and returns to build mode.
func (s *State) StopRide() {
	wasRiding := s.session.Riding()
	s.session.Stop()
	s.mode = ModeBuild
	if wasRiding {
		s.log.Logf("ride %s stopped", s.session.ID())
	}
}

// Tick advances the ride by dt seconds. It returns the frame and true while the ride
// continues; false when not riding or when the ride just ended, in which case the
// state is back in build mode.
func (s *State) Tick(dt float64) (ride.Frame, bool) {
	if !s.session.Riding() {
		return ride.Frame{}, false
	}
	f, ok := s.session.Tick(ride.Input{
		Curve:     s.curve,
		FirstPeak: s.firstPeak,
		ChainLift: s.chainLift,
		Speed:     s.rideSpeed,
		Delta:     dt,
	})
	if !ok {
		s.mode = ModeBuild
		s.log.Logf("ride %s finished", s.session.ID())
		return ride.Frame{}, false
	}
	s.lastFrame = f
	return f, true
}
