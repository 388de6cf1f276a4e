// Package profile rides a track headlessly and charts the result, for checking the
// energy model and the chain lift against a layout without opening a window.
package profile

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"coaster-studio/internal/coaster"
)

// ErrNoTrack is returned when the state has no curve to ride.
var ErrNoTrack = errors.New("profile: need at least two points")

// Sample is the cart state after one tick.
type Sample struct {
	Time     float64 // seconds since the start
	Progress float64
	Height   float64
	Speed    float64
	OnLift   bool
}

// Profile is a recorded ride.
type Profile struct {
	RideID  string
	Length  float64 // metres
	Looped  bool
	Samples []Sample
}

// Options controls a recording.
type Options struct {
	DT          float64 // fixed tick, seconds
	MaxDuration float64 // safety cap, seconds
}

// DefaultOptions ticks at 60 Hz for at most ten minutes.
func DefaultOptions() Options {
	return Options{DT: 1.0 / 60, MaxDuration: 600}
}

// Record starts a ride on s and ticks it at a fixed step until an open track runs out,
// a looped track completes one lap, or MaxDuration passes. The ride is stopped before
// returning.
func Record(s *coaster.State, opts Options) (Profile, error) {
	def := DefaultOptions()
	if opts.DT <= 0 {
		opts.DT = def.DT
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = def.MaxDuration
	}
	if !s.StartRide() {
		return Profile{}, ErrNoTrack
	}
	defer s.StopRide()

	c := s.Curve()
	p := Profile{Length: c.Length(), Looped: c.Looped()}
	p.RideID = s.RideID()

	for elapsed := opts.DT; elapsed <= opts.MaxDuration; elapsed += opts.DT {
		f, ok := s.Tick(opts.DT)
		if !ok {
			break
		}
		p.Samples = append(p.Samples, Sample{
			Time:     elapsed,
			Progress: f.Progress,
			Height:   f.Height,
			Speed:    f.Speed,
			OnLift:   f.OnLift,
		})
		if f.Lapped {
			break
		}
	}
	return p, nil
}

// Duration is the time of the last sample.
func (p Profile) Duration() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return p.Samples[len(p.Samples)-1].Time
}

// Speeds returns the speed series.
func (p Profile) Speeds() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.Speed
	}
	return out
}

// Heights returns the height series.
func (p Profile) Heights() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.Height
	}
	return out
}

// MaxSpeed returns the top speed, or 0 for an empty profile.
func (p Profile) MaxSpeed() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return floats.Max(p.Speeds())
}

// MaxHeight returns the highest sampled point, or 0 for an empty profile.
func (p Profile) MaxHeight() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return floats.Max(p.Heights())
}

// LiftTime returns how long the cart spent on the chain lift.
func (p Profile) LiftTime() float64 {
	var t float64
	prev := 0.0
	for _, s := range p.Samples {
		if s.OnLift {
			t += s.Time - prev
		}
		prev = s.Time
	}
	return t
}
