package track

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LoopConfig holds the loop synthesizer constants. Distances are in metres.
type LoopConfig struct {
	Radius          float64 `yaml:"radius"`
	Points          int     `yaml:"points"`           // angular resolution of the loop body
	HelixSeparation float64 `yaml:"helix_separation"` // lateral offset accumulated over one turn
	// ExitSeparation and ForwardSeparation place the clearance marker drawn past a loop's
	// exit. They do not move the generated track.
	ExitSeparation    float64 `yaml:"exit_separation"`
	ForwardSeparation float64 `yaml:"forward_separation"`
}

// DefaultLoopConfig returns a 5 m loop sampled at 16 points with a 2 m corkscrew offset.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Radius:            5,
		Points:            16,
		HelixSeparation:   2,
		ExitSeparation:    3,
		ForwardSeparation: 2,
	}
}

const (
	// minForwardRun is the horizontal distance below which the incoming direction is
	// too short to trust and the default forward axis is used.
	minForwardRun = 0.1

	approachReach  = 0.5 // approach tangent length, in loop radii
	approachDamp   = 0.8
	transitionDamp = 0.4 // transition tangent length, as a fraction of the exit→target distance
)

// transitionSamples are the Hermite parameters sampled between the loop exit and the
// rejoin target.
var transitionSamples = [...]float64{0.25, 0.5, 0.75}

// InsertLoop returns a new point list with a vertical loop spliced in at the point
// with the given id. The input slice is never modified; when id is not present the
// input is returned unchanged. Every generated point gets a fresh id from ids.
//
// The result is: points before the entry, one approach point, the entry itself, the
// loop body, three transition points, then the rest of the track. When the rejoin
// target is the point after next, the immediate next point is dropped.
func InsertLoop(points []TrackPoint, id ID, cfg LoopConfig, ids IDAllocator) []TrackPoint {
	idx := Index(points, id)
	if idx < 0 {
		return points
	}
	entry := points[idx]
	entryPos := entry.Position

	forward := entryForward(points, idx)
	up := WorldUp
	right := UnitOr(r3.Cross(forward, up), WorldRight)

	var approach []TrackPoint
	if idx > 0 {
		prev := points[idx-1].Position
		incoming := UnitOr(r3.Sub(entryPos, prev), forward)
		scale := cfg.Radius * approachReach * approachDamp
		approach = append(approach, TrackPoint{
			ID:       ids.Next(),
			Position: Hermite(prev, incoming, entryPos, forward, scale, 0.5),
		})
	}

	body := loopBody(entryPos, forward, up, right, cfg, ids)
	loopExit := entryPos
	if len(body) > 0 {
		loopExit = body[len(body)-1].Position
	}

	var next, nextNext *TrackPoint
	if idx+1 < len(points) {
		next = &points[idx+1]
	}
	if idx+2 < len(points) {
		nextNext = &points[idx+2]
	}

	var transition []TrackPoint
	target := nextNext
	if target == nil {
		target = next
	}
	if target != nil {
		targetPos := target.Position

		var afterTarget *TrackPoint
		if nextNext != nil && idx+3 < len(points) {
			afterTarget = &points[idx+3]
		}
		var legacy r3.Vec
		if afterTarget != nil {
			legacy = UnitOr(r3.Sub(afterTarget.Position, targetPos), forward)
		} else {
			legacy = UnitOr(r3.Sub(targetPos, loopExit), forward)
		}

		scale := r3.Norm(r3.Sub(targetPos, loopExit)) * transitionDamp
		for _, t := range transitionSamples {
			transition = append(transition, TrackPoint{
				ID:       ids.Next(),
				Position: Hermite(loopExit, forward, targetPos, legacy, scale, t),
			})
		}
	}

	skip := 1
	if nextNext != nil {
		skip = 2
	}
	tail := points[min(idx+skip, len(points)):]

	out := make([]TrackPoint, 0, idx+len(approach)+1+len(body)+len(transition)+len(tail))
	out = append(out, points[:idx]...)
	out = append(out, approach...)
	out = append(out, entry)
	out = append(out, body...)
	out = append(out, transition...)
	out = append(out, tail...)
	return out
}

// entryForward is the horizontal heading into points[idx], or +X when there is no
// previous point or the horizontal run is too short.
func entryForward(points []TrackPoint, idx int) r3.Vec {
	if idx == 0 {
		return WorldRight
	}
	d := r3.Sub(points[idx].Position, points[idx-1].Position)
	d.Y = 0
	if r3.Norm(d) < minForwardRun {
		return WorldRight
	}
	return UnitOr(d, WorldRight)
}

// loopBody generates cfg.Points points around a vertical loop starting at entry. The
// lateral offset grows linearly so the exit lands HelixSeparation to the right of the
// entry instead of on top of it.
func loopBody(entry, forward, up, right r3.Vec, cfg LoopConfig, ids IDAllocator) []TrackPoint {
	n := cfg.Points
	if n <= 0 {
		return nil
	}
	out := make([]TrackPoint, 0, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		theta := 2 * math.Pi * t

		pos := entry
		pos = r3.Add(pos, r3.Scale(cfg.Radius*math.Sin(theta), forward))
		pos = r3.Add(pos, r3.Scale(t*cfg.HelixSeparation, right))
		pos = r3.Add(pos, r3.Scale(cfg.Radius*(1-math.Cos(theta)), up))

		out = append(out, TrackPoint{
			ID:       ids.Next(),
			Position: pos,
			Loop: &LoopMeta{
				EntryPos: entry,
				Forward:  forward,
				Up:       up,
				Right:    right,
				Radius:   cfg.Radius,
				Theta:    theta,
			},
		})
	}
	return out
}

// ExitClearance returns the marker position past a loop's exit, offset forward and
// to the side by the configured separations.
func (m LoopMeta) ExitClearance(exit r3.Vec, cfg LoopConfig) r3.Vec {
	p := r3.Add(exit, r3.Scale(cfg.ForwardSeparation, m.Forward))
	return r3.Add(p, r3.Scale(cfg.ExitSeparation, m.Right))
}
