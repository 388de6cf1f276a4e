package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/primitives"
	"coaster-studio/internal/ride"
	"coaster-studio/internal/track"
)

const (
	halfGauge      = float32(0.6)
	railSampleStep = float32(0.5) // metres of arc between rail samples
	previewPerSpan = 16           // centerline samples per control-point span in build mode
	minRailSamples = 64
	tieEvery       = 4 // samples between cross ties
	supportSpacing = float32(4)
	supportRadius  = float32(0.25)
	supportGap     = float32(0.4) // clearance between column top and rails
	pointSize      = float32(0.7)
	markerSize     = float32(0.5)
)

var (
	railColor      = rl.NewColor(200, 40, 40, 255)
	railNightColor = rl.NewColor(255, 90, 70, 255)
	chainColor     = rl.NewColor(90, 90, 90, 255)
	tieColor       = rl.NewColor(120, 85, 50, 255)
	supportColor   = rl.NewColor(150, 120, 80, 255)
	previewColor   = rl.NewColor(255, 255, 255, 90)
	pointColor     = rl.NewColor(235, 235, 235, 255)
	selectedColor  = rl.NewColor(255, 210, 0, 255)
	loopPointColor = rl.NewColor(200, 60, 200, 255)
	markerColor    = rl.NewColor(60, 200, 120, 255)
)

// railSample is one cross-section of the track, in render space.
type railSample struct {
	t           float64
	left, right rl.Vector3
}

// bankedSide returns the banked lateral axis at t: the frame's right vector rotated
// about the tangent by the interpolated tilt.
func bankedSide(c *track.Curve, t float64) rl.Vector3 {
	_, right, up := ride.Basis(c, t)
	roll := float32(c.TiltAt(t)) * math32.Pi / 180
	cos, sin := math32.Cos(roll), math32.Sin(roll)
	r, u := vec3(right), vec3(up)
	return rl.NewVector3(
		r.X*cos+u.X*sin,
		r.Y*cos+u.Y*sin,
		r.Z*cos+u.Z*sin,
	)
}

func railSamples(c *track.Curve) []railSample {
	length := float32(c.Length())
	n := int(math32.Ceil(length / railSampleStep))
	if n < minRailSamples {
		n = minRailSamples
	}
	out := make([]railSample, 0, n+1)
	for i := 0; i <= n; i++ {
		t := c.ParamAtArc(float64(i) / float64(n))
		center := vec3(c.PointAt(t))
		side := rl.Vector3Scale(bankedSide(c, t), halfGauge)
		out = append(out, railSample{
			t:     t,
			left:  rl.Vector3Subtract(center, side),
			right: rl.Vector3Add(center, side),
		})
	}
	return out
}

func (s *Scene) drawTrack(st *coaster.State, c *track.Curve) {
	samples := railSamples(c)
	rail := railColor
	if s.NightMode {
		rail = railNightColor
	}
	liftEnd := -1.0
	if st.ChainLift() {
		liftEnd = st.FirstPeak()
	}

	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		col := rail
		if a.t < liftEnd {
			col = chainColor
		}
		rl.DrawLine3D(a.left, b.left, col)
		rl.DrawLine3D(a.right, b.right, col)
		if i%tieEvery == 0 {
			rl.DrawLine3D(b.left, b.right, tieColor)
		}
	}

	if st.Mode() == coaster.ModeBuild {
		drawPreview(c, st.Len())
	}
	if s.ShowSupports {
		s.drawSupports(c)
	}
	s.drawLoopMarkers(st)
}

// drawPreview draws the ride path centerline, evenly spaced in curve parameter so
// each span between control points gets the same number of segments.
func drawPreview(c *track.Curve, points int) {
	prev := rl.Vector3{}
	for i, p := range c.Samples(points * previewPerSpan) {
		cur := vec3(p)
		if i > 0 {
			rl.DrawLine3D(prev, cur, previewColor)
		}
		prev = cur
	}
}

// drawSupports places a column every supportSpacing metres of arc length.
func (s *Scene) drawSupports(c *track.Curve) {
	length := float32(c.Length())
	if length <= 0 {
		return
	}
	count := int(math32.Floor(length / supportSpacing))
	for i := 0; i <= count; i++ {
		p := vec3(c.PointAtArc(float64(float32(i) * supportSpacing / length)))
		h := p.Y - supportGap
		if h <= 0 {
			continue
		}
		s.prims.Draw(primitives.Cylinder,
			rl.NewVector3(p.X, 0, p.Z),
			rl.NewVector3(supportRadius*2, h, supportRadius*2),
			supportColor)
	}
}

// drawLoopMarkers marks the clearance point past each loop's exit.
func (s *Scene) drawLoopMarkers(st *coaster.State) {
	pts := st.Points()
	cfg := st.LoopConfig()
	for i, p := range pts {
		if p.Loop == nil {
			continue
		}
		if i+1 < len(pts) && pts[i+1].Loop != nil && pts[i+1].Loop.EntryPos == p.Loop.EntryPos {
			continue
		}
		m := vec3(p.Loop.ExitClearance(p.Position, cfg))
		s.prims.Draw(primitives.Cube, m, rl.NewVector3(markerSize, markerSize, markerSize), markerColor)
	}
}

func (s *Scene) drawControlPoints(st *coaster.State) {
	sel := st.Selected()
	for _, p := range st.Points() {
		col := pointColor
		switch {
		case p.ID == sel:
			col = selectedColor
		case p.Loop != nil:
			col = loopPointColor
		}
		s.prims.Draw(primitives.Sphere, vec3(p.Position), rl.NewVector3(pointSize, pointSize, pointSize), col)
	}
}
