package track

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// CurveConfig controls how finely a curve is sampled for arc-length queries.
type CurveConfig struct {
	ArcLengthDivisions int `yaml:"arc_length_divisions"`
}

// DefaultCurveConfig samples 200 chords, enough for sub-centimetre length error on
// the layouts the editor produces.
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{ArcLengthDivisions: 200}
}

// Curve is a centripetal Catmull-Rom spline through the control point positions.
// It is immutable once built: it holds its own copy of positions and tilts, so the
// point list it came from can be edited or replaced freely.
type Curve struct {
	points  []r3.Vec
	tilts   []float64
	closed  bool
	lengths []float64 // cumulative chord length at i/divisions
}

// Build returns the curve through points, or nil when there are fewer than two points.
// A looped curve wraps from the last point back to the first.
func Build(points []TrackPoint, looped bool) *Curve {
	return BuildWith(points, looped, DefaultCurveConfig())
}

// BuildWith is Build with an explicit sampling configuration.
func BuildWith(points []TrackPoint, looped bool, cfg CurveConfig) *Curve {
	if len(points) < 2 {
		return nil
	}
	if cfg.ArcLengthDivisions <= 0 {
		cfg = DefaultCurveConfig()
	}
	c := &Curve{
		points: make([]r3.Vec, len(points)),
		tilts:  make([]float64, len(points)),
		closed: looped,
	}
	for i, p := range points {
		c.points[i] = p.Position
		c.tilts[i] = p.Tilt
	}
	c.computeLengths(cfg.ArcLengthDivisions)
	return c
}

func (c *Curve) computeLengths(divisions int) {
	chords := make([]float64, divisions+1)
	last := c.PointAt(0)
	for i := 1; i <= divisions; i++ {
		cur := c.PointAt(float64(i) / float64(divisions))
		chords[i] = r3.Norm(r3.Sub(cur, last))
		last = cur
	}
	c.lengths = make([]float64, divisions+1)
	floats.CumSum(c.lengths, chords)
}

// Looped reports whether the curve is closed.
func (c *Curve) Looped() bool { return c.closed }

// Len returns the number of control points the curve passes through.
func (c *Curve) Len() int { return len(c.points) }

// Length returns the total arc length, approximated by the chord table.
func (c *Curve) Length() float64 {
	return c.lengths[len(c.lengths)-1]
}

// PointAt returns the position at parameter t in [0,1]. t is not arc-length uniform:
// each control-point span covers an equal share of the parameter range.
func (c *Curve) PointAt(t float64) r3.Vec {
	s := c.span(t)
	return r3.Vec{X: s.x.at(s.w), Y: s.y.at(s.w), Z: s.z.at(s.w)}
}

// TangentAt returns the unit direction of travel at t.
func (c *Curve) TangentAt(t float64) r3.Vec {
	s := c.span(t)
	d := r3.Vec{X: s.x.slope(s.w), Y: s.y.slope(s.w), Z: s.z.slope(s.w)}
	if r3.Norm(d) >= epsilon {
		return UnitOr(d, WorldRight)
	}
	// Coincident control points flatten the span; difference across it instead.
	t0 := clamp01(t - 1e-4)
	t1 := clamp01(t + 1e-4)
	return UnitOr(r3.Sub(c.PointAt(t1), c.PointAt(t0)), WorldRight)
}

// TiltAt returns the authored banking angle (degrees) at t.
func (c *Curve) TiltAt(t float64) float64 {
	return interpolateTilt(c.tilts, t, c.closed)
}

// ParamAtArc maps an arc-length fraction u in [0,1] to the curve parameter t.
func (c *Curve) ParamAtArc(u float64) float64 {
	u = clamp01(u)
	n := len(c.lengths) - 1
	total := c.lengths[n]
	if total <= 0 {
		return u
	}
	target := u * total
	i := sort.SearchFloat64s(c.lengths, target)
	switch {
	case i == 0:
		return 0
	case i > n:
		return 1
	case c.lengths[i] == target:
		return float64(i) / float64(n)
	}
	before := c.lengths[i-1]
	frac := (target - before) / (c.lengths[i] - before)
	return (float64(i-1) + frac) / float64(n)
}

// PointAtArc returns the position a fraction u of the way along the curve by distance.
func (c *Curve) PointAtArc(u float64) r3.Vec {
	return c.PointAt(c.ParamAtArc(u))
}

// Samples returns n+1 evenly spaced (in t) positions, for preview polylines.
func (c *Curve) Samples(n int) []r3.Vec {
	if n < 1 {
		n = 1
	}
	out := make([]r3.Vec, n+1)
	for i := 0; i <= n; i++ {
		out[i] = c.PointAt(float64(i) / float64(n))
	}
	return out
}

type span struct {
	x, y, z cubic
	w       float64
}

// span locates the control-point segment containing t and returns its per-axis
// polynomials together with the local weight.
func (c *Curve) span(t float64) span {
	pts := c.points
	l := len(pts)
	t = clamp01(t)

	var p float64
	if c.closed {
		p = float64(l) * t
	} else {
		p = float64(l-1) * t
	}
	i := int(math.Floor(p))
	w := p - float64(i)
	if c.closed {
		i = ((i % l) + l) % l
	} else if i >= l-1 {
		i = l - 2
		w = 1
	}

	p1 := pts[i]
	p2 := pts[(i+1)%l]
	var p0, p3 r3.Vec
	if c.closed || i > 0 {
		p0 = pts[(i-1+l)%l]
	} else {
		p0 = r3.Sub(r3.Scale(2, pts[0]), pts[1])
	}
	if c.closed || i+2 < l {
		p3 = pts[(i+2)%l]
	} else {
		p3 = r3.Sub(r3.Scale(2, pts[l-1]), pts[l-2])
	}

	dt0 := math.Pow(r3.Norm2(r3.Sub(p0, p1)), 0.25)
	dt1 := math.Pow(r3.Norm2(r3.Sub(p1, p2)), 0.25)
	dt2 := math.Pow(r3.Norm2(r3.Sub(p2, p3)), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return span{
		x: centripetal(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2),
		y: centripetal(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2),
		z: centripetal(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2),
		w: w,
	}
}

// cubic is c0 + c1·w + c2·w² + c3·w³.
type cubic struct {
	c0, c1, c2, c3 float64
}

func (k cubic) at(w float64) float64 {
	return k.c0 + w*(k.c1+w*(k.c2+w*k.c3))
}

func (k cubic) slope(w float64) float64 {
	return k.c1 + w*(2*k.c2+3*w*k.c3)
}

// centripetal builds the Hermite form of a non-uniform Catmull-Rom span from x1 to x2,
// with knot spacings dt0..dt2.
func centripetal(x0, x1, x2, x3, dt0, dt1, dt2 float64) cubic {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1
	return cubic{
		c0: x1,
		c1: t1,
		c2: -3*x1 + 3*x2 - 2*t1 - t2,
		c3: 2*x1 - 2*x2 + t1 + t2,
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
