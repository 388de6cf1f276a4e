package track

import "gonum.org/v1/gonum/spatial/r3"

// Hermite evaluates the cubic Hermite curve from p0 (tangent tan0) to p1 (tangent tan1)
// at t. Both tangents are multiplied by scale before blending.
func Hermite(p0, tan0, p1, tan1 r3.Vec, scale, t float64) r3.Vec {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	out := r3.Scale(h00, p0)
	out = r3.Add(out, r3.Scale(h10*scale, tan0))
	out = r3.Add(out, r3.Scale(h01, p1))
	return r3.Add(out, r3.Scale(h11*scale, tan1))
}
