package track

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// World axes. The track is authored Y-up.
var (
	WorldUp    = r3.Vec{X: 0, Y: 1, Z: 0}
	WorldRight = r3.Vec{X: 1, Y: 0, Z: 0}
)

// epsilon below which a vector is treated as zero length.
const epsilon = 1e-9

// UnitOr returns v scaled to unit length, or fallback when v has (near) zero length.
// r3.Unit yields NaN for the zero vector, so every normalization goes through here.
func UnitOr(v, fallback r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < epsilon {
		return fallback
	}
	return r3.Scale(1/n, v)
}

// Lerp moves a toward b by f.
func Lerp(a, b r3.Vec, f float64) r3.Vec {
	return r3.Add(a, r3.Scale(f, r3.Sub(b, a)))
}
