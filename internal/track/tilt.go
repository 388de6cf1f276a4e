package track

import "math"

// TiltAt returns the banking angle in degrees at curve parameter t, linearly
// interpolated between the two control points whose span contains t. The span
// mapping matches Curve: n-1 spans for an open track, n for a looped one.
func TiltAt(points []TrackPoint, t float64, looped bool) float64 {
	tilts := make([]float64, len(points))
	for i, p := range points {
		tilts[i] = p.Tilt
	}
	return interpolateTilt(tilts, t, looped)
}

func interpolateTilt(tilts []float64, t float64, looped bool) float64 {
	n := len(tilts)
	switch n {
	case 0:
		return 0
	case 1:
		return tilts[0]
	}
	spans := n - 1
	if looped {
		spans = n
	}
	s := clamp01(t) * float64(spans)
	i := int(math.Floor(s))
	if i >= spans {
		i = spans - 1
	}
	frac := s - float64(i)
	a := tilts[i%n]
	b := tilts[(i+1)%n]
	return a + (b-a)*frac
}
