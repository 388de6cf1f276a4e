package ride

import (
	"math"

	"coaster-studio/internal/track"
)

// FirstPeak returns the curve parameter of the top of the first climb, which is where
// the chain lift releases the cart. The first half of the track is scanned: the peak is
// the highest point after the tangent first climbs, up to where it first descends again.
// Without a climb it returns cfg.DefaultPeak; without a curve it returns 0.
func FirstPeak(c *track.Curve, cfg Config) float64 {
	if c == nil {
		return 0
	}
	step := cfg.PeakScanStep
	if step <= 0 {
		step = DefaultConfig().PeakScanStep
	}
	steps := int(math.Round(cfg.PeakScanEnd / step))

	maxHeight := math.Inf(-1)
	peak := 0.0
	climbing := false
	for i := 0; i <= steps; i++ {
		t := float64(i) * step
		y := c.PointAt(t).Y
		slope := c.TangentAt(t).Y

		if slope > cfg.ClimbThreshold {
			climbing = true
		}
		if !climbing {
			continue
		}
		if y > maxHeight {
			maxHeight = y
			peak = t
		}
		if slope < -cfg.ClimbThreshold && t > peak {
			break
		}
	}
	if peak > 0 {
		return peak
	}
	return cfg.DefaultPeak
}
