// Package ride advances a cart along a built track curve one frame at a time and
// produces a smoothed, banked chase-camera pose.
package ride

import "coaster-studio/internal/physics"

// Config holds the ride constants. Progress offsets are in curve parameter units.
type Config struct {
	physics.Model `yaml:",inline"`

	LookAhead          float64 `yaml:"look_ahead"`            // look-at point ahead of the cart
	CameraBehind       float64 `yaml:"camera_behind"`         // camera anchor behind the cart, keeps the car body out of view
	CameraHeight       float64 `yaml:"camera_height"`         // metres above the rail along the frame's up axis
	LookAtHeightFactor float64 `yaml:"look_at_height_factor"` // look-at lift as a fraction of CameraHeight
	Smoothing          float64 `yaml:"smoothing"`             // per-tick lerp factor for position, look-at and roll

	PeakScanEnd    float64 `yaml:"peak_scan_end"`
	PeakScanStep   float64 `yaml:"peak_scan_step"`
	ClimbThreshold float64 `yaml:"climb_threshold"` // |tangent.Y| that counts as climbing or descending
	DefaultPeak    float64 `yaml:"default_peak"`    // lift length when no first peak is found
}

// DefaultConfig returns the stock ride tuning.
func DefaultConfig() Config {
	return Config{
		Model:              physics.DefaultModel(),
		LookAhead:          0.08,
		CameraBehind:       0.01,
		CameraHeight:       2.0,
		LookAtHeightFactor: 0.3,
		Smoothing:          0.15,
		PeakScanEnd:        0.5,
		PeakScanStep:       0.01,
		ClimbThreshold:     0.1,
		DefaultPeak:        0.2,
	}
}
