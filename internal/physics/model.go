// Package physics is the ride's speed model: a 1-D energy budget along the track
// rather than rigid-body dynamics. Height converts to speed through v = sqrt(2·g·drop).
package physics

import "math"

// Model holds the constants of the energy speed model.
type Model struct {
	Gravity         float64 `yaml:"gravity"`           // m/s², positive
	MinSpeed        float64 `yaml:"min_speed"`         // floor so the cart never stalls on a climb
	ChainLiftFactor float64 `yaml:"chain_lift_factor"` // share of the rider's speed multiplier used on the lift
}

// DefaultModel returns earth gravity, a 1 m/s floor and a lift at 90% of the multiplier.
func DefaultModel() Model {
	return Model{
		Gravity:         9.8,
		MinSpeed:        1.0,
		ChainLiftFactor: 0.9,
	}
}

// FreeRollSpeed returns the speed after falling drop metres below the highest point
// reached, scaled by multiplier. Negative drops (above the previous peak) count as zero.
func (m Model) FreeRollSpeed(drop, multiplier float64) float64 {
	v := math.Sqrt(2 * m.Gravity * math.Max(0, drop))
	return math.Max(m.MinSpeed, v) * multiplier
}

// ChainSpeed is the constant lift-hill speed. It ignores height.
func (m Model) ChainSpeed(multiplier float64) float64 {
	return m.ChainLiftFactor * multiplier
}
