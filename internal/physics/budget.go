package physics

import "math"

// Budget tracks the highest point reached so far in a ride. The available energy at
// any height is the drop below that peak.
type Budget struct {
	peak float64
}

// NewBudget starts a budget at the given height.
func NewBudget(height float64) *Budget {
	return &Budget{peak: height}
}

// Reset restarts the budget at height, e.g. at the start of a new lap.
func (b *Budget) Reset(height float64) {
	b.peak = height
}

// Observe records the current height and returns the drop below the peak.
func (b *Budget) Observe(height float64) float64 {
	b.peak = math.Max(b.peak, height)
	return b.peak - height
}

// Peak returns the highest height seen since the last reset.
func (b *Budget) Peak() float64 {
	return b.peak
}
