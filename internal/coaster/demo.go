package coaster

import (
	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/track"
)

// demoLayout is a lift hill, a first drop into a valley, a camelback and a flat turn
// back toward the station.
var demoLayout = []r3.Vec{
	{X: 0, Y: 1, Z: 0},
	{X: 12, Y: 6, Z: 0},
	{X: 24, Y: 14, Z: 0},
	{X: 34, Y: 20, Z: 0},
	{X: 42, Y: 18, Z: 0},
	{X: 52, Y: 3, Z: 0},
	{X: 64, Y: 2, Z: 0},
	{X: 76, Y: 9, Z: 4},
	{X: 86, Y: 3, Z: 12},
	{X: 88, Y: 2, Z: 26},
	{X: 78, Y: 2, Z: 36},
	{X: 60, Y: 2, Z: 40},
	{X: 40, Y: 2, Z: 38},
}

// LoadDemo replaces the track with the demo layout and returns the new ids in order.
func (s *State) LoadDemo() []track.ID {
	s.Clear()
	ids := make([]track.ID, 0, len(demoLayout))
	for _, p := range demoLayout {
		ids = append(ids, s.AddPoint(p))
	}
	return ids
}
