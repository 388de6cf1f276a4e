// Package track holds the coaster geometry: authored control points, the
// curve built through them, and the loop synthesizer that splices a vertical
// loop into an existing layout.
package track

import (
	"fmt"

	"github.com/jinzhu/copier"
	"gonum.org/v1/gonum/spatial/r3"
)

// ID identifies a control point. IDs are handed out by an IDAllocator and never reused.
type ID uint64

func (id ID) String() string {
	return fmt.Sprintf("point-%d", uint64(id))
}

// LoopMeta describes where a generated point sits on its loop. It is written once when the
// loop is synthesized and only read by visualization.
type LoopMeta struct {
	EntryPos r3.Vec
	Forward  r3.Vec
	Up       r3.Vec
	Right    r3.Vec
	Radius   float64
	Theta    float64 // 0..2π around the loop axis
}

// TrackPoint is one authored control vertex. Tilt is the banking angle in degrees.
// Loop is nil unless the point was generated by InsertLoop.
type TrackPoint struct {
	ID       ID
	Position r3.Vec
	Tilt     float64
	Loop     *LoopMeta
}

// IDAllocator hands out fresh point ids.
type IDAllocator interface {
	Next() ID
}

// Counter is a monotonically increasing IDAllocator. The zero value starts at 1.
type Counter struct {
	last ID
}

// NewCounter returns a Counter whose next id is start+1.
func NewCounter(start ID) *Counter {
	return &Counter{last: start}
}

func (c *Counter) Next() ID {
	c.last++
	return c.last
}

// Index returns the position of id in points, or -1.
func Index(points []TrackPoint, id ID) int {
	for i := range points {
		if points[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of points, including loop metadata, so callers can hold a
// snapshot while the owner keeps editing its own list.
func Clone(points []TrackPoint) []TrackPoint {
	if points == nil {
		return nil
	}
	out := make([]TrackPoint, 0, len(points))
	if err := copier.CopyWithOption(&out, &points, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds; fall back to a manual copy.
		out = out[:0]
		for _, p := range points {
			if p.Loop != nil {
				meta := *p.Loop
				p.Loop = &meta
			}
			out = append(out, p)
		}
	}
	return out
}
