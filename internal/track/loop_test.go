package track

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func ids(points []TrackPoint) []ID {
	out := make([]ID, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	return out
}

func loopPoints(points []TrackPoint) []TrackPoint {
	var out []TrackPoint
	for _, p := range points {
		if p.Loop != nil {
			out = append(out, p)
		}
	}
	return out
}

func TestInsertLoopUnknownID(t *testing.T) {
	in := colinear()
	alloc := NewCounter(100)
	out := InsertLoop(in, 42, DefaultLoopConfig(), alloc)
	assert.Equal(t, in, out)
	assert.Equal(t, ID(101), alloc.Next(), "no ids allocated")
}

func TestInsertLoopThreePointTrack(t *testing.T) {
	in := colinear()
	before := Clone(in)
	out := InsertLoop(in, 2, DefaultLoopConfig(), NewCounter(100))

	// before + approach + entry + 16 loop + 3 transition + preserved next point
	require.Len(t, out, 23)

	want := []ID{1, 101, 2}
	for id := ID(102); id <= 120; id++ {
		want = append(want, id)
	}
	want = append(want, 3)
	if diff := cmp.Diff(want, ids(out)); diff != "" {
		t.Fatalf("id order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(before, in); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}

	assert.Equal(t, in[1], out[2], "entry point untouched")
	assertVec(t, r3.Vec{X: 5}, out[1].Position, 1e-9)
	assert.Nil(t, out[1].Loop)
	assert.Len(t, loopPoints(out), 16)
}

func TestInsertLoopGeometry(t *testing.T) {
	cfg := DefaultLoopConfig()
	in := colinear()
	out := InsertLoop(in, 2, cfg, NewCounter(0))
	body := loopPoints(out)
	require.Len(t, body, cfg.Points)

	entry := in[1].Position
	forward := r3.Vec{X: 1}
	right := r3.Vec{Z: 1}

	maxRise := math.Inf(-1)
	for i, p := range body {
		meta := p.Loop
		require.NotNil(t, meta)
		frac := float64(i+1) / float64(cfg.Points)
		assert.InDelta(t, 2*math.Pi*frac, meta.Theta, 1e-12)
		assert.Equal(t, entry, meta.EntryPos)
		assert.Equal(t, cfg.Radius, meta.Radius)
		assertVec(t, forward, meta.Forward, 1e-12)
		assertVec(t, right, meta.Right, 1e-12)
		assertVec(t, WorldUp, meta.Up, 1e-12)

		rel := r3.Sub(p.Position, entry)
		assert.InDelta(t, cfg.Radius*math.Sin(meta.Theta), r3.Dot(rel, forward), 1e-9)
		assert.InDelta(t, cfg.Radius*(1-math.Cos(meta.Theta)), rel.Y, 1e-9)
		assert.InDelta(t, frac*cfg.HelixSeparation, r3.Dot(rel, right), 1e-9)
		maxRise = math.Max(maxRise, rel.Y)
	}
	assert.InDelta(t, 2*cfg.Radius, maxRise, 1e-9)

	exit := body[len(body)-1]
	rel := r3.Sub(exit.Position, entry)
	assert.InDelta(t, 0, r3.Dot(rel, forward), 1e-9, "closes along the heading")
	assert.InDelta(t, 0, rel.Y, 1e-9, "closes vertically")
	assert.InDelta(t, cfg.HelixSeparation, r3.Dot(rel, right), 1e-9, "offset sideways")
}

func TestInsertLoopTransition(t *testing.T) {
	out := InsertLoop(colinear(), 2, DefaultLoopConfig(), NewCounter(0))
	trans := out[19:22]
	exit := out[18].Position
	target := out[22].Position
	require.Equal(t, r3.Vec{X: 20}, target)

	prevX, prevZ := exit.X, exit.Z
	for _, p := range trans {
		assert.Nil(t, p.Loop)
		assert.Greater(t, p.Position.X, prevX)
		assert.Less(t, p.Position.Z, prevZ)
		assert.Less(t, p.Position.X, target.X)
		prevX, prevZ = p.Position.X, p.Position.Z
	}
}

func TestInsertLoopTwoPointTrack(t *testing.T) {
	in := pts(r3.Vec{}, r3.Vec{X: 10})
	out := InsertLoop(in, 1, DefaultLoopConfig(), NewCounter(10))

	// entry + 16 loop + 3 transition + next point; no approach without a previous point
	require.Len(t, out, 21)
	assert.Equal(t, ID(1), out[0].ID)
	assert.Equal(t, ID(2), out[20].ID)
	assert.NotNil(t, out[1].Loop)
	assert.Nil(t, out[17].Loop)

	// Default forward axis is +X when there is nothing behind the entry.
	assertVec(t, r3.Vec{X: 1}, out[1].Loop.Forward, 1e-12)
}

func TestInsertLoopSkipsNextWhenTargetingPointAfterNext(t *testing.T) {
	in := pts(
		r3.Vec{X: 0},
		r3.Vec{X: 10},
		r3.Vec{X: 20},
		r3.Vec{X: 30, Z: 5},
		r3.Vec{X: 40, Z: 10},
		r3.Vec{X: 50, Z: 10},
	)
	out := InsertLoop(in, 2, DefaultLoopConfig(), NewCounter(100))

	// prev, approach, entry, 16 loop, 3 transition, then points 4.. (point 3 dropped)
	require.Len(t, out, 1+1+1+16+3+3)
	tail := ids(out[len(out)-3:])
	if diff := cmp.Diff([]ID{4, 5, 6}, tail); diff != "" {
		t.Errorf("tail mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, -1, Index(out, 3))

	// Transition approaches point 4 along the legacy heading 4→5.
	last := out[len(out)-4].Position
	assert.Less(t, last.X, in[3].Position.X)
	assert.Greater(t, last.X, out[18].Position.X)
}

func TestInsertLoopAtLastPoint(t *testing.T) {
	in := pts(r3.Vec{}, r3.Vec{X: 10})
	out := InsertLoop(in, 2, DefaultLoopConfig(), NewCounter(10))
	// prev, approach, entry, loop; nothing to rejoin
	require.Len(t, out, 19)
	assert.Equal(t, ID(2), out[2].ID)
	assert.NotNil(t, out[18].Loop)
}

func TestInsertLoopVerticalApproachFallsBackToDefaultForward(t *testing.T) {
	in := pts(r3.Vec{X: 3, Y: 0, Z: 3}, r3.Vec{X: 3, Y: 10, Z: 3.05}, r3.Vec{X: 10, Y: 10, Z: 3})
	out := InsertLoop(in, 2, DefaultLoopConfig(), NewCounter(0))
	body := loopPoints(out)
	require.NotEmpty(t, body)
	assertVec(t, r3.Vec{X: 1}, body[0].Loop.Forward, 1e-12)
	for _, p := range out {
		assert.False(t, math.IsNaN(p.Position.X+p.Position.Y+p.Position.Z))
	}
}

func TestInsertLoopIDsAreFresh(t *testing.T) {
	alloc := NewCounter(0)
	in := []TrackPoint{
		{ID: alloc.Next(), Position: r3.Vec{}},
		{ID: alloc.Next(), Position: r3.Vec{X: 10}},
		{ID: alloc.Next(), Position: r3.Vec{X: 20}},
	}
	out := InsertLoop(in, in[1].ID, DefaultLoopConfig(), alloc)
	out = InsertLoop(out, out[len(out)-1].ID, DefaultLoopConfig(), alloc)

	seen := make(map[ID]bool, len(out))
	for _, p := range out {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestHermiteEndpoints(t *testing.T) {
	p0 := r3.Vec{X: 1, Y: 2, Z: 3}
	p1 := r3.Vec{X: -4, Y: 0, Z: 9}
	tan := r3.Vec{Y: 1}
	assert.Equal(t, p0, Hermite(p0, tan, p1, tan, 3, 0))
	assertVec(t, p1, Hermite(p0, tan, p1, tan, 3, 1), 1e-12)
}

func TestClone(t *testing.T) {
	in := InsertLoop(colinear(), 2, DefaultLoopConfig(), NewCounter(0))
	cp := Clone(in)
	require.Equal(t, in, cp)

	cp[3].Loop.Radius = 99
	cp[0].Position.X = 99
	assert.Equal(t, 5.0, in[3].Loop.Radius)
	assert.Equal(t, 0.0, in[0].Position.X)
	assert.Nil(t, Clone(nil))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "point-7", ID(7).String())
}
