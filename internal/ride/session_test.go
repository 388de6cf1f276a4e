package ride

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/track"
)

const frameDT = 1.0 / 60

func curveThrough(looped bool, vs ...r3.Vec) *track.Curve {
	pts := make([]track.TrackPoint, len(vs))
	for i, v := range vs {
		pts[i] = track.TrackPoint{ID: track.ID(i + 1), Position: v}
	}
	return track.Build(pts, looped)
}

func assertVec(t *testing.T, want, got r3.Vec, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
	assert.InDelta(t, want.Z, got.Z, tol, "Z")
}

func liftHill() *track.Curve {
	return curveThrough(false,
		r3.Vec{X: 0, Y: 0},
		r3.Vec{X: 10, Y: 5},
		r3.Vec{X: 20, Y: 10},
		r3.Vec{X: 30, Y: 0},
		r3.Vec{X: 40, Y: 0},
	)
}

func TestStartWithoutCurve(t *testing.T) {
	s := NewSession(DefaultConfig())
	assert.False(t, s.Start(nil))
	assert.False(t, s.Riding())
	assert.Equal(t, uuid.Nil, s.ID())

	_, ok := s.Tick(Input{Curve: liftHill(), Speed: 1, Delta: frameDT})
	assert.False(t, ok, "idle session does not tick")
}

func TestStartArmsSession(t *testing.T) {
	c := curveThrough(false, r3.Vec{Y: 7}, r3.Vec{X: 10, Y: 3}, r3.Vec{X: 20})
	s := NewSession(DefaultConfig())
	require.True(t, s.Start(c))
	first := s.ID()
	assert.NotEqual(t, uuid.Nil, first)
	assert.True(t, s.Riding())
	assert.Zero(t, s.Progress())
	assert.Equal(t, 7.0, s.PeakHeight())

	pos, look := DefaultConfig().CameraTarget(c, 0)
	assert.Equal(t, pos, s.Pose().Position)
	assert.Equal(t, look, s.Pose().Target)

	s.Stop()
	require.True(t, s.Start(c))
	assert.NotEqual(t, first, s.ID())
}

func TestDescendingTrackUsesEnergyModel(t *testing.T) {
	cfg := DefaultConfig()
	c := curveThrough(false, r3.Vec{Y: 20}, r3.Vec{X: 10, Y: 10}, r3.Vec{X: 20, Y: 0})
	s := NewSession(cfg)
	require.True(t, s.Start(c))

	const multiplier = 1.5
	prevSpeed := 0.0
	for i := 0; i < 10000; i++ {
		before := s.Progress()
		f, ok := s.Tick(Input{Curve: c, Speed: multiplier, Delta: frameDT})
		if !ok {
			break
		}
		drop := 20 - c.PointAt(before).Y
		want := math.Max(cfg.MinSpeed, math.Sqrt(2*cfg.Gravity*math.Max(0, drop))) * multiplier
		assert.InDelta(t, want, f.Speed, 1e-9)
		assert.GreaterOrEqual(t, f.Speed, cfg.MinSpeed*multiplier)
		assert.GreaterOrEqual(t, f.Speed, prevSpeed-1e-9)
		assert.False(t, f.OnLift)
		assert.InDelta(t, before+f.Speed*frameDT/c.Length(), f.Progress, 1e-12)
		prevSpeed = f.Speed
	}
	assert.False(t, s.Riding(), "ride ran off the end")
}

func TestChainLiftSpeed(t *testing.T) {
	cfg := DefaultConfig()
	c := liftHill()
	peak := FirstPeak(c, cfg)
	require.Greater(t, peak, 0.0)
	require.Less(t, peak, 0.5)

	s := NewSession(cfg)
	require.True(t, s.Start(c))

	const multiplier = 2.0
	sawLift, sawFree := false, false
	for i := 0; i < 100000 && s.Riding(); i++ {
		before := s.Progress()
		f, ok := s.Tick(Input{Curve: c, FirstPeak: peak, ChainLift: true, Speed: multiplier, Delta: frameDT})
		if !ok {
			break
		}
		if before < peak {
			sawLift = true
			assert.True(t, f.OnLift)
			assert.Equal(t, 0.9*multiplier, f.Speed)
		} else {
			sawFree = true
			assert.False(t, f.OnLift)
		}
	}
	assert.True(t, sawLift)
	assert.True(t, sawFree)
}

func TestOpenTrackEndStopsRide(t *testing.T) {
	c := curveThrough(false, r3.Vec{}, r3.Vec{X: 10}, r3.Vec{X: 20})
	s := NewSession(DefaultConfig())
	require.True(t, s.Start(c))

	f, ok := s.Tick(Input{Curve: c, Speed: 1, Delta: 1})
	require.True(t, ok)
	pose := f.Pose

	f, ok = s.Tick(Input{Curve: c, Speed: 1, Delta: 100})
	assert.False(t, ok)
	assert.Equal(t, Frame{}, f)
	assert.False(t, s.Riding())
	assert.Zero(t, s.Progress())
	assert.Equal(t, pose, s.Pose(), "no camera update on the stopping tick")
}

func TestTickWithoutCurveStopsRide(t *testing.T) {
	s := NewSession(DefaultConfig())
	require.True(t, s.Start(liftHill()))
	_, ok := s.Tick(Input{Curve: nil, Speed: 1, Delta: frameDT})
	assert.False(t, ok)
	assert.False(t, s.Riding())
}

func TestLoopedTrackWraps(t *testing.T) {
	square := func() *track.Curve {
		return curveThrough(true,
			r3.Vec{X: 0, Y: 0, Z: 0},
			r3.Vec{X: 20, Y: 8, Z: 0},
			r3.Vec{X: 20, Y: 10, Z: 20},
			r3.Vec{X: 0, Y: 4, Z: 20},
		)
	}

	for _, chain := range []bool{true, false} {
		c := square()
		s := NewSession(DefaultConfig())
		require.True(t, s.Start(c))
		in := Input{Curve: c, FirstPeak: FirstPeak(c, DefaultConfig()), ChainLift: chain, Speed: 1, Delta: 0.5}

		for s.Progress() < 0.6 {
			_, ok := s.Tick(in)
			require.True(t, ok)
		}
		require.Greater(t, s.PeakHeight(), 8.0)

		big := in
		big.Delta = (1 - s.Progress() + 0.05) * c.Length() // at least 1 m/s
		f, ok := s.Tick(big)
		require.True(t, ok)
		assert.True(t, f.Lapped)
		assert.True(t, s.Riding())
		assert.GreaterOrEqual(t, f.Progress, 0.0)
		assert.Less(t, f.Progress, 1.0)

		if chain {
			assert.Equal(t, c.PointAt(0).Y, s.PeakHeight(), "budget restarts each lap")
		} else {
			assert.Greater(t, s.PeakHeight(), 8.0)
		}
	}
}

func TestCameraSmoothing(t *testing.T) {
	cfg := DefaultConfig()
	pts := []track.TrackPoint{
		{ID: 1, Position: r3.Vec{}},
		{ID: 2, Position: r3.Vec{X: 10, Y: 2}, Tilt: 40},
		{ID: 3, Position: r3.Vec{X: 20, Z: 5}, Tilt: -20},
	}
	c := track.Build(pts, false)
	s := NewSession(cfg)
	require.True(t, s.Start(c))

	for i := 0; i < 30; i++ {
		prev := s.Pose()
		f, ok := s.Tick(Input{Curve: c, Speed: 1, Delta: 0.05})
		require.True(t, ok)

		pos, look := cfg.CameraTarget(c, f.Progress)
		assertVec(t, track.Lerp(prev.Position, pos, 0.15), f.Pose.Position, 1e-12)
		assertVec(t, track.Lerp(prev.Target, look, 0.15), f.Pose.Target, 1e-12)

		wantRoll := prev.Roll + (c.TiltAt(f.Progress)*math.Pi/180-prev.Roll)*0.15
		assert.InDelta(t, wantRoll, f.Pose.Roll, 1e-12)
	}
}

func TestCameraTargetOnStraightTrack(t *testing.T) {
	c := curveThrough(false, r3.Vec{}, r3.Vec{X: 10}, r3.Vec{X: 20})
	pos, look := DefaultConfig().CameraTarget(c, 0.5)
	assertVec(t, r3.Vec{X: 9.8, Y: 2}, pos, 1e-9)
	assertVec(t, r3.Vec{X: 11.6, Y: 0.6}, look, 1e-9)

	// Clamped near the ends of an open track.
	pos, look = DefaultConfig().CameraTarget(c, 0.999)
	assert.InDelta(t, 20*0.989, pos.X, 1e-9)
	assert.InDelta(t, 20*0.999, look.X, 1e-9)
	pos, _ = DefaultConfig().CameraTarget(c, 0)
	assert.InDelta(t, 20*0.001, pos.X, 1e-9)
}

func TestBasisVerticalTangentFallback(t *testing.T) {
	c := curveThrough(false, r3.Vec{}, r3.Vec{Y: 10}, r3.Vec{Y: 20})
	tan, right, up := Basis(c, 0.5)
	assertVec(t, r3.Vec{Y: 1}, tan, 1e-9)
	assertVec(t, r3.Vec{X: 1}, right, 1e-12)
	assertVec(t, r3.Vec{Z: 1}, up, 1e-9)

	pos, look := DefaultConfig().CameraTarget(c, 0.5)
	for _, v := range []r3.Vec{pos, look} {
		assert.False(t, math.IsNaN(v.X+v.Y+v.Z))
	}
}

func TestPoseUp(t *testing.T) {
	p := Pose{Position: r3.Vec{}, Target: r3.Vec{X: 5}}
	assertVec(t, r3.Vec{Y: 1}, p.Up(), 1e-12)

	p.Roll = math.Pi / 2
	assertVec(t, r3.Vec{Z: 1}, p.Up(), 1e-9)

	straightUp := Pose{Target: r3.Vec{Y: 1}}
	up := straightUp.Up()
	assert.InDelta(t, 1, r3.Norm(up), 1e-12)
}

func TestFirstPeak(t *testing.T) {
	cfg := DefaultConfig()
	assert.Zero(t, FirstPeak(nil, cfg))

	flat := curveThrough(false, r3.Vec{}, r3.Vec{X: 10}, r3.Vec{X: 20})
	assert.Equal(t, cfg.DefaultPeak, FirstPeak(flat, cfg))

	downhill := curveThrough(false, r3.Vec{Y: 10}, r3.Vec{X: 10, Y: 5}, r3.Vec{X: 20})
	assert.Equal(t, cfg.DefaultPeak, FirstPeak(downhill, cfg))

	c := liftHill()
	peak := FirstPeak(c, cfg)
	top := c.PointAt(peak).Y
	for i := 0; float64(i)*cfg.PeakScanStep < peak; i++ {
		assert.LessOrEqual(t, c.PointAt(float64(i)*cfg.PeakScanStep).Y, top)
	}
	assert.InDelta(t, 10, top, 0.5)
}

func TestZeroLengthTrack(t *testing.T) {
	open := curveThrough(false, r3.Vec{X: 5}, r3.Vec{X: 5})
	require.NotNil(t, open)
	require.Zero(t, open.Length())

	s := NewSession(DefaultConfig())
	require.True(t, s.Start(open))
	f, ok := s.Tick(Input{Curve: open, Speed: 1, Delta: frameDT})
	assert.False(t, ok, "open zero-length track ends on the first tick")
	assert.Equal(t, Frame{}, f)
	assert.False(t, s.Riding())
	assert.Zero(t, s.Progress())

	looped := curveThrough(true, r3.Vec{X: 5}, r3.Vec{X: 5})
	require.True(t, s.Start(looped))
	for i := 0; i < 3; i++ {
		f, ok = s.Tick(Input{Curve: looped, ChainLift: true, Speed: 1, Delta: frameDT})
		require.True(t, ok)
		assert.True(t, f.Lapped)
		assert.Zero(t, f.Progress)
		for _, v := range []r3.Vec{f.Pose.Position, f.Pose.Target} {
			assert.False(t, math.IsNaN(v.X+v.Y+v.Z))
		}
	}
	assert.True(t, s.Riding())
}
