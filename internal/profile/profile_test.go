package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/ride"
	"coaster-studio/internal/track"
)

func demoState() *coaster.State {
	s := coaster.New(coaster.Options{
		Loop:  track.DefaultLoopConfig(),
		Ride:  ride.DefaultConfig(),
		Curve: track.DefaultCurveConfig(),
	})
	s.LoadDemo()
	return s
}

func TestRecordNeedsTrack(t *testing.T) {
	s := coaster.New(coaster.Options{Ride: ride.DefaultConfig()})
	_, err := Record(s, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTrack)
}

func TestRecordOpenTrack(t *testing.T) {
	s := demoState()
	p, err := Record(s, Options{DT: 1.0 / 30})
	require.NoError(t, err)
	require.NotEmpty(t, p.Samples)
	assert.NotEmpty(t, p.RideID)
	assert.False(t, p.Looped)
	assert.False(t, s.Riding(), "ride stopped after recording")

	assert.True(t, p.Samples[0].OnLift)
	assert.InDelta(t, 0.9, p.Samples[0].Speed, 1e-12)
	assert.Greater(t, p.LiftTime(), 0.0)

	prev := 0.0
	for _, smp := range p.Samples {
		assert.GreaterOrEqual(t, smp.Speed, 0.9)
		assert.Greater(t, smp.Progress, prev)
		prev = smp.Progress
	}
	assert.Greater(t, p.MaxSpeed(), 10.0, "the first drop is about 17 m")
	assert.Greater(t, p.MaxHeight(), 15.0)
	assert.InDelta(t, float64(len(p.Samples))/30, p.Duration(), 1e-9)
}

func TestRecordLoopedTrackStopsAfterOneLap(t *testing.T) {
	s := demoState()
	s.SetLooped(true)
	p, err := Record(s, Options{DT: 0.1})
	require.NoError(t, err)
	require.NotEmpty(t, p.Samples)
	assert.True(t, p.Looped)
	last := p.Samples[len(p.Samples)-1]
	assert.Less(t, last.Progress, p.Samples[len(p.Samples)-2].Progress, "last sample wrapped")
}

func TestRecordMaxDuration(t *testing.T) {
	s := coaster.New(coaster.Options{Ride: ride.DefaultConfig()})
	s.AddPoint(r3.Vec{})
	s.AddPoint(r3.Vec{X: 1000})
	p, err := Record(s, Options{DT: 0.5, MaxDuration: 5})
	require.NoError(t, err)
	assert.Len(t, p.Samples, 10)
}

func TestEmptyProfile(t *testing.T) {
	var p Profile
	assert.Zero(t, p.Duration())
	assert.Zero(t, p.MaxSpeed())
	assert.Zero(t, p.MaxHeight())
	assert.Zero(t, p.LiftTime())
}

func TestRenderHTML(t *testing.T) {
	p, err := Record(demoState(), Options{DT: 0.25})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, p))
	html := buf.String()
	assert.Contains(t, html, "Ride profile")
	assert.Contains(t, html, "speed")
	assert.Contains(t, html, "height")
	assert.Contains(t, html, p.RideID)
}

func TestRenderPNG(t *testing.T) {
	p, err := Record(demoState(), Options{DT: 0.25})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ride.png")
	require.NoError(t, RenderPNG(path, p))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}
