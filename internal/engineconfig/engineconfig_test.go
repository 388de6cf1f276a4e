package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5.0, cfg.Loop.Radius)
	assert.Equal(t, 16, cfg.Loop.Points)
	assert.Equal(t, 2.0, cfg.Loop.HelixSeparation)
	assert.Equal(t, 9.8, cfg.Ride.Gravity)
	assert.Equal(t, 0.15, cfg.Ride.Smoothing)
	assert.Equal(t, 200, cfg.Curve.ArcLengthDivisions)
	assert.True(t, cfg.Engine.GridVisible)
	assert.False(t, cfg.Engine.ShowFPS)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coaster.yaml")
	content := `
loop:
  radius: 8
  points: 24
ride:
  gravity: 9.81
  camera_height: 3
engine:
  show_fps: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Loop.Radius)
	assert.Equal(t, 24, cfg.Loop.Points)
	assert.Equal(t, 2.0, cfg.Loop.HelixSeparation, "omitted field keeps default")
	assert.Equal(t, 9.81, cfg.Ride.Gravity)
	assert.Equal(t, 1.0, cfg.Ride.MinSpeed)
	assert.Equal(t, 3.0, cfg.Ride.CameraHeight)
	assert.True(t, cfg.Engine.ShowFPS)
	assert.True(t, cfg.Engine.GridVisible)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "loop: [radius"},
		{"zero radius", "loop:\n  radius: -1\n"},
		{"no loop points", "loop:\n  points: -4\n"},
		{"smoothing above one", "ride:\n  smoothing: 1.5\n"},
		{"negative gravity", "ride:\n  gravity: -9.8\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "coaster.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "coaster.yaml")
	cfg := Default()
	cfg.Loop.Radius = 7
	cfg.Ride.LookAhead = 0.1
	cfg.Engine.NightMode = true

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
