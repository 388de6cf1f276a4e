// Package engineconfig loads and saves the coaster's tuning and engine preferences.
package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"coaster-studio/internal/ride"
	"coaster-studio/internal/track"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/coaster.yaml"

// EnginePrefs holds engine-only preferences (overlays, grid, scene toggles).
type EnginePrefs struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	GridVisible  bool `yaml:"grid_visible"`
	ShowSupports bool `yaml:"show_supports"`
	NightMode    bool `yaml:"night_mode"`
}

// Config is the whole config file.
type Config struct {
	Loop   track.LoopConfig  `yaml:"loop"`
	Ride   ride.Config       `yaml:"ride"`
	Curve  track.CurveConfig `yaml:"curve"`
	Engine EnginePrefs       `yaml:"engine"`
}

// Default returns the stock configuration (grid on, overlays off).
func Default() Config {
	return Config{
		Loop:  track.DefaultLoopConfig(),
		Ride:  ride.DefaultConfig(),
		Curve: track.DefaultCurveConfig(),
		Engine: EnginePrefs{
			GridVisible: true,
		},
	}
}

// Load reads the config at path. A missing file yields Default() and no error. Fields
// omitted from the file keep their defaults. A malformed or invalid file yields
// Default() together with the error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the geometry or the ride integrator cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Loop.Radius <= 0:
		return fmt.Errorf("loop.radius must be positive, got %g", c.Loop.Radius)
	case c.Loop.Points < 1:
		return fmt.Errorf("loop.points must be at least 1, got %d", c.Loop.Points)
	case c.Loop.HelixSeparation < 0:
		return fmt.Errorf("loop.helix_separation must not be negative, got %g", c.Loop.HelixSeparation)
	case c.Curve.ArcLengthDivisions < 1:
		return fmt.Errorf("curve.arc_length_divisions must be at least 1, got %d", c.Curve.ArcLengthDivisions)
	case c.Ride.Gravity <= 0:
		return fmt.Errorf("ride.gravity must be positive, got %g", c.Ride.Gravity)
	case c.Ride.MinSpeed <= 0:
		return fmt.Errorf("ride.min_speed must be positive, got %g", c.Ride.MinSpeed)
	case c.Ride.ChainLiftFactor <= 0:
		return fmt.Errorf("ride.chain_lift_factor must be positive, got %g", c.Ride.ChainLiftFactor)
	case c.Ride.Smoothing <= 0 || c.Ride.Smoothing > 1:
		return fmt.Errorf("ride.smoothing must be in (0,1], got %g", c.Ride.Smoothing)
	case c.Ride.PeakScanStep <= 0:
		return fmt.Errorf("ride.peak_scan_step must be positive, got %g", c.Ride.PeakScanStep)
	}
	return nil
}
