package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/logger"
	"coaster-studio/internal/track"
)

var errNoSelection = errors.New("no point id given and nothing selected")

// RegisterCoaster adds the track editing and ride commands, plus help, to r.
// Output goes to log.
func RegisterCoaster(r *Registry, s *coaster.State, log *logger.Logger) {
	addFS := NewFlagSet("add")
	addTilt := addFS.Float64("tilt", 0, "banking angle in degrees")
	addSelect := addFS.Bool("select", false, "select the new point")
	r.Register("add", "[-tilt deg] [-select] [--] x y z", addFS, func() error {
		pos, err := parseVec(addFS.Args())
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		id := s.AddPoint(pos)
		if *addTilt != 0 {
			s.UpdateTilt(id, *addTilt)
		}
		if *addSelect {
			s.Select(id)
		}
		return nil
	})

	withArgs(r, "move", "id x y z", func(args []string) error {
		if len(args) != 4 {
			return errors.New("move: want id x y z")
		}
		id, err := parseID(args[0])
		if err != nil {
			return fmt.Errorf("move: %w", err)
		}
		pos, err := parseVec(args[1:])
		if err != nil {
			return fmt.Errorf("move: %w", err)
		}
		if !s.UpdatePoint(id, pos) {
			return fmt.Errorf("move: no %s", id)
		}
		log.Logf("moved %s to (%.1f, %.1f, %.1f)", id, pos.X, pos.Y, pos.Z)
		return nil
	})

	withArgs(r, "tilt", "id degrees", func(args []string) error {
		if len(args) != 2 {
			return errors.New("tilt: want id degrees")
		}
		id, err := parseID(args[0])
		if err != nil {
			return fmt.Errorf("tilt: %w", err)
		}
		deg, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("tilt: bad angle %q: %w", args[1], err)
		}
		if !s.UpdateTilt(id, deg) {
			return fmt.Errorf("tilt: no %s", id)
		}
		log.Logf("%s tilted to %.1f deg", id, deg)
		return nil
	})

	withArgs(r, "remove", "[id]", func(args []string) error {
		id, err := targetID(s, args)
		if err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		if !s.RemovePoint(id) {
			return fmt.Errorf("remove: no %s", id)
		}
		return nil
	})

	withArgs(r, "loop", "[id]", func(args []string) error {
		id, err := targetID(s, args)
		if err != nil {
			return fmt.Errorf("loop: %w", err)
		}
		if !s.InsertLoop(id) {
			return fmt.Errorf("loop: no %s", id)
		}
		return nil
	})

	withArgs(r, "select", "id|none", func(args []string) error {
		if len(args) != 1 {
			return errors.New("select: want id or none")
		}
		if args[0] == "none" {
			s.Select(0)
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}
		if !s.Select(id) {
			return fmt.Errorf("select: no %s", id)
		}
		log.Logf("selected %s", id)
		return nil
	})

	r.Register("clear", "", nil, func() error {
		s.Clear()
		return nil
	})

	withArgs(r, "looped", "on|off", func(args []string) error {
		on, err := parseOnOff(args)
		if err != nil {
			return fmt.Errorf("looped: %w", err)
		}
		s.SetLooped(on)
		log.Logf("looped track: %s", onOff(on))
		return nil
	})

	withArgs(r, "chain", "on|off", func(args []string) error {
		on, err := parseOnOff(args)
		if err != nil {
			return fmt.Errorf("chain: %w", err)
		}
		s.SetChainLift(on)
		log.Logf("chain lift: %s", onOff(on))
		return nil
	})

	withArgs(r, "speed", "multiplier", func(args []string) error {
		if len(args) != 1 {
			return errors.New("speed: want a multiplier")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("speed: bad multiplier %q: %w", args[0], err)
		}
		if err := s.SetRideSpeed(v); err != nil {
			return fmt.Errorf("speed: %w", err)
		}
		log.Logf("ride speed: %gx", v)
		return nil
	})

	r.Register("ride", "", nil, func() error {
		if !s.StartRide() {
			return errors.New("ride: need at least two points")
		}
		return nil
	})

	r.Register("stop", "", nil, func() error {
		s.StopRide()
		return nil
	})

	r.Register("list", "", nil, func() error {
		pts := s.Points()
		if len(pts) == 0 {
			log.Log("track is empty")
			return nil
		}
		for _, p := range pts {
			mark := ""
			if p.ID == s.Selected() {
				mark = " *"
			}
			if p.Loop != nil {
				mark += " loop"
			}
			log.Logf("%s (%.1f, %.1f, %.1f) tilt %.1f%s", p.ID, p.Position.X, p.Position.Y, p.Position.Z, p.Tilt, mark)
		}
		if c := s.Curve(); c != nil {
			log.Logf("%d points, %.1f m, lift releases at %.2f", len(pts), c.Length(), s.FirstPeak())
		}
		return nil
	})

	r.Register("demo", "", nil, func() error {
		ids := s.LoadDemo()
		log.Logf("demo layout loaded: %d points", len(ids))
		return nil
	})

	r.Register("help", "", nil, func() error {
		for _, line := range r.Usage() {
			log.Log(line)
		}
		return nil
	})
}

// withArgs registers a command without flags whose run receives the positional args.
func withArgs(r *Registry, name, usage string, run func(args []string) error) {
	fs := NewFlagSet(name)
	r.Register(name, usage, fs, func() error { return run(fs.Args()) })
}

// parseID accepts "7" or "point-7".
func parseID(s string) (track.ID, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "point-"), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("bad point id %q", s)
	}
	return track.ID(n), nil
}

func parseVec(args []string) (r3.Vec, error) {
	if len(args) != 3 {
		return r3.Vec{}, fmt.Errorf("want x y z, got %d values", len(args))
	}
	var xyz [3]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("bad coordinate %q: %w", a, err)
		}
		xyz[i] = v
	}
	return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// targetID returns the id in args, or the selected point when args is empty.
func targetID(s *coaster.State, args []string) (track.ID, error) {
	switch len(args) {
	case 0:
		if s.Selected() == 0 {
			return 0, errNoSelection
		}
		return s.Selected(), nil
	case 1:
		return parseID(args[0])
	default:
		return 0, fmt.Errorf("want at most one id, got %d", len(args))
	}
}

func parseOnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("want on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", args[0])
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
