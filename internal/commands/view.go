package commands

import (
	"fmt"

	"coaster-studio/internal/logger"
)

// View is the part of the renderer the terminal can toggle.
type View interface {
	SetGridVisible(bool)
	SetShowSupports(bool)
	SetNightMode(bool)
	ResetCamera()
}

// RegisterView adds grid, supports, night and camera commands that drive v.
func RegisterView(r *Registry, v View, log *logger.Logger) {
	toggles := []struct {
		name string
		set  func(bool)
	}{
		{"grid", v.SetGridVisible},
		{"supports", v.SetShowSupports},
		{"night", v.SetNightMode},
	}
	for _, tg := range toggles {
		withArgs(r, tg.name, "on|off", func(args []string) error {
			on, err := parseOnOff(args)
			if err != nil {
				return fmt.Errorf("%s: %w", tg.name, err)
			}
			tg.set(on)
			log.Logf("%s: %s", tg.name, onOff(on))
			return nil
		})
	}

	r.Register("camera", "", nil, func() error {
		v.ResetCamera()
		return nil
	})
}
