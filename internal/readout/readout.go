// Package readout formats the coaster state as the text lines shown by the HUD.
package readout

import (
	"fmt"

	"coaster-studio/internal/coaster"
)

// StatusLines is the mode line shown in every mode.
func StatusLines(s *coaster.State) []string {
	length := 0.0
	if c := s.Curve(); c != nil {
		length = c.Length()
	}
	lines := []string{
		fmt.Sprintf("%s mode | %d points | %.1f m", s.Mode(), s.Len(), length),
	}
	flags := fmt.Sprintf("chain %s | looped %s | speed %gx", onOff(s.ChainLift()), onOff(s.Looped()), s.RideSpeed())
	if id := s.Selected(); id != 0 {
		flags += " | selected " + id.String()
	}
	return append(lines, flags)
}

// RideLines is the ride readout and whether the cart is on the lift.
func RideLines(s *coaster.State) ([]string, bool) {
	f := s.LastFrame()
	lines := []string{
		fmt.Sprintf("progress %5.1f%%", f.Progress*100),
		fmt.Sprintf("speed    %5.1f m/s", f.Speed),
		fmt.Sprintf("height   %5.1f m", f.Height),
	}
	if f.OnLift {
		lines = append(lines, "chain lift")
	}
	return lines, f.OnLift
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
