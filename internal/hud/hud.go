package hud

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/readout"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	rideColor  = rl.NewColor(255, 214, 102, 255)
	liftColor  = rl.NewColor(255, 120, 80, 255)
	panelColor = rl.NewColor(0, 0, 0, 140)
)

// HUD draws the 2D overlays: FPS and heap usage at the top right, the mode line at the
// top left, and the ride readout while riding.
type HUD struct {
	ShowFPS      bool
	ShowMemAlloc bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a HUD with the FPS and memory counters hidden.
func New() *HUD {
	return &HUD{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (h *HUD) SetShowFPS(show bool) {
	h.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap counter is drawn under the FPS counter.
func (h *HUD) SetShowMemAlloc(show bool) {
	h.ShowMemAlloc = show
}

// Draw renders the overlays. Call after the scene and before the terminal.
func (h *HUD) Draw(s *coaster.State) {
	h.frameCount++
	update := h.frameCount%updateInterval == 0
	if (h.ShowFPS && h.lastFpsText == "") || (h.ShowMemAlloc && h.lastMemText == "") {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if h.ShowFPS {
		if update {
			h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(h.lastFpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	if h.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			h.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(h.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(h.lastMemText, screenW, y, rl.Green)
	}

	for i, line := range readout.StatusLines(s) {
		rl.DrawText(line, padding, padding+int32(i)*lineHeight, fontSize, rl.RayWhite)
	}

	if s.Mode() != coaster.ModeRide {
		return
	}
	lines, onLift := readout.RideLines(s)
	screenH := int32(rl.GetScreenHeight())
	top := screenH - padding - int32(len(lines))*lineHeight - 80
	rl.DrawRectangle(padding/2, top-padding/2, 260, int32(len(lines))*lineHeight+padding, panelColor)
	c := rideColor
	if onLift {
		c = liftColor
	}
	for i, line := range lines {
		rl.DrawText(line, padding, top+int32(i)*lineHeight, fontSize, c)
	}
}

func drawRight(text string, screenW, y int32, c rl.Color) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, c)
}
