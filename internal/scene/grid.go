package scene

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	gridExtent     = 100
	gridMinorStep  = 2
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Start/end vectors are reused across lines.
func drawEditorGrid(night bool) {
	base := uint8(128)
	if night {
		base = 70
	}
	minor := rl.NewColor(base, base, base, gridMinorAlpha)
	major := rl.NewColor(base+32, base+32, base+32, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0.01, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0.01, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, 0.01, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0.01, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
