package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/coaster"
	"coaster-studio/internal/engineconfig"
	"coaster-studio/internal/primitives"
	"coaster-studio/internal/ride"
)

var (
	buildCameraPosition = rl.NewVector3(50, 30, 50)
	buildCameraTarget   = rl.NewVector3(0, 0, 0)

	daySky   = rl.NewColor(135, 190, 235, 255)
	nightSky = rl.NewColor(10, 12, 30, 255)
)

// Scene holds the 3D camera and draws the coaster. In build mode the camera is a free
// camera; in ride mode it follows the ride pose. Based on raylib
// examples/core/core_3d_camera_free.
type Scene struct {
	Camera       rl.Camera3D
	GridVisible  bool
	ShowSupports bool
	NightMode    bool

	prims      *primitives.Registry
	cursorDone bool
	lastMode   coaster.Mode
}

// New returns a scene with the build camera and the given preferences.
func New(prefs engineconfig.EnginePrefs) *Scene {
	s := &Scene{
		GridVisible:  prefs.GridVisible,
		ShowSupports: prefs.ShowSupports,
		prims:        primitives.NewRegistry(),
	}
	s.Camera.Fovy = 60
	s.Camera.Projection = rl.CameraPerspective
	s.ResetCamera()
	s.SetNightMode(prefs.NightMode)
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// SetShowSupports sets whether support columns are drawn under the track.
func (s *Scene) SetShowSupports(show bool) {
	s.ShowSupports = show
}

// SetNightMode switches to a dark sky, dim lighting and a brighter track.
func (s *Scene) SetNightMode(night bool) {
	s.NightMode = night
	s.prims.SetNight(night)
}

// ResetCamera puts the build camera back at its overview position.
func (s *Scene) ResetCamera() {
	s.Camera.Position = buildCameraPosition
	s.Camera.Target = buildCameraTarget
	s.Camera.Up = rl.NewVector3(0, 1, 0)
}

// ApplyPose points the camera along a ride pose, including its roll.
func (s *Scene) ApplyPose(p ride.Pose) {
	s.Camera.Position = vec3(p.Position)
	s.Camera.Target = vec3(p.Target)
	s.Camera.Up = vec3(p.Up())
}

// Update runs once per frame. In ride mode the camera follows the last ride frame;
// leaving ride mode resets the build camera. freeLook enables the free camera (it is
// off while the terminal has the keyboard).
func (s *Scene) Update(st *coaster.State, freeLook bool) {
	mode := st.Mode()
	if s.lastMode == coaster.ModeRide && mode != coaster.ModeRide {
		s.ResetCamera()
	}
	s.lastMode = mode

	if mode == coaster.ModeRide {
		s.ApplyPose(st.LastFrame().Pose)
		return
	}
	if !freeLook {
		return
	}
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// Draw clears to the sky color and renders the 3D scene. Call before the 2D overlays.
func (s *Scene) Draw(st *coaster.State) {
	sky := daySky
	if s.NightMode {
		sky = nightSky
	}
	rl.ClearBackground(sky)

	pos := s.Camera.Position
	s.prims.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.5, 1, 0.5})

	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid(s.NightMode)
	}
	if c := st.Curve(); c != nil {
		s.drawTrack(st, c)
	}
	if st.Mode() == coaster.ModeBuild {
		s.drawControlPoints(st)
	}
	rl.EndMode3D()
}

// Close releases GPU resources.
func (s *Scene) Close() {
	s.prims.Unload()
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
