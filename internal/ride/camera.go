package ride

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"coaster-studio/internal/track"
)

// minRightNorm is the |tangent × worldUp| below which the tangent counts as vertical
// and world X is used as the lateral axis.
const minRightNorm = 0.01

// Pose is the camera state handed to the renderer. Roll is in radians about the
// viewing direction, applied after aiming at Target.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
	Roll     float64
}

// Forward returns the unit viewing direction.
func (p Pose) Forward() r3.Vec {
	return track.UnitOr(r3.Sub(p.Target, p.Position), track.WorldRight)
}

// Up returns the camera up vector: world up made perpendicular to the view, then
// rolled by Roll about the view axis.
func (p Pose) Up() r3.Vec {
	f := p.Forward()
	right := r3.Cross(f, track.WorldUp)
	if r3.Norm(right) < minRightNorm {
		right = track.WorldRight
	}
	up := track.UnitOr(r3.Cross(right, f), track.WorldUp)
	if p.Roll == 0 {
		return up
	}
	return r3.Rotate(up, p.Roll, f)
}

// Basis returns a stable orthonormal frame at curve parameter t: the unit tangent, a
// horizontal right vector and the up vector perpendicular to both.
func Basis(c *track.Curve, t float64) (tangent, right, up r3.Vec) {
	tangent = c.TangentAt(t)
	right = r3.Cross(tangent, track.WorldUp)
	if r3.Norm(right) < minRightNorm {
		right = track.WorldRight
	} else {
		right = track.UnitOr(right, track.WorldRight)
	}
	up = track.UnitOr(r3.Cross(right, tangent), track.WorldUp)
	return tangent, right, up
}

// CameraTarget returns where the camera wants to be at progress, before smoothing: an
// anchor just behind the cart lifted along the frame's up axis, aimed at a point
// further down the track.
func (cfg Config) CameraTarget(c *track.Curve, progress float64) (position, lookAt r3.Vec) {
	var aheadT, behindT float64
	if c.Looped() {
		aheadT = wrap(progress + cfg.LookAhead)
		behindT = wrap(progress - cfg.CameraBehind + 1)
	} else {
		aheadT = math.Min(progress+cfg.LookAhead, 0.999)
		behindT = math.Max(progress-cfg.CameraBehind, 0.001)
	}

	anchor := c.PointAt(behindT)
	ahead := c.PointAt(aheadT)
	_, _, up := Basis(c, behindT)

	position = r3.Add(anchor, r3.Scale(cfg.CameraHeight, up))
	lookAt = r3.Add(ahead, r3.Scale(cfg.CameraHeight*cfg.LookAtHeightFactor, up))
	return position, lookAt
}

func wrap(t float64) float64 {
	return t - math.Floor(t)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
