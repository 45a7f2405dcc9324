package cursor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mitchellh/hashstructure/v2"
)

// ErrBusy is returned when a cursor is already held by a running operation.
var ErrBusy = errors.New("cursor is held by another operation")

// Guard grants one operation at a time exclusive write access to a cursor.
// Records alias the cursor storage directly, so nothing else may mutate or
// replace the cursor while the guard is held.
type Guard struct {
	held bool
}

func (g *Guard) Acquire() error {
	if g.held {
		return ErrBusy
	}
	g.held = true
	return nil
}

func (g *Guard) Release() {
	g.held = false
}

func (g *Guard) Held() bool {
	return g.held
}

// Cursor2D is the cursor of a 2D view, stored in normalized, aspect-independent units.
type Cursor2D struct {
	Location mgl64.Vec2

	Guard Guard `hash:"ignore"`
}

// Fingerprint hashes the persistent cursor state.
func (c *Cursor2D) Fingerprint() (uint64, error) {
	return hashstructure.Hash(c, hashstructure.FormatV2, nil)
}

// Cursor3D is the scene cursor: a location plus a rotation held in exactly one
// authoritative representation, chosen by RotationMode.
type Cursor3D struct {
	Location mgl64.Vec3

	RotationMode       RotationMode
	RotationEuler      mgl64.Vec3
	RotationAxis       mgl64.Vec3
	RotationAngle      float64
	RotationQuaternion mgl64.Quat

	Guard Guard `hash:"ignore"`
}

// NewCursor3D creates a cursor at the origin with no rotation.
func NewCursor3D() Cursor3D {
	return Cursor3D{
		RotationMode:       ROT_MODE_XYZ,
		RotationAxis:       mgl64.Vec3{0, 1, 0},
		RotationQuaternion: mgl64.QuatIdent(),
	}
}

// Quat returns the current rotation as a quaternion, whatever the mode.
func (c *Cursor3D) Quat() mgl64.Quat {
	switch {
	case c.RotationMode.IsEuler():
		return EulerToQuat(c.RotationEuler, c.RotationMode.EulerOrder())
	case c.RotationMode == ROT_MODE_AXISANGLE:
		return AxisAngleToQuat(c.RotationAxis, c.RotationAngle)
	default:
		if c.RotationQuaternion.Len() < 1e-12 {
			return mgl64.QuatIdent()
		}
		return c.RotationQuaternion.Normalize()
	}
}

// RotationMat3 returns the current rotation as a 3x3 frame.
func (c *Cursor3D) RotationMat3() mgl64.Mat3 {
	return quatToMat3(c.Quat())
}

// SetRotationMode switches the authoritative representation, converting the
// stored value so the orientation does not change.
func (c *Cursor3D) SetRotationMode(mode RotationMode) {
	if mode == c.RotationMode {
		return
	}
	q := c.Quat()

	switch {
	case mode.IsEuler():
		c.RotationEuler = QuatToEuler(q, mode.EulerOrder())
	case mode == ROT_MODE_AXISANGLE:
		c.RotationAxis, c.RotationAngle = QuatToAxisAngle(q)
	default:
		c.RotationQuaternion = q
	}
	c.RotationMode = mode
}

// Fingerprint hashes the persistent cursor state.
func (c *Cursor3D) Fingerprint() (uint64, error) {
	return hashstructure.Hash(c, hashstructure.FormatV2, nil)
}
