package record

import (
	"math"

	"github.com/akmonengine/pivot/cursor"
	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is the rotation storage bound to a record. Exactly one of
// EulerRotation, AxisAngleRotation and QuaternionRotation is active; the
// variant itself carries what the cursor's mode tag said.
type Rotation interface {
	// Quat returns the current value as a quaternion.
	Quat() mgl64.Quat
	// InitialQuat returns the snapshot as a quaternion.
	InitialQuat() mgl64.Quat
	// SetQuat writes q back in the variant's own representation.
	SetQuat(q mgl64.Quat)
	// Restore writes the snapshot back through the live references.
	Restore()

	isRotation()
}

type EulerRotation struct {
	Angles  Ref[mgl64.Vec3]
	Order   cursor.EulerOrder
	Initial mgl64.Vec3
}

func (r *EulerRotation) Quat() mgl64.Quat {
	return cursor.EulerToQuat(r.Angles.Get(), r.Order)
}

func (r *EulerRotation) InitialQuat() mgl64.Quat {
	return cursor.EulerToQuat(r.Initial, r.Order)
}

// SetQuat picks, per axis, the angle closest to the snapshot so the values
// do not jump by a full turn between ticks.
func (r *EulerRotation) SetQuat(q mgl64.Quat) {
	angles := cursor.QuatToEuler(q, r.Order)
	for i := range angles {
		turns := math.Round((r.Initial[i] - angles[i]) / (2 * math.Pi))
		angles[i] += turns * 2 * math.Pi
	}
	r.Angles.Set(angles)
}

func (r *EulerRotation) Restore() {
	r.Angles.Set(r.Initial)
}

func (*EulerRotation) isRotation() {}

type AxisAngleRotation struct {
	Axis  Ref[mgl64.Vec3]
	Angle Ref[float64]

	InitialAxis  mgl64.Vec3
	InitialAngle float64
}

func (r *AxisAngleRotation) Quat() mgl64.Quat {
	return cursor.AxisAngleToQuat(r.Axis.Get(), r.Angle.Get())
}

func (r *AxisAngleRotation) InitialQuat() mgl64.Quat {
	return cursor.AxisAngleToQuat(r.InitialAxis, r.InitialAngle)
}

// SetQuat stays continuous with the snapshot: a null rotation keeps the
// snapshot axis, the axis never points away from it, and the angle is
// shifted by whole turns to the one nearest the snapshot angle.
func (r *AxisAngleRotation) SetQuat(q mgl64.Quat) {
	axis, angle := cursor.QuatToAxisAngle(q)

	if math.Abs(math.Remainder(angle, 2*math.Pi)) < 1e-12 {
		axis, angle = r.InitialAxis, 0
	} else if axis.Dot(r.InitialAxis) < 0 {
		axis, angle = axis.Mul(-1), -angle
	}

	turns := math.Round((r.InitialAngle - angle) / (2 * math.Pi))
	r.Axis.Set(axis)
	r.Angle.Set(angle + turns*2*math.Pi)
}

func (r *AxisAngleRotation) Restore() {
	r.Axis.Set(r.InitialAxis)
	r.Angle.Set(r.InitialAngle)
}

func (*AxisAngleRotation) isRotation() {}

type QuaternionRotation struct {
	Value   Ref[mgl64.Quat]
	Initial mgl64.Quat
}

func (r *QuaternionRotation) Quat() mgl64.Quat {
	return r.Value.Get()
}

func (r *QuaternionRotation) InitialQuat() mgl64.Quat {
	return r.Initial
}

// SetQuat keeps the stored quaternion's length, so a non-unit quaternion
// keeps its scale through a rotation.
func (r *QuaternionRotation) SetQuat(q mgl64.Quat) {
	length := r.Initial.Len()
	if length < 1e-12 {
		length = 1
	}
	r.Value.Set(q.Normalize().Scale(length))
}

func (r *QuaternionRotation) Restore() {
	r.Value.Set(r.Initial)
}

func (*QuaternionRotation) isRotation() {}
