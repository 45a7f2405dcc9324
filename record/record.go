package record

import "github.com/go-gl/mathgl/mgl64"

// Flag holds per-record state bits.
type Flag uint8

const (
	SELECTED Flag = 1 << iota
)

// Record is one generic transformable element. The engine owns it for the
// duration of a single operation and mutates Location and Rotation in place.
//
// The engine must always compute new values from the snapshots
// (InitialLocation, Rotation's initial value): between ticks the aliased
// storage may hold the owner's native units rather than engine units.
type Record struct {
	Flag Flag

	// Center is the pivot of the record, fixed for the whole operation.
	Center mgl64.Vec3

	Location        Location
	InitialLocation mgl64.Vec3

	// Matrix is the local basis; InverseMatrix its pseudo-inverse, used to
	// map global deltas into the basis.
	Matrix        mgl64.Mat3
	InverseMatrix mgl64.Mat3
	// AxisMatrix is the absolute orientation frame used by constraints.
	AxisMatrix mgl64.Mat3

	// Rotation is nil for records without orientation (2D cursors).
	Rotation Rotation
}

// IsSelected reports whether the SELECTED flag is set.
func (r *Record) IsSelected() bool {
	return r.Flag&SELECTED != 0
}

// Euler returns the Euler variant if it is the bound rotation.
func (r *Record) Euler() (*EulerRotation, bool) {
	rot, ok := r.Rotation.(*EulerRotation)
	return rot, ok
}

// AxisAngle returns the axis-angle variant if it is the bound rotation.
func (r *Record) AxisAngle() (*AxisAngleRotation, bool) {
	rot, ok := r.Rotation.(*AxisAngleRotation)
	return rot, ok
}

// Quaternion returns the quaternion variant if it is the bound rotation.
func (r *Record) Quaternion() (*QuaternionRotation, bool) {
	rot, ok := r.Rotation.(*QuaternionRotation)
	return rot, ok
}

// Restore writes every snapshot back through the live references.
func (r *Record) Restore() {
	r.Location.Set(r.InitialLocation)
	if r.Rotation != nil {
		r.Rotation.Restore()
	}
}
