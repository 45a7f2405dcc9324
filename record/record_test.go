package record

import (
	"math"
	"testing"

	"github.com/akmonengine/pivot/cursor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// Helper function to compare Vec3 with epsilon tolerance
func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

// Helper function to compare quaternions with epsilon tolerance
func quatAlmostEqual(a, b mgl64.Quat, epsilon float64) bool {
	return almostEqual(a.W, b.W, epsilon) &&
		almostEqual(a.V.X(), b.V.X(), epsilon) &&
		almostEqual(a.V.Y(), b.V.Y(), epsilon) &&
		almostEqual(a.V.Z(), b.V.Z(), epsilon)
}

func mat3AlmostEqual(a, b mgl64.Mat3, epsilon float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// =============================================================================
// Reference Tests
// =============================================================================

func TestRef_Aliases(t *testing.T) {
	value := 1.5
	ref := NewRef(&value)
	require.True(t, ref.Valid())

	ref.Set(2.5)
	assert.Equal(t, 2.5, value)

	value = 3.5
	assert.Equal(t, 3.5, ref.Get())

	var unbound Ref[float64]
	assert.False(t, unbound.Valid())
}

func TestVec3Ref_Aliases(t *testing.T) {
	storage := mgl64.Vec3{1, 2, 3}
	var loc Location = NewVec3Ref(&storage)

	loc.Set(mgl64.Vec3{4, 5, 6})
	assert.Equal(t, mgl64.Vec3{4, 5, 6}, storage)
	assert.Equal(t, storage, loc.Get())
}

func TestVec2Ref_DropsZ(t *testing.T) {
	storage := mgl64.Vec2{0.25, 0.75}
	var loc Location = NewVec2Ref(&storage)

	assert.Equal(t, mgl64.Vec3{0.25, 0.75, 0}, loc.Get())

	loc.Set(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, mgl64.Vec2{1, 2}, storage)
	assert.Equal(t, mgl64.Vec3{1, 2, 0}, loc.Get())
}

// =============================================================================
// Record Tests
// =============================================================================

func TestRecord_RotationAccessors(t *testing.T) {
	angles := mgl64.Vec3{}
	axis := mgl64.Vec3{0, 1, 0}
	angle := 0.0
	quat := mgl64.QuatIdent()

	tests := []struct {
		name                  string
		rotation              Rotation
		euler, axisAngle, qua bool
	}{
		{"none", nil, false, false, false},
		{"euler", &EulerRotation{Angles: NewRef(&angles), Order: cursor.EULER_XYZ}, true, false, false},
		{"axis angle", &AxisAngleRotation{Axis: NewRef(&axis), Angle: NewRef(&angle)}, false, true, false},
		{"quaternion", &QuaternionRotation{Value: NewRef(&quat)}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{Rotation: tt.rotation}

			_, ok := rec.Euler()
			assert.Equal(t, tt.euler, ok)
			_, ok = rec.AxisAngle()
			assert.Equal(t, tt.axisAngle, ok)
			_, ok = rec.Quaternion()
			assert.Equal(t, tt.qua, ok)
		})
	}
}

func TestRecord_IsSelected(t *testing.T) {
	assert.True(t, (&Record{Flag: SELECTED}).IsSelected())
	assert.False(t, (&Record{}).IsSelected())
}

func TestRecord_Restore(t *testing.T) {
	location := mgl64.Vec3{1, 2, 3}
	quat := mgl64.QuatIdent()

	rec := &Record{
		Location:        NewVec3Ref(&location),
		InitialLocation: location,
		Rotation:        &QuaternionRotation{Value: NewRef(&quat), Initial: quat},
	}

	location = mgl64.Vec3{9, 9, 9}
	quat = mgl64.QuatRotate(1, mgl64.Vec3{1, 0, 0})

	rec.Restore()
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, location)
	assert.Equal(t, mgl64.QuatIdent(), quat)
}

// =============================================================================
// Rotation Variant Tests
// =============================================================================

func TestEulerRotation_SetQuat(t *testing.T) {
	angles := mgl64.Vec3{0, 0, 0.5}
	rot := &EulerRotation{Angles: NewRef(&angles), Order: cursor.EULER_XYZ, Initial: angles}

	dq := mgl64.QuatRotate(0.25, mgl64.Vec3{0, 0, 1})
	rot.SetQuat(dq.Mul(rot.InitialQuat()))

	assert.True(t, vec3AlmostEqual(angles, mgl64.Vec3{0, 0, 0.75}, 1e-12), "got %v", angles)
	assert.True(t, quatAlmostEqual(rot.Quat(), mgl64.QuatRotate(0.75, mgl64.Vec3{0, 0, 1}), 1e-12))

	rot.Restore()
	assert.Equal(t, mgl64.Vec3{0, 0, 0.5}, angles)
}

func TestEulerRotation_SetQuat_StaysNearSnapshot(t *testing.T) {
	initial := mgl64.Vec3{0, 0, 2*math.Pi + 0.1}
	angles := initial
	rot := &EulerRotation{Angles: NewRef(&angles), Order: cursor.EULER_XYZ, Initial: initial}

	rot.SetQuat(mgl64.QuatRotate(0.2, mgl64.Vec3{0, 0, 1}))

	// 0.2 and 2pi+0.2 are the same orientation, the latter is the one next to the snapshot
	assert.InDelta(t, 2*math.Pi+0.2, angles.Z(), 1e-9)
}

func TestAxisAngleRotation_SetQuat(t *testing.T) {
	axis := mgl64.Vec3{0, 0, 1}
	angle := 0.5
	rot := &AxisAngleRotation{
		Axis:         NewRef(&axis),
		Angle:        NewRef(&angle),
		InitialAxis:  axis,
		InitialAngle: angle,
	}

	dq := mgl64.QuatRotate(0.25, mgl64.Vec3{0, 0, 1})
	rot.SetQuat(dq.Mul(rot.InitialQuat()))

	assert.True(t, vec3AlmostEqual(axis, mgl64.Vec3{0, 0, 1}, 1e-12))
	assert.InDelta(t, 0.75, angle, 1e-12)

	rot.Restore()
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, axis)
	assert.Equal(t, 0.5, angle)
}

func TestAxisAngleRotation_SetQuat_Continuity(t *testing.T) {
	x := mgl64.Vec3{1, 0, 0}
	z := mgl64.Vec3{0, 0, 1}

	tests := []struct {
		name          string
		initialAxis   mgl64.Vec3
		initialAngle  float64
		delta         float64
		expectedAxis  mgl64.Vec3
		expectedAngle float64
	}{
		{"null rotation keeps the axis", x, 0, 0, x, 0},
		{"full turn keeps the axis", x, 0, 2 * math.Pi, x, 0},
		{"crossing zero keeps the axis direction", z, 0.5, -1, z, -0.5},
		{"negative snapshot angle", z, -0.5, 0.25, z, -0.25},
		{"angle stays next to the snapshot", z, 4 * math.Pi, 0.5, z, 4*math.Pi + 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis := tt.initialAxis
			angle := tt.initialAngle
			rot := &AxisAngleRotation{
				Axis:         NewRef(&axis),
				Angle:        NewRef(&angle),
				InitialAxis:  axis,
				InitialAngle: angle,
			}

			dq := mgl64.QuatRotate(tt.delta, z)
			rot.SetQuat(dq.Mul(rot.InitialQuat()))

			assert.True(t, vec3AlmostEqual(axis, tt.expectedAxis, 1e-9), "axis %v, want %v", axis, tt.expectedAxis)
			assert.InDelta(t, tt.expectedAngle, angle, 1e-9)
		})
	}
}

func TestAxisAngleRotation_SetQuat_IdentityIsExact(t *testing.T) {
	axis := mgl64.Vec3{1, 0, 0}
	angle := 0.0
	rot := &AxisAngleRotation{Axis: NewRef(&axis), Angle: NewRef(&angle), InitialAxis: axis, InitialAngle: angle}

	rot.SetQuat(mgl64.QuatIdent())

	assert.Equal(t, mgl64.Vec3{1, 0, 0}, axis)
	assert.Equal(t, 0.0, angle)
}

func TestQuaternionRotation_SetQuat_KeepsLength(t *testing.T) {
	quat := mgl64.QuatIdent().Scale(2)
	rot := &QuaternionRotation{Value: NewRef(&quat), Initial: quat}

	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	rot.SetQuat(q)

	assert.InDelta(t, 2.0, quat.Len(), 1e-12)
	assert.True(t, quatAlmostEqual(quat, q.Scale(2), 1e-12))
}

// =============================================================================
// PseudoInverse Tests
// =============================================================================

func TestPseudoInverse_Identity(t *testing.T) {
	got := PseudoInverse(mgl64.Ident3(), PSEUDOINVERSE_EPSILON)
	assert.True(t, mat3AlmostEqual(got, mgl64.Ident3(), 1e-12))
}

func TestPseudoInverse_Invertible(t *testing.T) {
	m := mgl64.Mat3FromRows(
		mgl64.Vec3{2, 0, 1},
		mgl64.Vec3{1, 3, 0},
		mgl64.Vec3{0, 1, 4},
	)

	got := PseudoInverse(m, PSEUDOINVERSE_EPSILON)
	assert.True(t, mat3AlmostEqual(m.Mul3(got), mgl64.Ident3(), 1e-12))
}

func TestPseudoInverse_Singular(t *testing.T) {
	tests := []struct {
		name string
		m    mgl64.Mat3
		want mgl64.Mat3
	}{
		{
			name: "collapsed z",
			m:    mgl64.Diag3(mgl64.Vec3{1, 2, 0}),
			want: mgl64.Diag3(mgl64.Vec3{1, 0.5, 0}),
		},
		{
			name: "nearly collapsed z",
			m:    mgl64.Diag3(mgl64.Vec3{1, 1, 1e-12}),
			want: mgl64.Diag3(mgl64.Vec3{1, 1, 0}),
		},
		{
			name: "zero",
			m:    mgl64.Mat3{},
			want: mgl64.Mat3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PseudoInverse(tt.m, PSEUDOINVERSE_EPSILON)
			assert.True(t, mat3AlmostEqual(got, tt.want, 1e-12), "got %v, want %v", got, tt.want)
		})
	}
}

func TestPseudoInverse_PenroseConditions(t *testing.T) {
	// rank 2: third row is the sum of the first two
	m := mgl64.Mat3FromRows(
		mgl64.Vec3{1, 2, 3},
		mgl64.Vec3{0, 1, 1},
		mgl64.Vec3{1, 3, 4},
	)
	pinv := PseudoInverse(m, PSEUDOINVERSE_EPSILON)

	assert.True(t, mat3AlmostEqual(m.Mul3(pinv).Mul3(m), m, 1e-9))
	assert.True(t, mat3AlmostEqual(pinv.Mul3(m).Mul3(pinv), pinv, 1e-9))
	// both products are symmetric
	mp := m.Mul3(pinv)
	assert.True(t, mat3AlmostEqual(mp, mp.Transpose(), 1e-9))
	pm := pinv.Mul3(m)
	assert.True(t, mat3AlmostEqual(pm, pm.Transpose(), 1e-9))
}
