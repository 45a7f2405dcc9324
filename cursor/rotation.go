package cursor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationMode selects which representation of a 3D cursor's rotation is
// authoritative. Positive values are the Euler family, each naming an axis order.
type RotationMode int

const (
	ROT_MODE_AXISANGLE RotationMode = -1
	ROT_MODE_QUAT      RotationMode = 0
	ROT_MODE_XYZ       RotationMode = 1
	ROT_MODE_XZY       RotationMode = 2
	ROT_MODE_YXZ       RotationMode = 3
	ROT_MODE_YZX       RotationMode = 4
	ROT_MODE_ZXY       RotationMode = 5
	ROT_MODE_ZYX       RotationMode = 6
)

// IsEuler reports whether the mode belongs to the Euler family (any axis order).
func (m RotationMode) IsEuler() bool {
	return m > 0
}

// Valid reports whether m is one of the known modes.
func (m RotationMode) Valid() bool {
	return m >= ROT_MODE_AXISANGLE && m <= ROT_MODE_ZYX
}

// EulerOrder returns the axis order of an Euler mode.
// Non-Euler modes fall back to XYZ.
func (m RotationMode) EulerOrder() EulerOrder {
	if !m.IsEuler() || !m.Valid() {
		return EULER_XYZ
	}
	return EulerOrder(m)
}

func (m RotationMode) String() string {
	switch {
	case m == ROT_MODE_AXISANGLE:
		return "AXIS_ANGLE"
	case m == ROT_MODE_QUAT:
		return "QUATERNION"
	case m.IsEuler() && m.Valid():
		return m.EulerOrder().String()
	}
	return "UNKNOWN"
}

// EulerOrder is the order in which the three axis rotations are applied,
// first axis first. It shares its values with the Euler rotation modes.
type EulerOrder int

const (
	EULER_XYZ EulerOrder = iota + 1
	EULER_XZY
	EULER_YXZ
	EULER_YZX
	EULER_ZXY
	EULER_ZYX
)

var eulerAxes = map[EulerOrder][3]int{
	EULER_XYZ: {0, 1, 2},
	EULER_XZY: {0, 2, 1},
	EULER_YXZ: {1, 0, 2},
	EULER_YZX: {1, 2, 0},
	EULER_ZXY: {2, 0, 1},
	EULER_ZYX: {2, 1, 0},
}

// Axes returns the axis indices in application order.
func (o EulerOrder) Axes() [3]int {
	if axes, ok := eulerAxes[o]; ok {
		return axes
	}
	return eulerAxes[EULER_XYZ]
}

func (o EulerOrder) String() string {
	names := [3]string{"X", "Y", "Z"}
	axes := o.Axes()
	return names[axes[0]] + names[axes[1]] + names[axes[2]]
}

// ParseRotationMode maps a mode name ("XYZ", "QUATERNION", "AXIS_ANGLE", ...)
// to its value.
func ParseRotationMode(name string) (RotationMode, bool) {
	for m := ROT_MODE_AXISANGLE; m <= ROT_MODE_ZYX; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return ROT_MODE_QUAT, false
}

var unitAxes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// EulerToQuat converts angles (indexed by axis, not by order) into a quaternion.
func EulerToQuat(angles mgl64.Vec3, order EulerOrder) mgl64.Quat {
	axes := order.Axes()
	q := mgl64.QuatIdent()
	for _, axis := range axes {
		q = mgl64.QuatRotate(angles[axis], unitAxes[axis]).Mul(q)
	}
	return q
}

// Mat3ToEuler extracts Euler angles for the given order from an orthonormal
// rotation matrix. Angles are indexed by axis.
func Mat3ToEuler(m mgl64.Mat3, order EulerOrder) mgl64.Vec3 {
	axes := order.Axes()
	i, j, k := axes[0], axes[1], axes[2]

	// cyclic orders (XYZ, YZX, ZXY) are even
	s := 1.0
	if (j-i+3)%3 != 1 {
		s = -1.0
	}

	var first, second, third float64
	second = math.Asin(mgl64.Clamp(-s*m.At(k, i), -1, 1))
	cosSecond := math.Hypot(m.At(k, j), m.At(k, k))

	if cosSecond > 1e-12 {
		first = math.Atan2(s*m.At(k, j), m.At(k, k))
		third = math.Atan2(s*m.At(j, i), m.At(i, i))
	} else {
		// gimbal lock: the first and third axes coincide, fold everything into the first
		first = math.Atan2(-s*m.At(j, k), m.At(j, j))
		third = 0
	}

	var angles mgl64.Vec3
	angles[i] = first
	angles[j] = second
	angles[k] = third
	return angles
}

// QuatToEuler converts a quaternion into Euler angles of the given order.
func QuatToEuler(q mgl64.Quat, order EulerOrder) mgl64.Vec3 {
	return Mat3ToEuler(quatToMat3(q), order)
}

// AxisAngleToQuat converts an axis-angle rotation. A zero-length axis gives
// the identity.
func AxisAngleToQuat(axis mgl64.Vec3, angle float64) mgl64.Quat {
	if axis.Len() < 1e-12 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, axis.Normalize())
}

// QuatToAxisAngle converts a quaternion into a unit axis and an angle.
// The identity rotation maps to the +Y axis with a zero angle.
func QuatToAxisAngle(q mgl64.Quat) (mgl64.Vec3, float64) {
	if q.Len() < 1e-12 {
		return mgl64.Vec3{0, 1, 0}, 0
	}
	q = q.Normalize()

	sinHalf := q.V.Len()
	if sinHalf < 1e-12 {
		return mgl64.Vec3{0, 1, 0}, 0
	}
	angle := 2 * math.Atan2(sinHalf, q.W)
	return q.V.Mul(1 / sinHalf), angle
}

func quatToMat3(q mgl64.Quat) mgl64.Mat3 {
	if q.Len() < 1e-12 {
		return mgl64.Ident3()
	}
	return q.Normalize().Mat4().Mat3()
}
