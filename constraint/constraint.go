package constraint

import (
	"fmt"
	"strings"

	"github.com/akmonengine/pivot/record"
	"github.com/go-gl/mathgl/mgl64"
)

// Constraint restricts how an engine delta may affect a record.
type Constraint interface {
	// Project restricts a translation or scale delta.
	Project(rec *record.Record, delta mgl64.Vec3) mgl64.Vec3
	// RotationAxis picks the axis a rotation turns around.
	RotationAxis(rec *record.Record, axis mgl64.Vec3) mgl64.Vec3
}

// Orientation selects the frame the constrained axes are read from.
type Orientation uint8

const (
	GLOBAL Orientation = iota
	// LOCAL uses the record's AxisMatrix, the cursor's own rotation for a 3D cursor.
	LOCAL
)

func (o Orientation) frame(rec *record.Record) mgl64.Mat3 {
	if o == LOCAL && rec != nil {
		return rec.AxisMatrix
	}
	return mgl64.Ident3()
}

// None leaves deltas untouched.
type None struct{}

func (None) Project(_ *record.Record, delta mgl64.Vec3) mgl64.Vec3 {
	return delta
}

func (None) RotationAxis(_ *record.Record, axis mgl64.Vec3) mgl64.Vec3 {
	return axis
}

// Axis keeps only the component of a delta along one axis.
type Axis struct {
	Index       int
	Orientation Orientation
}

func (c Axis) Project(rec *record.Record, delta mgl64.Vec3) mgl64.Vec3 {
	axis := c.Orientation.frame(rec).Col(c.Index)
	return axis.Mul(delta.Dot(axis))
}

func (c Axis) RotationAxis(rec *record.Record, _ mgl64.Vec3) mgl64.Vec3 {
	return c.Orientation.frame(rec).Col(c.Index)
}

// Plane removes the component of a delta along the plane normal.
type Plane struct {
	Normal      int
	Orientation Orientation
}

func (c Plane) Project(rec *record.Record, delta mgl64.Vec3) mgl64.Vec3 {
	normal := c.Orientation.frame(rec).Col(c.Normal)
	return delta.Sub(normal.Mul(delta.Dot(normal)))
}

func (c Plane) RotationAxis(rec *record.Record, _ mgl64.Vec3) mgl64.Vec3 {
	return c.Orientation.frame(rec).Col(c.Normal)
}

// Parse reads "none", an axis ("x", "y", "z") or a plane excluding an axis
// ("-x", "-y", "-z"), optionally prefixed with "local:".
func Parse(s string) (Constraint, error) {
	orientation := GLOBAL
	name := strings.ToLower(strings.TrimSpace(s))
	if rest, ok := strings.CutPrefix(name, "local:"); ok {
		orientation = LOCAL
		name = rest
	}

	if name == "" || name == "none" {
		return None{}, nil
	}

	plane := false
	if rest, ok := strings.CutPrefix(name, "-"); ok {
		plane = true
		name = rest
	}

	index := strings.Index("xyz", name)
	if len(name) != 1 || index < 0 {
		return nil, fmt.Errorf("invalid constraint %q", s)
	}

	if plane {
		return Plane{Normal: index, Orientation: orientation}, nil
	}
	return Axis{Index: index, Orientation: orientation}, nil
}
