package convert

import (
	"github.com/akmonengine/pivot/cursor"
	"github.com/akmonengine/pivot/depsgraph"
	"github.com/akmonengine/pivot/record"
	"github.com/akmonengine/pivot/report"
	"github.com/akmonengine/pivot/space"
	"github.com/go-gl/mathgl/mgl64"
)

// View3DCursor targets the scene cursor through a 3D viewport.
type View3DCursor struct {
	View    *space.View3D
	Epsilon float64
}

// CreateData refuses cursors of linked scenes: it reports the problem and
// returns ErrLinkedData without touching the cursor.
func (c *View3DCursor) CreateData(reports report.Sink) ([]*record.Record, error) {
	scene := c.View.Scene()
	if scene.IsLinked() {
		if reports != nil {
			reports.Report(report.ERROR, LinkedDataMessage)
		}
		return nil, ErrLinkedData
	}

	cur := &scene.Cursor
	rec := &record.Record{
		Flag:            record.SELECTED,
		Center:          cur.Location,
		Location:        record.NewVec3Ref(&cur.Location),
		InitialLocation: cur.Location,
		Matrix:          mgl64.Ident3(),
		AxisMatrix:      normalizeMat3(cur.RotationMat3()),
	}
	rec.InverseMatrix = record.PseudoInverse(rec.Matrix, c.Epsilon)
	rec.Rotation = bindRotation(cur)

	return []*record.Record{rec}, nil
}

// RecalcData has nothing to convert: cursor and engine share units.
func (c *View3DCursor) RecalcData(records []*record.Record) depsgraph.Update {
	if len(records) == 0 {
		return depsgraph.Update{}
	}
	return refresh(c.View.Scene())
}

func (c *View3DCursor) Fingerprint() (uint64, error) {
	return c.View.Cursor().Fingerprint()
}

func (c *View3DCursor) Guard() *cursor.Guard {
	return &c.View.Cursor().Guard
}

func (c *View3DCursor) Context() space.Context {
	return c.View
}

// bindRotation aliases the one representation the cursor's mode selects.
func bindRotation(cur *cursor.Cursor3D) record.Rotation {
	switch {
	case cur.RotationMode.IsEuler():
		return &record.EulerRotation{
			Angles:  record.NewRef(&cur.RotationEuler),
			Order:   cur.RotationMode.EulerOrder(),
			Initial: cur.RotationEuler,
		}
	case cur.RotationMode == cursor.ROT_MODE_AXISANGLE:
		return &record.AxisAngleRotation{
			Axis:         record.NewRef(&cur.RotationAxis),
			Angle:        record.NewRef(&cur.RotationAngle),
			InitialAxis:  cur.RotationAxis,
			InitialAngle: cur.RotationAngle,
		}
	default:
		return &record.QuaternionRotation{
			Value:   record.NewRef(&cur.RotationQuaternion),
			Initial: cur.RotationQuaternion,
		}
	}
}

// normalizeMat3 rescales each axis to unit length.
func normalizeMat3(m mgl64.Mat3) mgl64.Mat3 {
	for col := 0; col < 3; col++ {
		axis := m.Col(col)
		if length := axis.Len(); length > 1e-12 {
			m.SetCol(col, axis.Mul(1/length))
		}
	}
	return m
}
