package convert

import (
	"github.com/akmonengine/pivot/cursor"
	"github.com/akmonengine/pivot/depsgraph"
	"github.com/akmonengine/pivot/record"
	"github.com/akmonengine/pivot/report"
	"github.com/akmonengine/pivot/space"
	"github.com/go-gl/mathgl/mgl64"
)

// ScaleByAspect maps normalized cursor units to display units.
func ScaleByAspect(p mgl64.Vec2, aspect mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{p[0] * aspect[0], p[1] * aspect[1]}
}

// UnscaleByAspect is the inverse of ScaleByAspect. Both legs multiply, the
// way back by the reciprocal, so repeated operations do not drift.
func UnscaleByAspect(p mgl64.Vec2, aspect mgl64.Vec2) mgl64.Vec2 {
	return ScaleByAspect(p, mgl64.Vec2{1 / aspect[0], 1 / aspect[1]})
}

// create2D scales the cursor storage into display units in place and
// returns a record aliasing it.
func create2D(location *mgl64.Vec2, aspect mgl64.Vec2, epsilon float64) *record.Record {
	*location = ScaleByAspect(*location, aspect)
	center := location.Vec3(0)

	rec := &record.Record{
		Flag:            record.SELECTED,
		Center:          center,
		Location:        record.NewVec2Ref(location),
		InitialLocation: center,
		Matrix:          mgl64.Ident3(),
		AxisMatrix:      mgl64.Ident3(),
	}
	rec.InverseMatrix = record.PseudoInverse(rec.Matrix, epsilon)

	return rec
}

func recalc2D(records []*record.Record, aspect mgl64.Vec2, scene *space.Scene) depsgraph.Update {
	if len(records) == 0 {
		return depsgraph.Update{}
	}

	for _, rec := range records {
		loc := rec.Location.Get()
		p := UnscaleByAspect(loc.Vec2(), aspect)
		rec.Location.Set(p.Vec3(loc.Z()))
	}
	return refresh(scene)
}

// ImageCursor targets the image editor cursor.
type ImageCursor struct {
	View    *space.ImageView
	Epsilon float64

	// aspect in use since CreateData; the view's may change meanwhile
	aspect mgl64.Vec2
}

func (c *ImageCursor) CreateData(_ report.Sink) ([]*record.Record, error) {
	c.aspect = c.View.Aspect()
	return []*record.Record{create2D(&c.View.Cursor.Location, c.aspect, c.Epsilon)}, nil
}

func (c *ImageCursor) RecalcData(records []*record.Record) depsgraph.Update {
	return recalc2D(records, c.aspect, c.View.Scene())
}

func (c *ImageCursor) Fingerprint() (uint64, error) {
	return c.View.Cursor.Fingerprint()
}

func (c *ImageCursor) Guard() *cursor.Guard {
	return &c.View.Cursor.Guard
}

func (c *ImageCursor) Context() space.Context {
	return c.View
}

// SequencerCursor targets the sequencer preview cursor.
type SequencerCursor struct {
	View    *space.SequencerView
	Epsilon float64

	aspect mgl64.Vec2
}

// CreateData yields no record unless the view shows the image buffer; this
// is not an error, the operation simply has nothing to move.
func (c *SequencerCursor) CreateData(_ report.Sink) ([]*record.Record, error) {
	if c.View.DisplayMode != space.SEQ_DRAW_IMG_IMBUF {
		return nil, nil
	}
	c.aspect = c.View.Aspect()
	return []*record.Record{create2D(&c.View.Cursor.Location, c.aspect, c.Epsilon)}, nil
}

func (c *SequencerCursor) RecalcData(records []*record.Record) depsgraph.Update {
	return recalc2D(records, c.aspect, c.View.Scene())
}

func (c *SequencerCursor) Fingerprint() (uint64, error) {
	return c.View.Cursor.Fingerprint()
}

func (c *SequencerCursor) Guard() *cursor.Guard {
	return &c.View.Cursor.Guard
}

func (c *SequencerCursor) Context() space.Context {
	return c.View
}
