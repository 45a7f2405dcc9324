package pivot

import (
	"errors"
	"fmt"

	"github.com/akmonengine/pivot/constraint"
	"github.com/akmonengine/pivot/convert"
	"github.com/akmonengine/pivot/logger"
	"github.com/akmonengine/pivot/record"
	"github.com/akmonengine/pivot/space"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ErrFinished is returned by calls on an operation that was confirmed or canceled.
var ErrFinished = errors.New("operation already finished")

// Mode is the kind of transform a tick applies.
type Mode uint8

const (
	TRANSLATION Mode = iota
	ROTATION
	RESIZE
)

func (m Mode) String() string {
	switch m {
	case TRANSLATION:
		return "TRANSLATION"
	case ROTATION:
		return "ROTATION"
	case RESIZE:
		return "RESIZE"
	}
	return "UNKNOWN"
}

// Delta is the total transform since the operation started, not an increment.
type Delta struct {
	Mode Mode

	// TRANSLATION
	Vector mgl64.Vec3
	// ROTATION, around Axis (Z when unset) through each record's center
	Angle float64
	Axis  mgl64.Vec3
	// RESIZE, per axis factors around each record's center
	Scale mgl64.Vec3

	Constraint constraint.Constraint
}

// Result summarizes a finished operation.
type Result struct {
	ID       uuid.UUID
	Canceled bool
	// Changed reports whether the persistent cursor state differs from the
	// state at Begin.
	Changed bool
	Records int
}

// Operation is one interactive transform, from Begin to Confirm or Cancel.
type Operation struct {
	ID      uuid.UUID
	Records []*record.Record

	engine      *Engine
	converter   convert.Converter
	logger      logger.Logger
	fingerprint uint64
	ticks       int
	finished    bool
}

func (op *Operation) Context() space.Context {
	return op.converter.Context()
}

// Finished reports whether Confirm or Cancel already ran.
func (op *Operation) Finished() bool {
	return op.finished
}

// Apply runs one update tick: every record is recomputed from its snapshot,
// then written back to the cursor.
func (op *Operation) Apply(delta Delta) error {
	if op.finished {
		return ErrFinished
	}
	if len(op.Records) == 0 {
		return nil
	}

	if delta.Constraint == nil {
		delta.Constraint = constraint.None{}
	}

	task(op.engine.Workers, op.Records, func(rec *record.Record) {
		applyDelta(rec, delta)
	})
	op.recalc()
	op.ticks++

	op.logger.Debug("transform tick", "mode", delta.Mode.String(), "tick", op.ticks)
	return nil
}

// Confirm keeps the current cursor state.
func (op *Operation) Confirm() (Result, error) {
	if op.finished {
		return Result{}, ErrFinished
	}

	// without any tick the storage still holds engine units
	if op.ticks == 0 && len(op.Records) > 0 {
		for _, rec := range op.Records {
			rec.Restore()
		}
		op.recalc()
	}

	return op.finish(false)
}

// Cancel restores the snapshots and writes them back one last time.
func (op *Operation) Cancel() (Result, error) {
	if op.finished {
		return Result{}, ErrFinished
	}

	if len(op.Records) > 0 {
		for _, rec := range op.Records {
			rec.Restore()
		}
		op.recalc()
	}

	return op.finish(true)
}

func (op *Operation) recalc() {
	op.engine.Graph.Tag(op.converter.RecalcData(op.Records))
}

func (op *Operation) finish(canceled bool) (Result, error) {
	op.finished = true
	op.engine.Graph.Flush()
	op.converter.Guard().Release()

	result := Result{ID: op.ID, Canceled: canceled, Records: len(op.Records)}

	if !canceled {
		fingerprint, err := op.converter.Fingerprint()
		if err != nil {
			return result, fmt.Errorf("finish transform: %w", err)
		}
		result.Changed = fingerprint != op.fingerprint
	}

	op.logger.Debug("transform end", "canceled", canceled, "changed", result.Changed, "ticks", op.ticks)
	return result, nil
}

func applyDelta(rec *record.Record, delta Delta) {
	c := delta.Constraint

	switch delta.Mode {
	case TRANSLATION:
		vec := rec.InverseMatrix.Mul3x1(c.Project(rec, delta.Vector))
		rec.Location.Set(rec.InitialLocation.Add(vec))

	case ROTATION:
		axis := delta.Axis
		if axis.Len() < 1e-12 {
			axis = mgl64.Vec3{0, 0, 1}
		}
		axis = c.RotationAxis(rec, axis)
		if axis.Len() < 1e-12 {
			rec.Restore()
			return
		}
		q := mgl64.QuatRotate(delta.Angle, axis.Normalize())

		offset := rec.InitialLocation.Sub(rec.Center)
		rec.Location.Set(rec.Center.Add(q.Rotate(offset)))
		if rec.Rotation != nil {
			rec.Rotation.SetQuat(q.Mul(rec.Rotation.InitialQuat().Normalize()))
		}

	case RESIZE:
		offset := rec.InitialLocation.Sub(rec.Center)
		scaled := mgl64.Vec3{offset[0] * delta.Scale[0], offset[1] * delta.Scale[1], offset[2] * delta.Scale[2]}
		rec.Location.Set(rec.InitialLocation.Add(c.Project(rec, scaled.Sub(offset))))

	default:
		// the storage must hold engine units before every write-back
		rec.Restore()
	}
}
