// Package convert turns the cursor of an editor into transformable records,
// so the transform engine moves the cursor instead of the selection, and
// writes the engine's results back into the editor.
package convert

import (
	"errors"
	"fmt"

	"github.com/akmonengine/pivot/cursor"
	"github.com/akmonengine/pivot/depsgraph"
	"github.com/akmonengine/pivot/record"
	"github.com/akmonengine/pivot/report"
	"github.com/akmonengine/pivot/space"
)

// ErrLinkedData is returned when the cursor belongs to a read-only scene.
var ErrLinkedData = errors.New("linked data can't be transformed")

// LinkedDataMessage is the user-facing text reported alongside ErrLinkedData.
const LinkedDataMessage = "Linked data can't be transformed."

// Converter adapts one cursor-owning editor to the transform engine.
type Converter interface {
	// CreateData builds zero or one record aliasing the cursor storage.
	CreateData(reports report.Sink) ([]*record.Record, error)
	// RecalcData converts the engine's values back into the cursor's own
	// units, in place, and returns the refresh request for the owning scene.
	RecalcData(records []*record.Record) depsgraph.Update
	// Fingerprint hashes the persistent cursor state.
	Fingerprint() (uint64, error)
	// Guard returns the cursor's exclusive access guard.
	Guard() *cursor.Guard
	Context() space.Context
}

// For returns the converter for the given editor. A non-positive epsilon
// selects record.PSEUDOINVERSE_EPSILON.
func For(ctx space.Context, epsilon float64) (Converter, error) {
	if epsilon <= 0 {
		epsilon = record.PSEUDOINVERSE_EPSILON
	}

	switch v := ctx.(type) {
	case *space.ImageView:
		if v != nil {
			return &ImageCursor{View: v, Epsilon: epsilon}, nil
		}
	case *space.SequencerView:
		if v != nil {
			return &SequencerCursor{View: v, Epsilon: epsilon}, nil
		}
	case *space.View3D:
		if v == nil {
			break
		}
		// the scene owns the 3D cursor
		if v.Scene() == nil {
			return nil, fmt.Errorf("%w: %s", space.ErrNoScene, v.Kind())
		}
		return &View3DCursor{View: v, Epsilon: epsilon}, nil
	case nil:
	default:
		return nil, fmt.Errorf("%w: %s", space.ErrUnknownContext, ctx.Kind())
	}
	return nil, fmt.Errorf("%w: nil", space.ErrUnknownContext)
}

func refresh(scene *space.Scene) depsgraph.Update {
	if scene == nil {
		return depsgraph.Update{}
	}
	return depsgraph.Update{Scene: scene.ID, Flags: depsgraph.ID_RECALC_COPY_ON_WRITE}
}
