package pivot

import (
	"errors"
	"fmt"

	"github.com/akmonengine/pivot/convert"
	"github.com/akmonengine/pivot/depsgraph"
	"github.com/akmonengine/pivot/logger"
	"github.com/akmonengine/pivot/report"
	"github.com/akmonengine/pivot/space"
	"github.com/google/uuid"
)

// Engine starts interactive transform operations that move an editor's
// cursor instead of its selection.
type Engine struct {
	Workers int
	Epsilon float64

	// Graph receives the scene refresh requests of every operation
	Graph *depsgraph.Graph
	// Reports receives user-facing messages
	Reports report.Sink
	Logger  logger.Logger
}

func NewEngine(cfg Config, graph *depsgraph.Graph, reports report.Sink, log logger.Logger) *Engine {
	if graph == nil {
		graph = depsgraph.NewGraph()
	}
	if log == nil {
		log = logger.Discard
	}
	if reports == nil {
		reports = report.NewList(log)
	}

	return &Engine{
		Workers: max(DEFAULT_WORKERS, cfg.Workers),
		Epsilon: cfg.PseudoInverseEpsilon,
		Graph:   graph,
		Reports: reports,
		Logger:  log,
	}
}

// IsActive reports whether an operation currently holds the editor's cursor.
func (e *Engine) IsActive(ctx space.Context) bool {
	conv, err := convert.For(ctx, e.Epsilon)
	if err != nil {
		return false
	}
	return conv.Guard().Held()
}

// Begin takes exclusive hold of the editor's cursor and builds its records.
//
// A cursor that cannot be transformed (linked scene, sequencer not showing
// the image buffer) gives an operation without records: every later call
// on it is a no-op apart from releasing the cursor.
func (e *Engine) Begin(ctx space.Context) (*Operation, error) {
	conv, err := convert.For(ctx, e.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("begin transform: %w", err)
	}

	guard := conv.Guard()
	if err := guard.Acquire(); err != nil {
		return nil, fmt.Errorf("begin %s transform: %w", ctx.Kind(), err)
	}

	fingerprint, err := conv.Fingerprint()
	if err != nil {
		guard.Release()
		return nil, fmt.Errorf("begin %s transform: %w", ctx.Kind(), err)
	}

	op := &Operation{
		ID:          uuid.New(),
		engine:      e,
		converter:   conv,
		fingerprint: fingerprint,
	}
	op.logger = e.Logger.With("operation", op.ID.String(), "context", ctx.Kind().String())

	records, err := conv.CreateData(e.Reports)
	switch {
	case errors.Is(err, convert.ErrLinkedData):
		op.logger.Warn("cursor cannot be transformed", "error", err)
	case err != nil:
		guard.Release()
		return nil, fmt.Errorf("begin %s transform: %w", ctx.Kind(), err)
	}
	op.Records = records

	op.logger.Debug("transform begin", "records", len(op.Records))
	return op, nil
}
