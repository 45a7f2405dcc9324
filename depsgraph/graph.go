package depsgraph

import "github.com/google/uuid"

// RecalcFlag names which derived state of an ID must be recomputed.
type RecalcFlag uint32

const (
	ID_RECALC_TRANSFORM RecalcFlag = 1 << iota
	ID_RECALC_GEOMETRY
	// ID_RECALC_COPY_ON_WRITE asks for the evaluated copy of the ID to be
	// refreshed from its original data.
	ID_RECALC_COPY_ON_WRITE
)

// Update is a dependency-refresh request for one scene.
type Update struct {
	Scene uuid.UUID
	Flags RecalcFlag
}

// IsZero reports an empty update, which carries nothing to deliver.
func (u Update) IsZero() bool {
	return u.Scene == uuid.Nil || u.Flags == 0
}

// Listener - callback for delivered updates
type Listener func(update Update)

// Graph buffers refresh requests and hands them to listeners on Flush.
// Requests for the same scene between two flushes are merged.
type Graph struct {
	listeners []Listener

	// Pending updates in first-tag order
	buffer []Update
	index  map[uuid.UUID]int
}

func NewGraph() *Graph {
	return &Graph{
		buffer: make([]Update, 0, 8),
		index:  make(map[uuid.UUID]int),
	}
}

// Subscribe adds a listener for delivered updates
func (g *Graph) Subscribe(listener Listener) {
	g.listeners = append(g.listeners, listener)
}

// Tag records an update, merging its flags into any pending one for the same scene.
func (g *Graph) Tag(update Update) {
	if update.IsZero() {
		return
	}

	if i, ok := g.index[update.Scene]; ok {
		g.buffer[i].Flags |= update.Flags
		return
	}
	g.index[update.Scene] = len(g.buffer)
	g.buffer = append(g.buffer, update)
}

// Pending returns a copy of the updates waiting for the next flush.
func (g *Graph) Pending() []Update {
	return append([]Update(nil), g.buffer...)
}

// Flush sends all buffered updates and clears the buffer. Updates tagged by
// a listener during the flush wait for the next one.
func (g *Graph) Flush() {
	pending := g.buffer
	g.buffer = make([]Update, 0, cap(pending))
	clear(g.index)

	for _, update := range pending {
		for _, listener := range g.listeners {
			listener(update)
		}
	}
}
