package slate

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the slate each connected player has open and the slate
// queued to open for them at the end of the tick.
type Registry struct {
	mu      sync.RWMutex
	viewers map[uuid.UUID]Viewer
	active  map[uuid.UUID]*Slate
	pending map[uuid.UUID]*Slate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		viewers: make(map[uuid.UUID]Viewer),
		active:  make(map[uuid.UUID]*Slate),
		pending: make(map[uuid.UUID]*Slate),
	}
}

// Connect starts tracking v.
func (r *Registry) Connect(v Viewer) {
	r.mu.Lock()
	r.viewers[v.ID()] = v
	r.mu.Unlock()
}

// Disconnect stops tracking v, closing its active slate without contacting
// the client and dropping any queued slate.
func (r *Registry) Disconnect(v Viewer) {
	r.mu.Lock()
	s := r.active[v.ID()]
	delete(r.viewers, v.ID())
	delete(r.pending, v.ID())
	r.mu.Unlock()

	if s != nil {
		s.HandleClosed(v)
	}

	r.mu.Lock()
	delete(r.active, v.ID())
	r.mu.Unlock()
}

// Viewers returns the connected players.
func (r *Registry) Viewers() []Viewer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Viewer, 0, len(r.viewers))
	for _, v := range r.viewers {
		out = append(out, v)
	}
	return out
}

// Active returns the slate v has open, or nil.
func (r *Registry) Active(v Viewer) *Slate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[v.ID()]
}

// Pending returns the slate queued for v, or nil.
func (r *Registry) Pending(v Viewer) *Slate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pending[v.ID()]
}

// Open attaches the tree of s to the registry and opens s for v.
func (r *Registry) Open(v Viewer, s *Slate) bool {
	s.attach(r)
	return s.Open(v)
}

// OpenSoon queues s to be opened for v by the next Tick. A later call for
// the same player replaces the queued slate.
func (r *Registry) OpenSoon(v Viewer, s *Slate) {
	s.attach(r)
	r.mu.Lock()
	r.pending[v.ID()] = s
	r.mu.Unlock()
}

// Tick ticks every active slate, then opens the queued ones.
func (r *Registry) Tick() {
	type entry struct {
		v Viewer
		s *Slate
	}

	r.mu.RLock()
	active := make([]entry, 0, len(r.active))
	for id, s := range r.active {
		if v, ok := r.viewers[id]; ok {
			active = append(active, entry{v, s})
		}
	}
	r.mu.RUnlock()

	for _, e := range active {
		e.s.HandleTick(e.v)
	}

	r.mu.Lock()
	pending := make([]entry, 0, len(r.pending))
	for id, s := range r.pending {
		if v, ok := r.viewers[id]; ok {
			pending = append(pending, entry{v, s})
		}
	}
	clear(r.pending)
	r.mu.Unlock()

	for _, e := range pending {
		e.s.Open(e.v)
	}
}

// Died closes the slate v has open.
func (r *Registry) Died(v Viewer) bool {
	s := r.Active(v)
	if s == nil {
		return false
	}
	return s.Close(v)
}

func (r *Registry) bind(v Viewer, s *Slate) {
	r.mu.Lock()
	r.active[v.ID()] = s
	r.mu.Unlock()
}

func (r *Registry) unbind(v Viewer, s *Slate) {
	r.mu.Lock()
	if r.active[v.ID()] == s {
		delete(r.active, v.ID())
	}
	r.mu.Unlock()
}
