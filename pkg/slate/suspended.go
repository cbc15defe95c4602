package slate

import (
	"context"
	"sync"
	"time"
)

// SuspendedState is the state of a SuspendedTile's factory.
type SuspendedState int

const (
	// SuspendedEmpty means no computation is in flight.
	SuspendedEmpty SuspendedState = iota
	// SuspendedRunning means a computation is in flight.
	SuspendedRunning
	// SuspendedFinished means the latest computation has been committed.
	SuspendedFinished
)

func (s SuspendedState) String() string {
	switch s {
	case SuspendedEmpty:
		return "empty"
	case SuspendedRunning:
		return "suspended"
	case SuspendedFinished:
		return "finished"
	}
	return "unknown"
}

// ChildFactory produces a tile asynchronously. A nil result keeps the
// placeholder displayed. ctx is cancelled when the request is superseded.
type ChildFactory func(ctx context.Context, s *Slate, v Viewer) Tile

// SuspendedTile shows Placeholder until its factory has produced a tile.
// Only the result of the latest request is committed.
type SuspendedTile struct {
	Base

	Placeholder Tile
	Factory     ChildFactory

	// Executor runs the factory; DefaultPool when nil.
	Executor Executor

	// Timeout returns the tile to SuspendedEmpty when a request is still
	// running after this long, so the next display retries. Zero waits forever.
	Timeout time.Duration

	mu         sync.Mutex
	state      SuspendedState
	generation uint64
	child      Tile
	cancel     context.CancelFunc
}

// NewSuspendedTile returns a tile resolving through factory.
func NewSuspendedTile(placeholder Tile, factory ChildFactory) *SuspendedTile {
	return &SuspendedTile{
		Base:        Base{Immovable: true},
		Placeholder: placeholder,
		Factory:     factory,
	}
}

// State returns the current factory state.
func (t *SuspendedTile) State() SuspendedState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// UpdateTile starts a computation when none is in flight and returns the
// best tile known right now. It never waits for the factory.
func (t *SuspendedTile) UpdateTile(s *Slate, v Viewer) Tile {
	t.mu.Lock()
	if t.state != SuspendedEmpty {
		cur := t.current()
		t.mu.Unlock()
		return cur
	}

	t.state = SuspendedRunning
	t.generation++
	gen := t.generation
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	cur := t.current()
	t.mu.Unlock()

	if t.Timeout > 0 {
		time.AfterFunc(t.Timeout, func() { t.expire(gen) })
	}

	exec := t.Executor
	if exec == nil {
		exec = DefaultPool
	}
	exec.Submit(func() {
		var child Tile
		if t.Factory != nil {
			child = t.Factory(ctx, s, v)
		}
		t.commit(gen, child)
	})
	return cur
}

// RefreshTile forces the next UpdateTile to start a new computation. A
// computation still in flight is cancelled and its result discarded.
func (t *SuspendedTile) RefreshTile() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = SuspendedEmpty
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Current returns the committed child, or the placeholder.
func (t *SuspendedTile) Current() Tile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current()
}

func (t *SuspendedTile) current() Tile {
	if t.child != nil {
		return t.child
	}
	return t.Placeholder
}

func (t *SuspendedTile) commit(gen uint64, child Tile) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation {
		return
	}
	t.child = child
	t.state = SuspendedFinished
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *SuspendedTile) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation || t.state != SuspendedRunning {
		return
	}
	t.generation++
	t.state = SuspendedEmpty
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *SuspendedTile) BaseStack(s *Slate, v Viewer) Stack {
	cur := t.UpdateTile(s, v)
	if cur == nil {
		return Stack{}
	}
	return cur.BaseStack(s, v)
}

func (t *SuspendedTile) DisplayedStack(s *Slate, v Viewer) Stack {
	cur := t.UpdateTile(s, v)
	if cur == nil {
		return Stack{}
	}
	return cur.DisplayedStack(s, v)
}

// CollectClickCallbacks runs the callbacks registered on the suspended tile
// itself followed by those of the committed child. The placeholder's
// callbacks never run.
func (t *SuspendedTile) CollectClickCallbacks(ct ClickType) ClickCallback {
	own := t.Base.CollectClickCallbacks(ct)
	return func(s *Slate, tile Tile, ctx ClickContext) {
		own(s, tile, ctx)
		t.mu.Lock()
		child := t.child
		t.mu.Unlock()
		if child != nil {
			child.CollectClickCallbacks(ct)(s, tile, ctx)
		}
	}
}
