package slate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuspendedTileResolves(t *testing.T) {
	exec := &manualExecutor{}
	placeholder := NewItemTile("minecraft:clock")
	child := NewItemTile("minecraft:diamond")

	calls := 0
	tile := NewSuspendedTile(placeholder, func(context.Context, *Slate, Viewer) Tile {
		calls++
		return child
	})
	tile.Executor = exec

	assert.Equal(t, SuspendedEmpty, tile.State())
	assert.Same(t, placeholder, tile.UpdateTile(nil, nil))
	assert.Equal(t, SuspendedRunning, tile.State())

	// in flight: no new computation
	assert.Same(t, placeholder, tile.UpdateTile(nil, nil))
	require.Len(t, exec.tasks, 1)

	exec.run(0)
	assert.Equal(t, 1, calls)
	assert.Equal(t, SuspendedFinished, tile.State())
	assert.Same(t, child, tile.UpdateTile(nil, nil))
	assert.Equal(t, "minecraft:diamond", tile.DisplayedStack(nil, nil).ItemName())
	assert.Len(t, exec.tasks, 1)
}

func TestSuspendedTileDiscardsStaleResult(t *testing.T) {
	exec := &manualExecutor{}
	first := NewItemTile("minecraft:stone")
	second := NewItemTile("minecraft:diamond")

	results := []Tile{first, second}
	n := 0
	tile := NewSuspendedTile(EmptyTile(), func(context.Context, *Slate, Viewer) Tile {
		r := results[n]
		n++
		return r
	})
	tile.Executor = exec

	tile.UpdateTile(nil, nil) // T1
	tile.RefreshTile()
	tile.UpdateTile(nil, nil) // T2
	require.Len(t, exec.tasks, 2)

	exec.run(0)
	assert.Equal(t, SuspendedRunning, tile.State(), "T1 must not commit once T2 started")
	assert.Same(t, tile.Placeholder, tile.Current())

	exec.run(1)
	assert.Equal(t, SuspendedFinished, tile.State())
	assert.Same(t, second, tile.Current())
}

func TestSuspendedTileRefreshCancels(t *testing.T) {
	exec := &manualExecutor{}
	var ctxs []context.Context
	tile := NewSuspendedTile(nil, func(ctx context.Context, _ *Slate, _ Viewer) Tile {
		ctxs = append(ctxs, ctx)
		return EmptyTile()
	})
	tile.Executor = exec

	tile.UpdateTile(nil, nil)
	tile.RefreshTile()
	exec.run(0)

	require.Len(t, ctxs, 1)
	assert.ErrorIs(t, ctxs[0].Err(), context.Canceled)
	assert.Equal(t, SuspendedEmpty, tile.State(), "a refreshed tile recomputes on next display")
	assert.Nil(t, tile.Current())
	assert.True(t, tile.DisplayedStack(nil, nil).IsEmpty())
}

func TestSuspendedTileTimeout(t *testing.T) {
	exec := &manualExecutor{}
	tile := NewSuspendedTile(EmptyTile(), func(context.Context, *Slate, Viewer) Tile {
		return NewItemTile("minecraft:diamond")
	})
	tile.Executor = exec
	tile.Timeout = 10 * time.Millisecond

	tile.UpdateTile(nil, nil)
	assert.Eventually(t, func() bool {
		return tile.State() == SuspendedEmpty
	}, time.Second, 5*time.Millisecond)

	// the expired computation completing late is ignored
	exec.run(0)
	assert.Equal(t, SuspendedEmpty, tile.State())

	tile.UpdateTile(nil, nil)
	require.Len(t, exec.tasks, 2)
	exec.run(1)
	assert.Equal(t, SuspendedFinished, tile.State())
}

func TestSuspendedTileClicks(t *testing.T) {
	exec := &manualExecutor{}
	child := EmptyTile()
	var calls []string
	child.OnLeftClick(func(*Slate, Tile, ClickContext) { calls = append(calls, "child") })
	placeholder := EmptyTile()
	placeholder.OnLeftClick(func(*Slate, Tile, ClickContext) { calls = append(calls, "placeholder") })

	tile := NewSuspendedTile(placeholder, func(context.Context, *Slate, Viewer) Tile { return child })
	tile.Executor = exec
	tile.OnLeftClick(func(*Slate, Tile, ClickContext) { calls = append(calls, "own") })

	tile.UpdateTile(nil, nil)
	tile.CollectClickCallbacks(ClickLeft)(nil, tile, ClickContext{})
	assert.Equal(t, []string{"own"}, calls, "pending")

	calls = nil
	exec.run(0)
	tile.CollectClickCallbacks(ClickLeft)(nil, tile, ClickContext{})
	assert.Equal(t, []string{"own", "child"}, calls)
}

func TestSuspendedTileOnPool(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	tile := NewSuspendedTile(EmptyTile(), func(context.Context, *Slate, Viewer) Tile {
		defer wg.Done()
		return NewItemTile("minecraft:diamond")
	})
	tile.Executor = pool

	tile.UpdateTile(nil, nil)
	wg.Wait()
	assert.Eventually(t, func() bool {
		return tile.State() == SuspendedFinished
	}, time.Second, time.Millisecond)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)

	var (
		mu      sync.Mutex
		running int
		peak    int
		wg      sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			mu.Lock()
			running++
			peak = max(peak, running)
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	wg.Wait()
	pool.Close()

	assert.LessOrEqual(t, peak, 2)
}
