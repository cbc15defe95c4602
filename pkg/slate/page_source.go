package slate

import (
	"slices"
	"sync"
)

// PageSource backs a paged layer with a slice of items. Readers never observe
// a half-applied edit.
type PageSource[T any] struct {
	// modify is held for a whole Modify, layer update included. mu only
	// guards items, so the layer's factory can read them meanwhile.
	modify sync.Mutex

	mu    sync.Mutex
	items []T
}

// NewPageSource returns a source holding a copy of items.
func NewPageSource[T any](items ...T) *PageSource[T] {
	return &PageSource[T]{items: slices.Clone(items)}
}

// Len returns the number of items.
func (p *PageSource[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// At returns the item at i, or false when i is out of range.
func (p *PageSource[T]) At(i int) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.items) {
		var zero T
		return zero, false
	}
	return p.items[i], true
}

// Items returns a snapshot of the items.
func (p *PageSource[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.items)
}

// Layer returns a paged layer whose factory renders items through render.
func (p *PageSource[T]) Layer(width, height int, render func(item T, index int) Tile) *PagedLayer {
	return NewPagedLayer(width, height, p.Len(), func(_ *PagedLayer, index int) Tile {
		item, ok := p.At(index)
		if !ok {
			return nil
		}
		return render(item, index)
	})
}

// Modify replaces the items with edit's result and, when layer is not nil,
// resizes and regenerates it. Concurrent calls apply one after the other,
// each with its layer update.
func (p *PageSource[T]) Modify(layer *PagedLayer, edit func(items []T) []T) {
	p.modify.Lock()
	defer p.modify.Unlock()

	p.mu.Lock()
	p.items = edit(p.items)
	n := len(p.items)
	p.mu.Unlock()

	if layer != nil {
		layer.SetSlotCount(n)
	}
}
