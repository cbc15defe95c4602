package slate

import "github.com/go-mclib/slate/pkg/text"

// PageFactory produces the tile for a virtual index. A nil tile leaves the
// cell empty.
type PageFactory func(l *PagedLayer, index int) Tile

// PageChangeCallback runs after the current page changed.
type PageChangeCallback func(l *PagedLayer, oldPage, newPage int)

// PagedLayer is a layer showing one page of a virtual collection of
// slotCount tiles.
type PagedLayer struct {
	*Layer

	factory     PageFactory
	slotCount   int
	page        int
	pageChanges []PageChangeCallback
}

// NewPagedLayer returns a layer showing the first page of slotCount tiles
// produced by factory.
func NewPagedLayer(width, height, slotCount int, factory PageFactory) *PagedLayer {
	l := &PagedLayer{
		Layer:     NewLayer(width, height),
		factory:   factory,
		slotCount: slotCount,
	}
	l.UpdateTileGrid()
	return l
}

// PageSize is the number of tiles on one page.
func (l *PagedLayer) PageSize() int { return l.Width() * l.Height() }

// SlotCount returns the size of the virtual collection.
func (l *PagedLayer) SlotCount() int { return l.slotCount }

// CurrentPage returns the zero-based page shown.
func (l *PagedLayer) CurrentPage() int { return l.page }

// MaxPage returns the last valid page. It is 0 for an empty collection.
func (l *PagedLayer) MaxPage() int {
	size := l.PageSize()
	if l.slotCount <= 0 || size <= 0 {
		return 0
	}
	return (l.slotCount - 1) / size
}

// SetSlotCount resizes the virtual collection, keeping the current page in
// range, and regenerates the page.
func (l *PagedLayer) SetSlotCount(n int) {
	l.slotCount = n
	if !l.setPage(l.page) {
		l.UpdateTileGrid()
	}
}

// SetCurrentPage moves to page. Pages past the end wrap to the first page and
// negative pages wrap to the last one.
func (l *PagedLayer) SetCurrentPage(page int) {
	l.setPage(page)
}

// NextPage advances one page, wrapping around.
func (l *PagedLayer) NextPage() { l.SetCurrentPage(l.page + 1) }

// PreviousPage goes back one page, wrapping around.
func (l *PagedLayer) PreviousPage() { l.SetCurrentPage(l.page - 1) }

// OnPageChange registers cb to run whenever the current page changes.
func (l *PagedLayer) OnPageChange(cb PageChangeCallback) {
	l.pageChanges = append(l.pageChanges, cb)
}

// setPage reports whether the page changed, in which case the grid was
// regenerated.
func (l *PagedLayer) setPage(page int) bool {
	maxPage := l.MaxPage()
	switch {
	case page > maxPage:
		page = 0
	case page < 0:
		page = maxPage
	}
	if page == l.page {
		return false
	}
	old := l.page
	l.page = page
	l.UpdateTileGrid()
	for _, cb := range l.pageChanges {
		cb(l, old, page)
	}
	return true
}

// UpdateTileGrid clears the layer and asks the factory for every tile of the
// current page.
func (l *PagedLayer) UpdateTileGrid() {
	l.tiles.ClearAll()
	if l.slotCount <= 0 || l.factory == nil {
		return
	}
	size := l.PageSize()
	offset := l.page * size
	for i := range size {
		_ = l.tiles.Set(i, l.factory(l, offset+i))
	}
}

// NextPageTile returns a control advancing the page, or an inert tile when
// there is only one page. callbacks run after the page changed.
func (l *PagedLayer) NextPageTile(stack Stack, callbacks ...ClickCallback) Tile {
	return l.PageChangeTile(text.Literal("Next Page"), 1, stack, callbacks...)
}

// PreviousPageTile returns a control going back one page, or an inert tile
// when there is only one page. callbacks run after the page changed.
func (l *PagedLayer) PreviousPageTile(stack Stack, callbacks ...ClickCallback) Tile {
	return l.PageChangeTile(text.Literal("Previous Page"), -1, stack, callbacks...)
}

// PageChangeTile returns a control moving delta pages on a generic click,
// then running callbacks in order.
func (l *PagedLayer) PageChangeTile(title text.Line, delta int, stack Stack, callbacks ...ClickCallback) Tile {
	if l.MaxPage() <= 0 {
		return EmptyTile()
	}
	t := NewStackTile(stack)
	t.AddTooltip(title)
	t.OnGenericClick(func(s *Slate, tile Tile, ctx ClickContext) {
		l.SetCurrentPage(l.page + delta)
		for _, cb := range callbacks {
			cb(s, tile, ctx)
		}
	})
	return t
}
