package slate

import (
	"sync"
	"testing"

	"github.com/go-mclib/slate/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexTile(_ *PagedLayer, index int) Tile {
	t := EmptyTile()
	t.Stack = ItemCount("minecraft:stone", index+1)
	return t
}

func TestPagedLayerWindow(t *testing.T) {
	var got []int
	l := NewPagedLayer(5, 1, 25, func(_ *PagedLayer, index int) Tile {
		got = append(got, index)
		return indexTile(nil, index)
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 4, l.MaxPage())

	got = nil
	l.SetCurrentPage(2)
	assert.Equal(t, []int{10, 11, 12, 13, 14}, got)
	for i := range 5 {
		assert.Equal(t, 10+i+1, l.Tiles().Get(i).BaseStack(nil, nil).Count)
	}
}

func TestPagedLayerWrap(t *testing.T) {
	tests := []struct {
		slots, w, h int
		maxPage     int
	}{
		{25, 5, 1, 4},
		{10, 5, 1, 1},
		{5, 5, 1, 0},
		{1, 9, 4, 0},
		{37, 9, 4, 1},
	}

	for _, tt := range tests {
		l := NewPagedLayer(tt.w, tt.h, tt.slots, indexTile)
		require.Equal(t, tt.maxPage, l.MaxPage(), "slots=%d", tt.slots)

		l.SetCurrentPage(tt.maxPage + 1)
		assert.Equal(t, 0, l.CurrentPage())

		l.SetCurrentPage(-1)
		assert.Equal(t, tt.maxPage, l.CurrentPage())
	}
}

func TestPagedLayerEmpty(t *testing.T) {
	calls := 0
	l := NewPagedLayer(3, 3, 0, func(*PagedLayer, int) Tile {
		calls++
		return EmptyTile()
	})

	assert.Equal(t, 0, l.MaxPage())
	assert.Equal(t, 0, calls)
	for _, tile := range l.Tiles().All() {
		assert.Nil(t, tile)
	}

	l.SetSlotCount(-3)
	assert.Equal(t, 0, l.MaxPage())
	assert.Equal(t, 0, calls)
}

func TestPagedLayerAbsentTiles(t *testing.T) {
	// the last page is partially filled
	l := NewPagedLayer(5, 1, 7, func(l *PagedLayer, index int) Tile {
		if index >= l.SlotCount() {
			return nil
		}
		return indexTile(l, index)
	})
	l.NextPage()
	assert.NotNil(t, l.Tiles().Get(1))
	assert.Nil(t, l.Tiles().Get(2))
}

func TestPagedLayerSetSlotCount(t *testing.T) {
	calls := 0
	l := NewPagedLayer(5, 1, 25, func(l *PagedLayer, index int) Tile {
		calls++
		return indexTile(l, index)
	})
	l.SetCurrentPage(4)

	calls = 0
	l.SetSlotCount(12) // max page 2, page 4 wraps to 0
	assert.Equal(t, 0, l.CurrentPage())
	assert.Equal(t, 5, calls, "regenerated exactly once")

	calls = 0
	l.SetSlotCount(13) // page unchanged, still regenerated
	assert.Equal(t, 0, l.CurrentPage())
	assert.Equal(t, 5, calls)
}

func TestPagedLayerPageChange(t *testing.T) {
	l := NewPagedLayer(5, 1, 25, indexTile)

	var changes [][2]int
	l.OnPageChange(func(_ *PagedLayer, oldPage, newPage int) {
		changes = append(changes, [2]int{oldPage, newPage})
	})

	l.NextPage()
	l.SetCurrentPage(1) // unchanged
	l.PreviousPage()
	l.PreviousPage()

	assert.Equal(t, [][2]int{{0, 1}, {1, 0}, {0, 4}}, changes)
}

func TestPageChangeTiles(t *testing.T) {
	single := NewPagedLayer(5, 1, 5, indexTile)
	next := single.NextPageTile(Item("minecraft:arrow"))
	assert.True(t, next.DisplayedStack(nil, nil).IsEmpty(), "no controls with a single page")

	l := NewPagedLayer(5, 1, 25, indexTile)
	next = l.NextPageTile(Item("minecraft:arrow"))
	prev := l.PreviousPageTile(Item("minecraft:arrow"))

	stack := next.DisplayedStack(nil, nil)
	require.NotNil(t, stack.Name)
	assert.Equal(t, "Next Page", stack.Name.Text)

	click := ClickContext{Type: ClickLeft, WithinScreen: true}
	next.CollectClickCallbacks(ClickLeft)(nil, next, click)
	assert.Equal(t, 1, l.CurrentPage())

	prev.CollectClickCallbacks(ClickLeft)(nil, prev, click)
	prev.CollectClickCallbacks(ClickLeft)(nil, prev, click)
	assert.Equal(t, 4, l.CurrentPage())

	double := ClickContext{Type: ClickLeft, WithinScreen: true, Modifiers: ModDouble}
	next.CollectClickCallbacks(ClickLeft)(nil, next, double)
	assert.Equal(t, 4, l.CurrentPage())
}

func TestPageChangeTileCallbacks(t *testing.T) {
	l := NewPagedLayer(5, 1, 25, indexTile)
	var seen []int
	after := func(*Slate, Tile, ClickContext) { seen = append(seen, l.CurrentPage()) }
	tile := l.PageChangeTile(text.Literal("Skip"), 2, Item("minecraft:arrow"), after, after)

	tile.CollectClickCallbacks(ClickLeft)(nil, tile, ClickContext{Type: ClickLeft, WithinScreen: true})
	assert.Equal(t, []int{2, 2}, seen)

	l.NextPageTile(Item("minecraft:arrow"), after).CollectClickCallbacks(ClickLeft)(nil, nil, ClickContext{Type: ClickLeft, WithinScreen: true})
	assert.Equal(t, []int{2, 2, 3}, seen)
}

func TestPageSource(t *testing.T) {
	src := NewPageSource("a", "b", "c")
	l := src.Layer(2, 1, func(item string, _ int) Tile {
		tile := EmptyTile()
		tile.AddTooltipStrings(item)
		return tile
	})

	assert.Equal(t, 3, l.SlotCount())
	assert.Equal(t, 1, l.MaxPage())

	name := func(i int) string {
		tile := l.Tiles().Get(i)
		if tile == nil {
			return ""
		}
		return tile.DisplayedStack(nil, nil).Name.Text
	}
	assert.Equal(t, "a", name(0))

	src.Modify(l, func(items []string) []string { return append(items, "d", "e") })
	assert.Equal(t, 5, l.SlotCount())
	assert.Equal(t, 2, l.MaxPage())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, src.Items())

	l.SetCurrentPage(2)
	assert.Equal(t, "e", name(0))
	assert.Equal(t, "", name(1))

	src.Modify(l, func([]string) []string { return nil })
	assert.Equal(t, 0, l.CurrentPage())
	assert.Equal(t, "", name(0))

	_, ok := src.At(0)
	assert.False(t, ok)
}

func TestPageSourceConcurrentModify(t *testing.T) {
	src := NewPageSource[int]()
	l := src.Layer(3, 1, func(item int, _ int) Tile {
		return NewStackTile(ItemCount("minecraft:stone", item+1))
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src.Modify(l, func(items []int) []int { return append(items, i) })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, src.Len())
	assert.Equal(t, 50, l.SlotCount())
	assert.Equal(t, 16, l.MaxPage())
	for i, item := range src.Items()[:3] {
		tile := l.Tiles().Get(i)
		require.NotNil(t, tile)
		assert.Equal(t, item+1, tile.DisplayedStack(nil, nil).Count)
	}
}
