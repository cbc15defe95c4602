package slate

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

// ErrOutOfBounds is returned when writing outside a grid.
var ErrOutOfBounds = errors.New("tile index out of bounds")

type redirect struct {
	target int
	mode   RedirectMode
}

// Grid is a fixed-size row-major array of optional tiles.
type Grid struct {
	width, height int
	tiles         []Tile
	redirects     map[int]redirect
	dirty         bool
}

// NewGrid allocates an empty width x height grid. Negative dimensions are
// treated as zero.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		width:     width,
		height:    height,
		tiles:     make([]Tile, width*height),
		redirects: make(map[int]redirect),
	}
}

// NewKindGrid allocates a grid matching the kind's dimensions.
func NewKindGrid(k Kind) *Grid {
	return NewGrid(k.Width(), k.Height())
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Size() int   { return len(g.tiles) }

// LastIndex is Size()-1.
func (g *Grid) LastIndex() int { return len(g.tiles) - 1 }

// Index converts coordinates to a linear index without checking bounds.
func (g *Grid) Index(x, y int) int { return y*g.width + x }

// Coords converts a linear index to coordinates without checking bounds.
func (g *Grid) Coords(index int) (x, y int) {
	if g.width == 0 {
		return 0, 0
	}
	return index % g.width, index / g.width
}

// InBounds reports whether index addresses a cell.
func (g *Grid) InBounds(index int) bool {
	return index >= 0 && index < len(g.tiles)
}

// Dirty reports whether a cell changed identity since the last ClearDirty.
func (g *Grid) Dirty() bool { return g.dirty }

// ClearDirty resets the dirty flag.
func (g *Grid) ClearDirty() { g.dirty = false }

// Get returns the tile at index, following a redirect if one is installed.
// Out of range indices return nil.
func (g *Grid) Get(index int) Tile {
	if !g.InBounds(index) {
		return nil
	}
	if r, ok := g.redirects[index]; ok {
		if !g.InBounds(r.target) {
			return nil
		}
		parent := g.tiles[r.target]
		if parent == nil {
			return nil
		}
		return &RedirectedTile{Parent: parent, Mode: r.mode}
	}
	return g.tiles[index]
}

// At returns the tile at (x, y), or nil outside the grid.
func (g *Grid) At(x, y int) Tile {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return g.Get(g.Index(x, y))
}

// Set stores t at index. A nil t clears the cell. Setting the tile already
// stored is a no-op and leaves the dirty flag untouched.
func (g *Grid) Set(index int, t Tile) error {
	if err := g.check(index); err != nil {
		return err
	}
	if sameTile(g.tiles[index], t) {
		return nil
	}
	g.tiles[index] = t
	g.dirty = true
	return nil
}

// SetAt stores t at (x, y).
func (g *Grid) SetAt(x, y int, t Tile) error {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return fmt.Errorf("%w: (%d, %d), size %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.Set(g.Index(x, y), t)
}

// MustSet is Set for static layouts, panicking on a bounds error.
func (g *Grid) MustSet(index int, t Tile) {
	if err := g.Set(index, t); err != nil {
		panic(err)
	}
}

// MustSetAt is SetAt, panicking on a bounds error.
func (g *Grid) MustSetAt(x, y int, t Tile) {
	if err := g.SetAt(x, y, t); err != nil {
		panic(err)
	}
}

// Clear removes the tile at index.
func (g *Grid) Clear(index int) error {
	return g.Set(index, nil)
}

// ClearAll removes every tile. Redirects are kept.
func (g *Grid) ClearAll() {
	for i := range g.tiles {
		if g.tiles[i] != nil {
			g.tiles[i] = nil
			g.dirty = true
		}
	}
}

// Redirect makes index resolve to the tile stored at target. The tiles
// stored at either index are not affected.
func (g *Grid) Redirect(index, target int, mode RedirectMode) error {
	if err := g.check(index); err != nil {
		return err
	}
	if err := g.check(target); err != nil {
		return err
	}
	g.redirects[index] = redirect{target: target, mode: mode}
	g.dirty = true
	return nil
}

// RemoveRedirect drops the redirect installed at index, if any.
func (g *Grid) RemoveRedirect(index int) {
	if _, ok := g.redirects[index]; ok {
		delete(g.redirects, index)
		g.dirty = true
	}
}

// All yields (index, tile) for every cell in index order, resolving
// redirects. Empty cells yield a nil tile.
func (g *Grid) All() iter.Seq2[int, Tile] {
	return func(yield func(int, Tile) bool) {
		for i := range g.tiles {
			if !yield(i, g.Get(i)) {
				return
			}
		}
	}
}

// Fill sets every cell to the tile returned by fn.
func (g *Grid) Fill(fn func(index int) Tile) {
	for i := range g.tiles {
		_ = g.Set(i, fn(i))
	}
}

func (g *Grid) String() string {
	n := 0
	for _, t := range g.tiles {
		if t != nil {
			n++
		}
	}
	return fmt.Sprintf("Grid{%dx%d, %d tiles}", g.width, g.height, n)
}

func (g *Grid) check(index int) error {
	if !g.InBounds(index) {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfBounds, index, len(g.tiles))
	}
	return nil
}

// sameTile compares tile identity without panicking on non-comparable
// dynamic types.
func sameTile(a, b Tile) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
