// Package slate implements server-side inventory screens built from grids of
// interactive tiles.
//
// A Slate owns a base Grid sized by its Kind, an ordered stack of overlay
// layers, and callbacks for its lifecycle events. The host presents it to a
// player through the Viewer interface and forwards the player's clicks,
// screen closures and ticks back to it. Everything except SuspendedTile
// factories runs on the host's tick goroutine.
package slate

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/go-mclib/slate/pkg/text"
)

// DefaultLogger is used by slates without a Logger.
var DefaultLogger = log.New(os.Stderr, "slate: ", log.LstdFlags)

type layerEntry struct {
	anchor int
	layer  *Layer
}

// Slate is one screen: a base grid of tiles, layers composited on top of it
// and the callbacks driving its lifecycle.
type Slate struct {
	callbacks

	// Key identifies the slate for host code. It is not interpreted.
	Key   string
	Title text.Line

	// CanPlayerClose lets the player close the screen themselves.
	CanPlayerClose bool
	// CanBeClosed, when the player may not close the screen, makes the client
	// reopen it after a close attempt. When false the attempt is ignored.
	CanBeClosed bool

	Logger *log.Logger

	kind     Kind
	tiles    *Grid
	layers   []layerEntry
	parent   *Slate
	registry *Registry
	dirty    bool
	handled  *Handled
}

// New returns a detached slate of the given kind.
func New(kind Kind) *Slate {
	return &Slate{
		CanPlayerClose: true,
		CanBeClosed:    true,
		kind:           kind,
		tiles:          NewKindGrid(kind),
		dirty:          true,
	}
}

// NewInventory returns a slate shown in the player's own inventory. The
// player cannot close it.
func NewInventory() *Slate {
	s := New(KindInventory)
	s.CanPlayerClose = false
	s.CanBeClosed = false
	return s
}

func (s *Slate) Kind() Kind { return s.kind }

// SetKind changes the screen kind, replacing the base grid with an empty one
// of the new size.
func (s *Slate) SetKind(k Kind) {
	s.kind = k
	s.tiles = NewKindGrid(k)
	s.dirty = true
}

// Size is the number of tiles of the base grid.
func (s *Slate) Size() int { return s.tiles.Size() }

// Tiles returns the base grid.
func (s *Slate) Tiles() *Grid { return s.tiles }

// Parent returns the slate this one was created from, or nil.
func (s *Slate) Parent() *Slate { return s.parent }

// Layer adds an empty width x height layer whose top-left corner sits at the
// base grid index anchor.
func (s *Slate) Layer(anchor, width, height int) *Layer {
	l := NewLayer(width, height)
	s.AddLayer(anchor, l)
	return l
}

// PagedLayer adds a paged layer over slotCount virtual tiles.
func (s *Slate) PagedLayer(anchor, width, height, slotCount int, factory PageFactory) *PagedLayer {
	l := NewPagedLayer(width, height, slotCount, factory)
	s.AddLayer(anchor, l.Layer)
	return l
}

// AddLayer places l at anchor above every layer added before it.
func (s *Slate) AddLayer(anchor int, l *Layer) {
	s.layers = append(s.layers, layerEntry{anchor: anchor, layer: l})
	s.dirty = true
}

// RemoveLayer removes every placement of l and reports whether there was any.
func (s *Slate) RemoveLayer(l *Layer) bool {
	n := len(s.layers)
	s.layers = slices.DeleteFunc(s.layers, func(e layerEntry) bool { return e.layer == l })
	if len(s.layers) == n {
		return false
	}
	s.dirty = true
	return true
}

// Layers returns the layers in compositing order, bottom first.
func (s *Slate) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	for i, e := range s.layers {
		out[i] = e.layer
	}
	return out
}

// Subslate returns a new slate whose parent is s. Every slate of a tree opens
// through the registry its root was attached to.
func (s *Slate) Subslate(kind Kind) *Slate {
	return s.Adopt(New(kind))
}

// Adopt makes s the parent of child and returns child. A child without a
// logger inherits s's.
func (s *Slate) Adopt(child *Slate) *Slate {
	child.parent = s
	if child.Logger == nil {
		child.Logger = s.Logger
	}
	return child
}

// Tile resolves the tile shown at index: the most recently added layer
// covering index wins, otherwise the base grid. Out of range indices
// return nil.
func (s *Slate) Tile(index int) Tile {
	if !s.tiles.InBounds(index) {
		return nil
	}
	for _, e := range slices.Backward(s.layers) {
		if local, ok := e.layer.local(e.anchor, index, s.tiles.Width()); ok {
			if t := e.layer.tiles.Get(local); t != nil {
				return t
			}
		}
	}
	return s.tiles.Get(index)
}

// TileAt is Tile(y*width + x). Coordinates outside the grid return nil.
func (s *Slate) TileAt(x, y int) Tile {
	if x < 0 || x >= s.tiles.Width() || y < 0 || y >= s.tiles.Height() {
		return nil
	}
	return s.Tile(s.tiles.Index(x, y))
}

// Stacks renders every slot of the slate for v.
func (s *Slate) Stacks(v Viewer) []Stack {
	out := make([]Stack, s.tiles.Size())
	for i := range out {
		if t := s.Tile(i); t != nil {
			out[i] = t.DisplayedStack(s, v)
		}
	}
	return out
}

// MarkDirty schedules a full resync on the next tick.
func (s *Slate) MarkDirty() { s.dirty = true }

// Dirty reports whether the slate or any of its grids changed since the last
// resync.
func (s *Slate) Dirty() bool {
	if s.dirty || s.tiles.Dirty() {
		return true
	}
	for _, e := range s.layers {
		if e.layer.tiles.Dirty() {
			return true
		}
	}
	return false
}

func (s *Slate) clearDirty() {
	s.dirty = false
	s.tiles.ClearDirty()
	for _, e := range s.layers {
		e.layer.tiles.ClearDirty()
	}
}

func (s *Slate) String() string {
	return fmt.Sprintf("Slate{%s:%q, %s}", s.kind, s.Title.Plain(), s.tiles)
}

// reg returns the registry of s or of its nearest ancestor.
func (s *Slate) reg() *Registry {
	for p := s; p != nil; p = p.parent {
		if p.registry != nil {
			return p.registry
		}
	}
	return nil
}

// attach binds s and all of its ancestors to r, so that any slate reachable
// from the tree, including parents opened back later, resolves r.
func (s *Slate) attach(r *Registry) {
	for p := s; p != nil; p = p.parent {
		p.registry = r
	}
}

func (s *Slate) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return DefaultLogger
}

// HasKey reports whether s is not nil and carries key.
func HasKey(s *Slate, key string) bool {
	return s != nil && s.Key == key
}
