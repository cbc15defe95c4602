package slate

// LayerTickCallback runs every tick while the layer's slate is open.
type LayerTickCallback func(s *Slate, l *Layer, v Viewer)

// Layer is an overlay grid composited over a slate's base grid at an anchor.
type Layer struct {
	tiles *Grid
	ticks []LayerTickCallback
}

// NewLayer returns an empty width x height layer.
func NewLayer(width, height int) *Layer {
	return &Layer{tiles: NewGrid(width, height)}
}

func (l *Layer) Width() int  { return l.tiles.Width() }
func (l *Layer) Height() int { return l.tiles.Height() }

// Tiles returns the layer's local grid.
func (l *Layer) Tiles() *Grid { return l.tiles }

// OnTick registers cb to run on every tick.
func (l *Layer) OnTick(cb LayerTickCallback) {
	l.ticks = append(l.ticks, cb)
}

func (l *Layer) tick(s *Slate, v Viewer) {
	for _, cb := range l.ticks {
		cb(s, l, v)
	}
}

// local converts a slate index into the layer's local index when the layer,
// placed at anchor on a grid of the given width, covers it.
func (l *Layer) local(anchor, index, width int) (int, bool) {
	if width <= 0 || index < 0 {
		return 0, false
	}
	ax, ay := anchor%width, anchor/width
	x, y := index%width-ax, index/width-ay
	if x < 0 || x >= l.Width() || y < 0 || y >= l.Height() {
		return 0, false
	}
	return l.tiles.Index(x, y), true
}
