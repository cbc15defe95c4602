package layout

import (
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/go-mclib/slate/pkg/slate"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// Actions are the named click actions layouts may refer to besides the
	// built-in ones.
	Actions map[string]slate.ClickCallback

	// Logger is set on the built slates and used by the log action.
	// Defaults to slate.DefaultLogger.
	Logger *log.Logger
}

// Build validates l and builds it into a slate. Children are built as
// subslates of the slate that declares them.
func (l *Layout) Build(opts BuildOptions) (*slate.Slate, error) {
	if err := l.Validate(opts.Actions); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slate.DefaultLogger
	}
	b := builder{opts: opts}
	return b.slate(l, nil), nil
}

type builder struct {
	opts BuildOptions
}

func (b *builder) slate(l *Layout, parent *slate.Slate) *slate.Slate {
	kind, _ := slate.ParseKind(l.Kind)
	s := slate.New(kind)
	s.Logger = b.opts.Logger
	if parent != nil {
		parent.Adopt(s)
	}
	s.Key = l.Key
	s.Title = l.Title
	if l.CanPlayerClose != nil {
		s.CanPlayerClose = *l.CanPlayerClose
	}
	if l.CanBeClosed != nil {
		s.CanBeClosed = *l.CanBeClosed
	}

	children := make(map[string]*slate.Slate, len(l.Children))
	for _, name := range slices.Sorted(maps.Keys(l.Children)) {
		children[name] = b.slate(l.Children[name], s)
	}

	grid := s.Tiles()
	for _, spec := range l.Tiles {
		idx, _ := position(spec, grid.Width(), grid.Height())
		grid.MustSet(idx, b.tile(spec, children))
	}
	for _, r := range l.Redirects {
		mode, _ := parseRedirectMode(r.Mode)
		if err := grid.Redirect(r.Index, r.To, mode); err != nil {
			b.opts.Logger.Printf("layout: %s: redirect %d -> %d: %v", s, r.Index, r.To, err)
		}
	}

	for _, ls := range l.Layers {
		layer := s.Layer(ls.Anchor, ls.Width, ls.Height)
		for _, spec := range ls.Tiles {
			idx, _ := position(spec, ls.Width, ls.Height)
			layer.Tiles().MustSet(idx, b.tile(spec, children))
		}
	}

	for _, p := range l.Pages {
		pages := slate.NewPageSource(p.Entries...).Layer(p.Width, p.Height, func(spec TileSpec, _ int) slate.Tile {
			return b.tile(spec, children)
		})
		s.AddLayer(p.Anchor, pages.Layer)
		if p.Next != nil {
			idx, _ := position(*p.Next, grid.Width(), grid.Height())
			grid.MustSet(idx, b.control(pages, *p.Next, 1))
		}
		if p.Previous != nil {
			idx, _ := position(*p.Previous, grid.Width(), grid.Height())
			grid.MustSet(idx, b.control(pages, *p.Previous, -1))
		}
	}
	return s
}

func (b *builder) control(pages *slate.PagedLayer, spec TileSpec, delta int) slate.Tile {
	stack := stackOf(spec)
	if len(spec.Tooltip) > 0 {
		return pages.PageChangeTile(spec.Tooltip[0], delta, stack)
	}
	if delta > 0 {
		return pages.NextPageTile(stack)
	}
	return pages.PreviousPageTile(stack)
}

func (b *builder) tile(spec TileSpec, children map[string]*slate.Slate) slate.Tile {
	t := slate.NewStackTile(stackOf(spec))
	t.Immovable = !spec.Movable
	t.AddTooltip(spec.Tooltip...)
	for _, name := range slices.Sorted(maps.Keys(spec.OnClick)) {
		cb := b.chain(spec.OnClick[name], children)
		if name == ClickGeneric {
			t.OnGenericClick(cb)
			continue
		}
		ct, _ := slate.ParseClickTypeName(name)
		t.OnClick(ct, cb)
	}
	return t
}

// chain runs the named actions in order.
func (b *builder) chain(names []string, children map[string]*slate.Slate) slate.ClickCallback {
	cbs := make([]slate.ClickCallback, 0, len(names))
	for _, name := range names {
		cbs = append(cbs, b.action(name, children))
	}
	return func(s *slate.Slate, t slate.Tile, ctx slate.ClickContext) {
		for _, cb := range cbs {
			cb(s, t, ctx)
		}
	}
}

func (b *builder) action(name string, children map[string]*slate.Slate) slate.ClickCallback {
	switch {
	case name == ActionClose:
		return func(s *slate.Slate, _ slate.Tile, ctx slate.ClickContext) { s.Close(ctx.Viewer) }
	case name == ActionOpenParent:
		return func(s *slate.Slate, _ slate.Tile, ctx slate.ClickContext) { s.OpenParent(ctx.Viewer) }
	case name == ActionLog:
		return func(s *slate.Slate, _ slate.Tile, ctx slate.ClickContext) {
			b.opts.Logger.Printf("layout: %s %s-clicked slot %d of %s", ctx.Viewer.Name(), ctx.Type, ctx.Slot, s)
		}
	case strings.HasPrefix(name, ActionOpenPrefix):
		child := children[strings.TrimPrefix(name, ActionOpenPrefix)]
		return func(_ *slate.Slate, _ slate.Tile, ctx slate.ClickContext) { child.Open(ctx.Viewer) }
	}
	return b.opts.Actions[name]
}

func stackOf(spec TileSpec) slate.Stack {
	if spec.Item == "" {
		return slate.Stack{}
	}
	count := spec.Count
	if count == 0 {
		count = 1
	}
	return slate.ItemCount(spec.Item, count)
}
