package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/slate/pkg/slate"
)

// Built-in actions.
const (
	ActionClose      = "close"
	ActionOpenParent = "open_parent"
	ActionLog        = "log"

	// ActionOpenPrefix opens the named child: "open:confirm".
	ActionOpenPrefix = "open:"
)

// ClickGeneric registers actions with slate.Base.OnGenericClick.
const ClickGeneric = "generic"

// Validate reports every problem of l and its children. Actions other than
// the built-in ones must be present in actions.
func (l *Layout) Validate(actions map[string]slate.ClickCallback) error {
	v := validator{actions: actions}
	v.layout("", l, false)
	return errors.Join(v.errs...)
}

type validator struct {
	actions map[string]slate.ClickCallback
	errs    []error
}

func (v *validator) errorf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) layout(path string, l *Layout, hasParent bool) {
	kind, err := slate.ParseKind(l.Kind)
	if err != nil {
		v.errorf("%skind: %w", path, err)
		return
	}
	w, h := kind.Width(), kind.Height()

	for i, t := range l.Tiles {
		where := fmt.Sprintf("%stiles[%d]", path, i)
		v.position(where, t, w, h)
		v.tile(where, t, l, hasParent)
	}

	for i, r := range l.Redirects {
		where := fmt.Sprintf("%sredirects[%d]", path, i)
		if r.Index < 0 || r.Index >= w*h {
			v.errorf("%s: index %d outside %s", where, r.Index, kind)
		}
		if r.To < 0 || r.To >= w*h {
			v.errorf("%s: target %d outside %s", where, r.To, kind)
		}
		if _, err := parseRedirectMode(r.Mode); err != nil {
			v.errorf("%s: %w", where, err)
		}
	}

	for i, ls := range l.Layers {
		where := fmt.Sprintf("%slayers[%d]", path, i)
		v.area(where, ls.Anchor, ls.Width, ls.Height, w, h)
		for j, t := range ls.Tiles {
			tw := fmt.Sprintf("%s.tiles[%d]", where, j)
			v.position(tw, t, ls.Width, ls.Height)
			v.tile(tw, t, l, hasParent)
		}
	}

	for i, p := range l.Pages {
		where := fmt.Sprintf("%spages[%d]", path, i)
		v.area(where, p.Anchor, p.Width, p.Height, w, h)
		for j, t := range p.Entries {
			v.tile(fmt.Sprintf("%s.entries[%d]", where, j), t, l, hasParent)
		}
		for name, ctl := range map[string]*TileSpec{"next": p.Next, "previous": p.Previous} {
			if ctl == nil {
				continue
			}
			cw := where + "." + name
			v.position(cw, *ctl, w, h)
			if ctl.Item != "" && items.ItemID(ctl.Item) <= 0 {
				v.errorf("%s: unknown item %q", cw, ctl.Item)
			}
		}
	}

	for name, child := range l.Children {
		if child == nil {
			v.errorf("%schildren.%s: empty layout", path, name)
			continue
		}
		v.layout(fmt.Sprintf("%schildren.%s.", path, name), child, true)
	}
}

func (v *validator) area(where string, anchor, width, height, w, h int) {
	if width <= 0 || height <= 0 {
		v.errorf("%s: size %dx%d must be positive", where, width, height)
		return
	}
	if anchor < 0 || anchor >= w*h {
		v.errorf("%s: anchor %d outside the %dx%d grid", where, anchor, w, h)
		return
	}
	x, y := anchor%w, anchor/w
	if x+width > w || y+height > h {
		v.errorf("%s: %dx%d at (%d, %d) does not fit the %dx%d grid", where, width, height, x, y, w, h)
	}
}

func (v *validator) position(where string, t TileSpec, w, h int) {
	if _, err := position(t, w, h); err != nil {
		v.errorf("%s: %w", where, err)
	}
}

func (v *validator) tile(where string, t TileSpec, l *Layout, hasParent bool) {
	if t.Item != "" && items.ItemID(t.Item) <= 0 {
		v.errorf("%s: unknown item %q", where, t.Item)
	}
	if t.Count < 0 || t.Count > 99 {
		v.errorf("%s: count %d outside 0-99", where, t.Count)
	}
	for name, actions := range t.OnClick {
		if _, ok := slate.ParseClickTypeName(name); !ok && name != ClickGeneric {
			v.errorf("%s.on_click: unknown click type %q", where, name)
		}
		for _, a := range actions {
			v.action(fmt.Sprintf("%s.on_click.%s", where, name), a, l, hasParent)
		}
	}
}

func (v *validator) action(where, a string, l *Layout, hasParent bool) {
	switch {
	case a == ActionClose, a == ActionLog:
	case a == ActionOpenParent:
		if !hasParent {
			v.errorf("%s: %s on a layout without parent", where, a)
		}
	case strings.HasPrefix(a, ActionOpenPrefix):
		name := strings.TrimPrefix(a, ActionOpenPrefix)
		if _, ok := l.Children[name]; !ok {
			v.errorf("%s: no child layout %q", where, name)
		}
	default:
		if _, ok := v.actions[a]; !ok {
			v.errorf("%s: unknown action %q", where, a)
		}
	}
}

// position returns the grid index of a positioned tile.
func position(t TileSpec, w, h int) (int, error) {
	switch {
	case t.Index != nil && t.At != nil:
		return 0, errors.New("tile has both at and index")
	case t.Index != nil:
		if *t.Index < 0 || *t.Index >= w*h {
			return 0, fmt.Errorf("index %d outside the %dx%d grid", *t.Index, w, h)
		}
		return *t.Index, nil
	case t.At != nil:
		if len(t.At) != 2 {
			return 0, fmt.Errorf("at needs [x, y], got %v", t.At)
		}
		x, y := t.At[0], t.At[1]
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0, fmt.Errorf("(%d, %d) outside the %dx%d grid", x, y, w, h)
		}
		return y*w + x, nil
	}
	return 0, errNoPosition
}

func parseRedirectMode(mode string) (slate.RedirectMode, error) {
	switch strings.ToLower(mode) {
	case "", "normal":
		return slate.RedirectNormal, nil
	case "invisible":
		return slate.RedirectInvisible, nil
	}
	return 0, fmt.Errorf("unknown redirect mode %q", mode)
}
