package slate

import (
	"github.com/go-mclib/protocol/nbt"
	"github.com/go-mclib/slate/pkg/text"
)

// Tile is the content and behaviour of one addressable cell.
type Tile interface {
	// BaseStack produces the undecorated display stack. It may depend on the
	// viewer, which allows per-player content.
	BaseStack(s *Slate, v Viewer) Stack

	// DisplayedStack is the stack actually sent to the client.
	DisplayedStack(s *Slate, v Viewer) Stack

	// CollectClickCallbacks combines every callback registered for t into one.
	CollectClickCallbacks(t ClickType) ClickCallback
}

type clickEntry struct {
	typ ClickType
	cb  ClickCallback
}

// Base carries the metadata shared by all tiles: tooltip, immovability and
// click callbacks. Embed it to implement Tile.
type Base struct {
	// Tooltip is the full tooltip. The first line is the name, the rest is
	// the description.
	Tooltip []text.Line

	// Immovable marks displayed stacks so supporting clients refuse to drag them.
	Immovable bool

	clicks []clickEntry
}

// AddTooltip appends lines to the tooltip.
func (b *Base) AddTooltip(lines ...text.Line) {
	b.Tooltip = append(b.Tooltip, lines...)
}

// AddTooltipStrings appends unstyled lines to the tooltip.
func (b *Base) AddTooltipStrings(lines ...string) {
	b.AddTooltip(text.Literals(lines...)...)
}

// AddTooltipChunks appends styled chunks separated by empty lines.
func (b *Base) AddTooltipChunks(chunks ...text.Chunk) {
	b.AddTooltip(text.Flatten(chunks...)...)
}

// OnClick registers cb for clicks of type t. Callbacks run in registration order.
func (b *Base) OnClick(t ClickType, cb ClickCallback) {
	b.clicks = append(b.clicks, clickEntry{typ: t, cb: cb})
}

// OnLeftClick registers cb for primary clicks.
func (b *Base) OnLeftClick(cb ClickCallback) { b.OnClick(ClickLeft, cb) }

// OnGenericClick registers cb for a primary click inside the screen and for
// the alternate button outside of it (item use with an inventory slate),
// ignoring double clicks.
func (b *Base) OnGenericClick(cb ClickCallback) {
	b.OnClick(ClickLeft, func(s *Slate, t Tile, ctx ClickContext) {
		if ctx.WithinScreen && !ctx.Modifiers.Has(ModDouble) {
			cb(s, t, ctx)
		}
	})
	b.OnClick(ClickRight, func(s *Slate, t Tile, ctx ClickContext) {
		if !ctx.WithinScreen && !ctx.Modifiers.Has(ModDouble) {
			cb(s, t, ctx)
		}
	})
}

// CollectClickCallbacks returns a callback invoking, in order, every callback
// registered for t. With no matches it does nothing.
func (b *Base) CollectClickCallbacks(t ClickType) ClickCallback {
	return func(s *Slate, tile Tile, ctx ClickContext) {
		for _, e := range b.clicks {
			if e.typ == t {
				e.cb(s, tile, ctx)
			}
		}
	}
}

// Decorate applies the tooltip and immovability to a base stack.
// The tile itself is left untouched.
func (b *Base) Decorate(stack Stack) Stack {
	if len(b.Tooltip) == 0 {
		stack.HideTooltip = true
	} else {
		name := b.Tooltip[0]
		stack.Name = &name
		stack.Lore = nil
		if len(b.Tooltip) > 1 {
			lore := make([]text.Line, 0, len(b.Tooltip)-1)
			for _, l := range b.Tooltip[1:] {
				lore = append(lore, l.Fill(text.Style{Color: text.White, Italic: text.Bool(false)}))
			}
			stack.Lore = lore
		}
	}
	if b.Immovable {
		stack = stack.withTag(BukkitCompound, ImmovableTag, nbt.Byte(1))
	}
	return stack
}
