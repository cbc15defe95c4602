package slate

import (
	"maps"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/protocol/nbt"
	"github.com/go-mclib/slate/pkg/text"
)

// Keys of the custom data compound that marks a stack as immovable for
// clients that understand it.
const (
	BukkitCompound = "PublicBukkitValues"
	ImmovableTag   = "noxesium:immovable"
)

// Stack is the display artifact of a tile: the item the client renders in a
// slot, with its name, lore and custom data. The zero value is an empty slot.
type Stack struct {
	Item  int32 // items registry id
	Count int

	// Name overrides the item's default name when set.
	Name        *text.Line
	Lore        []text.Line
	HideTooltip bool

	// CustomData is the custom_data component of the stack.
	CustomData nbt.Compound
}

// Item returns a single-count stack of the named item, e.g.
// "minecraft:diamond". Unknown names yield an empty stack.
func Item(name string) Stack {
	id := items.ItemID(name)
	if id <= 0 {
		return Stack{}
	}
	return Stack{Item: id, Count: 1}
}

// ItemCount is Item with an explicit count.
func ItemCount(name string, count int) Stack {
	s := Item(name)
	if !s.IsEmpty() {
		s.Count = count
	}
	return s
}

// IsEmpty reports whether the stack renders as an empty slot.
func (s Stack) IsEmpty() bool {
	return s.Item <= 0 || s.Count <= 0
}

// ItemName returns the registry name of the stack's item.
func (s Stack) ItemName() string {
	if s.IsEmpty() {
		return "minecraft:air"
	}
	return items.ItemName(s.Item)
}

// DisplayName returns the plain name the client shows for the stack.
func (s Stack) DisplayName() string {
	if s.Name != nil {
		return s.Name.Plain()
	}
	return s.ItemName()
}

// Immovable reports whether the stack carries the immovable marker.
func (s Stack) Immovable() bool {
	inner, _ := s.CustomData[BukkitCompound].(nbt.Compound)
	v, ok := inner[ImmovableTag].(nbt.Byte)
	return ok && v != 0
}

// withTag returns a copy of s whose custom data has key set inside compound.
// The receiver's compounds are never modified.
func (s Stack) withTag(compound, key string, value nbt.Tag) Stack {
	data := maps.Clone(s.CustomData)
	if data == nil {
		data = make(nbt.Compound, 1)
	}
	prev, _ := data[compound].(nbt.Compound)
	inner := maps.Clone(prev)
	if inner == nil {
		inner = make(nbt.Compound, 1)
	}
	inner[key] = value
	data[compound] = inner
	s.CustomData = data
	return s
}
