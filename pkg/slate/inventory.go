package slate

// HotbarStart is the index of the first hotbar tile of a KindInventory slate.
const HotbarStart = 27

// HotbarIndex returns the slate index of hotbar slot i.
func HotbarIndex(i int) int { return HotbarStart + i }

// SetHotbar stores t in hotbar slot i of an inventory slate.
func (s *Slate) SetHotbar(i int, t Tile) error {
	return s.tiles.Set(HotbarIndex(i), t)
}

// Hotbar returns the tile in hotbar slot i, or nil.
func (s *Slate) Hotbar(i int) Tile {
	if i < 0 || i > 8 {
		return nil
	}
	return s.Tile(HotbarIndex(i))
}

// HandleUse routes an item use by v to the selected hotbar tile of an open
// inventory slate, as a right click. It reports whether the slate consumed
// the interaction, in which case the host cancels it.
func (s *Slate) HandleUse(v Viewer, sneaking bool) bool {
	return s.interact(v, 1, ActionPickup, sneaking)
}

// HandleSwing routes a hand swing as a left click.
func (s *Slate) HandleSwing(v Viewer, sneaking bool) bool {
	return s.interact(v, 0, ActionPickup, sneaking)
}

// HandleDrop routes a drop key press as a throw click.
func (s *Slate) HandleDrop(v Viewer, sneaking bool) bool {
	return s.interact(v, 0, ActionThrow, sneaking)
}

func (s *Slate) interact(v Viewer, button int, action Action, sneaking bool) bool {
	if s.kind != KindInventory || s.handled == nil {
		return false
	}

	slot := HotbarIndex(v.SelectedSlot())
	ctx := ClickContext{
		Tile:   s.Tile(slot),
		Slot:   slot,
		Button: button,
		Action: action,
		Type:   ParseClickType(button, action),
		Viewer: v,
	}
	if sneaking {
		ctx.Modifiers |= ModShift
	}
	s.OnSlotClicked(ctx)
	s.dirty = true
	return true
}
