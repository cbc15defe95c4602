package wire

// Slot indexes of the player's own inventory screen, window 0.
const (
	WindowInventory = 0

	SlotCraftingResult = 0
	SlotArmorHead      = 5
	SlotArmorFeet      = 8
	SlotMainStart      = 9
	SlotHotbarStart    = 36
	SlotOffhand        = 45
	InventorySlots     = 46

	// PlayerInvSlots are appended after the container slots of every screen:
	// the main inventory (27) then the hotbar (9).
	PlayerInvSlots = 36
)

// InventorySlot maps an index of a KindInventory slate (main rows then the
// hotbar) to the slot of the inventory screen.
func InventorySlot(index int) int {
	if index < 0 || index >= PlayerInvSlots {
		return -1
	}
	return SlotMainStart + index
}

// InventoryIndex is the inverse of InventorySlot: it maps a slot of the
// inventory screen to a KindInventory slate index, or -1 for armor, crafting
// and off-hand slots.
func InventoryIndex(slot int) int {
	if slot < SlotMainStart || slot >= SlotMainStart+PlayerInvSlots {
		return -1
	}
	return slot - SlotMainStart
}

// ScreenSlot maps a slot of an open screen with containerSize slots to the
// inventory slate index it shows, or -1 for container slots.
func ScreenSlot(slot, containerSize int) int {
	idx := slot - containerSize
	if idx < 0 || idx >= PlayerInvSlots {
		return -1
	}
	return idx
}
