package slate

import (
	"fmt"
	"strings"
)

// Kind selects the client screen a slate is shown in. It fixes the grid
// dimensions and the protocol menu type.
type Kind int32

const (
	KindGeneric9x1 Kind = iota
	KindGeneric9x2
	KindGeneric9x3 // single chest, barrel
	KindGeneric9x4
	KindGeneric9x5
	KindGeneric9x6 // double chest
	KindGeneric3x3 // dispenser, dropper
	KindCrafter3x3
	KindAnvil
	KindBeacon
	KindFurnace
	KindHopper
	KindShulkerBox

	// KindInventory is the player's own inventory: three main rows followed
	// by the hotbar row. It has no menu type and is never sent as a screen.
	KindInventory
)

type kindInfo struct {
	name          string
	width, height int
	menuID        int32 // minecraft:menu registry id, -1 if none
}

var kinds = map[Kind]kindInfo{
	KindGeneric9x1: {"generic_9x1", 9, 1, 0},
	KindGeneric9x2: {"generic_9x2", 9, 2, 1},
	KindGeneric9x3: {"generic_9x3", 9, 3, 2},
	KindGeneric9x4: {"generic_9x4", 9, 4, 3},
	KindGeneric9x5: {"generic_9x5", 9, 5, 4},
	KindGeneric9x6: {"generic_9x6", 9, 6, 5},
	KindGeneric3x3: {"generic_3x3", 3, 3, 6},
	KindCrafter3x3: {"crafter_3x3", 3, 3, 7},
	KindAnvil:      {"anvil", 3, 1, 8},
	KindBeacon:     {"beacon", 1, 1, 9},
	KindFurnace:    {"furnace", 3, 1, 14},
	KindHopper:     {"hopper", 5, 1, 16},
	KindShulkerBox: {"shulker_box", 9, 3, 20},
	KindInventory:  {"inventory", 9, 4, -1},
}

// Width is the number of columns of the kind's grid.
func (k Kind) Width() int { return kinds[k].width }

// Height is the number of rows of the kind's grid.
func (k Kind) Height() int { return kinds[k].height }

// Size is Width*Height.
func (k Kind) Size() int { return k.Width() * k.Height() }

// MenuID returns the protocol menu type id, or -1 for KindInventory.
func (k Kind) MenuID() int32 {
	if info, ok := kinds[k]; ok {
		return info.menuID
	}
	return -1
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

// ParseKind resolves a kind by name, with or without a "minecraft:" prefix.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "minecraft:")
	for k, info := range kinds {
		if info.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown screen kind %q", name)
}
