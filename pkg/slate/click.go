package slate

import "strings"

// Action is the host's click mode, numbered as the protocol's container
// click modes.
type Action int

const (
	ActionPickup Action = iota
	ActionQuickMove
	ActionSwap
	ActionClone
	ActionThrow
	ActionQuickCraft
	ActionPickupAll
)

// OffhandButton is the button id of a SWAP click that targets the off-hand.
const OffhandButton = 40

func (a Action) String() string {
	switch a {
	case ActionPickup:
		return "pickup"
	case ActionQuickMove:
		return "quick_move"
	case ActionSwap:
		return "swap"
	case ActionClone:
		return "clone"
	case ActionThrow:
		return "throw"
	case ActionQuickCraft:
		return "quick_craft"
	case ActionPickupAll:
		return "pickup_all"
	}
	return "unknown"
}

// ClickType is the normalised button of a click.
type ClickType int

const (
	ClickLeft ClickType = iota
	ClickRight
	ClickMiddle // creative mode only
	ClickNumberKey
	ClickOffhand
	ClickThrow
)

var clickTypeNames = [...]string{"left", "right", "middle", "number_key", "offhand", "throw"}

func (t ClickType) String() string {
	if t >= 0 && int(t) < len(clickTypeNames) {
		return clickTypeNames[t]
	}
	return "unknown"
}

// ParseClickTypeName resolves a click type from its name.
func ParseClickTypeName(name string) (ClickType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range clickTypeNames {
		if n == name {
			return ClickType(i), true
		}
	}
	return 0, false
}

// ParseClickType classifies a raw host click.
func ParseClickType(button int, action Action) ClickType {
	switch action {
	case ActionSwap:
		if button == OffhandButton {
			return ClickOffhand
		}
		return ClickNumberKey
	case ActionClone:
		return ClickMiddle
	case ActionThrow:
		return ClickThrow
	}
	if button == 0 {
		return ClickLeft
	}
	return ClickRight
}

// Modifiers is a set of click modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModDouble
)

// Has reports whether every modifier in m2 is present in m.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModDouble) {
		parts = append(parts, "double")
	}
	return strings.Join(parts, "+")
}

// ParseModifiers derives the modifiers implied by a host action.
func ParseModifiers(action Action) Modifiers {
	var m Modifiers
	if action == ActionQuickMove {
		m |= ModShift
	}
	if action == ActionPickupAll {
		m |= ModDouble
	}
	return m
}

// ClickEvent is a raw slot click as reported by the host.
type ClickEvent struct {
	Slot   int
	Button int
	Action Action
}

// ClickContext is a normalised click routed to a tile.
type ClickContext struct {
	// Tile is the resolved tile at Slot, nil for an empty cell.
	Tile Tile
	Slot int

	Button int
	Action Action

	Type      ClickType
	Modifiers Modifiers

	Viewer Viewer

	// WithinScreen is false for clicks synthesised from in-world item use
	// while an inventory slate is open.
	WithinScreen bool
}

// NewClickContext normalises ev into a context for tile.
func NewClickContext(v Viewer, tile Tile, ev ClickEvent) ClickContext {
	return ClickContext{
		Tile:         tile,
		Slot:         ev.Slot,
		Button:       ev.Button,
		Action:       ev.Action,
		Type:         ParseClickType(ev.Button, ev.Action),
		Modifiers:    ParseModifiers(ev.Action),
		Viewer:       v,
		WithinScreen: true,
	}
}

// ClickCallback handles a click on a tile.
type ClickCallback func(s *Slate, t Tile, ctx ClickContext)
