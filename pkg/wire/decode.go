package wire

import (
	"fmt"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/slate/pkg/slate"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// Player action statuses that drop the held item.
const (
	ActionDropStack = 3
	ActionDropItem  = 4
)

// HandMain is the hand id of the main hand.
const HandMain = 0

// DecodeClick reads a container click and returns it with its window id.
func DecodeClick(pkt *jp.WirePacket) (slate.ClickEvent, int, error) {
	var d packets.C2SContainerClick
	if err := pkt.ReadInto(&d); err != nil {
		return slate.ClickEvent{}, 0, fmt.Errorf("failed to parse container click: %w", err)
	}
	ev, window := ClickFromPacket(&d)
	return ev, window, nil
}

// ClickFromPacket converts a decoded container click.
func ClickFromPacket(d *packets.C2SContainerClick) (slate.ClickEvent, int) {
	return slate.ClickEvent{
		Slot:   int(d.Slot),
		Button: int(d.Button),
		Action: slate.Action(d.Mode),
	}, int(d.WindowId)
}

// ClickPacket encodes ev as the client would send it. Carried and changed
// slots are left empty.
func ClickPacket(ev slate.ClickEvent, windowID, stateID int) *packets.C2SContainerClick {
	pkt := &packets.C2SContainerClick{
		WindowId:    ns.VarInt(windowID),
		StateId:     ns.VarInt(stateID),
		Slot:        ns.Int16(ev.Slot),
		Button:      ns.Int8(ev.Button),
		CarriedItem: ns.EmptyHashedSlot(),
	}
	switch ev.Action {
	case slate.ActionQuickMove:
		pkt.Mode = 1
	case slate.ActionSwap:
		pkt.Mode = 2
	case slate.ActionClone:
		pkt.Mode = 3
	case slate.ActionThrow:
		pkt.Mode = 4
	case slate.ActionQuickCraft:
		pkt.Mode = 5
	case slate.ActionPickupAll:
		pkt.Mode = 6
	default:
		pkt.Mode = 0
	}
	return pkt
}

// DecodeClose reads a container close and returns its window id.
func DecodeClose(pkt *jp.WirePacket) (int, error) {
	var d packets.C2SContainerClose
	if err := pkt.ReadInto(&d); err != nil {
		return 0, fmt.Errorf("failed to parse container close: %w", err)
	}
	return int(d.WindowId), nil
}

// DecodeUseItem reads an item use and returns the hand.
func DecodeUseItem(pkt *jp.WirePacket) (int, error) {
	var d packets.C2SUseItem
	if err := pkt.ReadInto(&d); err != nil {
		return 0, fmt.Errorf("failed to parse use item: %w", err)
	}
	return int(d.Hand), nil
}

// DecodeSwing reads an arm swing and returns the hand.
func DecodeSwing(pkt *jp.WirePacket) (int, error) {
	var d packets.C2SSwing
	if err := pkt.ReadInto(&d); err != nil {
		return 0, fmt.Errorf("failed to parse swing: %w", err)
	}
	return int(d.Hand), nil
}

// DecodePlayerAction reads a player action and returns its status.
func DecodePlayerAction(pkt *jp.WirePacket) (int, error) {
	var d packets.C2SPlayerAction
	if err := pkt.ReadInto(&d); err != nil {
		return 0, fmt.Errorf("failed to parse player action: %w", err)
	}
	return int(d.Status), nil
}

// DecodeHeldSlot reads a hotbar selection change.
func DecodeHeldSlot(pkt *jp.WirePacket) (int, error) {
	var d packets.C2SSetCarriedItem
	if err := pkt.ReadInto(&d); err != nil {
		return 0, fmt.Errorf("failed to parse set carried item: %w", err)
	}
	return int(d.Slot), nil
}

// StackFromSlot decodes the item, count and custom data of a protocol slot.
// Unreadable slots decode as empty.
func StackFromSlot(raw ns.Slot) slate.Stack {
	stack, err := items.FromSlot(raw)
	if err != nil || stack == nil || stack.IsEmpty() {
		return slate.Stack{}
	}
	return slate.Stack{Item: stack.ID, Count: int(stack.Count), CustomData: readCustomData(raw)}
}
