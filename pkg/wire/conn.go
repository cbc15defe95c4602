// Package wire bridges slates onto the game protocol: it decodes the
// packets a player sends while a slate is open and encodes the few packets
// slates send directly.
package wire

import (
	"sync"

	"github.com/go-mclib/data/pkg/packets"
	"github.com/go-mclib/slate/pkg/slate"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// PacketWriter sends a packet to one client.
type PacketWriter interface {
	WritePacket(pkt jp.Packet) error
}

// Conn sends slate packets over a player's connection, tracking the
// container state id.
type Conn struct {
	w PacketWriter

	mu      sync.Mutex
	stateID int32
}

func NewConn(w PacketWriter) *Conn {
	return &Conn{w: w}
}

// Writer returns the writer packets are sent to.
func (c *Conn) Writer() PacketWriter { return c.w }

// StateID returns the last state id sent.
func (c *Conn) StateID() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateID
}

func (c *Conn) nextStateID() ns.VarInt {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateID = (c.stateID + 1) & 0x7fff
	return ns.VarInt(c.stateID)
}

// ClearOffhand blanks the off-hand slot of the client's inventory.
func (c *Conn) ClearOffhand() error {
	return c.w.WritePacket(&packets.S2CContainerSetSlot{
		WindowId: WindowInventory,
		StateId:  c.nextStateID(),
		Slot:     SlotOffhand,
		SlotData: ns.Slot{},
	})
}

// SetSlot replaces one slot of a window.
func (c *Conn) SetSlot(windowID, slot int, data ns.Slot) error {
	return c.w.WritePacket(&packets.S2CContainerSetSlot{
		WindowId: ns.VarInt(windowID),
		StateId:  c.nextStateID(),
		Slot:     ns.Int16(slot),
		SlotData: data,
	})
}

// SetContent replaces every slot of a window and the cursor.
func (c *Conn) SetContent(windowID int, slots []ns.Slot, carried ns.Slot) error {
	return c.w.WritePacket(&packets.S2CContainerSetContent{
		WindowId:    ns.VarInt(windowID),
		StateId:     c.nextStateID(),
		Slots:       slots,
		CarriedItem: carried,
	})
}

// SyncSlate sends the full content of s, shown in windowID, followed by the
// player's own inventory.
func (c *Conn) SyncSlate(windowID int, s *slate.Slate, v slate.Viewer, inventory []ns.Slot) error {
	stacks := s.Stacks(v)
	slots := make([]ns.Slot, 0, len(stacks)+PlayerInvSlots)
	for _, st := range stacks {
		slots = append(slots, SlotFromStack(st))
	}
	for i := range PlayerInvSlots {
		var slot ns.Slot
		if i < len(inventory) {
			slot = inventory[i]
		}
		slots = append(slots, slot)
	}
	return c.SetContent(windowID, slots, ns.Slot{})
}

// SlotFromStack encodes st with its name, lore, hidden tooltip and custom
// data as item components.
func SlotFromStack(st slate.Stack) ns.Slot {
	if st.IsEmpty() {
		return ns.Slot{}
	}
	slot := ns.Slot{
		ItemID: ns.VarInt(st.Item),
		Count:  ns.VarInt(st.Count),
	}
	for _, c := range stackComponents(st) {
		addComponent(&slot, c)
	}
	return slot
}
