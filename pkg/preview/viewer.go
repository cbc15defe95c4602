// Package preview hosts slates in the terminal: an in-process player that
// speaks the wire bridge, and a bubbletea model to look at and click slates.
package preview

import (
	"log"
	"sync"

	"github.com/go-mclib/slate/pkg/slate"
	"github.com/go-mclib/slate/pkg/text"
	"github.com/go-mclib/slate/pkg/wire"
	jp "github.com/go-mclib/protocol/java_protocol"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	"github.com/google/uuid"
)

// Recorder is a PacketWriter keeping every packet written to it.
type Recorder struct {
	mu      sync.Mutex
	packets []jp.Packet
}

func (r *Recorder) WritePacket(pkt jp.Packet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets = append(r.packets, pkt)
	return nil
}

// Packets returns the packets written so far.
func (r *Recorder) Packets() []jp.Packet {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]jp.Packet, len(r.packets))
	copy(out, r.packets)
	return out
}

// Len returns the number of packets written so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.packets)
}

// Viewer is a player living in the preview process. It hands out sync ids
// like a server would and sends its screen updates through a wire.Conn.
type Viewer struct {
	Logger *log.Logger

	id   uuid.UUID
	name string
	conn *wire.Conn

	mu        sync.Mutex
	nextSync  int
	screen    int
	title     text.Line
	current   *slate.Slate
	selected  int
	inventory []ns.Slot
}

// NewViewer returns a viewer writing its packets to w.
func NewViewer(name string, w wire.PacketWriter, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = slate.DefaultLogger
	}
	return &Viewer{
		Logger:    logger,
		id:        uuid.New(),
		name:      name,
		conn:      wire.NewConn(w),
		inventory: make([]ns.Slot, wire.PlayerInvSlots),
	}
}

func (v *Viewer) ID() uuid.UUID { return v.id }
func (v *Viewer) Name() string  { return v.name }

// Conn returns the connection screen updates are sent over.
func (v *Viewer) Conn() *wire.Conn { return v.conn }

// Current returns the slate the viewer is looking at, if any.
func (v *Viewer) Current() *slate.Slate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Title returns the title of the open screen.
func (v *Viewer) Title() text.Line {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

func (v *Viewer) OpenScreen(s *slate.Slate) (int, error) {
	v.closeCurrent()

	v.mu.Lock()
	if s.Kind() == slate.KindInventory {
		v.screen = wire.WindowInventory
	} else {
		v.nextSync = v.nextSync%100 + 1
		v.screen = v.nextSync
	}
	v.current = s
	v.title = s.Title
	syncID := v.screen
	v.mu.Unlock()

	v.Logger.Printf("preview: opened %s as screen %d for %s", s, syncID, v.name)
	return syncID, nil
}

func (v *Viewer) ShowScreen(syncID int, kind slate.Kind, title text.Line) error {
	v.mu.Lock()
	if syncID == v.screen {
		v.title = title
	}
	v.mu.Unlock()
	v.Logger.Printf("preview: showing screen %d (%s) as %q", syncID, kind, title.Plain())
	return nil
}

func (v *Viewer) SyncScreen(syncID int) error {
	v.mu.Lock()
	s, screen := v.current, v.screen
	inventory := append([]ns.Slot(nil), v.inventory...)
	v.mu.Unlock()

	if s == nil || screen != syncID {
		return nil
	}
	if syncID == wire.WindowInventory {
		slots := make([]ns.Slot, wire.InventorySlots)
		for i, st := range s.Stacks(v) {
			if slot := wire.InventorySlot(i); slot >= 0 {
				slots[slot] = wire.SlotFromStack(st)
			}
		}
		return v.conn.SetContent(wire.WindowInventory, slots, ns.Slot{})
	}
	return v.conn.SyncSlate(syncID, s, v, inventory)
}

func (v *Viewer) CloseScreen() error {
	if s := v.closeCurrent(); s != nil {
		v.Logger.Printf("preview: closed %s for %s", s, v.name)
	}
	return nil
}

// closeCurrent forgets the open screen and reports it closed to its slate.
func (v *Viewer) closeCurrent() *slate.Slate {
	v.mu.Lock()
	prev := v.current
	v.current, v.screen, v.title = nil, 0, text.Line{}
	v.mu.Unlock()

	if prev != nil {
		prev.HandleClosed(v)
	}
	return prev
}

func (v *Viewer) ScreenID() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screen
}

func (v *Viewer) ClearOffhand() error {
	return v.conn.ClearOffhand()
}

func (v *Viewer) SyncInventory() error {
	v.mu.Lock()
	slots := make([]ns.Slot, wire.InventorySlots)
	for i, slot := range v.inventory {
		slots[wire.InventorySlot(i)] = slot
	}
	v.mu.Unlock()
	return v.conn.SetContent(wire.WindowInventory, slots, ns.Slot{})
}

func (v *Viewer) SelectedSlot() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Select changes the selected hotbar slot, wrapping around.
func (v *Viewer) Select(slot int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = ((slot % 9) + 9) % 9
}

// SetInventory replaces the player's own inventory, main rows then hotbar.
func (v *Viewer) SetInventory(stacks []slate.Stack) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.inventory {
		v.inventory[i] = ns.Slot{}
		if i < len(stacks) {
			v.inventory[i] = wire.SlotFromStack(stacks[i])
		}
	}
}
