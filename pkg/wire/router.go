package wire

import (
	"log"

	"github.com/go-mclib/slate/pkg/slate"
	jp "github.com/go-mclib/protocol/java_protocol"
)

// Router forwards a player's packets to the slate the registry has open for
// them. Each method reports whether the packet was consumed by a slate; the
// host skips its own handling of consumed packets.
type Router struct {
	Registry *slate.Registry
	Logger   *log.Logger
}

func NewRouter(r *slate.Registry, logger *log.Logger) *Router {
	if logger == nil {
		logger = slate.DefaultLogger
	}
	return &Router{Registry: r, Logger: logger}
}

// Click handles a container click packet.
func (r *Router) Click(v slate.Viewer, pkt *jp.WirePacket) bool {
	ev, window, err := DecodeClick(pkt)
	if err != nil {
		r.Logger.Println("wire:", err)
		return false
	}
	return r.ClickEvent(v, ev, window)
}

// ClickEvent handles an already decoded click on window. Slots of the
// inventory screen are mapped onto inventory slate indexes.
func (r *Router) ClickEvent(v slate.Viewer, ev slate.ClickEvent, window int) bool {
	s := r.open(v, window)
	if s == nil {
		return false
	}
	if s.Kind() == slate.KindInventory {
		ev.Slot = InventoryIndex(ev.Slot)
	}
	s.HandleClick(v, ev)
	return true
}

// Close handles a container close packet. It reports whether the host should
// go on closing the screen.
func (r *Router) Close(v slate.Viewer, pkt *jp.WirePacket) bool {
	window, err := DecodeClose(pkt)
	if err != nil {
		r.Logger.Println("wire:", err)
		return true
	}
	return r.CloseRequest(v, window)
}

// CloseRequest handles a decoded close request for window.
func (r *Router) CloseRequest(v slate.Viewer, window int) bool {
	s := r.open(v, window)
	if s == nil {
		return true
	}
	return s.HandleCloseRequest(v)
}

// Use handles an item use packet.
func (r *Router) Use(v slate.Viewer, pkt *jp.WirePacket, sneaking bool) bool {
	hand, err := DecodeUseItem(pkt)
	if err != nil {
		r.Logger.Println("wire:", err)
		return false
	}
	if hand != HandMain {
		return r.inventoryOpen(v)
	}
	s := r.Registry.Active(v)
	return s != nil && s.HandleUse(v, sneaking)
}

// Swing handles an arm swing packet.
func (r *Router) Swing(v slate.Viewer, pkt *jp.WirePacket, sneaking bool) bool {
	hand, err := DecodeSwing(pkt)
	if err != nil {
		r.Logger.Println("wire:", err)
		return false
	}
	if hand != HandMain {
		return r.inventoryOpen(v)
	}
	s := r.Registry.Active(v)
	return s != nil && s.HandleSwing(v, sneaking)
}

// PlayerAction handles a player action packet; only drops are routed.
func (r *Router) PlayerAction(v slate.Viewer, pkt *jp.WirePacket, sneaking bool) bool {
	status, err := DecodePlayerAction(pkt)
	if err != nil {
		r.Logger.Println("wire:", err)
		return false
	}
	if status != ActionDropItem && status != ActionDropStack {
		return false
	}
	s := r.Registry.Active(v)
	return s != nil && s.HandleDrop(v, sneaking)
}

// Input handles anvil text input.
func (r *Router) Input(v slate.Viewer, input string) bool {
	s := r.Registry.Active(v)
	if s == nil {
		return false
	}
	s.HandleInput(v, input)
	return true
}

// open returns the active slate of v when it is shown in window.
func (r *Router) open(v slate.Viewer, window int) *slate.Slate {
	s := r.Registry.Active(v)
	if s == nil {
		return nil
	}
	if h := s.Handled(); h == nil || h.SyncID != window {
		return nil
	}
	return s
}

// inventoryOpen reports whether v has an inventory slate open, in which case
// off-hand interactions are swallowed.
func (r *Router) inventoryOpen(v slate.Viewer) bool {
	s := r.Registry.Active(v)
	return s != nil && s.Kind() == slate.KindInventory
}
