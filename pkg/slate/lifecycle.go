package slate

import "github.com/go-mclib/slate/pkg/text"

// Handled binds an open slate to the screen it is shown in.
type Handled struct {
	Viewer Viewer
	SyncID int
}

// Handled returns the record of the screen showing s, or nil when s is not
// open.
func (s *Slate) Handled() *Handled { return s.handled }

// IsOpen reports whether s is shown to a player.
func (s *Slate) IsOpen() bool { return s.handled != nil }

// Viewer returns the player s is shown to, or nil.
func (s *Slate) Viewer() Viewer {
	if s.handled == nil {
		return nil
	}
	return s.handled.Viewer
}

// Open shows s to v. It fails when s is already open, for v or anyone else,
// or when the host could not open the screen.
func (s *Slate) Open(v Viewer) bool {
	if h := s.handled; h != nil {
		if h.Viewer.ID() != v.ID() {
			s.logger().Printf("open: %s is already open for a different player (%s, requested by %s)", s, h.Viewer.Name(), v.Name())
		} else {
			s.logger().Printf("open: %s is already open for %s", s, v.Name())
		}
		return false
	}

	syncID, err := v.OpenScreen(s)
	if err != nil {
		s.logger().Printf("open: failed to open %s for %s: %v", s, v.Name(), err)
		return false
	}

	s.handled = &Handled{Viewer: v, SyncID: syncID}
	if r := s.reg(); r != nil {
		r.bind(v, s)
	}

	for _, cb := range s.onOpen {
		cb(s, v)
	}

	// the client keeps rendering its off-hand item inside screens
	if err := v.ClearOffhand(); err != nil {
		s.logger().Printf("open: failed to clear off-hand of %s: %v", v.Name(), err)
	}
	s.dirty = true
	return true
}

// OpenSoon opens s for v at the end of the current tick, replacing any
// other slate queued for v. It is safe to call from close callbacks. It
// fails when s is already open or has no registry.
func (s *Slate) OpenSoon(v Viewer) bool {
	if s.handled != nil {
		return false
	}
	r := s.reg()
	if r == nil {
		s.logger().Printf("open: %s has no registry to open through", s)
		return false
	}
	r.OpenSoon(v, s)
	return true
}

// Close asks the host to close s when it is the screen v has open.
func (s *Slate) Close(v Viewer) bool {
	h := s.handled
	if h == nil || h.Viewer.ID() != v.ID() || v.ScreenID() != h.SyncID {
		return false
	}
	if err := v.CloseScreen(); err != nil {
		s.logger().Printf("close: failed to close %s for %s: %v", s, v.Name(), err)
		return false
	}
	return true
}

// OpenParent opens the slate s was created from.
func (s *Slate) OpenParent(v Viewer) bool {
	if s.parent == nil {
		return false
	}
	return s.parent.Open(v)
}

// SetTitle changes the title, re-presenting the screen when s is open.
func (s *Slate) SetTitle(title text.Line) {
	s.Title = title
	h := s.handled
	if h == nil || s.kind == KindInventory {
		return
	}
	if err := h.Viewer.ShowScreen(h.SyncID, s.kind, title); err != nil {
		s.logger().Printf("title: failed to show %s: %v", s, err)
	}
	s.dirty = true
}

// HandleTick resyncs a changed slate and runs the tick callbacks of s and
// its layers. It does nothing when s is not open.
func (s *Slate) HandleTick(v Viewer) {
	h := s.handled
	if h == nil {
		return
	}

	if s.Dirty() {
		if err := v.SyncScreen(h.SyncID); err != nil {
			s.logger().Printf("tick: failed to sync %s: %v", s, err)
		}
		s.clearDirty()
	}

	for _, cb := range s.onTick {
		cb(s, v)
	}
	for _, e := range s.layers {
		e.layer.tick(s, v)
	}
}

// HandleClosed is called by the host once the screen showing s is gone.
// Duplicate notifications are ignored.
func (s *Slate) HandleClosed(v Viewer) {
	if s.handled == nil {
		return
	}

	// the client may have predicted moves out of the screen
	if err := v.SyncInventory(); err != nil {
		s.logger().Printf("close: failed to sync inventory of %s: %v", v.Name(), err)
	}
	s.handled = nil
	if r := s.reg(); r != nil {
		r.unbind(v, s)
	}

	for _, cb := range s.onClose {
		cb(s, v)
	}
	for p := s.parent; p != nil; p = p.parent {
		for _, cb := range p.onChildClose {
			cb(p, s, v)
		}
	}
}

// HandleCloseRequest is called when the player tries to close s. It reports
// whether the host should proceed with closing. A refused request reopens
// the screen on the client when CanBeClosed is set.
func (s *Slate) HandleCloseRequest(v Viewer) bool {
	if s.CanPlayerClose {
		return true
	}
	h := s.handled
	if h != nil && s.CanBeClosed {
		if err := v.ShowScreen(h.SyncID, s.kind, s.Title); err != nil {
			s.logger().Printf("close: failed to reopen %s: %v", s, err)
		}
		if err := v.SyncScreen(h.SyncID); err != nil {
			s.logger().Printf("close: failed to sync %s: %v", s, err)
		}
	}
	return false
}

// HandleClick routes a slot click from v to the tile at the clicked slot.
// The slate is resynced on the next tick so the client drops whatever it
// predicted.
func (s *Slate) HandleClick(v Viewer, ev ClickEvent) {
	if ev.Action == ActionSwap && ev.Button == OffhandButton {
		if err := v.ClearOffhand(); err != nil {
			s.logger().Printf("click: failed to clear off-hand of %s: %v", v.Name(), err)
		}
	}
	s.OnSlotClicked(NewClickContext(v, s.Tile(ev.Slot), ev))
	s.dirty = true
}

// OnSlotClicked runs the callbacks of the context's tile for its click type.
// When the context carries no tile it is resolved from the slot.
func (s *Slate) OnSlotClicked(ctx ClickContext) {
	t := ctx.Tile
	if t == nil {
		t = s.Tile(ctx.Slot)
	}
	if t == nil {
		return
	}
	ctx.Tile = t
	t.CollectClickCallbacks(ctx.Type)(s, t, ctx)
}

// HandleInput dispatches anvil text input.
func (s *Slate) HandleInput(v Viewer, input string) {
	for _, cb := range s.onInput {
		cb(s, v, input)
	}
	s.dirty = true
}
