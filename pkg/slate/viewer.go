package slate

import (
	"github.com/go-mclib/slate/pkg/text"
	"github.com/google/uuid"
)

// Viewer is a player as seen by a slate. The host implements it on top of its
// own session and screen machinery.
type Viewer interface {
	ID() uuid.UUID
	Name() string

	// OpenScreen presents s to the player and returns the sync id of the new
	// screen. Any screen the player had open is closed first.
	OpenScreen(s *Slate) (syncID int, err error)

	// ShowScreen re-sends the screen with syncID without closing it, e.g. to
	// change its title.
	ShowScreen(syncID int, kind Kind, title text.Line) error

	// SyncScreen resends every slot of the screen with syncID.
	SyncScreen(syncID int) error

	// CloseScreen closes the player's screen. The host then reports the
	// closure through Slate.HandleClosed.
	CloseScreen() error

	// ScreenID returns the sync id of the player's open screen, 0 for the
	// player's own inventory.
	ScreenID() int

	// ClearOffhand blanks the client's off-hand slot.
	ClearOffhand() error

	// SyncInventory resends the player's own inventory.
	SyncInventory() error

	// SelectedSlot returns the selected hotbar slot, 0-8.
	SelectedSlot() int
}
