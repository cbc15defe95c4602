package slate

import (
	"errors"

	"github.com/go-mclib/slate/pkg/text"
	"github.com/google/uuid"
)

// fakeViewer records host calls and mimics the host's screen handling:
// opening a screen closes the previous one and reports it closed.
type fakeViewer struct {
	id       uuid.UUID
	name     string
	nextSync int
	screen   int
	current  *Slate
	selected int
	failOpen bool

	opens, shows, syncs, closes, offhandClears, inventorySyncs int
	lastTitle                                                  text.Line
}

func newFakeViewer(name string) *fakeViewer {
	return &fakeViewer{id: uuid.New(), name: name}
}

func (f *fakeViewer) ID() uuid.UUID { return f.id }
func (f *fakeViewer) Name() string  { return f.name }

func (f *fakeViewer) OpenScreen(s *Slate) (int, error) {
	if f.failOpen {
		return 0, errors.New("screen refused")
	}
	if prev := f.current; prev != nil {
		f.current = nil
		f.screen = 0
		prev.HandleClosed(f)
	}
	f.nextSync = f.nextSync%100 + 1
	f.screen = f.nextSync
	f.current = s
	f.opens++
	return f.screen, nil
}

func (f *fakeViewer) ShowScreen(syncID int, kind Kind, title text.Line) error {
	f.shows++
	f.lastTitle = title
	return nil
}

func (f *fakeViewer) SyncScreen(int) error {
	f.syncs++
	return nil
}

func (f *fakeViewer) CloseScreen() error {
	f.closes++
	prev := f.current
	f.current = nil
	f.screen = 0
	if prev != nil {
		prev.HandleClosed(f)
	}
	return nil
}

func (f *fakeViewer) ScreenID() int { return f.screen }

func (f *fakeViewer) ClearOffhand() error {
	f.offhandClears++
	return nil
}

func (f *fakeViewer) SyncInventory() error {
	f.inventorySyncs++
	return nil
}

func (f *fakeViewer) SelectedSlot() int { return f.selected }

// manualExecutor queues tasks until run.
type manualExecutor struct {
	tasks []func()
}

func (m *manualExecutor) Submit(task func()) { m.tasks = append(m.tasks, task) }

func (m *manualExecutor) run(i int) { m.tasks[i]() }
