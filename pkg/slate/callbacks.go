package slate

type (
	OpenCallback       func(s *Slate, v Viewer)
	TickCallback       func(s *Slate, v Viewer)
	CloseCallback      func(s *Slate, v Viewer)
	ChildCloseCallback func(s *Slate, child *Slate, v Viewer)
	InputCallback      func(s *Slate, v Viewer, input string)
)

// callbacks holds one ordered list per event kind.
type callbacks struct {
	onOpen       []OpenCallback
	onTick       []TickCallback
	onClose      []CloseCallback
	onChildClose []ChildCloseCallback
	onInput      []InputCallback
}

// OnOpen registers cb to run after the slate was opened.
func (c *callbacks) OnOpen(cb OpenCallback) { c.onOpen = append(c.onOpen, cb) }

// OnTick registers cb to run on every tick while open.
func (c *callbacks) OnTick(cb TickCallback) { c.onTick = append(c.onTick, cb) }

// OnClose registers cb to run after the slate was closed.
func (c *callbacks) OnClose(cb CloseCallback) { c.onClose = append(c.onClose, cb) }

// OnChildClose registers cb to run when any descendant slate closes, direct
// or nested.
func (c *callbacks) OnChildClose(cb ChildCloseCallback) {
	c.onChildClose = append(c.onChildClose, cb)
}

// OnInput registers cb for text input, sent by anvil screens.
func (c *callbacks) OnInput(cb InputCallback) { c.onInput = append(c.onInput, cb) }
