package slate

import "fmt"

// StackTile displays a single stack, which may be replaced in place.
type StackTile struct {
	Base
	Stack Stack
}

// NewStackTile returns an immovable tile displaying stack.
func NewStackTile(stack Stack) *StackTile {
	return &StackTile{Base: Base{Immovable: true}, Stack: stack}
}

// NewItemTile is NewStackTile(Item(name)).
func NewItemTile(name string) *StackTile {
	return NewStackTile(Item(name))
}

// EmptyTile returns an inert tile with no stack, no tooltip and no callbacks.
func EmptyTile() *StackTile {
	return NewStackTile(Stack{})
}

func (t *StackTile) BaseStack(*Slate, Viewer) Stack { return t.Stack }

func (t *StackTile) DisplayedStack(s *Slate, v Viewer) Stack {
	return t.Decorate(t.BaseStack(s, v))
}

func (t *StackTile) String() string {
	return fmt.Sprintf("StackTile{%s x%d}", t.Stack.ItemName(), t.Stack.Count)
}

// FuncTile computes its stack on every display, per viewer.
type FuncTile struct {
	Base
	Func func(s *Slate, v Viewer) Stack
}

// NewFuncTile returns an immovable tile backed by fn.
func NewFuncTile(fn func(s *Slate, v Viewer) Stack) *FuncTile {
	return &FuncTile{Base: Base{Immovable: true}, Func: fn}
}

func (t *FuncTile) BaseStack(s *Slate, v Viewer) Stack {
	if t.Func == nil {
		return Stack{}
	}
	return t.Func(s, v)
}

func (t *FuncTile) DisplayedStack(s *Slate, v Viewer) Stack {
	return t.Decorate(t.BaseStack(s, v))
}
