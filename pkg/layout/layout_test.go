package layout

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-mclib/slate/pkg/slate"
	"github.com/go-mclib/slate/pkg/text"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewer struct {
	id      uuid.UUID
	sync    int
	screen  int
	current *slate.Slate
}

func (v *viewer) ID() uuid.UUID { return v.id }
func (v *viewer) Name() string  { return "alex" }

func (v *viewer) OpenScreen(s *slate.Slate) (int, error) {
	if prev := v.current; prev != nil {
		v.current, v.screen = nil, 0
		prev.HandleClosed(v)
	}
	v.sync++
	v.screen, v.current = v.sync, s
	return v.screen, nil
}

func (v *viewer) ShowScreen(int, slate.Kind, text.Line) error { return nil }
func (v *viewer) SyncScreen(int) error                       { return nil }

func (v *viewer) CloseScreen() error {
	prev := v.current
	v.current, v.screen = nil, 0
	if prev != nil {
		prev.HandleClosed(v)
	}
	return nil
}

func (v *viewer) ScreenID() int       { return v.screen }
func (v *viewer) ClearOffhand() error  { return nil }
func (v *viewer) SyncInventory() error { return nil }
func (v *viewer) SelectedSlot() int    { return 0 }

const shop = `
key: shop
title: Shop
kind: generic_9x3
tiles:
  - at: [4, 0]
    item: minecraft:emerald
    tooltip: [Balance]
    on_click:
      left: [buy, log]
  - index: 26
    item: minecraft:barrier
    on_click:
      generic: [close]
  - index: 22
    item: minecraft:chest
    on_click:
      left: ["open:confirm"]
redirects:
  - index: 18
    to: 4
pages:
  - anchor: 10
    width: 7
    height: 1
    entries:
      - item: minecraft:stone
      - item: minecraft:dirt
        count: 16
      - item: minecraft:oak_log
      - item: minecraft:sand
      - item: minecraft:glass
      - item: minecraft:cobblestone
      - item: minecraft:gravel
      - item: minecraft:clay
      - item: minecraft:andesite
      - item: minecraft:diorite
    next:
      index: 17
      item: minecraft:arrow
    previous:
      index: 9
      item: minecraft:arrow
      tooltip: [Back]
children:
  confirm:
    kind: hopper
    title: Confirm?
    tiles:
      - index: 0
        item: minecraft:lime_wool
        on_click:
          left: [open_parent]
`

func TestParse(t *testing.T) {
	l, err := Parse([]byte(shop))
	require.NoError(t, err)

	assert.Equal(t, "shop", l.Key)
	assert.Equal(t, "Shop", l.Title.Plain())
	assert.Len(t, l.Tiles, 3)
	assert.Equal(t, []int{4, 0}, l.Tiles[0].At)
	require.NotNil(t, l.Tiles[1].Index)
	assert.Equal(t, 26, *l.Tiles[1].Index)
	require.Len(t, l.Pages, 1)
	assert.Len(t, l.Pages[0].Entries, 10)
	require.Contains(t, l.Children, "confirm")
	assert.Equal(t, "hopper", l.Children["confirm"].Kind)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("kind: hopper\ncolour: red\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yml")
	require.NoError(t, os.WriteFile(path, []byte(shop), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", l.Key)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	l, err := Parse([]byte(shop))
	require.NoError(t, err)

	assert.NoError(t, l.Validate(map[string]slate.ClickCallback{"buy": func(*slate.Slate, slate.Tile, slate.ClickContext) {}}))

	err = l.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown action "buy"`)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"kind", "kind: oven\n", "kind"},
		{"no position", "kind: hopper\ntiles:\n  - item: minecraft:stone\n", errNoPosition.Error()},
		{"both positions", "kind: hopper\ntiles:\n  - index: 0\n    at: [0, 0]\n", "both at and index"},
		{"out of bounds", "kind: hopper\ntiles:\n  - index: 5\n", "outside"},
		{"bad at", "kind: hopper\ntiles:\n  - at: [1]\n", "at needs"},
		{"unknown item", "kind: hopper\ntiles:\n  - index: 0\n    item: minecraft:not_an_item\n", "unknown item"},
		{"count", "kind: hopper\ntiles:\n  - index: 0\n    item: minecraft:stone\n    count: 120\n", "count"},
		{"click type", "kind: hopper\ntiles:\n  - index: 0\n    on_click:\n      sideways: [close]\n", "unknown click type"},
		{"missing child", "kind: hopper\ntiles:\n  - index: 0\n    on_click:\n      left: [\"open:nope\"]\n", "no child layout"},
		{"orphan open_parent", "kind: hopper\ntiles:\n  - index: 0\n    on_click:\n      left: [open_parent]\n", "without parent"},
		{"redirect mode", "kind: hopper\nredirects:\n  - index: 0\n    to: 1\n    mode: sideways\n", "redirect mode"},
		{"redirect target", "kind: hopper\nredirects:\n  - index: 0\n    to: 9\n", "target"},
		{"layer size", "kind: hopper\nlayers:\n  - anchor: 0\n    width: 0\n    height: 1\n", "must be positive"},
		{"layer fit", "kind: generic_9x1\nlayers:\n  - anchor: 5\n    width: 5\n    height: 1\n", "does not fit"},
		{"page anchor", "kind: hopper\npages:\n  - anchor: 7\n    width: 1\n    height: 1\n", "anchor"},
		{"child", "kind: hopper\nchildren:\n  sub:\n    kind: oven\n", "children.sub.kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			err = l.Validate(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	l, err := Parse([]byte("kind: hopper\ntiles:\n  - index: 9\n  - index: 0\n    item: minecraft:nope\n"))
	require.NoError(t, err)

	err = l.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiles[0]")
	assert.Contains(t, err.Error(), "tiles[1]")
}

func TestBuild(t *testing.T) {
	l, err := Parse([]byte(shop))
	require.NoError(t, err)

	var buf bytes.Buffer
	bought := 0
	s, err := l.Build(BuildOptions{
		Actions: map[string]slate.ClickCallback{
			"buy": func(*slate.Slate, slate.Tile, slate.ClickContext) { bought++ },
		},
		Logger: log.New(&buf, "", 0),
	})
	require.NoError(t, err)

	assert.Equal(t, slate.KindGeneric9x3, s.Kind())
	assert.Equal(t, "shop", s.Key)
	assert.True(t, s.CanPlayerClose)

	v := &viewer{id: uuid.New()}
	require.True(t, s.Open(v))

	emerald := s.Tile(4).DisplayedStack(s, v)
	assert.Equal(t, slate.Item("minecraft:emerald").Item, emerald.Item)
	assert.True(t, emerald.Immovable())
	assert.Equal(t, emerald.Item, s.Tile(18).BaseStack(s, v).Item, "redirected")

	s.HandleClick(v, slate.ClickEvent{Slot: 4, Button: 0, Action: slate.ActionPickup})
	assert.Equal(t, 1, bought)
	assert.Contains(t, buf.String(), "alex left-clicked slot 4")

	// row 1 holds the page between its controls
	dirt := s.Tile(11).BaseStack(s, v)
	assert.Equal(t, slate.Item("minecraft:dirt").Item, dirt.Item)
	assert.Equal(t, 16, dirt.Count)

	s.HandleClick(v, slate.ClickEvent{Slot: 22, Button: 0, Action: slate.ActionPickup})
	assert.False(t, s.IsOpen())
	child := v.current
	require.NotNil(t, child)
	assert.Equal(t, slate.KindHopper, child.Kind())
	assert.Same(t, s, child.Parent())
	assert.Same(t, s.Logger, child.Logger)

	child.HandleClick(v, slate.ClickEvent{Slot: 0, Button: 0, Action: slate.ActionPickup})
	assert.Same(t, s, v.current)

	s.HandleClick(v, slate.ClickEvent{Slot: 26, Button: 0, Action: slate.ActionPickup})
	assert.False(t, s.IsOpen())
	assert.Nil(t, v.current)
}

func TestBuildPageControls(t *testing.T) {
	src := `
kind: generic_9x2
pages:
  - anchor: 0
    width: 2
    height: 1
    entries:
      - item: minecraft:stone
      - item: minecraft:dirt
      - item: minecraft:sand
    next:
      index: 17
      item: minecraft:arrow
    previous:
      index: 9
      item: minecraft:arrow
`
	l, err := Parse([]byte(src))
	require.NoError(t, err)
	s, err := l.Build(BuildOptions{})
	require.NoError(t, err)

	v := &viewer{id: uuid.New()}
	require.True(t, s.Open(v))
	assert.Equal(t, slate.Item("minecraft:stone").Item, s.Tile(0).BaseStack(s, v).Item)

	s.HandleClick(v, slate.ClickEvent{Slot: 17, Button: 0, Action: slate.ActionPickup})
	assert.Equal(t, slate.Item("minecraft:sand").Item, s.Tile(0).BaseStack(s, v).Item)
	assert.True(t, s.Tile(1).BaseStack(s, v).IsEmpty())

	s.HandleClick(v, slate.ClickEvent{Slot: 9, Button: 0, Action: slate.ActionPickup})
	assert.Equal(t, slate.Item("minecraft:stone").Item, s.Tile(0).BaseStack(s, v).Item)
}

func TestBuildInvalid(t *testing.T) {
	l := &Layout{Kind: "oven"}
	_, err := l.Build(BuildOptions{})
	assert.Error(t, err)
}

func TestBuildMovableAndFlags(t *testing.T) {
	src := `
kind: hopper
can_player_close: false
tiles:
  - index: 0
    item: minecraft:stone
    movable: true
`
	l, err := Parse([]byte(src))
	require.NoError(t, err)
	s, err := l.Build(BuildOptions{})
	require.NoError(t, err)

	assert.False(t, s.CanPlayerClose)
	assert.True(t, s.CanBeClosed)
	assert.False(t, s.Tile(0).DisplayedStack(s, nil).Immovable())
}

func TestCustomActions(t *testing.T) {
	src := `
kind: hopper
tiles:
  - index: 0
    on_click:
      left: [buy, log, close]
      right: [inspect, buy]
children:
  sub:
    kind: hopper
    tiles:
      - index: 1
        on_click:
          generic: [open_parent, refund]
`
	l, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"buy", "inspect", "refund"}, l.CustomActions())
}

func TestExampleLayout(t *testing.T) {
	l, err := Load(filepath.Join("..", "..", "examples", "layouts", "menu.yml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"give_kit", "join_arena", "join_survival"}, l.CustomActions())

	noop := func(*slate.Slate, slate.Tile, slate.ClickContext) {}
	s, err := l.Build(BuildOptions{
		Actions: map[string]slate.ClickCallback{"give_kit": noop, "join_arena": noop, "join_survival": noop},
		Logger:  log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Server Menu", s.Title.Plain())
	assert.Equal(t, "gold", s.Title.Color)
}
