// Package layout describes slates declaratively in YAML and builds them.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/go-mclib/slate/pkg/text"
	"gopkg.in/yaml.v3"
)

// Layout is one slate and the child slates its actions can open.
type Layout struct {
	Key            string             `yaml:"key,omitempty"`
	Title          text.Line          `yaml:"title,omitempty"`
	Kind           string             `yaml:"kind"`
	CanPlayerClose *bool              `yaml:"can_player_close,omitempty"`
	CanBeClosed    *bool              `yaml:"can_be_closed,omitempty"`
	Tiles          []TileSpec         `yaml:"tiles,omitempty"`
	Redirects      []RedirectSpec     `yaml:"redirects,omitempty"`
	Layers         []LayerSpec        `yaml:"layers,omitempty"`
	Pages          []PageSpec         `yaml:"pages,omitempty"`
	Children       map[string]*Layout `yaml:"children,omitempty"`
}

// TileSpec is a stack tile with click actions. Position it with At (x, y)
// or Index; tiles of a page are positioned by their order instead.
type TileSpec struct {
	At      []int       `yaml:"at,omitempty"`
	Index   *int        `yaml:"index,omitempty"`
	Item    string      `yaml:"item,omitempty"`
	Count   int         `yaml:"count,omitempty"`
	Tooltip []text.Line `yaml:"tooltip,omitempty"`
	Movable bool        `yaml:"movable,omitempty"`

	// OnClick maps a click type name (left, right, middle, number_key,
	// offhand, throw, or generic) to the actions to run, in order.
	OnClick map[string][]string `yaml:"on_click,omitempty"`
}

type RedirectSpec struct {
	Index int    `yaml:"index"`
	To    int    `yaml:"to"`
	Mode  string `yaml:"mode,omitempty"` // normal or invisible
}

type LayerSpec struct {
	Anchor int        `yaml:"anchor"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Tiles  []TileSpec `yaml:"tiles,omitempty"`
}

// PageSpec is a paged layer over Entries. Next and Previous, when set, are
// placed on the base grid as page controls.
type PageSpec struct {
	Anchor   int        `yaml:"anchor"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Entries  []TileSpec `yaml:"entries,omitempty"`
	Next     *TileSpec  `yaml:"next,omitempty"`
	Previous *TileSpec  `yaml:"previous,omitempty"`
}

// Parse decodes a layout. Unknown fields are errors.
func Parse(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &l, nil
}

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// CustomActions returns the sorted names of the non built-in actions used
// by l and its children.
func (l *Layout) CustomActions() []string {
	seen := map[string]bool{}
	l.collectActions(seen)
	return slices.Sorted(maps.Keys(seen))
}

func (l *Layout) collectActions(seen map[string]bool) {
	add := func(specs []TileSpec) {
		for _, t := range specs {
			for _, actions := range t.OnClick {
				for _, a := range actions {
					if !isBuiltin(a) {
						seen[a] = true
					}
				}
			}
		}
	}
	add(l.Tiles)
	for _, ls := range l.Layers {
		add(ls.Tiles)
	}
	for _, p := range l.Pages {
		add(p.Entries)
	}
	for _, child := range l.Children {
		if child != nil {
			child.collectActions(seen)
		}
	}
}

func isBuiltin(action string) bool {
	switch action {
	case ActionClose, ActionOpenParent, ActionLog:
		return true
	}
	return strings.HasPrefix(action, ActionOpenPrefix)
}

var errNoPosition = errors.New("tile needs either at or index")
