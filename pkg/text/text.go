// Package text models the rich-text lines shown in slate titles and tooltips.
package text

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Named colors understood by the client.
const (
	Black       = "black"
	DarkBlue    = "dark_blue"
	DarkGreen   = "dark_green"
	DarkAqua    = "dark_aqua"
	DarkRed     = "dark_red"
	DarkPurple  = "dark_purple"
	Gold        = "gold"
	Gray        = "gray"
	DarkGray    = "dark_gray"
	Blue        = "blue"
	Green       = "green"
	Aqua        = "aqua"
	Red         = "red"
	LightPurple = "light_purple"
	Yellow      = "yellow"
	White       = "white"
)

// Line is a single text component. Unset style fields inherit from the
// client's default for the context the line is rendered in.
type Line struct {
	Text   string `json:"text" yaml:"text"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Bold   *bool  `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic *bool  `json:"italic,omitempty" yaml:"italic,omitempty"`
	Extra  []Line `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Style is a set of optional formatting fields that can be applied to a Line.
type Style struct {
	Color  string
	Bold   *bool
	Italic *bool
}

// Literal returns an unstyled line.
func Literal(s string) Line { return Line{Text: s} }

// Empty returns a line with no content.
func Empty() Line { return Line{} }

// Bool returns a pointer to b, for the optional style fields.
func Bool(b bool) *bool { return &b }

// Literals converts plain strings into unstyled lines.
func Literals(lines ...string) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Literal(l)
	}
	return out
}

// WithColor returns a copy of l with the given color.
func (l Line) WithColor(color string) Line {
	l.Color = color
	return l
}

// WithItalic returns a copy of l with italics set explicitly.
func (l Line) WithItalic(italic bool) Line {
	l.Italic = Bool(italic)
	return l
}

// WithBold returns a copy of l with bold set explicitly.
func (l Line) WithBold(bold bool) Line {
	l.Bold = Bool(bold)
	return l
}

// Fill returns a copy of l where every field unset on l is taken from s.
// Fields already set on l are kept.
func (l Line) Fill(s Style) Line {
	if l.Color == "" {
		l.Color = s.Color
	}
	if l.Bold == nil && s.Bold != nil {
		l.Bold = Bool(*s.Bold)
	}
	if l.Italic == nil && s.Italic != nil {
		l.Italic = Bool(*s.Italic)
	}
	return l
}

// IsEmpty reports whether the line renders no characters.
func (l Line) IsEmpty() bool {
	if l.Text != "" {
		return false
	}
	for _, e := range l.Extra {
		if !e.IsEmpty() {
			return false
		}
	}
	return true
}

// UnmarshalYAML accepts either a plain string or a mapping of the line's
// fields.
func (l *Line) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = Line{Text: value.Value}
		return nil
	}
	type fields Line
	var f fields
	if err := value.Decode(&f); err != nil {
		return err
	}
	*l = Line(f)
	return nil
}

// JSON encodes the line as a text component.
func (l Line) JSON() string {
	b, err := json.Marshal(l)
	if err != nil {
		return `{"text":""}`
	}
	return string(b)
}

// Plain returns the line's text without formatting, extras included.
func (l Line) Plain() string {
	var b strings.Builder
	l.writePlain(&b)
	return b.String()
}

func (l Line) writePlain(b *strings.Builder) {
	b.WriteString(l.Text)
	for _, e := range l.Extra {
		e.writePlain(b)
	}
}

// Chunk is a group of tooltip lines sharing a style. Consecutive chunks are
// separated by an empty line when added to a tile.
type Chunk struct {
	Lines []Line
	Style Style
}

// NewChunk builds a chunk from plain strings.
func NewChunk(style Style, lines ...string) Chunk {
	return Chunk{Lines: Literals(lines...), Style: style}
}

// Flatten expands chunks into lines, filling each line with its chunk's style
// and inserting an empty line between chunks.
func Flatten(chunks ...Chunk) []Line {
	var out []Line
	for i, c := range chunks {
		for _, l := range c.Lines {
			out = append(out, l.Fill(c.Style))
		}
		if i != len(chunks)-1 {
			out = append(out, Empty())
		}
	}
	return out
}
