package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/go-mclib/protocol/nbt"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	"github.com/go-mclib/slate/pkg/slate"
	"github.com/go-mclib/slate/pkg/text"
)

// Item component registry ids, as numbered by 1.21.5 through 1.21.10. Hosts
// speaking another revision reassign them before the first sync.
var (
	ComponentCustomData     int32 = 0
	ComponentItemName       int32 = 6
	ComponentLore           int32 = 8
	ComponentTooltipDisplay int32 = 15
)

const (
	tagEnd      = 0
	tagByte     = 1
	tagString   = 8
	tagList     = 9
	tagCompound = 10
)

type component struct {
	id   int32
	data []byte
}

// stackComponents encodes the name, lore, hidden tooltip and custom data of
// st. Custom data holding tags other than byte, string and compound is left
// off.
func stackComponents(st slate.Stack) []component {
	var out []component
	if st.Name != nil {
		var w nbtWriter
		w.root(*st.Name)
		out = append(out, component{ComponentItemName, w.Bytes()})
	}
	if len(st.Lore) > 0 {
		var w nbtWriter
		w.Write(binary.AppendUvarint(nil, uint64(len(st.Lore))))
		for _, l := range st.Lore {
			w.root(l)
		}
		out = append(out, component{ComponentLore, w.Bytes()})
	}
	if st.HideTooltip {
		// hide_tooltip, then an empty list of hidden components
		out = append(out, component{ComponentTooltipDisplay, []byte{1, 0}})
	}
	if len(st.CustomData) > 0 {
		var w nbtWriter
		w.WriteByte(tagCompound)
		if err := w.compound(st.CustomData); err == nil {
			out = append(out, component{ComponentCustomData, w.Bytes()})
		}
	}
	return out
}

// addComponent appends one encoded component to slot.Components.Add. The
// element type is addressed through its ID and Data fields only.
func addComponent(slot *ns.Slot, c component) {
	add := reflect.ValueOf(&slot.Components.Add).Elem()
	elem := add.Type().Elem()
	ptr := elem.Kind() == reflect.Pointer
	if ptr {
		elem = elem.Elem()
	}
	v := reflect.New(elem)
	v.Elem().FieldByName("ID").SetInt(int64(c.id))
	v.Elem().FieldByName("Data").SetBytes(c.data)
	if !ptr {
		v = v.Elem()
	}
	add.Set(reflect.Append(add, v))
}

// readCustomData decodes the custom_data component of raw, or returns nil.
func readCustomData(raw ns.Slot) nbt.Compound {
	for _, comp := range raw.Components.Add {
		if int32(comp.ID) != ComponentCustomData {
			continue
		}
		tag, _, err := nbt.NewReaderFrom(bytes.NewReader(comp.Data)).ReadTag(true)
		if err != nil {
			return nil
		}
		c, _ := tag.(nbt.Compound)
		return c
	}
	return nil
}

// nbtWriter writes network NBT: the root tag carries no name.
type nbtWriter struct {
	bytes.Buffer
}

func (w *nbtWriter) str(s string) {
	w.Write(binary.BigEndian.AppendUint16(nil, uint16(len(s))))
	w.WriteString(s)
}

func (w *nbtWriter) field(tag byte, name string) {
	w.WriteByte(tag)
	w.str(name)
}

func (w *nbtWriter) compound(c nbt.Compound) error {
	for _, k := range slices.Sorted(maps.Keys(c)) {
		switch v := c[k].(type) {
		case nbt.Byte:
			w.field(tagByte, k)
			w.WriteByte(byte(v))
		case nbt.String:
			w.field(tagString, k)
			w.str(string(v))
		case nbt.Compound:
			w.field(tagCompound, k)
			if err := w.compound(v); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported tag %T at %q", v, k)
		}
	}
	return w.WriteByte(tagEnd)
}

// root writes l as a nameless text component compound.
func (w *nbtWriter) root(l text.Line) {
	w.WriteByte(tagCompound)
	w.line(l)
}

func (w *nbtWriter) line(l text.Line) {
	w.field(tagString, "text")
	w.str(l.Text)
	if l.Color != "" {
		w.field(tagString, "color")
		w.str(l.Color)
	}
	if l.Bold != nil {
		w.field(tagByte, "bold")
		w.WriteByte(boolByte(*l.Bold))
	}
	if l.Italic != nil {
		w.field(tagByte, "italic")
		w.WriteByte(boolByte(*l.Italic))
	}
	if len(l.Extra) > 0 {
		w.field(tagList, "extra")
		w.WriteByte(tagCompound)
		w.Write(binary.BigEndian.AppendUint32(nil, uint32(len(l.Extra))))
		for _, e := range l.Extra {
			w.line(e)
		}
	}
	w.WriteByte(tagEnd)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
