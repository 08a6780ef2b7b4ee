package regmap

import (
	"fmt"
	"math"

	"github.com/ipcraft/regkit/pkg/types"
)

// palette cycles color tokens onto created fields. Hosts map tokens to
// whatever their renderer supports.
var palette = [...]string{"blue", "green", "yellow", "magenta", "cyan", "red", "orange", "purple"}

// RegisterView adapts one register of a document to the engine's call
// contract: Fields and Register supply the read side, and the view
// itself is the types.UpdateSink that applies proposed updates back onto
// the stored records.
type RegisterView struct {
	doc *Document
	idx int
	reg types.Register
}

// View returns the engine-facing view of register i.
func (d *Document) View(i int) (*RegisterView, error) {
	if i < 0 || i >= len(d.Map.Registers) {
		return nil, &types.Error{
			Kind: types.ErrKindRange,
			Msg:  fmt.Sprintf("register %d out of range (map has %d)", i, len(d.Map.Registers)),
		}
	}
	reg, err := types.NewRegister(d.Map.Registers[i].Width)
	if err != nil {
		return nil, err
	}
	return &RegisterView{doc: d, idx: i, reg: reg}, nil
}

// ViewNamed returns the view of the register called name.
func (d *Document) ViewNamed(name string) (*RegisterView, error) {
	for i, reg := range d.Map.Registers {
		if reg.Name == name {
			return d.View(i)
		}
	}
	return nil, &types.Error{
		Kind: types.ErrKindDocument,
		Msg:  fmt.Sprintf("no register named %q", name),
	}
}

// Def returns the underlying register record.
func (v *RegisterView) Def() *RegisterDef {
	return &v.doc.Map.Registers[v.idx]
}

// Register returns the engine register for this view.
func (v *RegisterView) Register() types.Register {
	return v.reg
}

// Fields snapshots the register's records as engine fields. Index is the
// record's position, which is also the index sink updates refer to.
func (v *RegisterView) Fields() []types.Field {
	def := v.Def()
	fields := make([]types.Field, len(def.Fields))
	for i, fd := range def.Fields {
		reset := math.NaN()
		if fd.Reset != nil {
			reset = float64(*fd.Reset)
		}
		fields[i] = types.Field{
			Index: i,
			Bits:  types.BitSpec(fd.Bits),
			Name:  fd.Name,
			Color: fd.Color,
			Reset: reset,
		}
	}
	return fields
}

// SetFieldRange stores a proposed range back as an [hi, lo] pair.
func (v *RegisterView) SetFieldRange(fieldIndex int, bits types.BitRange) {
	def := v.Def()
	if fieldIndex < 0 || fieldIndex >= len(def.Fields) {
		return
	}
	def.Fields[fieldIndex].Bits = PairFor(bits.Lo, bits.Hi)
	v.doc.markDirty()
}

// SetFieldRanges applies a reorder batch record by record.
func (v *RegisterView) SetFieldRanges(updates []types.RangeUpdate) {
	for _, u := range updates {
		v.SetFieldRange(u.FieldIndex, u.Bits)
	}
}

// SetFieldReset stores a proposed reset, or clears it for nil.
func (v *RegisterView) SetFieldReset(fieldIndex int, value *uint64) {
	def := v.Def()
	if fieldIndex < 0 || fieldIndex >= len(def.Fields) {
		return
	}
	if value == nil {
		def.Fields[fieldIndex].Reset = nil
	} else {
		s := Scalar(*value)
		def.Fields[fieldIndex].Reset = &s
	}
	v.doc.markDirty()
}

// CreateField appends a new record with the proposed name and range and
// the next palette color.
func (v *RegisterView) CreateField(bits types.BitRange, name string) {
	def := v.Def()
	def.Fields = append(def.Fields, FieldDef{
		Name:  name,
		Bits:  PairFor(bits.Lo, bits.Hi),
		Color: palette[len(def.Fields)%len(palette)],
	})
	v.doc.markDirty()
}

// PreviewRanges is a no-op: previews are a rendering concern, and the
// document only stores committed state.
func (v *RegisterView) PreviewRanges([]types.RangeUpdate) {}

// RenameField updates a record's name in place. Not part of the engine
// contract; hosts use it for their rename affordance.
func (v *RegisterView) RenameField(fieldIndex int, name string) bool {
	def := v.Def()
	if fieldIndex < 0 || fieldIndex >= len(def.Fields) {
		return false
	}
	if def.Fields[fieldIndex].Name == name {
		return false
	}
	def.Fields[fieldIndex].Name = name
	v.doc.markDirty()
	return true
}
