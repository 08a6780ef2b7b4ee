// Package edit implements the one-shot keyboard edits: single-edge field
// nudges and register bit/value writes. Each call proposes at most one
// change through the sink and reports whether it did.
package edit

import (
	"github.com/ipcraft/regkit/internal/bits"
	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/bounds"
	"github.com/ipcraft/regkit/reg/value"
)

// Nudge moves one edge of fields[fieldIndex] a single bit outward. The
// command is direction-overloaded: when the edge already rests on its
// collision boundary it shrinks the field by one bit instead, so the key
// always does something while a resize is possible. Returns false only
// when no resize can happen: a width-1 field pinned at its boundary, or
// a field that cannot resolve.
func Nudge(fields []types.Field, reg types.Register, fieldIndex int, edge bounds.Edge, sink types.UpdateSink) bool {
	if sink == nil {
		sink = types.NoopSink{}
	}
	if fieldIndex < 0 || fieldIndex >= len(fields) {
		return false
	}
	r, ok := fields[fieldIndex].Range()
	if !ok {
		return false
	}
	limit, ok := bounds.ResizeLimit(fields, reg, fieldIndex, edge)
	if !ok {
		return false
	}

	switch edge {
	case bounds.EdgeMSB:
		if r.Hi < limit {
			sink.SetFieldRange(fieldIndex, types.BitRange{Lo: r.Lo, Hi: r.Hi + 1})
			return true
		}
		if r.Width() > 1 {
			sink.SetFieldRange(fieldIndex, types.BitRange{Lo: r.Lo, Hi: r.Hi - 1})
			return true
		}
	case bounds.EdgeLSB:
		if r.Lo > limit {
			sink.SetFieldRange(fieldIndex, types.BitRange{Lo: r.Lo - 1, Hi: r.Hi})
			return true
		}
		if r.Width() > 1 {
			sink.SetFieldRange(fieldIndex, types.BitRange{Lo: r.Lo + 1, Hi: r.Hi})
			return true
		}
	}
	return false
}

// SetBit writes one register bit through the owning field's reset.
// Returns false when the bit is outside the register, falls in a gap, or
// already holds the desired value.
func SetBit(fields []types.Field, reg types.Register, bit int, desired bool, sink types.UpdateSink) bool {
	if sink == nil {
		sink = types.NoopSink{}
	}
	if !reg.Contains(bit) {
		return false
	}
	for _, f := range fields {
		r, ok := f.Range()
		if !ok {
			continue
		}
		if !r.Contains(bit) {
			continue
		}
		cur := value.Reset(f)
		rel := bit - r.Lo
		if bits.Bit(cur, rel) == desired {
			return false
		}
		next := bits.SetBit(cur, rel, desired)
		sink.SetFieldReset(f.Index, &next)
		return true
	}
	return false
}

// Toggle flips one register bit. Same ownership rules as SetBit.
func Toggle(fields []types.Field, reg types.Register, bit int, sink types.UpdateSink) bool {
	return SetBit(fields, reg, bit, !value.BitAt(fields, bit), sink)
}

// SetValue spreads a register-wide value across every field's reset.
// Bits above the register width are ignored; bits in gaps are dropped.
func SetValue(v uint64, fields []types.Field, reg types.Register, sink types.UpdateSink) {
	value.Decompose(v, fields, reg, sink)
}
