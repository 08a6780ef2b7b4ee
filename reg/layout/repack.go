package layout

import "github.com/ipcraft/regkit/pkg/types"

// Repack reassigns bit positions so segs sit contiguously from bit 0
// upward. The input is MSB-first, so the walk runs back to front: the
// last segment lands at bit 0, each earlier segment stacks on top of the
// one after it. Widths and order never change, which makes Repack
// idempotent on already contiguous strips.
func Repack(segs []types.Segment) []types.Segment {
	out := make([]types.Segment, len(segs))
	cursor := 0
	for i := len(segs) - 1; i >= 0; i-- {
		w := segs[i].Range().Width()
		out[i] = types.WithRange(segs[i], types.BitRange{Lo: cursor, Hi: cursor + w - 1})
		cursor += w
	}
	return out
}

// Updates flattens a strip into one update per field segment, MSB-first.
// Gap segments carry no field and are skipped.
func Updates(segs []types.Segment) []types.RangeUpdate {
	updates := make([]types.RangeUpdate, 0, len(segs))
	for _, seg := range segs {
		if fs, ok := seg.(types.FieldSegment); ok {
			updates = append(updates, types.RangeUpdate{FieldIndex: fs.FieldIndex, Bits: fs.Bits})
		}
	}
	return updates
}
