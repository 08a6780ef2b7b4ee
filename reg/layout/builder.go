package layout

import (
	"sort"

	"github.com/ipcraft/regkit/pkg/types"
)

// placed is a field whose bit spec resolved, paired with the concrete
// range it resolved to.
type placed struct {
	field types.Field
	bits  types.BitRange
}

// Build partitions reg's full width into an MSB-first segment strip:
// FieldSegments for the fields that resolve to usable ranges, GapSegments
// for every maximal run of unowned bits.
//
// Fields are dropped from the strip, never reported, when their bit spec
// does not resolve, when their range extends outside the register, or
// when they collide with a field already placed. Ties on the high bit
// keep the field list's order. The result always covers [0, MSB] exactly
// once, even for garbage input.
func Build(fields []types.Field, reg types.Register) []types.Segment {
	resolved := make([]placed, 0, len(fields))
	for _, f := range fields {
		r, ok := f.Range()
		if !ok {
			continue
		}
		if r.Lo < 0 || r.Hi > reg.MSB() {
			continue
		}
		resolved = append(resolved, placed{field: f, bits: r})
	}

	// MSB-first walk order. Stable, so equal high bits keep list order
	// and the first claimant wins the collision check below.
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].bits.Hi > resolved[j].bits.Hi
	})

	segs := make([]types.Segment, 0, 2*len(resolved)+1)
	cursor := reg.MSB()
	for _, p := range resolved {
		if p.bits.Hi > cursor {
			// Overlaps coverage already emitted.
			continue
		}
		if p.bits.Hi < cursor {
			segs = append(segs, types.GapSegment{Bits: types.BitRange{Lo: p.bits.Hi + 1, Hi: cursor}})
		}
		segs = append(segs, types.FieldSegment{
			FieldIndex: p.field.Index,
			Bits:       p.bits,
			Name:       p.field.Name,
			Color:      p.field.Color,
		})
		cursor = p.bits.Lo - 1
	}
	if cursor >= 0 {
		segs = append(segs, types.GapSegment{Bits: types.BitRange{Lo: 0, Hi: cursor}})
	}
	return segs
}

// FieldAt returns the FieldSegment covering bit, or false when the bit
// falls in a gap or outside the strip.
func FieldAt(segs []types.Segment, bit int) (types.FieldSegment, bool) {
	for _, seg := range segs {
		fs, ok := seg.(types.FieldSegment)
		if !ok {
			continue
		}
		if fs.Bits.Contains(bit) {
			return fs, true
		}
	}
	return types.FieldSegment{}, false
}

// SegmentIndex returns the strip position of the segment owned by
// fieldIndex, or -1 when the field has no segment.
func SegmentIndex(segs []types.Segment, fieldIndex int) int {
	for i, seg := range segs {
		if fs, ok := seg.(types.FieldSegment); ok && fs.FieldIndex == fieldIndex {
			return i
		}
	}
	return -1
}
