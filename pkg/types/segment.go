package types

// Segment is one entry in the ordered partition of a register: either a
// FieldSegment (bits owned by a field) or a GapSegment (unowned bits). A
// valid segment list is pairwise disjoint, covers [0, Width-1] exactly
// once, and is ordered by strictly decreasing Hi (MSB first).
//
// The interface is sealed; the layout, reorder, and session packages
// match exhaustively on the two concrete types.
type Segment interface {
	// Range returns the bits the segment covers.
	Range() BitRange

	isSegment()
}

// FieldSegment is the placed extent of one document field.
type FieldSegment struct {
	FieldIndex int
	Bits       BitRange
	Name       string
	Color      string
}

// Range returns the bits the field occupies.
func (s FieldSegment) Range() BitRange { return s.Bits }

func (FieldSegment) isSegment() {}

// GapSegment is a maximal run of bits owned by no field.
type GapSegment struct {
	Bits BitRange
}

// Range returns the unowned bits.
func (s GapSegment) Range() BitRange { return s.Bits }

func (GapSegment) isSegment() {}

// WithRange returns a copy of seg moved to cover r. Repositioning never
// changes what the segment is, only where it sits; the repacker relies on
// this to move segments without disturbing their identity.
func WithRange(seg Segment, r BitRange) Segment {
	switch seg := seg.(type) {
	case FieldSegment:
		seg.Bits = r
		return seg
	case GapSegment:
		seg.Bits = r
		return seg
	}
	// Unreachable: Segment is sealed to the two variants above.
	return seg
}
