package reorder

import (
	"fmt"
	"os"

	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/layout"
)

// Runtime debug flag for splice tracing - controlled by REGKIT_LOG_PLAN env var.
var logPlan = os.Getenv("REGKIT_LOG_PLAN") != ""

// Dir names the two keyboard reorder directions.
type Dir int

const (
	// TowardLSB moves a field one strip slot toward bit 0.
	TowardLSB Dir = iota
	// TowardMSB moves a field one strip slot toward the register MSB.
	TowardMSB
)

func (d Dir) String() string {
	switch d {
	case TowardLSB:
		return "lsb"
	case TowardMSB:
		return "msb"
	}
	return "unknown"
}

// Step swaps fields[fieldIndex]'s segment with the adjacent strip entry
// in the given direction and returns the repacked ranges for every field,
// one batch. Returns false when the field has no segment or the move
// would run off the end of the strip.
//
// The swap trades whole entries. A gap neighbor moves to the other side
// of the field with its width intact, so stepping past a gap is not its
// own inverse: the field's new range shifts by the gap width, not by a
// neighbor field's width.
func Step(fields []types.Field, reg types.Register, fieldIndex int, dir Dir) ([]types.RangeUpdate, bool) {
	segs := layout.Build(fields, reg)
	s := layout.SegmentIndex(segs, fieldIndex)
	if s < 0 {
		return nil, false
	}
	t := s + 1
	if dir == TowardMSB {
		t = s - 1
	}
	if t < 0 || t >= len(segs) {
		return nil, false
	}

	moved := segs[s]
	rest := make([]types.Segment, 0, len(segs)-1)
	rest = append(rest, segs[:s]...)
	rest = append(rest, segs[s+1:]...)

	arranged := make([]types.Segment, 0, len(segs))
	arranged = append(arranged, rest[:t]...)
	arranged = append(arranged, moved)
	arranged = append(arranged, rest[t:]...)

	return layout.Updates(layout.Repack(arranged)), true
}

// Plan computes the preview strip for dragging fields[fieldIndex] to
// cursorBit. The cursor is clamped into the virtual coordinate space
// left after removing the dragged segment; one position past its top
// still resolves, to the MSB end. When the field has no segment the
// unmoved strip comes back so a preview consumer always has a full
// partition to draw.
func Plan(fields []types.Field, reg types.Register, fieldIndex, cursorBit int) []types.Segment {
	segs := layout.Build(fields, reg)
	s := layout.SegmentIndex(segs, fieldIndex)
	if s < 0 {
		return segs
	}
	dragged := segs[s]

	clean := make([]types.Segment, 0, len(segs)-1)
	clean = append(clean, segs[:s]...)
	clean = append(clean, segs[s+1:]...)
	clean = layout.Repack(clean)

	virtualSize := reg.Width() - dragged.Range().Width()
	effective := cursorBit
	if effective < 0 {
		effective = 0
	}
	if effective > virtualSize {
		effective = virtualSize
	}

	target := -1
	for i, seg := range clean {
		if seg.Range().Contains(effective) {
			target = i
			break
		}
	}
	if logPlan {
		fmt.Fprintf(os.Stderr, "[PLAN] field=%d cursor=%d effective=%d virtual=%d target=%d\n",
			fieldIndex, cursorBit, effective, virtualSize, target)
	}

	var arranged []types.Segment
	if target < 0 {
		// Cursor beyond all remaining content: dragged goes to the MSB end.
		arranged = make([]types.Segment, 0, len(clean)+1)
		arranged = append(arranged, dragged)
		arranged = append(arranged, clean...)
	} else {
		tr := clean[target].Range()
		offset := effective - tr.Lo
		arranged = make([]types.Segment, 0, len(clean)+2)
		arranged = append(arranged, clean[:target]...)

		switch seg := clean[target].(type) {
		case types.FieldSegment:
			// Upper half lands the dragged field on the MSB side of the
			// occupant, lower half on the LSB side.
			if 2*offset > tr.Width() {
				arranged = append(arranged, dragged, seg)
			} else {
				arranged = append(arranged, seg, dragged)
			}
			if logPlan {
				fmt.Fprintf(os.Stderr, "[PLAN]   field occupant idx=%d offset=%d width=%d\n",
					seg.FieldIndex, offset, tr.Width())
			}
		case types.GapSegment:
			// Split around the dragged segment, dropping empty remainders.
			topWidth := tr.Width() - offset
			if topWidth > 0 {
				arranged = append(arranged, types.GapSegment{
					Bits: types.BitRange{Lo: tr.Lo + offset, Hi: tr.Hi},
				})
			}
			arranged = append(arranged, dragged)
			if offset > 0 {
				arranged = append(arranged, types.GapSegment{
					Bits: types.BitRange{Lo: tr.Lo, Hi: tr.Lo + offset - 1},
				})
			}
			if logPlan {
				fmt.Fprintf(os.Stderr, "[PLAN]   gap split top=%d bottom=%d\n", topWidth, offset)
			}
		}
		arranged = append(arranged, clean[target+1:]...)
	}

	return layout.Repack(arranged)
}
