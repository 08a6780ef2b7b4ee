package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipcraft/regkit/pkg/types"
)

// applyUpdates rewrites each field's bit spec from an update batch, the
// way a document model would on commit.
func applyUpdates(fields []types.Field, updates []types.RangeUpdate) []types.Field {
	out := make([]types.Field, len(fields))
	copy(out, fields)
	for _, u := range updates {
		for i := range out {
			if out[i].Index == u.FieldIndex {
				out[i].Bits = types.SpecRange(float64(u.Bits.Hi), float64(u.Bits.Lo))
			}
		}
	}
	return out
}

func rangeOf(t *testing.T, fields []types.Field, index int) types.BitRange {
	t.Helper()
	for _, f := range fields {
		if f.Index == index {
			r, ok := f.Range()
			require.True(t, ok)
			return r
		}
	}
	t.Fatalf("no field with index %d", index)
	return types.BitRange{}
}

// TestPlan_DragHighFieldIntoLowField walks the canonical drag: width 8,
// A=[7:6], B=[3:0], cursor at bit 2 inside B's lower half.
func TestPlan_DragHighFieldIntoLowField(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	segs := Plan(fields, reg, 0, 2)
	require.Len(t, segs, 3)

	// A lands below B; the vacated bits become one gap at the top.
	gap, ok := segs[0].(types.GapSegment)
	require.True(t, ok, "top of strip is the residual gap")
	assert.Equal(t, types.BitRange{Lo: 6, Hi: 7}, gap.Bits)

	b, ok := segs[1].(types.FieldSegment)
	require.True(t, ok)
	assert.Equal(t, 1, b.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 2, Hi: 5}, b.Bits)

	a, ok := segs[2].(types.FieldSegment)
	require.True(t, ok)
	assert.Equal(t, 0, a.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 1}, a.Bits)
}

func TestPlan_UpperHalfInsertsOnMSBSide(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	// Cursor bit 3: B spans virtual [0,3], offset 3, width 4. Past the
	// midpoint, so A inserts on B's MSB side.
	segs := Plan(fields, reg, 0, 3)
	require.Len(t, segs, 3)

	_, isGap := segs[0].(types.GapSegment)
	require.True(t, isGap)

	a := segs[1].(types.FieldSegment)
	assert.Equal(t, 0, a.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 4, Hi: 5}, a.Bits)

	b := segs[2].(types.FieldSegment)
	assert.Equal(t, 1, b.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 3}, b.Bits)
}

func TestPlan_MidpointInsertsOnLSBSide(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	// Offset 2 of width 4 is exactly half, which does not exceed it:
	// the dragged field stays on the LSB side.
	segs := Plan(fields, reg, 0, 2)
	a := segs[2].(types.FieldSegment)
	assert.Equal(t, 0, a.FieldIndex)
}

func TestPlan_CursorInGapSplitsIt(t *testing.T) {
	reg := types.MustRegister(16)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(15, 14), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	// Clean space after removing A: gap virtual [4,13] (width 10) above
	// B [0,3]. Cursor 8 splits the gap at offset 4.
	segs := Plan(fields, reg, 0, 8)
	require.Len(t, segs, 4)

	top, ok := segs[0].(types.GapSegment)
	require.True(t, ok)
	assert.Equal(t, 6, top.Bits.Width(), "upper remainder keeps width - offset")

	a, ok := segs[1].(types.FieldSegment)
	require.True(t, ok)
	assert.Equal(t, 0, a.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 8, Hi: 9}, a.Bits)

	bottom, ok := segs[2].(types.GapSegment)
	require.True(t, ok)
	assert.Equal(t, 4, bottom.Bits.Width(), "lower remainder keeps the offset")

	b, ok := segs[3].(types.FieldSegment)
	require.True(t, ok)
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 3}, b.Bits)
}

func TestPlan_GapSplitOmitsEmptyRemainder(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	// Cursor 4: inside the virtual gap [4,5] at offset 0, so the lower
	// remainder vanishes and A sits directly on top of B.
	segs := Plan(fields, reg, 0, 4)
	require.Len(t, segs, 3)

	_, isGap := segs[0].(types.GapSegment)
	assert.True(t, isGap)

	a := segs[1].(types.FieldSegment)
	assert.Equal(t, 0, a.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 4, Hi: 5}, a.Bits)

	b := segs[2].(types.FieldSegment)
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 3}, b.Bits)
}

func TestPlan_CursorBeyondContentGoesToMSBEnd(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(1, 0), Name: "LOW"},
		{Index: 1, Bits: types.SpecRange(5, 4), Name: "MID"},
	}

	// Dragging LOW far above everything: clean virtual space is width 6,
	// cursor clamps to 6, which is past every clean segment.
	segs := Plan(fields, reg, 0, 50)
	require.NotEmpty(t, segs)

	top, ok := segs[0].(types.FieldSegment)
	require.True(t, ok)
	assert.Equal(t, 0, top.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 6, Hi: 7}, top.Bits)
}

func TestPlan_NegativeCursorClampsToZero(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	segs := Plan(fields, reg, 0, -9)
	a := segs[len(segs)-1].(types.FieldSegment)
	assert.Equal(t, 0, a.FieldIndex)
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 1}, a.Bits, "cursor below the register drags to bit 0")
}

func TestPlan_FieldWithoutSegmentReturnsUnmovedStrip(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: nil, Name: "BROKEN"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	segs := Plan(fields, reg, 0, 2)
	require.Len(t, segs, 2)
	assert.Equal(t, types.BitRange{Lo: 4, Hi: 7}, segs[0].Range())
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 3}, segs[1].Range())
}

func TestPlan_PreviewCoversRegister(t *testing.T) {
	reg := types.MustRegister(12)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(11, 10), Name: "A"},
		{Index: 1, Bits: types.SpecRange(7, 5), Name: "B"},
		{Index: 2, Bits: types.SpecRange(2, 0), Name: "C"},
	}

	// Every cursor position must yield a full partition.
	for cursor := -2; cursor <= 14; cursor++ {
		segs := Plan(fields, reg, 1, cursor)
		total := 0
		prevLo := reg.Width()
		for _, seg := range segs {
			r := seg.Range()
			require.Equal(t, prevLo-1, r.Hi, "cursor %d: strip not contiguous", cursor)
			total += r.Width()
			prevLo = r.Lo
		}
		assert.Equal(t, reg.Width(), total, "cursor %d: widths must sum to the register", cursor)
	}
}

func TestStep_SwapsAdjacentFields(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 4), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	updates, ok := Step(fields, reg, 1, TowardMSB)
	require.True(t, ok)
	require.Len(t, updates, 2, "every field comes back in the batch")

	after := applyUpdates(fields, updates)
	assert.Equal(t, types.BitRange{Lo: 4, Hi: 7}, rangeOf(t, after, 1))
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 3}, rangeOf(t, after, 0))
}

func TestStep_RefusedAtStripEnds(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 4), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	_, ok := Step(fields, reg, 0, TowardMSB)
	assert.False(t, ok, "A already tops the strip")

	_, ok = Step(fields, reg, 1, TowardLSB)
	assert.False(t, ok, "B already bottoms the strip")

	_, ok = Step(fields, reg, 9, TowardMSB)
	assert.False(t, ok, "unknown field")
}

func TestStep_SwapsWithGapEntry(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	// B's MSB neighbor in the strip is the gap [5:4], not A. The swap
	// displaces the whole gap below B.
	updates, ok := Step(fields, reg, 1, TowardMSB)
	require.True(t, ok)

	after := applyUpdates(fields, updates)
	assert.Equal(t, types.BitRange{Lo: 2, Hi: 5}, rangeOf(t, after, 1))
	assert.Equal(t, types.BitRange{Lo: 6, Hi: 7}, rangeOf(t, after, 0), "A does not move")
}

// TestStep_RoundTripWithoutGap verifies that the sequence "move the low
// field up, then move the displaced field up" restores a gapless
// two-field layout.
func TestStep_RoundTripWithoutGap(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 4), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	updates, ok := Step(fields, reg, 1, TowardMSB)
	require.True(t, ok)
	step1 := applyUpdates(fields, updates)

	updates, ok = Step(step1, reg, 0, TowardMSB)
	require.True(t, ok)
	step2 := applyUpdates(step1, updates)

	assert.Equal(t, types.BitRange{Lo: 4, Hi: 7}, rangeOf(t, step2, 0))
	assert.Equal(t, types.BitRange{Lo: 0, Hi: 3}, rangeOf(t, step2, 1))
}

// TestStep_RoundTripBrokenByGap repeats the same command sequence on a
// layout with a gap between the fields. The first step swaps B with the
// gap instead of with A, so A never leaves the top of the strip and the
// follow-up step that restored the gapless layout is refused outright.
func TestStep_RoundTripBrokenByGap(t *testing.T) {
	reg := types.MustRegister(8)
	fields := []types.Field{
		{Index: 0, Bits: types.SpecRange(7, 6), Name: "A"},
		{Index: 1, Bits: types.SpecRange(3, 0), Name: "B"},
	}

	updates, ok := Step(fields, reg, 1, TowardMSB)
	require.True(t, ok)
	step1 := applyUpdates(fields, updates)
	assert.Equal(t, types.BitRange{Lo: 2, Hi: 5}, rangeOf(t, step1, 1), "B swapped with the gap, not with A")

	_, ok = Step(step1, reg, 0, TowardMSB)
	assert.False(t, ok, "A is still at the strip top; nothing to swap with")

	assert.NotEqual(t, types.BitRange{Lo: 0, Hi: 3}, rangeOf(t, step1, 1),
		"the layout does not return to its original ranges")
}
