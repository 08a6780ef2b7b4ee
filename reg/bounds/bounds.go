// Package bounds computes how far a field may grow before colliding with
// a neighbor, and the free extent around an unowned bit. Both feed the
// drag session controllers: resize gestures clamp to ResizeLimit, create
// gestures clamp to GapExtent.
package bounds

import "github.com/ipcraft/regkit/pkg/types"

// Edge names the two grabbable sides of a field.
type Edge int

const (
	// EdgeLSB is the low-bit side of a field.
	EdgeLSB Edge = iota
	// EdgeMSB is the high-bit side of a field.
	EdgeMSB
)

func (e Edge) String() string {
	switch e {
	case EdgeLSB:
		return "lsb"
	case EdgeMSB:
		return "msb"
	}
	return "unknown"
}

// ResizeLimit returns the furthest bit the given edge of fields[fieldIndex]
// may reach without overlapping another field. The MSB edge stops one bit
// below the nearest field strictly above, or at the register MSB when
// nothing is above; the LSB edge is symmetric toward bit 0.
//
// Returns false when fieldIndex is out of range or the field's bits do
// not resolve; fields that do not resolve also never obstruct.
func ResizeLimit(fields []types.Field, reg types.Register, fieldIndex int, edge Edge) (int, bool) {
	if fieldIndex < 0 || fieldIndex >= len(fields) {
		return 0, false
	}
	r, ok := fields[fieldIndex].Range()
	if !ok {
		return 0, false
	}

	switch edge {
	case EdgeMSB:
		limit := reg.MSB()
		for i, f := range fields {
			if i == fieldIndex {
				continue
			}
			g, ok := f.Range()
			if !ok {
				continue
			}
			if g.Lo > r.Hi && g.Lo-1 < limit {
				limit = g.Lo - 1
			}
		}
		return limit, true
	case EdgeLSB:
		limit := 0
		for i, f := range fields {
			if i == fieldIndex {
				continue
			}
			g, ok := f.Range()
			if !ok {
				continue
			}
			if g.Hi < r.Lo && g.Hi+1 > limit {
				limit = g.Hi + 1
			}
		}
		return limit, true
	}
	return 0, false
}

// Ownership maps bit positions to the index of the field that owns them.
type Ownership map[int]int

// Owners builds the bit-ownership lookup for a field list. Fields whose
// bits do not resolve are skipped. When malformed input makes two fields
// claim the same bit, the first claimant in list order keeps it.
func Owners(fields []types.Field) Ownership {
	owned := make(Ownership)
	for _, f := range fields {
		r, ok := f.Range()
		if !ok {
			continue
		}
		for bit := r.Lo; bit <= r.Hi; bit++ {
			if _, taken := owned[bit]; taken {
				continue
			}
			owned[bit] = f.Index
		}
	}
	return owned
}

// Owner returns the index of the field owning bit, or false for a free bit.
func (o Ownership) Owner(bit int) (int, bool) {
	idx, ok := o[bit]
	return idx, ok
}

// Owned reports whether any field owns bit.
func (o Ownership) Owned(bit int) bool {
	_, ok := o[bit]
	return ok
}

// GapExtent expands outward from startBit one bit at a time while the
// neighbors stay unowned, clamped to the register. Returns false when
// startBit is owned or outside the register.
func GapExtent(owned Ownership, reg types.Register, startBit int) (types.BitRange, bool) {
	if !reg.Contains(startBit) || owned.Owned(startBit) {
		return types.BitRange{}, false
	}
	lo, hi := startBit, startBit
	for lo-1 >= 0 && !owned.Owned(lo-1) {
		lo--
	}
	for hi+1 <= reg.MSB() && !owned.Owned(hi+1) {
		hi++
	}
	return types.BitRange{Lo: lo, Hi: hi}, true
}
