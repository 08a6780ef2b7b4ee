// Package value converts between a register-wide value and the per-field
// reset values that encode it, and parses operator-typed value text.
//
// The register value is the bitwise union of every field's reset placed
// at its range. Bits under no field read as 0 when composing and are
// dropped when decomposing; a register with gaps round-trips lossily
// through them on purpose, since gap bits have no field to live in.
package value

import (
	"math"

	"github.com/ipcraft/regkit/internal/bits"
	"github.com/ipcraft/regkit/pkg/types"
)

// Reset returns f's reset value as an engine value. Raw document resets
// are float64 and may hold anything: non-finite and negative collapse to
// 0, fractions truncate, and values past the 64-bit ceiling saturate.
func Reset(f types.Field) uint64 {
	raw := f.Reset
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 {
		return 0
	}
	raw = math.Trunc(raw)
	if raw >= math.Ldexp(1, 64) {
		return math.MaxUint64
	}
	return uint64(raw)
}

// Compose builds the register value from every field's reset. Fields
// that do not resolve or lie outside the register contribute nothing;
// oversized resets are masked to the field width so they cannot bleed
// into neighboring bits.
func Compose(fields []types.Field, reg types.Register) uint64 {
	var v uint64
	for _, f := range fields {
		r, ok := f.Range()
		if !ok {
			continue
		}
		if r.Lo < 0 || r.Hi > reg.MSB() {
			continue
		}
		v |= bits.Deposit(0, r.Lo, r.Hi, Reset(f))
	}
	return v
}

// Decompose writes v back into the fields: each resolved field receives
// the slice of v under its range via sink.SetFieldReset. Bits outside
// every field are discarded.
func Decompose(v uint64, fields []types.Field, reg types.Register, sink types.UpdateSink) {
	if sink == nil {
		return
	}
	for _, f := range fields {
		r, ok := f.Range()
		if !ok {
			continue
		}
		if r.Lo < 0 || r.Hi > reg.MSB() {
			continue
		}
		extracted := bits.Extract(v, r.Lo, r.Hi)
		sink.SetFieldReset(f.Index, &extracted)
	}
}

// BitAt reads one register bit through the owning field's reset. Unowned
// and out-of-range bits read as 0, matching Compose.
func BitAt(fields []types.Field, bit int) bool {
	for _, f := range fields {
		r, ok := f.Range()
		if !ok {
			continue
		}
		if r.Contains(bit) {
			return bits.Bit(Reset(f), bit-r.Lo)
		}
	}
	return false
}
