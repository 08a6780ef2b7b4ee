package types

import (
	"fmt"
	"math"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindRange    ErrKind = iota // bit positions outside the register, inverted, or overlapping
	ErrKindValue                   // value not representable in the target width
	ErrKindDocument                // malformed or unreadable register-map document
	ErrKindState                   // invalid operation for current state (e.g., gesture already active)
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrWidthRange indicates a register width outside [1, MaxWidth].
	ErrWidthRange = &Error{Kind: ErrKindRange, Msg: "register width outside 1..64"}
	// ErrBitRange indicates a bit position outside the register.
	ErrBitRange = &Error{Kind: ErrKindRange, Msg: "bit position outside register"}
	// ErrFieldOverlap indicates two fields claiming the same bit.
	ErrFieldOverlap = &Error{Kind: ErrKindRange, Msg: "field bit ranges overlap"}
	// ErrValueRange indicates a value too large for the target width.
	ErrValueRange = &Error{Kind: ErrKindValue, Msg: "value does not fit bit width"}
	// ErrValueForm indicates a value that is not a non-negative integer.
	ErrValueForm = &Error{Kind: ErrKindValue, Msg: "value is not a non-negative integer"}
	// ErrNotRegisterMap indicates a document that does not decode as a register map.
	ErrNotRegisterMap = &Error{Kind: ErrKindDocument, Msg: "not a register map document"}
)

// -----------------------------------------------------------------------------
// Register & Bit Coordinates
// -----------------------------------------------------------------------------

// MaxWidth is the widest register the engine edits. Register-wide values
// are held in uint64, so width is a hard construction-time bound rather
// than a silent precision cliff.
const MaxWidth = 64

// Register describes the fixed-width bit container being edited. It owns
// no state beyond the width; bit positions run 0 (LSB) to Width-1 (MSB).
type Register struct {
	width int
}

// NewRegister returns a Register of the given bit width. Widths outside
// [1, MaxWidth] are rejected with ErrWidthRange.
func NewRegister(width int) (Register, error) {
	if width < 1 || width > MaxWidth {
		return Register{}, fmt.Errorf("register width %d: %w", width, ErrWidthRange)
	}
	return Register{width: width}, nil
}

// MustRegister is NewRegister for widths known to be valid; it panics on
// a bad width. Intended for tests and fixed-layout tooling.
func MustRegister(width int) Register {
	r, err := NewRegister(width)
	if err != nil {
		panic(err)
	}
	return r
}

// Width returns the register's bit width.
func (r Register) Width() int { return r.width }

// MSB returns the index of the register's most significant bit.
func (r Register) MSB() int { return r.width - 1 }

// Contains reports whether bit lies inside the register.
func (r Register) Contains(bit int) bool { return bit >= 0 && bit < r.width }

// ClampBit returns bit forced into [0, Width-1]. Gesture handling uses
// this so cursor positions can never address bits outside the register.
func (r Register) ClampBit(bit int) int {
	if bit < 0 {
		return 0
	}
	if bit >= r.width {
		return r.width - 1
	}
	return bit
}

// BitRange is an inclusive range of register bits with Lo <= Hi and bit 0
// the register LSB. A single-bit range has Lo == Hi.
type BitRange struct {
	Lo int
	Hi int
}

// Width returns the number of bits the range covers.
func (r BitRange) Width() int { return r.Hi - r.Lo + 1 }

// Contains reports whether bit lies inside the range.
func (r BitRange) Contains(bit int) bool { return bit >= r.Lo && bit <= r.Hi }

// Overlaps reports whether r and other share at least one bit.
func (r BitRange) Overlaps(other BitRange) bool {
	return r.Lo <= other.Hi && other.Lo <= r.Hi
}

// String renders the range in the [hi:lo] notation conventional for
// hardware registers; single-bit ranges render as [n].
func (r BitRange) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("[%d]", r.Lo)
	}
	return fmt.Sprintf("[%d:%d]", r.Hi, r.Lo)
}

// -----------------------------------------------------------------------------
// Fields & Raw Bit Encodings
// -----------------------------------------------------------------------------

// BitSpec is the owning document's raw bit-position encoding for a field:
// either a single bit index or a (hi, lo) pair in any order. Elements stay
// float64 because the document layer parses them from JSON text and must
// hand malformed input (NaN from unparseable text, missing entries) to
// Resolve unchanged rather than masking it.
type BitSpec []float64

// SpecBit encodes a single-bit position.
func SpecBit(bit int) BitSpec { return BitSpec{float64(bit)} }

// SpecRange encodes an inclusive (hi, lo) pair, MSB first, matching the
// document convention.
func SpecRange(hi, lo int) BitSpec { return BitSpec{float64(hi), float64(lo)} }

// Resolve returns the inclusive bit range the spec encodes. A one-element
// spec names a single bit; a two-element spec is order-normalized so
// Lo <= Hi. The second result is false when the spec is empty, has more
// than two elements, or contains a non-finite value; consumers skip such
// fields wherever a bit-ownership decision is made. Fractional positions
// truncate toward zero.
func (s BitSpec) Resolve() (BitRange, bool) {
	switch len(s) {
	case 1:
		if !isFinite(s[0]) {
			return BitRange{}, false
		}
		bit := int(s[0])
		return BitRange{Lo: bit, Hi: bit}, true
	case 2:
		if !isFinite(s[0]) || !isFinite(s[1]) {
			return BitRange{}, false
		}
		hi, lo := int(s[0]), int(s[1])
		if lo > hi {
			hi, lo = lo, hi
		}
		return BitRange{Lo: lo, Hi: hi}, true
	}
	return BitRange{}, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Field is the engine's read-only view of one named bit range in the
// owning document's field list. The engine never mutates a Field; every
// proposed change flows back through an UpdateSink so the document stays
// the single source of truth.
type Field struct {
	Index int     // position in the document's field list
	Bits  BitSpec // raw range encoding exactly as the document stores it
	Name  string
	Color string  // display color token assigned by the document, opaque here
	Reset float64 // raw reset value; non-finite means "none recorded"
}

// Range resolves the field's raw bit encoding. Shorthand for
// f.Bits.Resolve().
func (f Field) Range() (BitRange, bool) { return f.Bits.Resolve() }

// -----------------------------------------------------------------------------
// Update Capability Interface
// -----------------------------------------------------------------------------

// RangeUpdate is one proposed field move: the document should re-encode
// field FieldIndex to cover Bits.
type RangeUpdate struct {
	FieldIndex int
	Bits       BitRange
}

// UpdateSink receives the engine's proposed document changes. All calls
// are synchronous and fire on the caller's goroutine; the engine never
// queues or retries an update. Hosts embed NoopSink and override only the
// updates they consume.
type UpdateSink interface {
	// SetFieldRange proposes a new bit range for a single field.
	SetFieldRange(fieldIndex int, bits BitRange)

	// SetFieldRanges proposes a batch of moves forming one logical
	// change. Reorder commits use this so every displaced field applies
	// together or not at all.
	SetFieldRanges(updates []RangeUpdate)

	// SetFieldReset proposes a new reset value for a single field. A nil
	// value clears the recorded reset.
	SetFieldReset(fieldIndex int, value *uint64)

	// CreateField proposes carving a new field out of free bits.
	CreateField(bits BitRange, name string)

	// PreviewRanges reports in-progress field positions during a reorder
	// gesture so a host view can paint them live; nil clears the preview.
	PreviewRanges(updates []RangeUpdate)
}

// NoopSink implements UpdateSink with no-op methods. Embed it to build
// sinks that handle only a subset of updates.
type NoopSink struct{}

func (NoopSink) SetFieldRange(int, BitRange)  {}
func (NoopSink) SetFieldRanges([]RangeUpdate) {}
func (NoopSink) SetFieldReset(int, *uint64)   {}
func (NoopSink) CreateField(BitRange, string) {}
func (NoopSink) PreviewRanges([]RangeUpdate)  {}
