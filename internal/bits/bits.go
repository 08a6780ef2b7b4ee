// Package bits contains helpers for single-bit and bit-span arithmetic on
// raw 64-bit register values.
package bits

import "math"

// Bit reports whether bit i of v is set. Returns false when i is outside [0, 63].
func Bit(v uint64, i int) bool {
	if i < 0 || i > 63 {
		return false
	}
	return v&(1<<uint(i)) != 0
}

// SetBit returns v with bit i forced to on. Returns v unchanged when i is
// outside [0, 63].
func SetBit(v uint64, i int, on bool) uint64 {
	if i < 0 || i > 63 {
		return v
	}
	if on {
		return v | 1<<uint(i)
	}
	return v &^ (1 << uint(i))
}

// Mask returns a value with ones in bit positions [lo, hi] inclusive.
// Returns 0 when the span is empty or outside [0, 63].
func Mask(lo, hi int) uint64 {
	if lo < 0 || hi > 63 || lo > hi {
		return 0
	}
	width := hi - lo + 1
	if width >= 64 {
		return math.MaxUint64
	}
	return (1<<uint(width) - 1) << uint(lo)
}

// Extract reads the bit span [lo, hi] of v, shifted down to bit 0.
// Returns 0 when the span is empty or outside [0, 63].
func Extract(v uint64, lo, hi int) uint64 {
	if lo < 0 || hi > 63 || lo > hi {
		return 0
	}
	width := hi - lo + 1
	if width >= 64 {
		return v
	}
	return (v >> uint(lo)) & (1<<uint(width) - 1)
}

// Deposit writes field into the bit span [lo, hi] of v, truncating field to
// the span width. Returns v unchanged when the span is empty or outside [0, 63].
func Deposit(v uint64, lo, hi int, field uint64) uint64 {
	if lo < 0 || hi > 63 || lo > hi {
		return v
	}
	m := Mask(lo, hi)
	return (v &^ m) | (field << uint(lo) & m)
}

// MaxValue returns the largest value a span of the given width can hold.
// Saturates at MaxUint64 for widths of 64 or more. Returns 0 for widths
// below 1.
func MaxValue(width int) uint64 {
	if width <= 0 {
		return 0
	}
	if width >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(width) - 1
}
