package bits

import (
	"math"
	"testing"
)

func TestBitHelpers(t *testing.T) {
	const v = uint64(0b1010_0001)

	if !Bit(v, 0) {
		t.Fatalf("Bit(v, 0) should be set")
	}
	if Bit(v, 1) {
		t.Fatalf("Bit(v, 1) should be clear")
	}
	if !Bit(v, 7) {
		t.Fatalf("Bit(v, 7) should be set")
	}
	if Bit(v, -1) || Bit(v, 64) {
		t.Fatalf("out-of-range Bit should be false")
	}
	if !Bit(math.MaxUint64, 63) {
		t.Fatalf("Bit(MaxUint64, 63) should be set")
	}

	if got := SetBit(0, 3, true); got != 0b1000 {
		t.Fatalf("SetBit(0, 3, true) = 0x%x, want 0x8", got)
	}
	if got := SetBit(v, 0, false); got != 0b1010_0000 {
		t.Fatalf("SetBit clear = 0x%x, want 0xa0", got)
	}
	if got := SetBit(v, 64, true); got != v {
		t.Fatalf("out-of-range SetBit should leave v unchanged")
	}
	if got := SetBit(v, -1, false); got != v {
		t.Fatalf("negative SetBit should leave v unchanged")
	}
}

func TestMask(t *testing.T) {
	if got := Mask(0, 3); got != 0xf {
		t.Fatalf("Mask(0, 3) = 0x%x, want 0xf", got)
	}
	if got := Mask(4, 7); got != 0xf0 {
		t.Fatalf("Mask(4, 7) = 0x%x, want 0xf0", got)
	}
	if got := Mask(5, 5); got != 0x20 {
		t.Fatalf("Mask(5, 5) = 0x%x, want 0x20", got)
	}
	if got := Mask(0, 63); got != math.MaxUint64 {
		t.Fatalf("Mask(0, 63) = 0x%x, want MaxUint64", got)
	}
	if Mask(3, 1) != 0 || Mask(-1, 4) != 0 || Mask(0, 64) != 0 {
		t.Fatalf("invalid spans should yield 0")
	}
}

func TestExtractDeposit(t *testing.T) {
	const v = uint64(0xdead_beef)

	if got := Extract(v, 0, 7); got != 0xef {
		t.Fatalf("Extract low byte = 0x%x, want 0xef", got)
	}
	if got := Extract(v, 16, 31); got != 0xdead {
		t.Fatalf("Extract high word = 0x%x, want 0xdead", got)
	}
	if got := Extract(v, 0, 63); got != v {
		t.Fatalf("full-width Extract = 0x%x, want 0x%x", got, v)
	}
	if Extract(v, 5, 2) != 0 || Extract(v, -1, 3) != 0 {
		t.Fatalf("invalid spans should extract 0")
	}

	if got := Deposit(0, 4, 7, 0xa); got != 0xa0 {
		t.Fatalf("Deposit = 0x%x, want 0xa0", got)
	}
	// Oversized field values truncate to the span width.
	if got := Deposit(0, 0, 3, 0x1f); got != 0xf {
		t.Fatalf("truncating Deposit = 0x%x, want 0xf", got)
	}
	if got := Deposit(0xff, 2, 5, 0); got != 0b1100_0011 {
		t.Fatalf("clearing Deposit = 0x%x, want 0xc3", got)
	}
	if got := Deposit(v, 9, 3, 1); got != v {
		t.Fatalf("invalid Deposit should leave v unchanged")
	}

	// Round trip: what goes in comes back out.
	stored := Deposit(0, 10, 21, 0x5a5)
	if got := Extract(stored, 10, 21); got != 0x5a5 {
		t.Fatalf("round trip = 0x%x, want 0x5a5", got)
	}
}

func TestMaxValue(t *testing.T) {
	if got := MaxValue(1); got != 1 {
		t.Fatalf("MaxValue(1) = %d, want 1", got)
	}
	if got := MaxValue(4); got != 15 {
		t.Fatalf("MaxValue(4) = %d, want 15", got)
	}
	if got := MaxValue(63); got != math.MaxUint64>>1 {
		t.Fatalf("MaxValue(63) = 0x%x", got)
	}
	if got := MaxValue(64); got != math.MaxUint64 {
		t.Fatalf("MaxValue(64) should saturate at MaxUint64")
	}
	if got := MaxValue(70); got != math.MaxUint64 {
		t.Fatalf("MaxValue above 64 should saturate")
	}
	if MaxValue(0) != 0 || MaxValue(-3) != 0 {
		t.Fatalf("non-positive widths should yield 0")
	}
}
