// Package layout turns a register's field list into the segment strip a
// host renders, and repacks segment strips into contiguous bit
// assignments.
//
// # Segment building
//
// Build walks a register from its most significant bit down to bit 0 and
// partitions the full width into segments: one FieldSegment per field
// that resolves to a usable range, and one GapSegment for every maximal
// run of unowned bits. The output always covers the register exactly,
// with no overlaps, regardless of how malformed the input field list is.
// Fields whose bit specs do not resolve, lie outside the register, or
// collide with a field already placed are dropped from the strip rather
// than reported; the strip is a rendering model, not a validator.
//
// # Repacking
//
// Repack reassigns bit positions so the segments in a strip sit
// contiguously from bit 0 upward, preserving each segment's width and
// the strip's order. It is the second half of every structural edit:
// reorder planners produce a strip with the right order and widths, and
// Repack turns that into concrete bit ranges. Repacking an already
// contiguous strip returns it unchanged.
package layout
