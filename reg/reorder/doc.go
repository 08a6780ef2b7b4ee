// Package reorder computes new segment arrangements for a field being
// moved, in two forms.
//
// Step is the keyboard form: the field's segment swaps places with
// whatever occupies the adjacent strip slot, field or gap, as a whole
// entry. Gaps are never split, so stepping a field past a gap displaces
// the gap to the other side of the field.
//
// Plan is the pointer form: given a cursor bit, it removes the dragged
// field's segment, repacks the remainder into a virtual coordinate space
// (the register minus the dragged width), and splices the dragged
// segment back in at the position the cursor lands on. A cursor inside
// another field inserts on the MSB or LSB side of it depending on which
// half of the field the cursor is in; a cursor inside a gap splits the
// gap around the dragged segment; a cursor beyond all remaining content
// puts the dragged segment at the MSB end. The spliced strip is repacked
// and returned as the preview layout.
//
// Both forms only rearrange; widths never change. Committing a plan is
// the caller's job: flatten the preview with layout.Updates and hand the
// batch to the document model.
//
// Set REGKIT_LOG_PLAN=1 to trace splice decisions on stderr.
package reorder
