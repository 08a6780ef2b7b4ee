package session

import (
	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/bounds"
	"github.com/ipcraft/regkit/reg/layout"
	"github.com/ipcraft/regkit/reg/reorder"
)

// DefaultFieldName is the placeholder name given to fields created by a
// create gesture. The document model may rename on apply.
const DefaultFieldName = "field"

// Mode tags which gesture, if any, a session is tracking.
type Mode int

const (
	// Idle means no gesture is active.
	Idle Mode = iota
	// ModeResize tracks one edge of an existing field being dragged.
	ModeResize
	// ModeCreate tracks a new field being swept out of a gap.
	ModeCreate
	// ModeReorder tracks a whole field being dragged to a new position.
	ModeReorder
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case ModeResize:
		return "resize"
	case ModeCreate:
		return "create"
	case ModeReorder:
		return "reorder"
	}
	return "unknown"
}

// Session is the explicit record of one editing gesture.
//
// The zero Session is not usable; construct with New.
type Session struct {
	reg  types.Register
	sink types.UpdateSink

	mode        Mode
	targetField int // -1 outside resize/reorder

	// Resize/create: the fixed edge, the moving edge, and the clamp range.
	anchorBit  int
	currentBit int
	minBit     int
	maxBit     int

	// Reorder: the field-list snapshot replanned on every move, and the
	// latest preview strip.
	fields  []types.Field
	preview []types.Segment
}

// New returns an idle session bound to reg and sink. A nil sink is
// replaced with types.NoopSink so callers can drive gestures without
// consuming updates.
func New(reg types.Register, sink types.UpdateSink) *Session {
	if sink == nil {
		sink = types.NoopSink{}
	}
	return &Session{
		reg:         reg,
		sink:        sink,
		mode:        Idle,
		targetField: -1,
	}
}

// Mode returns the active gesture tag.
func (s *Session) Mode() Mode {
	return s.mode
}

// Active reports whether any gesture is in progress.
func (s *Session) Active() bool {
	return s.mode != Idle
}

// TargetField returns the field index a resize or reorder gesture is
// acting on, or -1.
func (s *Session) TargetField() int {
	return s.targetField
}

// GestureRange returns the range a resize or create gesture would commit
// right now. False outside those modes.
func (s *Session) GestureRange() (types.BitRange, bool) {
	if s.mode != ModeResize && s.mode != ModeCreate {
		return types.BitRange{}, false
	}
	lo, hi := s.anchorBit, s.currentBit
	if lo > hi {
		lo, hi = hi, lo
	}
	return types.BitRange{Lo: lo, Hi: hi}, true
}

// CurrentBit returns the grabbed edge's position after clamping. Hosts
// snap their cursor to it so the pointer never appears past a boundary.
// Meaningful only in resize and create modes.
func (s *Session) CurrentBit() int {
	return s.currentBit
}

// Preview returns the latest reorder preview strip, nil outside a
// reorder gesture. The caller must not retain it past Commit or Cancel.
func (s *Session) Preview() []types.Segment {
	return s.preview
}

// StartResize begins dragging one edge of fields[fieldIndex]. The
// opposite edge becomes the fixed anchor; the grabbed edge may move
// between the anchor and the collision limit reported by the boundary
// finder. Returns false when a gesture is already active or the field
// cannot resolve.
func (s *Session) StartResize(fields []types.Field, fieldIndex int, edge bounds.Edge) bool {
	if s.mode != Idle {
		return false
	}
	if fieldIndex < 0 || fieldIndex >= len(fields) {
		return false
	}
	r, ok := fields[fieldIndex].Range()
	if !ok {
		return false
	}
	limit, ok := bounds.ResizeLimit(fields, s.reg, fieldIndex, edge)
	if !ok {
		return false
	}

	if edge == bounds.EdgeMSB {
		s.anchorBit = r.Lo
		s.currentBit = r.Hi
	} else {
		s.anchorBit = r.Hi
		s.currentBit = r.Lo
	}
	s.minBit, s.maxBit = s.anchorBit, limit
	if s.minBit > s.maxBit {
		s.minBit, s.maxBit = s.maxBit, s.minBit
	}
	s.mode = ModeResize
	s.targetField = fieldIndex
	return true
}

// StartCreate begins sweeping a new field out from startBit. The bit
// must be unowned; the gesture is clamped to the surrounding gap so the
// new field can never reach into a neighbor. Returns false when a
// gesture is already active or startBit is owned or out of range.
func (s *Session) StartCreate(fields []types.Field, startBit int) bool {
	if s.mode != Idle {
		return false
	}
	extent, ok := bounds.GapExtent(bounds.Owners(fields), s.reg, startBit)
	if !ok {
		return false
	}
	s.mode = ModeCreate
	s.targetField = -1
	s.anchorBit = startBit
	s.currentBit = startBit
	s.minBit = extent.Lo
	s.maxBit = extent.Hi
	return true
}

// StartReorder begins dragging fields[fieldIndex] to a new position. The
// field list is snapshotted for replanning; the preview seeds with the
// unmoved layout. Returns false when a gesture is already active or the
// field has no segment.
func (s *Session) StartReorder(fields []types.Field, fieldIndex int) bool {
	if s.mode != Idle {
		return false
	}
	strip := layout.Build(fields, s.reg)
	if layout.SegmentIndex(strip, fieldIndex) < 0 {
		return false
	}
	s.mode = ModeReorder
	s.targetField = fieldIndex
	s.fields = make([]types.Field, len(fields))
	copy(s.fields, fields)
	s.preview = strip
	return true
}

// MoveTo advances the gesture to bit. Resize and create clamp the moving
// edge into the gesture's boundary range; reorder replans the preview
// and fires it at the sink. No-op when idle.
func (s *Session) MoveTo(bit int) {
	switch s.mode {
	case ModeResize, ModeCreate:
		if bit < s.minBit {
			bit = s.minBit
		}
		if bit > s.maxBit {
			bit = s.maxBit
		}
		s.currentBit = bit
	case ModeReorder:
		s.preview = reorder.Plan(s.fields, s.reg, s.targetField, bit)
		s.sink.PreviewRanges(layout.Updates(s.preview))
	}
}

// Commit applies the gesture's result to the sink as a single change and
// returns the session to Idle. Resize commits one range, create one new
// field, reorder one batch followed by a preview clear. An inverted
// resize range is dropped silently; clamping makes that unreachable, the
// check stays as an invariant guard.
func (s *Session) Commit() {
	switch s.mode {
	case ModeResize:
		lo, hi := s.anchorBit, s.currentBit
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo <= hi {
			s.sink.SetFieldRange(s.targetField, types.BitRange{Lo: lo, Hi: hi})
		}
	case ModeCreate:
		lo, hi := s.anchorBit, s.currentBit
		if lo > hi {
			lo, hi = hi, lo
		}
		s.sink.CreateField(types.BitRange{Lo: lo, Hi: hi}, DefaultFieldName)
	case ModeReorder:
		s.sink.SetFieldRanges(layout.Updates(s.preview))
		s.sink.PreviewRanges(nil)
	}
	s.reset()
}

// Cancel drops the gesture without touching the field list. A reorder
// additionally clears any live preview the sink may be showing.
func (s *Session) Cancel() {
	if s.mode == ModeReorder {
		s.sink.PreviewRanges(nil)
	}
	s.reset()
}

func (s *Session) reset() {
	s.mode = Idle
	s.targetField = -1
	s.anchorBit = 0
	s.currentBit = 0
	s.minBit = 0
	s.maxBit = 0
	s.fields = nil
	s.preview = nil
}
