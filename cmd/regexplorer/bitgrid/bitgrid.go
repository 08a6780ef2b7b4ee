// Package bitgrid renders one register as an MSB-first strip of bit
// cells, colored by the field owning each bit. During a drag gesture the
// grid swaps its committed strip for the session's preview, so the
// display follows the pointer without touching the document.
package bitgrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ipcraft/regkit/internal/bits"
	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/layout"
)

// BitsPerRow keeps wide registers readable; 64-bit registers wrap into
// four rows. Hosts use it for row-wise cursor movement.
const BitsPerRow = 16

var (
	rulerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	gapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)
)

// ColorFunc resolves a stored color token to a terminal color.
type ColorFunc func(token string) lipgloss.Color

// Model is the bit strip display state.
type Model struct {
	reg     types.Register
	segs    []types.Segment
	preview bool
	cursor  int
	gesture types.BitRange
	grabbed bool
	value   uint64
	colors  ColorFunc
}

// New creates a bit grid for a register.
func New(colors ColorFunc) Model {
	if colors == nil {
		colors = func(string) lipgloss.Color { return lipgloss.Color("#AAAAAA") }
	}
	return Model{colors: colors}
}

// SetRegister points the grid at a register and resets the cursor to its
// MSB.
func (m *Model) SetRegister(reg types.Register) {
	m.reg = reg
	m.cursor = reg.MSB()
	m.segs = nil
	m.preview = false
	m.grabbed = false
}

// SetFields rebuilds the committed strip from a field snapshot. A live
// preview, when set, stays on top until cleared.
func (m *Model) SetFields(fields []types.Field) {
	m.segs = layout.Build(fields, m.reg)
}

// SetPreview overlays a proposed strip; nil returns to the committed one.
func (m *Model) SetPreview(segs []types.Segment) {
	m.preview = segs != nil
	if m.preview {
		m.segs = segs
	}
}

// Preview reports whether the grid is showing a proposed strip.
func (m *Model) Preview() bool { return m.preview }

// Segments returns the strip currently displayed.
func (m *Model) Segments() []types.Segment { return m.segs }

// SetCursor moves the cursor, clamped into the register.
func (m *Model) SetCursor(bit int) {
	m.cursor = m.reg.ClampBit(bit)
}

// Cursor returns the cursor bit position.
func (m *Model) Cursor() int { return m.cursor }

// SetGesture highlights the active gesture's bit range.
func (m *Model) SetGesture(r types.BitRange, active bool) {
	m.gesture = r
	m.grabbed = active
}

// SetValue sets the composed register value shown under the cells.
func (m *Model) SetValue(v uint64) { m.value = v }

// SegmentAt returns the displayed segment covering a bit.
func (m *Model) SegmentAt(bit int) (types.Segment, bool) {
	for _, seg := range m.segs {
		if seg.Range().Contains(bit) {
			return seg, true
		}
	}
	return nil, false
}

// View renders the grid: a ruler of bit indices, a cell row, and the
// register value bit by bit, wrapped every BitsPerRow bits.
func (m Model) View() string {
	if m.reg.Width() == 0 {
		return ""
	}

	var rows []string
	for hi := m.reg.MSB(); hi >= 0; hi -= BitsPerRow {
		lo := hi - BitsPerRow + 1
		if lo < 0 {
			lo = 0
		}
		rows = append(rows, m.renderRow(hi, lo))
	}
	return strings.Join(rows, "\n\n")
}

func (m Model) renderRow(hi, lo int) string {
	var ruler, cells, vals strings.Builder

	for bit := hi; bit >= lo; bit-- {
		ruler.WriteString(rulerStyle.Render(fmt.Sprintf("%2d ", bit)))
		cells.WriteString(m.renderCell(bit))

		v := "0"
		if bits.Bit(m.value, bit) {
			v = "1"
		}
		vals.WriteString(valueStyle.Render(fmt.Sprintf(" %s ", v)))
	}

	return ruler.String() + "\n" + cells.String() + "\n" + vals.String()
}

func (m Model) renderCell(bit int) string {
	cell := "·· "
	style := gapStyle

	if seg, ok := m.SegmentAt(bit); ok {
		if fs, isField := seg.(types.FieldSegment); isField {
			cell = "██ "
			style = lipgloss.NewStyle().Foreground(m.colors(fs.Color))
		}
	}

	if m.grabbed && m.gesture.Contains(bit) {
		cell = "▒▒ "
	}
	if bit == m.cursor {
		return cursorStyle.Render(cell)
	}
	return style.Render(cell)
}
