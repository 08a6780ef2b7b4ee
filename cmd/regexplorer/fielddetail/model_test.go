package fielddetail

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ipcraft/regkit/pkg/types"
)

// TestNewFieldDetailModel tests initialization with different display modes
func TestNewFieldDetailModel(t *testing.T) {
	tests := []struct {
		name string
		mode DetailDisplayMode
	}{
		{"Modal mode", DetailModeModal},
		{"Pane mode", DetailModePane},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFieldDetailModel(tt.mode)

			if m.DisplayMode() != tt.mode {
				t.Errorf("expected display mode %v, got %v", tt.mode, m.DisplayMode())
			}

			if m.IsVisible() {
				t.Error("new model should not be visible")
			}

			if m.field != nil {
				t.Error("new model should have nil field")
			}
		})
	}
}

// TestShowAndHide tests showing and hiding the detail view
func TestShowAndHide(t *testing.T) {
	m := NewFieldDetailModel(DetailModeModal)
	// Initialize viewport size
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.IsVisible() {
		t.Error("model should start hidden")
	}

	field := &FieldInfo{
		Index:    1,
		Name:     "BAUD",
		Bits:     types.BitRange{Lo: 0, Hi: 3},
		Resolved: true,
		Reset:    5,
		HasReset: true,
		Access:   "rw",
	}

	m.Show(field)

	if !m.IsVisible() {
		t.Error("model should be visible after Show()")
	}

	if m.field != field {
		t.Error("model should store the provided field")
	}

	m.Hide()

	if m.IsVisible() {
		t.Error("model should be hidden after Hide()")
	}

	if m.field != nil {
		t.Error("model should clear field after Hide()")
	}
}

// TestUpdate tests window size handling
func TestUpdate(t *testing.T) {
	m := NewFieldDetailModel(DetailModeModal)

	msg := tea.WindowSizeMsg{Width: 120, Height: 40}
	updatedModel, _ := m.Update(msg)

	updated := updatedModel.(*FieldDetailModel)

	if updated.width != 120 {
		t.Errorf("width = %d, want 120", updated.width)
	}

	if updated.height != 40 {
		t.Errorf("height = %d, want 40", updated.height)
	}
}

// TestViewWhenHidden tests that View returns empty string when hidden
func TestViewWhenHidden(t *testing.T) {
	m := NewFieldDetailModel(DetailModeModal)

	if m.View() != "" {
		t.Error("View() should return empty string when hidden")
	}
}

// TestViewWhenVisible tests that View renders the field data
func TestViewWhenVisible(t *testing.T) {
	m := NewFieldDetailModel(DetailModeModal)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	field := &FieldInfo{
		Index:       1,
		Name:        "BAUD",
		Bits:        types.BitRange{Lo: 0, Hi: 3},
		Resolved:    true,
		Reset:       5,
		HasReset:    true,
		Access:      "rw",
		Description: "Divisor select",
	}

	m.Show(field)

	view := m.View()

	if view == "" {
		t.Error("View() should return content when visible")
	}

	if !strings.Contains(view, "BAUD") {
		t.Error("View should contain the field name")
	}

	if !strings.Contains(view, "[3:0]") {
		t.Error("View should contain the bit range")
	}

	if !strings.Contains(view, "0x5 (5)") {
		t.Error("View should contain the reset value")
	}

	if !strings.Contains(view, "Divisor select") {
		t.Error("View should contain the description")
	}
}

// TestViewUnresolvedField tests rendering a field with no placement
func TestViewUnresolvedField(t *testing.T) {
	m := NewFieldDetailModel(DetailModeModal)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Show(&FieldInfo{Index: 0, Name: "GHOST"})

	view := m.View()

	if !strings.Contains(view, "(unresolved)") {
		t.Error("View should mark an unresolved placement")
	}

	if strings.Contains(view, "Bit Breakdown") {
		t.Error("View should omit the bit breakdown without a placement")
	}
}

// TestFormatBits tests the per-bit breakdown
func TestFormatBits(t *testing.T) {
	m := NewFieldDetailModel(DetailModeModal)
	m.field = &FieldInfo{
		Bits:     types.BitRange{Lo: 4, Hi: 6},
		Resolved: true,
		Reset:    0b101,
		HasReset: true,
	}

	got := m.formatBits()

	want := "bit  6  1\nbit  5  0\nbit  4  1\n"
	if got != want {
		t.Errorf("formatBits() = %q, want %q", got, want)
	}
}

// TestPaneView tests the bottom-pane rendering mode
func TestPaneView(t *testing.T) {
	m := NewFieldDetailModel(DetailModePane)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Show(&FieldInfo{
		Name:     "EN",
		Bits:     types.BitRange{Lo: 7, Hi: 7},
		Resolved: true,
		HasReset: true,
		Reset:    1,
	})

	if !strings.Contains(m.View(), "EN") {
		t.Error("pane view should contain the field name")
	}
}
