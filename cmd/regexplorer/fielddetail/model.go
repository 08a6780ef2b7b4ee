package fielddetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ipcraft/regkit/internal/bits"
	"github.com/ipcraft/regkit/pkg/types"
)

// DetailDisplayMode determines how the detail view is shown
type DetailDisplayMode int

const (
	DetailModeModal DetailDisplayMode = iota // Popup overlay
	DetailModePane                           // Bottom pane
)

// FieldInfo is the data the detail view renders for one field.
type FieldInfo struct {
	Index       int
	Name        string
	Bits        types.BitRange
	Resolved    bool
	Reset       uint64
	HasReset    bool
	Access      string
	Color       string
	Description string
}

// FieldDetailModel shows detailed information about a selected field
type FieldDetailModel struct {
	field       *FieldInfo
	displayMode DetailDisplayMode
	viewport    viewport.Model
	width       int
	height      int
	visible     bool
}

// NewFieldDetailModel creates a new field detail model
func NewFieldDetailModel(mode DetailDisplayMode) FieldDetailModel {
	return FieldDetailModel{
		displayMode: mode,
		viewport:    viewport.New(0, 0),
		visible:     false,
	}
}

// Init implements tea.Model
func (m FieldDetailModel) Init() tea.Cmd {
	return nil
}

// Show displays details for a field
func (m *FieldDetailModel) Show(field *FieldInfo) {
	m.field = field
	m.visible = true
	m.updateContent()
}

// Hide closes the detail view
func (m *FieldDetailModel) Hide() {
	m.visible = false
	m.field = nil
}

// IsVisible returns whether the detail view is currently shown
func (m *FieldDetailModel) IsVisible() bool {
	return m.visible
}

// DisplayMode returns the current display mode
func (m *FieldDetailModel) DisplayMode() DetailDisplayMode {
	return m.displayMode
}

// Update handles messages
func (m *FieldDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()
		m.updateContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateViewportSize adjusts viewport dimensions based on display mode
func (m *FieldDetailModel) updateViewportSize() {
	switch m.displayMode {
	case DetailModeModal:
		// Modal takes 80% of screen, centered; border + padding eat
		// 4 rows and 6 columns
		m.viewport.Width = int(float64(m.width)*0.8) - 6
		m.viewport.Height = int(float64(m.height)*0.8) - 4
	case DetailModePane:
		// Pane takes full width, 1/3 of height
		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height/3 - 4
	}
}

// rule returns a horizontal separator sized to the viewport.
func (m *FieldDetailModel) rule() string {
	return strings.Repeat("─", max(m.viewport.Width-2, 8))
}

// updateContent generates the detailed view content
func (m *FieldDetailModel) updateContent() {
	if m.field == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder

	// Title
	name := m.field.Name
	if name == "" {
		name = "(unnamed)"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("Field: %s", name)))
	b.WriteString("\n\n")

	// Placement
	if m.field.Resolved {
		b.WriteString(fmt.Sprintf("Bits:   %s (%d wide)\n", m.field.Bits, m.field.Bits.Width()))
	} else {
		b.WriteString("Bits:   (unresolved)\n")
	}
	if m.field.Access != "" {
		b.WriteString(fmt.Sprintf("Access: %s\n", m.field.Access))
	}
	if m.field.Color != "" {
		b.WriteString(fmt.Sprintf("Color:  %s\n", m.field.Color))
	}
	b.WriteString("\n")

	// Reset value
	b.WriteString("Reset Value:\n")
	b.WriteString(m.rule())
	b.WriteString("\n")
	if m.field.HasReset {
		b.WriteString(fmt.Sprintf("0x%X (%d)\n", m.field.Reset, m.field.Reset))
	} else {
		b.WriteString("(none)\n")
	}
	b.WriteString("\n")

	// Per-bit breakdown
	if m.field.Resolved {
		b.WriteString("Bit Breakdown:\n")
		b.WriteString(m.rule())
		b.WriteString("\n")
		b.WriteString(m.formatBits())
		b.WriteString("\n")
	}

	// Description
	if m.field.Description != "" {
		b.WriteString("Description:\n")
		b.WriteString(m.rule())
		b.WriteString("\n")
		b.WriteString(m.field.Description)
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}

// formatBits lists the field's bits MSB-first with their reset values.
func (m *FieldDetailModel) formatBits() string {
	var b strings.Builder
	for bit := m.field.Bits.Hi; bit >= m.field.Bits.Lo; bit-- {
		v := 0
		if bits.Bit(m.field.Reset, bit-m.field.Bits.Lo) {
			v = 1
		}
		b.WriteString(fmt.Sprintf("bit %2d  %d\n", bit, v))
	}
	return b.String()
}

// View renders the detail view
func (m FieldDetailModel) View() string {
	if !m.visible || m.field == nil {
		return ""
	}

	switch m.displayMode {
	case DetailModeModal:
		return m.viewModal()
	case DetailModePane:
		return m.viewPane()
	default:
		return ""
	}
}

// viewModal renders as a centered popup; the overlay package handles
// placement, so this is just the box.
func (m FieldDetailModel) viewModal() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	return borderStyle.Render(m.viewport.View())
}

// viewPane renders as a bottom pane
func (m FieldDetailModel) viewPane() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return borderStyle.Render(m.viewport.View())
}
