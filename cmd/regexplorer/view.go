package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/ipcraft/regkit/cmd/regexplorer/fielddetail"
	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/value"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	// If help overlay is showing, render it
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	// Field details as a centered modal over the main view
	if m.fieldDetail.IsVisible() && m.fieldDetail.DisplayMode() == fielddetail.DetailModeModal {
		// Recreate the overlay each render so it sees the latest state
		mainView := NewMainViewModel(&m)
		detailOverlay := overlay.New(
			&m.fieldDetail,
			mainView,
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return detailOverlay.View()
	}

	// Value/rename entry as a centered modal over the main view
	if m.inputMode != NormalMode && m.valueModal {
		// Recreate the overlay each render so it sees the latest state
		// (bubbletea's Update returns new models, stored pointers go stale)
		entry := newInputModal(&m)
		mainView := NewMainViewModel(&m)
		entryOverlay := overlay.New(
			entry,
			mainView,
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return entryOverlay.View()
	}

	header := m.renderHeader()
	content := m.renderContent()
	status := m.renderStatus()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		status,
	)
}

// renderHeader renders the header with the map path and dirty marker
func (m Model) renderHeader() string {
	title := "Register Map Explorer"
	mapName := fmt.Sprintf("Map: %s", truncate(m.docPath, 48))

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render(title),
		lipgloss.NewStyle().Render("  "),
		pathStyle.Render(mapName),
	)

	if m.doc.Dirty() {
		header = lipgloss.JoinHorizontal(
			lipgloss.Top,
			header,
			lipgloss.NewStyle().Render("  "),
			dirtyStyle.Render("● unsaved"),
		)
	}

	return header
}

// renderContent renders the register list beside the bit grid and field
// table
func (m Model) renderContent() string {
	listWidth := 24
	gridWidth := m.width - listWidth
	if gridWidth < 48 {
		gridWidth = 48
	}

	contentHeight := max(m.height-6, 8)
	detailPane := m.fieldDetail.IsVisible() &&
		m.fieldDetail.DisplayMode() == fielddetail.DetailModePane
	if detailPane {
		contentHeight = max(contentHeight-m.height/3, 8)
	}

	// Register list pane
	listTitle := fmt.Sprintf("Registers (%d)", len(m.doc.Map.Registers))
	listContent := m.renderRegisterRows()
	listPane := lipgloss.NewStyle().
		Width(listWidth - 2).
		Height(contentHeight).
		Render(listContent)

	var listBox string
	switch m.focusedPane {
	case RegisterPane:
		listBox = activePaneStyle.
			Width(listWidth - 2).
			Height(contentHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, listTitle, listPane))
	default:
		listBox = paneStyle.
			Width(listWidth - 2).
			Height(contentHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, listTitle, listPane))
	}

	// Grid pane: the bit strip with the field table beneath it
	def := m.view.Def()
	gridTitle := fmt.Sprintf("%s [%d:0]", def.Name, m.view.Register().MSB())
	if m.grid.Preview() {
		gridTitle += "  " + modeStyle.Render("preview")
	}

	gridContent := lipgloss.JoinVertical(
		lipgloss.Left,
		m.grid.View(),
		"",
		m.renderFieldTable(),
	)
	gridPane := lipgloss.NewStyle().
		Width(gridWidth - 2).
		Height(contentHeight).
		Render(gridContent)

	var gridBox string
	switch m.focusedPane {
	case GridPane:
		gridBox = activePaneStyle.
			Width(gridWidth - 2).
			Height(contentHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, gridTitle, gridPane))
	default:
		gridBox = paneStyle.
			Width(gridWidth - 2).
			Height(contentHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, gridTitle, gridPane))
	}

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listBox,
		gridBox,
	)
	if detailPane {
		return lipgloss.JoinVertical(lipgloss.Left, columns, m.fieldDetail.View())
	}
	return columns
}

// renderRegisterRows renders the register list with the selection bar
func (m Model) renderRegisterRows() string {
	var rows []string
	for i, r := range m.doc.Map.Registers {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("(register %d)", i)
		}
		line := fmt.Sprintf("%s %3db", runewidth.FillRight(runewidth.Truncate(name, 14, "…"), 14), r.Width)
		if i == m.regIndex {
			rows = append(rows, registerSelectedStyle.Render(line))
		} else {
			rows = append(rows, registerRowStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

// renderFieldTable renders the field list with the cursor's owner
// highlighted
func (m Model) renderFieldTable() string {
	fields := m.view.Fields()
	if len(fields) == 0 {
		return helpStyle.Render("no fields, press n on a gap to create one")
	}

	ownerIdx := -1
	if idx, ok := m.ownerAtCursor(); ok {
		ownerIdx = idx
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("   #  %s %-8s %s",
		runewidth.FillRight("NAME", 14), "BITS", "RESET")))
	b.WriteString("\n")

	for i, f := range fields {
		bitsCol := "?"
		if r, ok := f.Range(); ok {
			bitsCol = r.String()
		}
		resetCol := "-"
		if !math.IsNaN(f.Reset) && !math.IsInf(f.Reset, 0) {
			resetCol = fmt.Sprintf("0x%X", uint64(f.Reset))
		}

		swatch := lipgloss.NewStyle().Foreground(fieldColor(f.Color)).Render("█")
		name := runewidth.FillRight(runewidth.Truncate(f.Name, 14, "…"), 14)
		line := fmt.Sprintf("%s %2d  %s %-8s %s", swatch, i, name, bitsCol, resetCol)

		if i == ownerIdx {
			b.WriteString(tableSelectedStyle.Render(line))
		} else {
			b.WriteString(tableRowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus renders the status bar with help text
func (m Model) renderStatus() string {
	// Inline input entry replaces the status bar when the modal is off
	if m.inputMode != NormalMode && !m.valueModal {
		var prompt string
		switch m.inputMode {
		case ValueMode:
			prompt = modeStyle.Render("Value: ") + m.input.View()
		case RenameMode:
			prompt = modeStyle.Render("Rename: ") + m.input.View()
		}
		return statusStyle.Width(m.width).Render(prompt)
	}

	// Status message takes priority over normal help
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(
			modeStyle.Render(m.statusMessage),
		)
	}

	var help strings.Builder
	switch {
	case m.fieldDetail.IsVisible():
		help.WriteString(helpStyle.Render("Esc: Close Detail"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("↑/↓: Scroll"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("q: Quit"))
	case m.sess.Active():
		help.WriteString(modeStyle.Render(strings.ToUpper(m.sess.Mode().String())))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("←/→: Drag"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("Enter: Commit"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("Esc: Cancel"))
	default:
		help.WriteString(helpStyle.Render("←/→: Cursor"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("r: Resize"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("m: Move"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("n: New"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("v: Value"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("?: Help"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("q: Quit"))
	}

	// Cursor position, owner, and composed value
	var statsBuilder strings.Builder
	statsBuilder.WriteString(fmt.Sprintf("bit %2d", m.grid.Cursor()))
	if seg, ok := m.grid.SegmentAt(m.grid.Cursor()); ok {
		if fs, isField := seg.(types.FieldSegment); isField {
			statsBuilder.WriteString(" │ ")
			statsBuilder.WriteString(pathStyle.Render(fs.Name))
		} else {
			statsBuilder.WriteString(" │ ")
			statsBuilder.WriteString(pathStyle.Render("gap"))
		}
	}
	statsBuilder.WriteString(" │ ")
	reg := m.view.Register()
	composed := value.Compose(m.view.Fields(), reg)
	statsBuilder.WriteString(fmt.Sprintf("0x%0*X", hexDigits(reg.Width()), composed))

	statusLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		help.String(),
		lipgloss.NewStyle().Width(10).Render(""), // Spacer
		statsBuilder.String(),
	)

	return statusStyle.
		Width(m.width).
		Render(statusLine)
}

// renderHelpOverlay renders the help overlay
func (m Model) renderHelpOverlay() string {
	var helpContent strings.Builder

	title := helpTitleStyle.Render("Keyboard Shortcuts")
	helpContent.WriteString(title)
	helpContent.WriteString("\n\n")

	const keyWidth = 12

	// Navigation section
	helpContent.WriteString(modalTitleStyle.Render("Navigation"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("←/→ or h/l"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Move the bit cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("↑/↓ or k/j"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Switch register, or jump a grid row"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("g / G"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Jump to MSB / LSB"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Tab"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Switch between registers and grid"))
	helpContent.WriteString("\n\n")

	// Gestures section
	helpContent.WriteString(modalTitleStyle.Render("Layout Gestures"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("r"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Grab the field edge under the cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("n"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Sweep a new field out of a gap"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("m"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Drag the field under the cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("[ / ]"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Swap field toward LSB / MSB"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("< / >"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Nudge field LSB / MSB edge one bit"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Enter"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Commit the active gesture"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Esc"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Cancel the active gesture"))
	helpContent.WriteString("\n\n")

	// Value section
	helpContent.WriteString(modalTitleStyle.Render("Bits & Values"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Space"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Toggle the bit under the cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("0 / 1"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Clear / set the bit under the cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("v"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Enter a whole register value"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("y"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Copy the register value"))
	helpContent.WriteString("\n\n")

	// Other section
	helpContent.WriteString(modalTitleStyle.Render("Other"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Enter"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Details for the field under the cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("e"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Rename the field under the cursor"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Ctrl+S"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Save the map"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("?"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Show this help"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("q or Ctrl+C"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Quit"))
	helpContent.WriteString("\n\n")

	helpContent.WriteString(helpStyle.Render("Press Esc, ?, or q to close this help"))

	helpBox := modalStyle.
		Width(56).
		Render(helpContent.String())

	helpHeight := lipgloss.Height(helpBox)
	helpWidth := lipgloss.Width(helpBox)

	verticalPadding := (m.height - helpHeight) / 2
	horizontalPadding := (m.width - helpWidth) / 2

	if verticalPadding < 0 {
		verticalPadding = 0
	}
	if horizontalPadding < 0 {
		horizontalPadding = 0
	}

	positioned := lipgloss.NewStyle().
		MarginTop(verticalPadding).
		MarginLeft(horizontalPadding).
		Render(helpBox)

	return positioned
}
