package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// inputModal wraps the value/rename text entry as an overlay foreground.
type inputModal struct {
	model *Model
}

func newInputModal(m *Model) *inputModal {
	return &inputModal{model: m}
}

func (m *inputModal) Init() tea.Cmd {
	return nil
}

func (m *inputModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Key handling lives in the parent Model's Update
	return m, nil
}

func (m *inputModal) View() string {
	var content strings.Builder

	switch m.model.inputMode {
	case ValueMode:
		content.WriteString(modalTitleStyle.Render("Set Register Value"))
		content.WriteString("\n")
		content.WriteString(m.model.input.View())
		content.WriteString("\n\n")
		content.WriteString(helpStyle.Render("Decimal or 0x hex"))
	case RenameMode:
		content.WriteString(modalTitleStyle.Render("Rename Field"))
		content.WriteString("\n")
		content.WriteString(m.model.input.View())
	}

	content.WriteString("\n\n")
	content.WriteString(helpStyle.Render("Enter: Apply │ Esc: Cancel"))

	return modalStyle.
		Width(40).
		Render(content.String())
}
