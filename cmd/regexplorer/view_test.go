package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_RendersPanes(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(120, 40)

	view := h.GetView()
	assert.Contains(t, view, "Register Map Explorer")
	assert.Contains(t, view, "Registers (2)")
	assert.Contains(t, view, "CTRL")
	assert.Contains(t, view, "STATUS")

	// Field table
	assert.Contains(t, view, "NAME")
	assert.Contains(t, view, "RESET")
	assert.Contains(t, view, "EN")
	assert.Contains(t, view, "BAUD")
	assert.Contains(t, view, "[3:0]")
	assert.Contains(t, view, "0x5")

	// Bit strip and the composed value in the status bar
	assert.Contains(t, view, "··")
	assert.Contains(t, view, "0x85")
}

func TestView_DirtyMarker(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(120, 40)

	assert.NotContains(t, h.GetView(), "● unsaved")

	h.SendKeyRune(' ')
	assert.Contains(t, h.GetView(), "● unsaved")
}

func TestView_GestureStatus(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(120, 40)

	h.SendKey(tea.KeyRight).SendKey(tea.KeyRight).SendKey(tea.KeyRight).SendKey(tea.KeyRight)
	h.SendKeyRune('r')
	require.True(t, h.GetModel().sess.Active())

	// The status message announces the grab first; once cleared, the
	// mode indicator takes over
	upd, _ := h.GetModel().Update(clearStatusMsg{})
	view := upd.(Model).View()
	assert.Contains(t, view, "RESIZE")
	assert.Contains(t, view, "Enter: Commit")
}

func TestView_ValueModal(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(100, 30)

	h.SendKeyRune('v')
	view := h.GetView()
	assert.Contains(t, view, "Set Register Value")
	assert.Contains(t, view, "Enter: Apply")
}

func TestView_RenameModal(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(100, 30)

	h.SendKeyRune('e')
	view := h.GetView()
	assert.Contains(t, view, "Rename Field")
	assert.Contains(t, view, "EN")
}

func TestView_InlineValueEntry(t *testing.T) {
	t.Setenv("REGEXPLORER_VALUE_MODE", "inline")

	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(100, 30)

	h.SendKeyRune('v')
	view := h.GetView()
	assert.Contains(t, view, "Value:")
	assert.NotContains(t, view, "Set Register Value")
}

func TestView_StatusShowsCursorOwner(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(120, 40)

	assert.Contains(t, h.GetView(), "bit  7")

	h.SendKey(tea.KeyRight).SendKey(tea.KeyRight)
	view := h.GetView()
	assert.Contains(t, view, "bit  5")
	assert.Contains(t, view, "gap")
}

func TestView_ErrorScreen(t *testing.T) {
	m := NewModel("/nonexistent/uart.regmap.json")
	view := m.View()
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "Press q to quit.")
}

func TestView_FieldDetailModal(t *testing.T) {
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(120, 40)

	h.SendKey(tea.KeyEnter) // EN under the cursor
	view := h.GetView()
	assert.Contains(t, view, "Field: EN")
	assert.Contains(t, view, "Reset Value")
	assert.Contains(t, view, "bit  7  1")
}

func TestView_FieldDetailPane(t *testing.T) {
	t.Setenv("REGEXPLORER_DETAIL_MODE", "pane")
	h := NewTestHelper(writeTestMap(t))
	h.SendWindowSize(120, 40)

	h.SendKey(tea.KeyEnter)
	view := h.GetView()
	assert.Contains(t, view, "Field: EN")
	assert.Contains(t, view, "Esc: Close Detail")
}
