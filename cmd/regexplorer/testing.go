package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

const testMap = `{
	"name": "uart",
	"registers": [
		{
			"name": "CTRL",
			"width": 8,
			"fields": [
				{"name": "EN", "bits": 7, "reset": 1},
				{"name": "BAUD", "bits": [3, 0], "reset": 5}
			]
		},
		{
			"name": "STATUS",
			"width": 16,
			"fields": [
				{"name": "READY", "bits": 0, "reset": 0}
			]
		}
	]
}`

// writeTestMap writes the sample register map into a temp dir and returns
// its path. Tests that save mutate the copy, never a shared fixture.
func writeTestMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uart.regmap.json")
	if err := os.WriteFile(path, []byte(testMap), 0o644); err != nil {
		t.Fatalf("failed to write test map: %v", err)
	}
	return path
}

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
}

// NewTestHelper creates a test helper with a model
func NewTestHelper(mapPath string) *TestHelper {
	return &TestHelper{
		model: NewModel(mapPath),
	}
}

// SendKey simulates a key press but does not execute returned commands
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendText types a string rune by rune
func (h *TestHelper) SendText(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// GetFocusedPane returns the currently focused pane
func (h *TestHelper) GetFocusedPane() Pane {
	return h.model.focusedPane
}

// GetCursor returns the grid cursor bit position
func (h *TestHelper) GetCursor() int {
	return h.model.grid.Cursor()
}
