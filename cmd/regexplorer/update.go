package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ipcraft/regkit/cmd/regexplorer/bitgrid"
	"github.com/ipcraft/regkit/cmd/regexplorer/fielddetail"
	"github.com/ipcraft/regkit/cmd/regexplorer/logger"
	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/bounds"
	"github.com/ipcraft/regkit/reg/edit"
	"github.com/ipcraft/regkit/reg/layout"
	"github.com/ipcraft/regkit/reg/reorder"
	"github.com/ipcraft/regkit/reg/session"
	"github.com/ipcraft/regkit/reg/value"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		model, cmd := (&m.fieldDetail).Update(msg)
		m.fieldDetail = *model.(*fielddetail.FieldDetailModel)
		return m, cmd

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		// On the error screen only quit works
		if m.err != nil {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		// If help is showing, handle help keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
				return m, nil
			}
			// Ignore other keys when help is showing
			return m, nil
		}

		// If field details are open, handle their keys
		if m.fieldDetail.IsVisible() {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Enter) {
				m.fieldDetail.Hide()
				return m, nil
			}
			// Forward scroll keys to the viewport
			if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down) ||
				key.Matches(msg, m.keys.PageUp) || key.Matches(msg, m.keys.PageDown) {
				model, cmd := (&m.fieldDetail).Update(msg)
				m.fieldDetail = *model.(*fielddetail.FieldDetailModel)
				return m, cmd
			}
			// Still allow quit, with the usual unsaved guard
			if key.Matches(msg, m.keys.Quit) {
				if m.doc.Dirty() && !m.quitArmed {
					m.quitArmed = true
					return m, m.setStatus("Unsaved changes: ctrl+s to save, q again to quit")
				}
				return m, tea.Quit
			}
			// Ignore other keys when details are open
			return m, nil
		}

		// Value/rename entry
		if m.inputMode != NormalMode {
			return m.handleInputKey(msg)
		}

		// An active gesture captures the keyboard
		if m.sess.Active() {
			return m.handleGestureKey(msg)
		}

		return m.handleNormalKey(msg)
	}

	return m, nil
}

// setStatus sets a temporary status message cleared after two seconds.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// clearGestureDisplay removes preview and highlight after a gesture ends.
func (m *Model) clearGestureDisplay() {
	m.grid.SetPreview(nil)
	m.grid.SetGesture(types.BitRange{}, false)
	m.refresh()
}

// handleGestureKey drives an active drag gesture. Arrows move the
// pointer, enter commits, esc cancels; everything else is captured so a
// stray key cannot half-apply an edit.
func (m Model) handleGestureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveGesture(m.grid.Cursor() + 1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.moveGesture(m.grid.Cursor() - 1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveGesture(m.grid.Cursor() + bitgrid.BitsPerRow)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveGesture(m.grid.Cursor() - bitgrid.BitsPerRow)
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.moveGesture(m.view.Register().MSB())
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.moveGesture(0)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		mode := m.sess.Mode()
		m.sess.Commit()
		m.clearGestureDisplay()
		logger.Debug("gesture committed", "mode", mode.String())
		return m, m.setStatus("Committed " + mode.String())

	case key.Matches(msg, m.keys.Esc):
		m.sess.Cancel()
		m.clearGestureDisplay()
		return m, m.setStatus("Cancelled")

	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// moveGesture advances the active gesture to bit and re-syncs the grid.
func (m *Model) moveGesture(bit int) {
	m.sess.MoveTo(bit)

	switch m.sess.Mode() {
	case session.ModeResize, session.ModeCreate:
		// The grabbed edge stops at the boundary; the cursor rides on it.
		m.grid.SetCursor(m.sess.CurrentBit())
		if r, ok := m.sess.GestureRange(); ok {
			m.grid.SetGesture(r, true)
		}
	case session.ModeReorder:
		m.grid.SetCursor(bit)
		m.syncReorderPreview()
	}
}

// syncReorderPreview mirrors the session's proposed strip in the grid.
func (m *Model) syncReorderPreview() {
	preview := m.sess.Preview()
	m.grid.SetPreview(preview)
	if i := layout.SegmentIndex(preview, m.sess.TargetField()); i >= 0 {
		m.grid.SetGesture(preview[i].Range(), true)
	}
}

// handleInputKey drives the value and rename text inputs.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.inputMode = NormalMode
		m.renameIdx = -1
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m.applyInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyInput commits the text input. A rejected value keeps the input
// open so the entry can be fixed instead of retyped.
func (m Model) applyInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())

	switch m.inputMode {
	case ValueMode:
		parsed, ok := value.Parse(text)
		if !ok {
			return m, m.setStatus(fmt.Sprintf("Not a number: %q", text))
		}
		v, err := value.Check(parsed, m.view.Register().Width())
		if err != nil {
			return m, m.setStatus("Rejected: " + err.Error())
		}

		edit.SetValue(v, m.view.Fields(), m.view.Register(), m.view)
		m.refresh()
		m.inputMode = NormalMode
		m.input.Blur()
		return m, m.setStatus(fmt.Sprintf("Value set to 0x%X", v))

	case RenameMode:
		if text == "" {
			return m, m.setStatus("Name cannot be empty")
		}
		renamed := m.view.RenameField(m.renameIdx, text)
		m.inputMode = NormalMode
		m.renameIdx = -1
		m.input.Blur()
		m.refresh()
		if renamed {
			return m, m.setStatus("Renamed to " + text)
		}
		return m, m.setStatus("Name unchanged")
	}

	m.inputMode = NormalMode
	return m, nil
}

// handleNormalKey handles keys outside any overlay, input, or gesture.
func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit, with a one-step guard over unsaved edits
	if key.Matches(msg, m.keys.Quit) {
		if m.doc.Dirty() && !m.quitArmed {
			m.quitArmed = true
			return m, m.setStatus("Unsaved changes: ctrl+s to save, q again to quit")
		}
		logger.Info("exiting", "dirty", m.doc.Dirty())
		return m, tea.Quit
	}
	m.quitArmed = false

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == RegisterPane {
			m.focusedPane = GridPane
		} else {
			m.focusedPane = RegisterPane
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.showFieldDetail()

	// Navigation
	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == RegisterPane {
			return m.switchRegister(m.regIndex - 1)
		}
		m.grid.SetCursor(m.grid.Cursor() + bitgrid.BitsPerRow)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == RegisterPane {
			return m.switchRegister(m.regIndex + 1)
		}
		m.grid.SetCursor(m.grid.Cursor() - bitgrid.BitsPerRow)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.grid.SetCursor(m.grid.Cursor() + 1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.grid.SetCursor(m.grid.Cursor() - 1)
		return m, nil

	case key.Matches(msg, m.keys.Home):
		if m.focusedPane == RegisterPane {
			return m.switchRegister(0)
		}
		m.grid.SetCursor(m.view.Register().MSB())
		return m, nil

	case key.Matches(msg, m.keys.End):
		if m.focusedPane == RegisterPane {
			return m.switchRegister(len(m.doc.Map.Registers) - 1)
		}
		m.grid.SetCursor(0)
		return m, nil

	// Gestures
	case key.Matches(msg, m.keys.Resize):
		return m.startResize()

	case key.Matches(msg, m.keys.Create):
		return m.startCreate()

	case key.Matches(msg, m.keys.Move):
		return m.startReorder()

	case key.Matches(msg, m.keys.StepLSB):
		return m.stepField(reorder.TowardLSB)

	case key.Matches(msg, m.keys.StepMSB):
		return m.stepField(reorder.TowardMSB)

	case key.Matches(msg, m.keys.NudgeIn):
		return m.nudgeField(bounds.EdgeLSB)

	case key.Matches(msg, m.keys.NudgeUp):
		return m.nudgeField(bounds.EdgeMSB)

	// Bit editing
	case key.Matches(msg, m.keys.ToggleBit):
		if !edit.Toggle(m.view.Fields(), m.view.Register(), m.grid.Cursor(), m.view) {
			return m, m.setStatus("Bit is not owned by any field")
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ClearBit):
		if _, ok := m.ownerAtCursor(); !ok {
			return m, m.setStatus("Bit is not owned by any field")
		}
		edit.SetBit(m.view.Fields(), m.view.Register(), m.grid.Cursor(), false, m.view)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.SetBit):
		if _, ok := m.ownerAtCursor(); !ok {
			return m, m.setStatus("Bit is not owned by any field")
		}
		edit.SetBit(m.view.Fields(), m.view.Register(), m.grid.Cursor(), true, m.view)
		m.refresh()
		return m, nil

	// Commands
	case key.Matches(msg, m.keys.Value):
		m.inputMode = ValueMode
		m.input.Placeholder = "0x0"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Rename):
		idx, ok := m.ownerAtCursor()
		if !ok {
			return m, m.setStatus("No field under cursor")
		}
		m.inputMode = RenameMode
		m.renameIdx = idx
		m.input.Placeholder = ""
		m.input.SetValue(m.view.Fields()[idx].Name)
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Copy):
		return m.copyValue()

	case key.Matches(msg, m.keys.Save):
		if err := m.doc.Save(); err != nil {
			logger.Error("save failed", "error", err)
			return m, m.setStatus("Save failed: " + err.Error())
		}
		logger.Info("saved", "path", m.doc.Path())
		return m, m.setStatus("Saved " + m.doc.Path())
	}

	return m, nil
}

// switchRegister moves the selection to register i, staying put at the
// list ends.
func (m Model) switchRegister(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.doc.Map.Registers) {
		return m, nil
	}
	if err := m.selectRegister(i); err != nil {
		return m, m.setStatus("Cannot open register: " + err.Error())
	}
	return m, nil
}

// ownerAtCursor returns the field owning the cursor bit.
func (m *Model) ownerAtCursor() (int, bool) {
	return bounds.Owners(m.view.Fields()).Owner(m.grid.Cursor())
}

// showFieldDetail opens the detail view for the field under the cursor.
func (m Model) showFieldDetail() (tea.Model, tea.Cmd) {
	idx, ok := m.ownerAtCursor()
	if !ok {
		return m, m.setStatus("No field under cursor")
	}

	f := m.view.Fields()[idx]
	def := m.view.Def().Fields[idx]
	info := fielddetail.FieldInfo{
		Index:       idx,
		Name:        f.Name,
		Access:      def.Access,
		Color:       def.Color,
		Description: def.Description,
	}
	if r, ok := f.Range(); ok {
		info.Bits = r
		info.Resolved = true
	}
	if !math.IsNaN(f.Reset) && !math.IsInf(f.Reset, 0) {
		info.Reset = value.Reset(f)
		info.HasReset = true
	}

	m.fieldDetail.Show(&info)
	return m, nil
}

// startResize grabs the field edge under the cursor.
func (m Model) startResize() (tea.Model, tea.Cmd) {
	idx, ok := m.ownerAtCursor()
	if !ok {
		return m, m.setStatus("No field under cursor")
	}
	r, ok := m.view.Fields()[idx].Range()
	if !ok {
		return m, m.setStatus("Field has no resolved range")
	}

	var edge bounds.Edge
	switch m.grid.Cursor() {
	case r.Hi:
		edge = bounds.EdgeMSB
	case r.Lo:
		edge = bounds.EdgeLSB
	default:
		return m, m.setStatus("Move the cursor onto a field edge to resize")
	}

	if !m.sess.StartResize(m.view.Fields(), idx, edge) {
		return m, m.setStatus("Cannot resize here")
	}
	if gr, ok := m.sess.GestureRange(); ok {
		m.grid.SetGesture(gr, true)
	}
	return m, m.setStatus("Resizing " + m.view.Fields()[idx].Name + ": arrows drag, enter commits, esc cancels")
}

// startCreate begins sweeping a new field out of the gap under the
// cursor.
func (m Model) startCreate() (tea.Model, tea.Cmd) {
	if !m.sess.StartCreate(m.view.Fields(), m.grid.Cursor()) {
		return m, m.setStatus("No gap under cursor")
	}
	if gr, ok := m.sess.GestureRange(); ok {
		m.grid.SetGesture(gr, true)
	}
	return m, m.setStatus("Creating field: arrows sweep, enter commits, esc cancels")
}

// startReorder lifts the field under the cursor for dragging.
func (m Model) startReorder() (tea.Model, tea.Cmd) {
	idx, ok := m.ownerAtCursor()
	if !ok {
		return m, m.setStatus("No field under cursor")
	}
	if !m.sess.StartReorder(m.view.Fields(), idx) {
		return m, m.setStatus("Field has no strip segment")
	}
	m.syncReorderPreview()
	return m, m.setStatus("Moving " + m.view.Fields()[idx].Name + ": arrows drag, enter commits, esc cancels")
}

// stepField swaps the field under the cursor with its strip neighbor.
func (m Model) stepField(dir reorder.Dir) (tea.Model, tea.Cmd) {
	idx, ok := m.ownerAtCursor()
	if !ok {
		return m, m.setStatus("No field under cursor")
	}
	name := m.view.Fields()[idx].Name

	updates, ok := reorder.Step(m.view.Fields(), m.view.Register(), idx, dir)
	if !ok {
		return m, m.setStatus("Cannot move " + name + " further")
	}
	m.view.SetFieldRanges(updates)
	m.refresh()

	// Keep the cursor riding on the moved field.
	for _, u := range updates {
		if u.FieldIndex == idx {
			m.grid.SetCursor(u.Bits.Hi)
		}
	}
	return m, m.setStatus("Moved " + name)
}

// nudgeField moves one edge of the field under the cursor by one bit.
func (m Model) nudgeField(edge bounds.Edge) (tea.Model, tea.Cmd) {
	idx, ok := m.ownerAtCursor()
	if !ok {
		return m, m.setStatus("No field under cursor")
	}
	name := m.view.Fields()[idx].Name

	if !edit.Nudge(m.view.Fields(), m.view.Register(), idx, edge, m.view) {
		return m, m.setStatus("Cannot nudge " + name)
	}
	m.refresh()
	return m, nil
}

// copyValue puts the composed register value on the system clipboard.
func (m Model) copyValue() (tea.Model, tea.Cmd) {
	fields := m.view.Fields()
	reg := m.view.Register()
	text := fmt.Sprintf("0x%0*X", hexDigits(reg.Width()), value.Compose(fields, reg))

	if err := clipboard.WriteAll(text); err != nil {
		logger.Warn("clipboard copy failed", "error", err)
		return m, m.setStatus("Failed to copy value")
	}
	return m, m.setStatus("Copied " + text)
}
