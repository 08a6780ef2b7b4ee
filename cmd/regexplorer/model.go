package main

import (
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ipcraft/regkit/cmd/regexplorer/bitgrid"
	"github.com/ipcraft/regkit/cmd/regexplorer/fielddetail"
	"github.com/ipcraft/regkit/cmd/regexplorer/logger"
	"github.com/ipcraft/regkit/pkg/regmap"
	"github.com/ipcraft/regkit/reg/session"
	"github.com/ipcraft/regkit/reg/value"
)

// Pane represents which pane is focused
type Pane int

const (
	RegisterPane Pane = iota
	GridPane
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	ValueMode
	RenameMode
)

// Model is the main application model
type Model struct {
	docPath string
	doc     *regmap.Document
	keys    KeyMap

	// Current register
	regIndex int
	view     *regmap.RegisterView
	sess     *session.Session
	grid     bitgrid.Model

	focusedPane Pane
	width       int
	height      int

	// Input modes
	inputMode  InputMode
	input      textinput.Model
	renameIdx  int  // Field being renamed in RenameMode
	valueModal bool // Value/rename entry as a centered modal vs status line

	// Help overlay
	showHelp bool

	// Field detail view
	fieldDetail fielddetail.FieldDetailModel

	// Status message for temporary feedback
	statusMessage string

	// Quit guard: first q with unsaved edits warns, second quits
	quitArmed bool

	err error
}

// NewModel creates a new TUI model
func NewModel(docPath string) Model {
	// Value entry can be configured via REGEXPLORER_VALUE_MODE env var
	// Options: "modal" (popup), "inline" (status line)
	// Default: modal
	valueModal := true
	if mode := os.Getenv("REGEXPLORER_VALUE_MODE"); mode == "inline" {
		valueModal = false
	}

	// Detail display mode can be configured via REGEXPLORER_DETAIL_MODE env var
	// Options: "modal" (popup), "pane" (bottom pane)
	// Default: modal
	detailMode := fielddetail.DetailModeModal
	if mode := os.Getenv("REGEXPLORER_DETAIL_MODE"); mode == "pane" {
		detailMode = fielddetail.DetailModePane
	}

	input := textinput.New()
	input.CharLimit = 64
	input.Width = 24

	m := Model{
		docPath:     docPath,
		keys:        DefaultKeyMap(),
		grid:        bitgrid.New(fieldColor),
		focusedPane: GridPane,
		inputMode:   NormalMode,
		input:       input,
		valueModal:  valueModal,
		fieldDetail: fielddetail.NewFieldDetailModel(detailMode),
		renameIdx:   -1,
	}

	doc, err := regmap.Open(docPath)
	if err != nil {
		m.err = err
		return m
	}
	m.doc = doc

	if len(doc.Map.Registers) == 0 {
		m.err = &emptyMapError{path: docPath}
		return m
	}

	if err := m.selectRegister(0); err != nil {
		m.err = err
	}
	return m
}

type emptyMapError struct{ path string }

func (e *emptyMapError) Error() string {
	return "register map has no registers: " + e.path
}

// selectRegister points the model at register i and rebuilds the view,
// session, and grid around it.
func (m *Model) selectRegister(i int) error {
	view, err := m.doc.View(i)
	if err != nil {
		return err
	}
	m.regIndex = i
	m.view = view
	m.sess = session.New(view.Register(), view)
	m.grid.SetRegister(view.Register())
	m.refresh()
	logger.Debug("selected register", "index", i, "name", view.Def().Name)
	return nil
}

// refresh rebuilds the grid from the current records. Call after every
// committed edit.
func (m *Model) refresh() {
	fields := m.view.Fields()
	m.grid.SetFields(fields)
	m.grid.SetValue(value.Compose(fields, m.view.Register()))
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// hexDigits returns the hex digit count for a register width.
func hexDigits(width int) int {
	return (width + 3) / 4
}

// Messages

type clearStatusMsg struct{}
