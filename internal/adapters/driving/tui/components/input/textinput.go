// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
)

// Mode selects what the input is collecting.
type Mode int

const (
	// ModeFacts collects the fact pattern text.
	ModeFacts Mode = iota
	// ModeFilePath collects the path of a fact pattern file.
	ModeFilePath
)

// Input limits per mode.
const (
	factsCharLimit = 4000
	pathCharLimit  = 1024
)

// FactInput wraps a bubbles textinput for fact patterns and file paths.
type FactInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      Mode
	saved     string
	width     int
}

// NewFactInput creates a new fact input component.
func NewFactInput(s *styles.Styles) *FactInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe the facts of your case..."
	ti.Focus()
	ti.CharLimit = factsCharLimit
	ti.Width = 50

	return &FactInput{
		textinput: ti,
		styles:    s,
		mode:      ModeFacts,
		width:     50,
	}
}

// Init initialises the input.
func (f *FactInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *FactInput) Update(msg tea.Msg) (*FactInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the input.
func (f *FactInput) View() string {
	label := "Facts: "
	if f.mode == ModeFilePath {
		label = "File: "
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center,
		f.styles.Title.Render(label),
		f.styles.InputField.Render(f.textinput.View()),
	)
}

// Mode returns what the input is collecting.
func (f *FactInput) Mode() Mode {
	return f.mode
}

// EnterFileMode switches to path entry, keeping the typed facts aside.
func (f *FactInput) EnterFileMode() {
	if f.mode == ModeFilePath {
		return
	}
	f.saved = f.textinput.Value()
	f.mode = ModeFilePath
	f.textinput.CharLimit = pathCharLimit
	f.textinput.Placeholder = "Path to a .txt, .md, .html, .docx or .eml file"
	f.textinput.SetValue("")
}

// ExitFileMode returns to fact entry and restores the typed facts.
func (f *FactInput) ExitFileMode() {
	if f.mode == ModeFacts {
		return
	}
	f.mode = ModeFacts
	f.textinput.CharLimit = factsCharLimit
	f.textinput.Placeholder = "Describe the facts of your case..."
	f.textinput.SetValue(f.saved)
	f.saved = ""
}

// Value returns the current input value.
func (f *FactInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *FactInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *FactInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FactInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FactInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *FactInput) SetWidth(width int) {
	f.width = width
	// Account for label and padding
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *FactInput) Width() int {
	return f.width
}

// Reset clears the input.
func (f *FactInput) Reset() {
	f.textinput.Reset()
}
