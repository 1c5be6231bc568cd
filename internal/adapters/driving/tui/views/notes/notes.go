// Package notes provides the research notes view.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// ErrNoNoteService indicates no note service was provided.
var ErrNoNoteService = errors.New("notes are not configured")

// mode is what the view is doing with key input.
type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

// View lists notes and edits them inline.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	editor    textinput.Model
	statusbar *status.Bar

	service driving.NoteService
	ctx     context.Context

	notes   []domain.Note
	cursor  int
	mode    mode
	editing int64
	width   int
	height  int
	ready   bool
}

// NewView creates a new notes view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.NoteService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	editor := textinput.New()
	editor.Placeholder = "Write a note..."
	editor.CharLimit = 2000

	bar := status.NewBar(s, km)
	bar.SetHints(km.NotesHelp())

	return &View{
		styles:    s,
		keymap:    km,
		editor:    editor,
		statusbar: bar,
		service:   service,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the notes.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that reads every note.
func (v *View) Load() tea.Cmd {
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.NotesLoaded{Err: ErrNoNoteService}
		}
		notes, err := service.List(ctx)
		return messages.NotesLoaded{Notes: notes, Err: err}
	}
}

// Update handles messages for the notes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.mode != modeBrowse {
			return v.handleEditorKey(msg)
		}
		return v.handleBrowseKey(msg)

	case messages.NotesLoaded:
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
			return v, nil
		}
		v.notes = msg.Notes
		if v.cursor >= len(v.notes) {
			v.cursor = max(len(v.notes)-1, 0)
		}
		return v, nil

	case messages.NoteSaved:
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
			return v, nil
		}
		v.statusbar.SetInfo("Note saved")
		return v, v.Load()

	case messages.NoteDeleted:
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
			return v, nil
		}
		v.statusbar.SetInfo("Note deleted")
		return v, v.Load()
	}

	return v, nil
}

func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}

	case keymap.Matches(keyStr, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.cursor < len(v.notes)-1 {
			v.cursor++
		}

	case keymap.Matches(keyStr, v.keymap.Add):
		v.mode = modeAdd
		v.editor.SetValue("")
		return v, v.editor.Focus()

	case keymap.Matches(keyStr, v.keymap.Edit):
		note := v.Selected()
		if note == nil {
			return v, nil
		}
		v.mode = modeEdit
		v.editing = note.ID
		v.editor.SetValue(note.Content)
		v.editor.CursorEnd()
		return v, v.editor.Focus()

	case keymap.Matches(keyStr, v.keymap.Delete):
		note := v.Selected()
		if note == nil || v.service == nil {
			return v, nil
		}
		service, ctx, id := v.service, v.ctx, note.ID
		return v, func() tea.Msg {
			return messages.NoteDeleted{ID: id, Err: service.Delete(ctx, id)}
		}
	}

	return v, nil
}

func (v *View) handleEditorKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.closeEditor()
		return v, nil

	case tea.KeyEnter:
		content := v.editor.Value()
		m, id := v.mode, v.editing
		v.closeEditor()
		return v, v.save(m, id, content)

	default:
		var cmd tea.Cmd
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}
}

func (v *View) closeEditor() {
	v.mode = modeBrowse
	v.editing = 0
	v.editor.Blur()
	v.editor.SetValue("")
}

func (v *View) save(m mode, id int64, content string) tea.Cmd {
	if v.service == nil {
		v.statusbar.SetError(ErrNoNoteService)
		return nil
	}
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		var note *domain.Note
		var err error
		if m == modeEdit {
			note, err = service.Edit(ctx, id, content)
		} else {
			note, err = service.Add(ctx, content)
		}
		return messages.NoteSaved{Note: note, Err: err}
	}
}

// View renders the notes view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render(fmt.Sprintf("Notes (%d)", len(v.notes))), ""}

	if len(v.notes) == 0 {
		sections = append(sections, v.styles.Muted.Render("No notes yet. Press a to add one."))
	}

	wrap := v.width - 6
	if wrap < 20 {
		wrap = 20
	}
	for i, n := range v.notes {
		indicator := "  "
		stamp := v.styles.Muted.Render(n.Timestamp)
		if i == v.cursor {
			indicator = "> "
			stamp = v.styles.Subtitle.Render(n.Timestamp)
		}
		body := wordwrap.String(n.Content, wrap)
		body = strings.ReplaceAll(body, "\n", "\n    ")
		sections = append(sections, indicator+stamp, "    "+v.styles.Normal.Render(body))
	}

	if v.mode != modeBrowse {
		label := "New note: "
		if v.mode == modeEdit {
			label = "Edit note: "
		}
		sections = append(sections, "",
			lipgloss.JoinHorizontal(lipgloss.Top,
				v.styles.Title.Render(label),
				v.styles.InputField.Render(v.editor.View())))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.editor.Width = max(width-20, 20)
	v.statusbar.SetWidth(width)
}

// Notes returns the loaded notes.
func (v *View) Notes() []domain.Note {
	return v.notes
}

// Selected returns the highlighted note, or nil.
func (v *View) Selected() *domain.Note {
	if v.cursor < 0 || v.cursor >= len(v.notes) {
		return nil
	}
	return &v.notes[v.cursor]
}

// Editing reports whether the editor has focus.
func (v *View) Editing() bool {
	return v.mode != modeBrowse
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
