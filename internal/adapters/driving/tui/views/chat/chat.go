// Package chat provides the conversation view where fact patterns are
// typed or attached and submitted to the case match backend.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// ErrNoFactService indicates a file was attached without a fact service.
var ErrNoFactService = errors.New("file upload is not configured")

// View is the conversation view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.FactInput
	statusbar *status.Bar

	flow  driving.QueryFlow
	facts driving.FactService
	ctx   context.Context

	attached *domain.FactDocument
	width    int
	height   int
	ready    bool
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	flow driving.QueryFlow,
	facts driving.FactService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChatHelp())

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewFactInput(s),
		statusbar: bar,
		flow:      flow,
		facts:     facts,
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

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		return v.handleSearchCompleted(msg)

	case messages.FactLoaded:
		v.handleFactLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v.handleBack()

	case keymap.Matches(keyStr, v.keymap.AttachFile):
		if v.input.Mode() == input.ModeFilePath {
			v.input.ExitFileMode()
		} else {
			v.input.EnterFileMode()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Results):
		if len(v.flow.Results()) == 0 {
			v.statusbar.SetInfo("No results yet")
			return v, nil
		}
		return v, changeView(messages.ViewResults)

	case keymap.Matches(keyStr, v.keymap.Notes):
		return v, changeView(messages.ViewNotes)

	case keymap.Matches(keyStr, v.keymap.Submit):
		if v.input.Mode() == input.ModeFilePath {
			return v, v.loadFact(strings.TrimSpace(v.input.Value()))
		}
		return v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleBack cancels a pending query, leaves file mode, or detaches the
// attached file, in that order.
func (v *View) handleBack() (*View, tea.Cmd) {
	switch {
	case v.flow.IsPending():
		v.flow.Cancel()
		v.statusbar.SetInfo("Query cancelled")
	case v.input.Mode() == input.ModeFilePath:
		v.input.ExitFileMode()
	case v.attached != nil:
		v.statusbar.SetInfo(fmt.Sprintf("Removed %s", v.attached.Name))
		v.attached = nil
	}
	return v, nil
}

// submit begins a submission and returns the command that completes it.
func (v *View) submit() (*View, tea.Cmd) {
	ticket, err := v.flow.Begin(v.ctx, v.input.Value(), v.attached)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			v.statusbar.SetInfo("Describe the facts or attach a file first")
		case errors.Is(err, domain.ErrAlreadyPending):
			v.statusbar.SetInfo("Still waiting for the previous query")
		default:
			v.statusbar.SetError(err)
		}
		return v, nil
	}

	v.input.Reset()
	v.attached = nil
	return v, tea.Batch(v.statusbar.SetState(status.StateSearching), v.complete(ticket))
}

// complete fetches and resolves ticket off the update loop.
func (v *View) complete(ticket domain.Ticket) tea.Cmd {
	flow := v.flow
	return func() tea.Msg {
		matches, err := flow.Fetch(ticket)
		outcome, err := flow.Resolve(ticket.Seq, matches, err)
		return messages.SearchCompleted{Seq: ticket.Seq, Outcome: outcome, Err: err}
	}
}

// handleSearchCompleted navigates to the results on success. A failed
// search already appended its message to the conversation.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) (*View, tea.Cmd) {
	if errors.Is(msg.Err, domain.ErrStaleResponse) {
		return v, nil
	}
	if msg.Err != nil {
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetResultCount(len(msg.Outcome.Results))
	return v, changeView(messages.ViewResults)
}

// loadFact reads a fact file off the update loop.
func (v *View) loadFact(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	facts := v.facts
	ctx := v.ctx
	return func() tea.Msg {
		if facts == nil {
			return messages.FactLoaded{Err: ErrNoFactService}
		}
		doc, err := facts.Load(ctx, path)
		return messages.FactLoaded{Fact: doc, Err: err}
	}
}

func (v *View) handleFactLoaded(msg messages.FactLoaded) {
	if msg.Err != nil {
		v.statusbar.SetError(msg.Err)
		return
	}
	v.attached = msg.Fact
	v.input.ExitFileMode()
	v.statusbar.SetInfo(fmt.Sprintf("Attached %s", msg.Fact.Name))
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	header := v.styles.Title.Render("citewise") + v.styles.Muted.Render("  case finder")

	var footer []string
	if v.attached != nil {
		footer = append(footer, v.styles.Subtitle.Render("Attached: "+v.attached.Name))
	}
	footer = append(footer, v.input.View(), "", v.statusbar.View())
	footerView := strings.Join(footer, "\n")

	available := v.height - lipgloss.Height(header) - lipgloss.Height(footerView) - 2
	body := v.renderConversation(available)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footerView)
}

// renderConversation renders the most recent turns that fit in height lines.
func (v *View) renderConversation(height int) string {
	wrap := v.width - 4
	if wrap < 20 {
		wrap = 20
	}

	msgs := v.flow.Messages()
	blocks := make([]string, 0, len(msgs)+1)
	for _, m := range msgs {
		text := wordwrap.String(m.Content, wrap)
		if m.Role == domain.RoleUser {
			blocks = append(blocks, v.styles.UserMessage.Render(text))
		} else {
			blocks = append(blocks, v.styles.AssistantMessage.Render(text))
		}
	}
	if v.flow.IsPending() {
		blocks = append(blocks, v.styles.Muted.Render("  ..."))
	}

	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// Attached returns the attached fact document, if any.
func (v *View) Attached() *domain.FactDocument {
	return v.attached
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Focus gives the input focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
