// Package results provides the case accordion and document viewer.
package results

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// Error definitions for the results view.
var (
	// ErrNothingOpen indicates an action needs an expanded case.
	ErrNothingOpen = errors.New("expand a case first")

	// ErrNoActionService indicates no result action service was provided.
	ErrNoActionService = errors.New("result actions are not configured")
)

// View shows published cases on the left and the displayed document on
// the right.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.CaseList
	statusbar *status.Bar

	flow    driving.QueryFlow
	actions driving.ResultActionService
	titles  driving.OpinionTitleService
	ctx     context.Context

	query     string
	generated map[string]string
	width     int
	height    int
	ready     bool
}

// NewView creates a new results view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	flow driving.QueryFlow,
	actions driving.ResultActionService,
	titles driving.OpinionTitleService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.ResultsHelp())

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewCaseList(s),
		statusbar: bar,
		flow:      flow,
		actions:   actions,
		titles:    titles,
		ctx:       context.Background(),
		generated: make(map[string]string),
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
	return nil
}

// Refresh reloads the published results and selection from the flow.
func (v *View) Refresh() {
	results := v.flow.Results()
	v.list.SetResults(results)
	v.list.SetOpen(v.flow.Selection().OpenIndex)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(results))
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		if msg.Err == nil && msg.Outcome != nil {
			v.query = msg.Outcome.Query
			v.generated = make(map[string]string)
			v.Refresh()
		}
		return v, nil

	case messages.TitleGenerated:
		v.statusbar.SetState(status.StateResults)
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
			return v, nil
		}
		v.generated[msg.DownloadURL] = msg.Title
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
		} else {
			v.statusbar.SetInfo(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}

	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()

	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()

	case keymap.Matches(keyStr, v.keymap.Toggle):
		v.toggle()

	case keymap.Matches(keyStr, v.keymap.Open):
		return v, v.openDocument()

	case keymap.Matches(keyStr, v.keymap.Copy):
		return v, v.copyLink()

	case keymap.Matches(keyStr, v.keymap.Title):
		return v, v.generateTitle()
	}

	return v, nil
}

// toggle opens or closes the case under the cursor.
func (v *View) toggle() {
	if v.list.IsEmpty() {
		return
	}
	if err := v.flow.Toggle(v.list.Cursor()); err != nil {
		v.statusbar.SetError(err)
		return
	}
	v.list.SetOpen(v.flow.Selection().OpenIndex)
}

func (v *View) openDocument() tea.Cmd {
	sel := v.flow.Selection()
	if !sel.IsOpen() {
		v.statusbar.SetError(ErrNothingOpen)
		return nil
	}
	if v.actions == nil {
		v.statusbar.SetError(ErrNoActionService)
		return nil
	}
	actions, ctx, url := v.actions, v.ctx, sel.DocumentURL
	return func() tea.Msg {
		if err := actions.OpenDocument(ctx, url); err != nil {
			return messages.ActionCompleted{Err: fmt.Errorf("open: %w", err)}
		}
		return messages.ActionCompleted{Message: "Opened document"}
	}
}

func (v *View) copyLink() tea.Cmd {
	result := v.list.CursorResult()
	if result == nil {
		return nil
	}
	if v.actions == nil {
		v.statusbar.SetError(ErrNoActionService)
		return nil
	}
	actions, ctx, r := v.actions, v.ctx, *result
	return func() tea.Msg {
		if err := actions.CopyLink(ctx, &r); err != nil {
			return messages.ActionCompleted{Err: fmt.Errorf("copy: %w", err)}
		}
		return messages.ActionCompleted{Message: "Copied case link"}
	}
}

func (v *View) generateTitle() tea.Cmd {
	sel := v.flow.Selection()
	if !sel.IsOpen() {
		v.statusbar.SetError(ErrNothingOpen)
		return nil
	}
	if v.titles == nil || !v.titles.Available() {
		v.statusbar.SetError(domain.ErrLLMUnavailable)
		return nil
	}
	if _, ok := v.generated[sel.DocumentURL]; ok {
		return nil
	}

	v.statusbar.SetMessage("Generating title")
	tick := v.statusbar.SetState(status.StateWorking)

	titles, ctx, url, query := v.titles, v.ctx, sel.DocumentURL, v.query
	return tea.Batch(tick, func() tea.Msg {
		title, err := titles.Title(ctx, url, query)
		return messages.TitleGenerated{DownloadURL: url, Title: title, Err: err}
	})
}

// View renders the results view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	header := v.styles.Title.Render("Results")
	if v.query != "" {
		q := []rune(strings.Join(strings.Fields(v.query), " "))
		if len(q) > 60 {
			q = append(q[:57], []rune("...")...)
		}
		header += v.styles.Muted.Render(fmt.Sprintf("  for %q", string(q)))
	}

	listWidth := v.width / 2
	viewerWidth := v.width - listWidth - 2
	bodyHeight := v.height - 4

	v.list.SetDimensions(listWidth, bodyHeight)
	left := lipgloss.NewStyle().Width(listWidth).Render(v.list.View())
	right := v.renderViewer(viewerWidth, bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, v.statusbar.View())
}

// renderViewer renders the displayed document pane.
func (v *View) renderViewer(width, height int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	sel := v.flow.Selection()
	results := v.list.Results()
	if !sel.IsOpen() || sel.OpenIndex >= len(results) {
		return v.styles.Viewer.Width(inner).Render(
			v.styles.Muted.Render("Expand a case to view its opinion."))
	}

	result := results[sel.OpenIndex]
	lines := []string{v.styles.Subtitle.Render(wordwrap.String(result.CaseName, inner))}
	if title, ok := v.generated[sel.DocumentURL]; ok {
		lines = append(lines, v.styles.Score.Render(wordwrap.String(title, inner)))
	}
	lines = append(lines, v.styles.Link.Render(wordwrap.String(sel.DocumentURL, inner)), "")

	for i, op := range result.Opinions {
		label := fmt.Sprintf("Opinion %d", i+1)
		if op.DownloadURL == sel.DocumentURL {
			label += " (displayed)"
		}
		lines = append(lines, v.styles.Normal.Bold(true).Render(label))
		if snippet := strings.Join(strings.Fields(op.Snippet), " "); snippet != "" {
			lines = append(lines, v.styles.Normal.Render(wordwrap.String(snippet, inner)))
		}
		lines = append(lines, "")
	}

	content := strings.Split(strings.Join(lines, "\n"), "\n")
	if height > 2 && len(content) > height-2 {
		content = content[:height-2]
	}
	return v.styles.Viewer.Width(inner).Render(strings.Join(content, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Cursor returns the highlighted case index.
func (v *View) Cursor() int {
	return v.list.Cursor()
}

// Query returns the query the displayed results answer.
func (v *View) Query() string {
	return v.query
}

// GeneratedTitle returns the title generated for url, if any.
func (v *View) GeneratedTitle(url string) (string, bool) {
	t, ok := v.generated[url]
	return t, ok
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
