package results

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/services"
)

type stubSource struct {
	matches []domain.RawMatch
}

func (s *stubSource) FindMatches(_ context.Context, _ string) ([]domain.RawMatch, error) {
	return s.matches, nil
}

type mockActions struct {
	copied  []string
	opened  []string
	copyErr error
}

func (m *mockActions) CopyLink(_ context.Context, result *domain.SearchResult) error {
	if m.copyErr != nil {
		return m.copyErr
	}
	m.copied = append(m.copied, result.AbsoluteURL)
	return nil
}

func (m *mockActions) OpenDocument(_ context.Context, url string) error {
	m.opened = append(m.opened, url)
	return nil
}

type mockTitles struct {
	available bool
	calls     int
}

func (m *mockTitles) Title(_ context.Context, downloadURL, query string) (string, error) {
	m.calls++
	return "Title for " + query, nil
}

func (m *mockTitles) Available() bool {
	return m.available
}

func strPtr(s string) *string {
	return &s
}

func rawMatches() []domain.RawMatch {
	return []domain.RawMatch{
		{
			CaseName:    "Smith v. Jones",
			AbsoluteURL: "/opinion/1/smith/",
			Distance:    0.1,
			Court:       "ca9",
			Opinions: []domain.RawOpinion{
				{Snippet: "deposit withheld", DownloadURL: strPtr("https://example.com/1a.pdf")},
				{Snippet: "dissent", DownloadURL: strPtr("https://example.com/1b.pdf")},
			},
		},
		{
			CaseName:    "Doe v. Roe",
			AbsoluteURL: "/opinion/2/doe/",
			Distance:    0.4,
			Opinions:    []domain.RawOpinion{{DownloadURL: strPtr("https://example.com/2.pdf")}},
		},
	}
}

// newTestView returns a results view over a flow that has already
// published rawMatches.
func newTestView(t *testing.T, actions *mockActions, titles *mockTitles) (*View, *services.SubmissionFlow) {
	t.Helper()
	flow := services.NewSubmissionFlow(
		&stubSource{matches: rawMatches()},
		services.NewNormalizer("https://cases.example"),
		services.NewConversation(),
		services.NewSelectionController(),
	)
	outcome, err := flow.Submit(context.Background(), "tenant deposit", nil)
	require.NoError(t, err)

	v := NewView(nil, nil, flow, actions, titles)
	v.SetDimensions(160, 40)
	v.Update(messages.SearchCompleted{Seq: 1, Outcome: outcome})
	return v, flow
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, nil, nil)

	require.NotNil(t, v)
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_ShowsPublishedResults(t *testing.T) {
	v, _ := newTestView(t, &mockActions{}, nil)

	view := v.View()

	assert.Equal(t, "tenant deposit", v.Query())
	assert.Contains(t, view, "Smith v. Jones")
	assert.Contains(t, view, "Doe v. Roe")
	assert.Contains(t, view, "Expand a case")
	assert.Equal(t, 2, v.Status().ResultCount())
}

func TestView_ToggleOpensFirstOpinion(t *testing.T) {
	v, flow := newTestView(t, &mockActions{}, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := flow.Selection()
	assert.Equal(t, 0, sel.OpenIndex)
	assert.Equal(t, "https://example.com/1a.pdf", sel.DocumentURL)
	view := v.View()
	assert.Contains(t, view, "https://example.com/1a.pdf")
	assert.Contains(t, view, "Opinion 1 (displayed)")
	assert.Contains(t, view, "deposit withheld")

	v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, flow.Selection().IsOpen())
}

func TestView_ToggleAnotherRowSwitchesDocument(t *testing.T) {
	v, flow := newTestView(t, &mockActions{}, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(key('j'))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := flow.Selection()
	assert.Equal(t, 1, sel.OpenIndex)
	assert.Equal(t, "https://example.com/2.pdf", sel.DocumentURL)
}

func TestView_OpenRequiresExpandedCase(t *testing.T) {
	actions := &mockActions{}
	v, _ := newTestView(t, actions, nil)

	_, cmd := v.Update(key('o'))

	assert.Nil(t, cmd)
	assert.Equal(t, status.StateError, v.Status().State())
	assert.Empty(t, actions.opened)
}

func TestView_OpenDisplayedDocument(t *testing.T) {
	actions := &mockActions{}
	v, _ := newTestView(t, actions, nil)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(key('o'))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, []string{"https://example.com/1a.pdf"}, actions.opened)
	assert.Equal(t, status.StateInfo, v.Status().State())
}

func TestView_CopyCaseLink(t *testing.T) {
	actions := &mockActions{}
	v, _ := newTestView(t, actions, nil)
	v.Update(key('j'))

	_, cmd := v.Update(key('y'))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, []string{"https://cases.example/opinion/2/doe/"}, actions.copied)
	assert.Equal(t, "Copied case link", v.Status().Message())
}

func TestView_CopyFailure(t *testing.T) {
	actions := &mockActions{copyErr: errors.New("no clipboard")}
	v, _ := newTestView(t, actions, nil)

	_, cmd := v.Update(key('y'))
	v.Update(cmd())

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), "no clipboard")
}

func TestView_ActionsNotConfigured(t *testing.T) {
	flow := services.NewSubmissionFlow(
		&stubSource{matches: rawMatches()},
		services.NewNormalizer("https://cases.example"),
		services.NewConversation(),
		services.NewSelectionController(),
	)
	_, err := flow.Submit(context.Background(), "facts", nil)
	require.NoError(t, err)
	v := NewView(nil, nil, flow, nil, nil)
	v.Refresh()

	_, cmd := v.Update(key('y'))

	assert.Nil(t, cmd)
	assert.Equal(t, ErrNoActionService.Error(), v.Status().Message())
}

func TestView_TitleUnavailable(t *testing.T) {
	v, _ := newTestView(t, &mockActions{}, &mockTitles{available: false})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(key('t'))

	assert.Nil(t, cmd)
	assert.Equal(t, domain.ErrLLMUnavailable.Error(), v.Status().Message())
}

func TestView_TitleGenerated(t *testing.T) {
	titles := &mockTitles{available: true}
	v, _ := newTestView(t, &mockActions{}, titles)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(key('t'))
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateWorking, v.Status().State())

	var generated messages.TitleGenerated
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if tg, ok := c().(messages.TitleGenerated); ok {
				generated = tg
			}
		}
	} else {
		generated = msg.(messages.TitleGenerated)
	}
	v.Update(generated)

	title, ok := v.GeneratedTitle("https://example.com/1a.pdf")
	require.True(t, ok)
	assert.Equal(t, "Title for tenant deposit", title)
	assert.Contains(t, v.View(), "Title for tenant deposit")

	_, cmd = v.Update(key('t'))
	assert.Nil(t, cmd, "title is cached per document")
	assert.Equal(t, 1, titles.calls)
}

func TestView_NewResultsClearTitles(t *testing.T) {
	v, _ := newTestView(t, &mockActions{}, &mockTitles{available: true})
	v.Update(messages.TitleGenerated{DownloadURL: "https://example.com/1a.pdf", Title: "Old"})

	v.Update(messages.SearchCompleted{Seq: 2, Outcome: &domain.Outcome{Query: "new"}})

	_, ok := v.GeneratedTitle("https://example.com/1a.pdf")
	assert.False(t, ok)
	assert.Equal(t, "new", v.Query())
}

func TestView_FailedSearchKeepsResults(t *testing.T) {
	v, _ := newTestView(t, &mockActions{}, nil)

	v.Update(messages.SearchCompleted{Seq: 2, Err: domain.ErrSearchFailed})

	assert.Equal(t, "tenant deposit", v.Query())
	assert.Contains(t, v.View(), "Smith v. Jones")
}

func TestView_EscReturnsToChat(t *testing.T) {
	v, _ := newTestView(t, &mockActions{}, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewChat}, cmd())
}
