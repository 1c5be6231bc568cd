package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/services"
)

type stubSource struct {
	matches []domain.RawMatch
	err     error
	queries []string
}

func (s *stubSource) FindMatches(_ context.Context, query string) ([]domain.RawMatch, error) {
	s.queries = append(s.queries, query)
	return s.matches, s.err
}

type stubFacts struct {
	doc *domain.FactDocument
	err error
}

func (s *stubFacts) Load(_ context.Context, _ string) (*domain.FactDocument, error) {
	return s.doc, s.err
}

func (s *stubFacts) SupportedExtensions() []string {
	return []string{".txt"}
}

func newFlow(source *stubSource) *services.SubmissionFlow {
	return services.NewSubmissionFlow(
		source,
		services.NewNormalizer("https://cases.example"),
		services.NewConversation(),
		services.NewSelectionController(),
	)
}

func oneMatch() []domain.RawMatch {
	url := "https://example.com/1.pdf"
	return []domain.RawMatch{{
		CaseName:    "Smith v. Jones",
		AbsoluteURL: "/opinion/1/smith/",
		Distance:    0.2,
		Opinions:    []domain.RawOpinion{{DownloadURL: &url}},
	}}
}

func newTestView(source *stubSource, facts *stubFacts) (*View, *services.SubmissionFlow) {
	flow := newFlow(source)
	var v *View
	if facts != nil {
		v = NewView(nil, nil, flow, facts)
	} else {
		v = NewView(nil, nil, flow, nil)
	}
	v.SetDimensions(120, 40)
	return v, flow
}

func typeText(v *View, text string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSearchCompleted(msgs []tea.Msg) (messages.SearchCompleted, bool) {
	for _, m := range msgs {
		if sc, ok := m.(messages.SearchCompleted); ok {
			return sc, true
		}
	}
	return messages.SearchCompleted{}, false
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, newFlow(&stubSource{}), nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.NotNil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Greeting(t *testing.T) {
	v, _ := newTestView(&stubSource{}, nil)

	assert.Contains(t, v.View(), domain.GreetingText)
}

func TestView_SubmitEmptyInputIsRejected(t *testing.T) {
	source := &stubSource{}
	v, flow := newTestView(source, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Len(t, flow.Messages(), 1)
	assert.Empty(t, source.queries)
	assert.Equal(t, status.StateInfo, v.Status().State())
}

func TestView_SubmitSuccessNavigatesToResults(t *testing.T) {
	source := &stubSource{matches: oneMatch()}
	v, flow := newTestView(source, nil)

	typeText(v, "landlord kept deposit")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, flow.IsPending())
	assert.Equal(t, "", v.Input())
	assert.Contains(t, v.View(), "landlord kept deposit")

	sc, ok := findSearchCompleted(runCmd(t, cmd))
	require.True(t, ok)
	require.NoError(t, sc.Err)
	require.NotNil(t, sc.Outcome)
	assert.Equal(t, []string{"landlord kept deposit"}, source.queries)

	_, next := v.Update(sc)
	require.NotNil(t, next)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewResults}, next())
	assert.Equal(t, 1, v.Status().ResultCount())
	assert.Len(t, flow.Messages(), 2, "no assistant message on success")
}

func TestView_SubmitFailureShowsError(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	v, flow := newTestView(source, nil)

	typeText(v, "facts")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sc, ok := findSearchCompleted(runCmd(t, cmd))
	require.True(t, ok)

	_, next := v.Update(sc)

	assert.Nil(t, next)
	assert.ErrorIs(t, sc.Err, domain.ErrSearchFailed)
	assert.Equal(t, status.StateError, v.Status().State())
	msgs := flow.Messages()
	assert.Equal(t, domain.SearchErrorText, msgs[len(msgs)-1].Content)
	assert.Contains(t, v.View(), domain.SearchErrorText)
}

func TestView_EscCancelsPendingQuery(t *testing.T) {
	source := &stubSource{matches: oneMatch()}
	v, flow := newTestView(source, nil)

	typeText(v, "facts")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, flow.IsPending())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, flow.IsPending())

	sc, ok := findSearchCompleted(runCmd(t, cmd))
	require.True(t, ok)
	assert.ErrorIs(t, sc.Err, domain.ErrStaleResponse)

	_, next := v.Update(sc)
	assert.Nil(t, next)
	assert.Empty(t, flow.Results())
}

func TestView_AttachFile(t *testing.T) {
	facts := &stubFacts{doc: &domain.FactDocument{Name: "facts.txt", Content: "tenant facts"}}
	source := &stubSource{matches: oneMatch()}
	v, _ := newTestView(source, facts)

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Contains(t, v.View(), "File:")

	typeText(v, "/tmp/facts.txt")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	loaded, ok := cmd().(messages.FactLoaded)
	require.True(t, ok)
	v.Update(loaded)

	require.NotNil(t, v.Attached())
	assert.Contains(t, v.View(), "Attached: facts.txt")
	assert.Contains(t, v.View(), "Facts:")

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, ok = findSearchCompleted(runCmd(t, cmd))
	require.True(t, ok)
	assert.Equal(t, []string{"tenant facts"}, source.queries)
	assert.Nil(t, v.Attached())
}

func TestView_AttachFileError(t *testing.T) {
	facts := &stubFacts{err: domain.ErrUnsupportedType}
	v, _ := newTestView(&stubSource{}, facts)

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	typeText(v, "/tmp/facts.pdf")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(cmd())

	assert.Nil(t, v.Attached())
	assert.Equal(t, status.StateError, v.Status().State())
}

func TestView_AttachFileWithoutService(t *testing.T) {
	v, _ := newTestView(&stubSource{}, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	typeText(v, "/tmp/facts.txt")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := cmd().(messages.FactLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoFactService)
}

func TestView_EscLeavesFileModeThenDetaches(t *testing.T) {
	v, _ := newTestView(&stubSource{}, nil)
	typeText(v, "typed facts")

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Equal(t, input.ModeFilePath, v.input.Mode())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, input.ModeFacts, v.input.Mode())
	assert.Equal(t, "typed facts", v.Input())

	v.Update(messages.FactLoaded{Fact: &domain.FactDocument{Name: "a.txt"}})
	require.NotNil(t, v.Attached())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, v.Attached())
}

func TestView_ResultsShortcutNeedsResults(t *testing.T) {
	source := &stubSource{matches: oneMatch()}
	v, flow := newTestView(source, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd)

	_, err := flow.Submit(context.Background(), "facts", nil)
	require.NoError(t, err)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewResults}, cmd())
}

func TestView_NotesShortcut(t *testing.T) {
	v, _ := newTestView(&stubSource{}, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewNotes}, cmd())
}

func TestView_ErrorOccurred(t *testing.T) {
	v, _ := newTestView(&stubSource{}, nil)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Equal(t, "boom", v.Status().Message())
}
