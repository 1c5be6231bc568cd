package status

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
)

func wideBar() *Bar {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)
	return bar
}

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotEmpty(t, bar.hints)
}

func TestStatusBar_Init(t *testing.T) {
	assert.Nil(t, NewBar(nil, nil).Init())
}

func TestStatusBar_SetState_StartsSpinnerOnce(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.SetState(StateSearching)
	assert.NotNil(t, cmd)
	assert.True(t, bar.Busy())

	assert.Nil(t, bar.SetState(StateWorking), "already busy")
	assert.Nil(t, bar.SetState(StateReady))
	assert.False(t, bar.Busy())
}

func TestStatusBar_Update_IgnoresTickWhenIdle(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(spinner.TickMsg{})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Update_IgnoresKeys(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateSearching)

	_, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestStatusBar_SetError(t *testing.T) {
	bar := wideBar()

	bar.SetError(errors.New("connection failed"))

	assert.Equal(t, StateError, bar.State())
	view := bar.View()
	assert.Contains(t, view, "Error: connection failed")
}

func TestStatusBar_SetInfo(t *testing.T) {
	bar := wideBar()

	bar.SetInfo("Copied case link")

	assert.Equal(t, StateInfo, bar.State())
	assert.Contains(t, bar.View(), "Copied case link")
}

func TestStatusBar_View_Ready(t *testing.T) {
	assert.Contains(t, wideBar().View(), "Ready")
}

func TestStatusBar_View_Searching(t *testing.T) {
	bar := wideBar()
	bar.SetState(StateSearching)

	assert.Contains(t, bar.View(), "Searching")
}

func TestStatusBar_View_Working(t *testing.T) {
	bar := wideBar()
	bar.SetMessage("Generating title")
	bar.SetState(StateWorking)

	assert.Contains(t, bar.View(), "Generating title")
}

func TestStatusBar_View_WithResults(t *testing.T) {
	bar := wideBar()
	bar.SetState(StateResults)
	bar.SetResultCount(5)

	assert.Contains(t, bar.View(), "5 cases")
}

func TestStatusBar_View_ShowsHints(t *testing.T) {
	bar := wideBar()

	assert.Contains(t, bar.View(), "quit")

	bar.SetHints([]key.Binding{key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open"))})
	view := bar.View()
	assert.Contains(t, view, "o: open")
	assert.NotContains(t, view, "quit")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetError(errors.New("boom"))
	bar.SetResultCount(10)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
}
