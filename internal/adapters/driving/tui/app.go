package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/views/notes"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/views/results"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	chatView    *chat.View
	resultsView *results.View
	notesView   *notes.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		chatView:    chat.NewView(s, km, ports.Flow, ports.Facts),
		resultsView: results.NewView(s, km, ports.Flow, ports.Actions, ports.Titles),
		notesView:   notes.NewView(s, km, ports.Notes),
		currentView: messages.ViewChat,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.resultsView.WithContext(ctx)
	a.notesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("citewise - Case Finder"),
		a.chatView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			a.ports.Flow.Cancel()
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SearchCompleted:
		// The results view must hold the new results before the chat view
		// navigates to it.
		a.resultsView, _ = a.resultsView.Update(msg)
		a.chatView, cmd = a.chatView.Update(msg)
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrStaleResponse) {
			a.err = msg.Err
		}
		return a, cmd

	case messages.FactLoaded:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.TitleGenerated, messages.ActionCompleted:
		a.resultsView, cmd = a.resultsView.Update(msg)
		return a, cmd

	case messages.NotesLoaded, messages.NoteSaved, messages.NoteDeleted:
		a.notesView, cmd = a.notesView.Update(msg)
		return a, cmd

	case messages.SettingsReloaded:
		a.reloadSettings()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)
	}

	// Spinner ticks and cursor blinks go to the active view.
	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewNotes:
		a.notesView, cmd = a.notesView.Update(msg)
	}
	return cmd
}

// switchView changes the active view. Leaving the chat view abandons a
// pending query.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	if a.currentView == messages.ViewChat && view != messages.ViewChat && a.ports.Flow.IsPending() {
		logger.Debug("Leaving chat with a pending query, cancelling")
		a.ports.Flow.Cancel()
	}

	a.currentView = view
	switch view {
	case messages.ViewChat:
		return a.chatView.Focus()
	case messages.ViewResults:
		a.resultsView.Refresh()
		return nil
	case messages.ViewNotes:
		return a.notesView.Init()
	}
	return nil
}

// reloadSettings pushes the case origin from the reloaded config into the
// flow. Results already published keep their links.
func (a *App) reloadSettings() {
	if a.ports.Settings == nil {
		return
	}
	settings, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("Reloading settings: %v", err)
		a.err = err
		return
	}
	a.ports.Flow.SetCaseOrigin(settings.Search.CaseOrigin)
	logger.Info("Settings reloaded, case origin %s", settings.Search.CaseOrigin)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewResults:
		return a.resultsView.View()
	case messages.ViewNotes:
		return a.notesView.View()
	default:
		return a.chatView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// NewProgram creates the bubbletea program for the app. Callers that need
// to push messages from other goroutines use its Send method.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
	a.notesView.SetDimensions(width, height)
}
