// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/citewise/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation and query input view.
	ViewChat ViewType = iota
	// ViewResults is the case accordion and document viewer.
	ViewResults
	// ViewNotes is the research notes view.
	ViewNotes
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewResults:
		return "results"
	case ViewNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries the backend response for the submission with
// sequence Seq. Outcome is nil when the response was stale or failed.
type SearchCompleted struct {
	Seq     uint64
	Outcome *domain.Outcome
	Err     error
}

// FactLoaded carries a fact pattern file read from disk.
type FactLoaded struct {
	Fact *domain.FactDocument
	Err  error
}

// TitleGenerated carries an LLM title for the opinion at DownloadURL.
type TitleGenerated struct {
	DownloadURL string
	Title       string
	Err         error
}

// NotesLoaded carries the note collection.
type NotesLoaded struct {
	Notes []domain.Note
	Err   error
}

// NoteSaved signals a note was added or edited.
type NoteSaved struct {
	Note *domain.Note
	Err  error
}

// NoteDeleted signals a note was removed.
type NoteDeleted struct {
	ID  int64
	Err error
}

// ActionCompleted reports the outcome of a copy or open action.
type ActionCompleted struct {
	Message string
	Err     error
}

// SettingsReloaded signals the config file changed on disk.
type SettingsReloaded struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
