package driving

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// NoteService manages research notes.
type NoteService interface {
	// Add creates a note. Blank content returns domain.ErrInvalidInput.
	Add(ctx context.Context, content string) (*domain.Note, error)

	// List returns all notes in creation order.
	List(ctx context.Context) ([]domain.Note, error)

	// Edit replaces the content of a note.
	Edit(ctx context.Context, id int64, content string) (*domain.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, id int64) error
}
