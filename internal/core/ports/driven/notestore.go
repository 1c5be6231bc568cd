package driven

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// NoteStore persists the notes collection as a single value.
// Every mutation replaces the whole collection; the last writer wins.
type NoteStore interface {
	// Load returns the stored collection. A missing collection is empty,
	// not an error.
	Load(ctx context.Context) ([]domain.Note, error)

	// Replace overwrites the stored collection.
	Replace(ctx context.Context, notes []domain.Note) error

	// Close releases resources.
	Close() error
}
