package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of driven.NoteStore.
type NoteStore struct {
	mu    sync.RWMutex
	notes []domain.Note
}

// NewNoteStore creates a new in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{}
}

// Load returns a copy of the stored collection.
func (s *NoteStore) Load(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}

// Replace overwrites the stored collection.
func (s *NoteStore) Replace(_ context.Context, notes []domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make([]domain.Note, len(notes))
	copy(s.notes, notes)
	return nil
}

// Close is a no-op.
func (s *NoteStore) Close() error {
	return nil
}
