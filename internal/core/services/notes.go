package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
	"github.com/custodia-labs/citewise/internal/logger"
)

// Ensure NoteService implements the interface.
var _ driving.NoteService = (*NoteService)(nil)

// NoteService manages the notes collection. Every mutation loads the whole
// collection, changes it and replaces it.
type NoteService struct {
	store driven.NoteStore
	now   func() time.Time

	mu sync.Mutex
}

// NewNoteService creates a new note service.
func NewNoteService(store driven.NoteStore) *NoteService {
	return &NoteService{
		store: store,
		now:   time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *NoteService) SetClock(now func() time.Time) {
	s.now = now
}

// Add creates a note stamped with the current time.
func (s *NoteService) Add(ctx context.Context, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("note content is blank: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	now := s.now()
	id := now.UnixMilli()
	// IDs must stay unique when two notes land in the same millisecond.
	for _, n := range notes {
		if n.ID >= id {
			id = n.ID + 1
		}
	}

	note := domain.Note{
		ID:        id,
		Content:   content,
		Timestamp: domain.FormatNoteTimestamp(now),
	}
	notes = append(notes, note)

	if err := s.store.Replace(ctx, notes); err != nil {
		return nil, fmt.Errorf("save notes: %w", err)
	}
	logger.Debug("Added note %d", note.ID)
	return &note, nil
}

// List returns every note in creation order.
func (s *NoteService) List(ctx context.Context) ([]domain.Note, error) {
	notes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// Edit replaces the content of note id. The timestamp is left unchanged.
func (s *NoteService) Edit(ctx context.Context, id int64, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("note content is blank: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		notes[i].Content = content
		if err := s.store.Replace(ctx, notes); err != nil {
			return nil, fmt.Errorf("save notes: %w", err)
		}
		logger.Debug("Edited note %d", id)
		edited := notes[i]
		return &edited, nil
	}

	return nil, fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
}

// Delete removes note id.
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	kept := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}

	if err := s.store.Replace(ctx, kept); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	logger.Debug("Deleted note %d", id)
	return nil
}
