package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/logger"
)

// SelectionController keeps at most one result row open and the displayed
// document in step with it.
type SelectionController struct {
	mu    sync.RWMutex
	state domain.SelectionState
}

// NewSelectionController creates a controller with no open row.
func NewSelectionController() *SelectionController {
	return &SelectionController{state: domain.ClosedSelection()}
}

// Toggle closes the row at index if it is open, otherwise opens it and
// shows firstOpinionURL. Opening a row implicitly closes any other.
func (s *SelectionController) Toggle(index int, firstOpinionURL string) error {
	if index < 0 || firstOpinionURL == "" {
		logger.Warn("Ignoring toggle of row %d with document %q", index, firstOpinionURL)
		return fmt.Errorf("toggle row %d: %w", index, domain.ErrInvalidSelection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.OpenIndex == index {
		logger.Debug("Closing row %d", index)
		s.state = domain.ClosedSelection()
		return nil
	}

	logger.Debug("Opening row %d: %s", index, firstOpinionURL)
	s.state = domain.SelectionState{OpenIndex: index, DocumentURL: firstOpinionURL}
	return nil
}

// Reset closes any open row.
func (s *SelectionController) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.ClosedSelection()
}

// State returns the current selection.
func (s *SelectionController) State() domain.SelectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsOpen reports whether the row at index is the open one.
func (s *SelectionController) IsOpen(index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.OpenIndex != domain.NoSelection && s.state.OpenIndex == index
}
