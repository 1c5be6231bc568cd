package mcp

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// mockCaseSearchService is a mock implementation of driving.CaseSearchService.
type mockCaseSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastLimit int
}

func (m *mockCaseSearchService) Find(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.results, m.err
}

// mockNoteService is a mock implementation of driving.NoteService.
type mockNoteService struct {
	notes []domain.Note
	added *domain.Note
	err   error
}

func (m *mockNoteService) Add(_ context.Context, content string) (*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.added = &domain.Note{ID: 42, Content: content, Timestamp: "2024-05-01T12:30:00.000Z"}
	return m.added, nil
}

func (m *mockNoteService) List(_ context.Context) ([]domain.Note, error) {
	return m.notes, m.err
}

func (m *mockNoteService) Edit(_ context.Context, _ int64, _ string) (*domain.Note, error) {
	return nil, m.err
}

func (m *mockNoteService) Delete(_ context.Context, _ int64) error {
	return m.err
}

// mockTitleService is a mock implementation of driving.OpinionTitleService.
type mockTitleService struct {
	available bool
	title     string
	err       error
}

func (m *mockTitleService) Title(_ context.Context, _, _ string) (string, error) {
	return m.title, m.err
}

func (m *mockTitleService) Available() bool {
	return m.available
}
