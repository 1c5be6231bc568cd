package services

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
)

// mockCaseMatchSource implements driven.CaseMatchSource for testing.
type mockCaseMatchSource struct {
	FindMatchesFunc func(ctx context.Context, query string) ([]domain.RawMatch, error)
	queries         []string
}

func (m *mockCaseMatchSource) FindMatches(ctx context.Context, query string) ([]domain.RawMatch, error) {
	m.queries = append(m.queries, query)
	if m.FindMatchesFunc != nil {
		return m.FindMatchesFunc(ctx, query)
	}
	return nil, nil
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	ChatFunc func(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error)
}

func (m *mockLLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages, opts)
	}
	return "", nil
}

func (m *mockLLMService) ModelName() string { return "mock-model" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockClipboard implements driven.Clipboard for testing.
type mockClipboard struct {
	WriteAllFunc func(text string) error
	written      []string
}

func (m *mockClipboard) WriteAll(text string) error {
	m.written = append(m.written, text)
	if m.WriteAllFunc != nil {
		return m.WriteAllFunc(text)
	}
	return nil
}

// mockNormaliserRegistry implements driven.NormaliserRegistry for testing.
type mockNormaliserRegistry struct {
	NormaliseFunc func(ctx context.Context, raw *domain.RawFile) (*domain.FactDocument, error)
}

func (m *mockNormaliserRegistry) Normalise(ctx context.Context, raw *domain.RawFile) (*domain.FactDocument, error) {
	if m.NormaliseFunc != nil {
		return m.NormaliseFunc(ctx, raw)
	}
	return &domain.FactDocument{ID: "doc", Name: raw.Name, MIMEType: raw.MIMEType, Content: string(raw.Content)}, nil
}

func (m *mockNormaliserRegistry) Register(_ driven.Normaliser) {}

func (m *mockNormaliserRegistry) SupportedMIMETypes() []string { return nil }

// mockNoteStore implements driven.NoteStore with injectable failures.
type mockNoteStore struct {
	notes      []domain.Note
	loadErr    error
	replaceErr error
	replaces   int
}

func (m *mockNoteStore) Load(_ context.Context) ([]domain.Note, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Note, len(m.notes))
	copy(out, m.notes)
	return out, nil
}

func (m *mockNoteStore) Replace(_ context.Context, notes []domain.Note) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaces++
	m.notes = append([]domain.Note(nil), notes...)
	return nil
}

func (m *mockNoteStore) Close() error { return nil }

func strPtr(s string) *string { return &s }

// rawMatch builds a match whose opinions have the given download URLs.
// An empty string stands for a missing URL.
func rawMatch(name string, distance float64, urls ...string) domain.RawMatch {
	m := domain.RawMatch{
		CaseName:    name,
		AbsoluteURL: "/opinion/" + name + "/",
		Distance:    distance,
	}
	for _, u := range urls {
		op := domain.RawOpinion{Snippet: "snippet " + name}
		if u != "" {
			op.DownloadURL = strPtr(u)
		}
		m.Opinions = append(m.Opinions, op)
	}
	return m
}
