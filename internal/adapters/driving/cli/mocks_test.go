package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/custodia-labs/citewise/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/services"
)

// stubSource implements driven.CaseMatchSource for testing.
type stubSource struct {
	FindMatchesFunc func(ctx context.Context, query string) ([]domain.RawMatch, error)
	queries         []string
}

func (s *stubSource) FindMatches(ctx context.Context, query string) ([]domain.RawMatch, error) {
	s.queries = append(s.queries, query)
	if s.FindMatchesFunc != nil {
		return s.FindMatchesFunc(ctx, query)
	}
	return testMatches(), nil
}

func strPtr(s string) *string {
	return &s
}

func testMatches() []domain.RawMatch {
	return []domain.RawMatch{
		{
			CaseName:    "Smith v. Jones",
			AbsoluteURL: "/opinion/1/smith-v-jones/",
			Distance:    0.25,
			Court:       "ca9",
			DateFiled:   "2001-05-04",
			Opinions: []domain.RawOpinion{
				{Snippet: "deposit", DownloadURL: strPtr("https://storage.example/1.pdf")},
				{Snippet: "no document"},
			},
		},
		{
			CaseName:    "Doe v. Roe",
			AbsoluteURL: "/opinion/2/doe-v-roe/",
			Distance:    0.5,
			Opinions:    []domain.RawOpinion{{DownloadURL: strPtr("https://storage.example/2.pdf")}},
		},
		{
			CaseName:    "Dropped v. Case",
			AbsoluteURL: "/opinion/3/dropped/",
			Opinions:    []domain.RawOpinion{{Snippet: "nothing to download"}},
		},
	}
}

// MockFactService implements driving.FactService for testing.
type MockFactService struct {
	LoadFunc func(ctx context.Context, path string) (*domain.FactDocument, error)
}

func (m *MockFactService) Load(ctx context.Context, path string) (*domain.FactDocument, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, path)
	}
	return &domain.FactDocument{Name: path, Content: "facts from " + path}, nil
}

func (m *MockFactService) SupportedExtensions() []string {
	return []string{".txt", ".md", ".html", ".docx", ".eml"}
}

// MockTitleService implements driving.OpinionTitleService for testing.
type MockTitleService struct {
	TitleFunc func(ctx context.Context, downloadURL, query string) (string, error)
}

func (m *MockTitleService) Title(ctx context.Context, downloadURL, query string) (string, error) {
	if m.TitleFunc != nil {
		return m.TitleFunc(ctx, downloadURL, query)
	}
	return "Landlord Liability for Withheld Deposits", nil
}

func (m *MockTitleService) Available() bool {
	return true
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	settings domain.AppSettings
	set      map[string]string
}

func newMockSettingsService() *MockSettingsService {
	return &MockSettingsService{
		settings: domain.DefaultAppSettings(),
		set:      make(map[string]string),
	}
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *MockSettingsService) Set(key, value string) error {
	if key == "unknown.key" {
		return domain.ErrInvalidInput
	}
	m.set[key] = value
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{"search.endpoint", "search.api_token", "llm.api_key"}
}

func (m *MockSettingsService) IsSecret(key string) bool {
	return key == "search.api_token" || key == "llm.api_key"
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// MockLLMValidator implements LLMValidator for testing.
type MockLLMValidator struct {
	err error
}

func (m *MockLLMValidator) ValidateLLM(*domain.LLMSettings) error {
	return m.err
}

// testServices exposes the doubles wired by setupTestServices.
type testServices struct {
	source   *stubSource
	facts    *MockFactService
	titles   *MockTitleService
	settings *MockSettingsService
	notes    *services.NoteService
}

// setupTestServices wires test doubles into the package-level services
// and returns a cleanup that restores the previous ones.
func setupTestServices() (*testServices, func()) {
	origFlow, origSearch := queryFlow, caseSearchService
	origNotes, origTitles, origFacts := noteService, titleService, factService
	origSettings, origActions, origValidator := settingsService, resultActionService, llmValidator

	ts := &testServices{
		source:   &stubSource{},
		facts:    &MockFactService{},
		titles:   &MockTitleService{},
		settings: newMockSettingsService(),
		notes:    services.NewNoteService(memory.NewNoteStore()),
	}

	normalizer := services.NewNormalizer("https://www.courtlistener.com")
	flow := services.NewSubmissionFlow(
		ts.source,
		normalizer,
		services.NewConversation(),
		services.NewSelectionController(),
	)

	SetQueryFlow(flow)
	SetCaseSearchService(services.NewCaseSearchService(ts.source, normalizer))
	SetNoteService(ts.notes)
	SetTitleService(ts.titles)
	SetFactService(ts.facts)
	SetSettingsService(ts.settings)
	SetResultActionService(services.NewResultActionService(nil))
	SetLLMValidator(&MockLLMValidator{})

	return ts, func() {
		queryFlow, caseSearchService = origFlow, origSearch
		noteService, titleService, factService = origNotes, origTitles, origFacts
		settingsService, resultActionService, llmValidator = origSettings, origActions, origValidator
	}
}

// clearServices unsets every service for the duration of a test.
func clearServices() func() {
	origFlow, origSearch := queryFlow, caseSearchService
	origNotes, origTitles, origFacts := noteService, titleService, factService
	origSettings, origActions, origValidator := settingsService, resultActionService, llmValidator

	queryFlow, caseSearchService = nil, nil
	noteService, titleService, factService = nil, nil, nil
	settingsService, resultActionService, llmValidator = nil, nil, nil

	return func() {
		queryFlow, caseSearchService = origFlow, origSearch
		noteService, titleService, factService = origNotes, origTitles, origFacts
		settingsService, resultActionService, llmValidator = origSettings, origActions, origValidator
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

var errBackend = errors.New("backend unavailable")
