package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/services"
)

// stubSource implements driven.CaseMatchSource for testing.
type stubSource struct {
	FindMatchesFunc func(ctx context.Context, query string) ([]domain.RawMatch, error)
}

func (s *stubSource) FindMatches(ctx context.Context, query string) ([]domain.RawMatch, error) {
	if s.FindMatchesFunc != nil {
		return s.FindMatchesFunc(ctx, query)
	}
	return nil, nil
}

// MockResultActionService implements driving.ResultActionService for testing.
type MockResultActionService struct {
	CopyLinkFunc     func(ctx context.Context, result *domain.SearchResult) error
	OpenDocumentFunc func(ctx context.Context, url string) error
}

func (m *MockResultActionService) CopyLink(ctx context.Context, result *domain.SearchResult) error {
	if m.CopyLinkFunc != nil {
		return m.CopyLinkFunc(ctx, result)
	}
	return nil
}

func (m *MockResultActionService) OpenDocument(ctx context.Context, url string) error {
	if m.OpenDocumentFunc != nil {
		return m.OpenDocumentFunc(ctx, url)
	}
	return nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	GetFunc func() (*domain.AppSettings, error)
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) Save(*domain.AppSettings) error { return nil }
func (m *MockSettingsService) Set(string, string) error       { return nil }
func (m *MockSettingsService) Keys() []string                 { return nil }
func (m *MockSettingsService) IsSecret(string) bool           { return false }
func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func newTestFlow(source *stubSource) *services.SubmissionFlow {
	return services.NewSubmissionFlow(
		source,
		services.NewNormalizer("https://cases.example"),
		services.NewConversation(),
		services.NewSelectionController(),
	)
}

func TestNewPorts(t *testing.T) {
	flow := newTestFlow(&stubSource{})
	actions := &MockResultActionService{}

	ports := NewPorts(flow, actions)

	require.NotNil(t, ports)
	assert.Equal(t, flow, ports.Flow)
	assert.Equal(t, actions, ports.Actions)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingFlow(t *testing.T) {
	ports := &Ports{Actions: &MockResultActionService{}}

	assert.ErrorIs(t, ports.Validate(), ErrMissingQueryFlow)
}

func TestPorts_Validate_Nil(t *testing.T) {
	var ports *Ports

	assert.ErrorIs(t, ports.Validate(), ErrInvalidPorts)
}

func TestPorts_Validate_OptionalServices(t *testing.T) {
	ports := &Ports{Flow: newTestFlow(&stubSource{})}

	assert.NoError(t, ports.Validate())
}
