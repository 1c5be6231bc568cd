package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySearchEndpoint       = "search.endpoint"
	KeySearchCaseOrigin     = "search.case_origin"
	KeySearchTimeout        = "search.timeout_seconds"
	KeySearchRatePerSecond  = "search.requests_per_second"
	KeySearchAPIToken       = "search.api_token"
	KeySearchMaxQueryLength = "search.max_query_length"
	KeyLLMModel             = "llm.model"
	KeyLLMBaseURL           = "llm.base_url"
	KeyLLMAPIKey            = "llm.api_key"
	KeyStorageDataDir       = "storage.data_dir"
)

// Environment fallbacks for secrets that are not in the config file.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvSearchAPIToken = "CITEWISE_API_TOKEN"
	EnvLLMAPIKey      = "OPENAI_API_KEY"
)

// SecretKeys are the keys whose values must not be echoed.
var SecretKeys = map[string]bool{
	KeySearchAPIToken: true,
	KeyLLMAPIKey:      true,
}

// storedSetting is one key/value pair written by Save.
type storedSetting struct {
	key   string
	value any
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// SetEnvLookup replaces the environment lookup. Used by tests.
func (s *SettingsService) SetEnvLookup(getenv func(string) string) {
	s.getenv = getenv
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Endpoint:          s.getString(KeySearchEndpoint, defaults.Search.Endpoint),
			CaseOrigin:        s.getString(KeySearchCaseOrigin, defaults.Search.CaseOrigin),
			TimeoutSeconds:    s.getPositiveInt(KeySearchTimeout, defaults.Search.TimeoutSeconds),
			RequestsPerSecond: s.getPositiveFloat(KeySearchRatePerSecond, defaults.Search.RequestsPerSecond),
			APIToken:          s.getSecret(KeySearchAPIToken, EnvSearchAPIToken),
			MaxQueryLength:    s.getPositiveInt(KeySearchMaxQueryLength, defaults.Search.MaxQueryLength),
		},
		LLM: domain.LLMSettings{
			Model:   s.getString(KeyLLMModel, defaults.LLM.Model),
			BaseURL: s.getString(KeyLLMBaseURL, defaults.LLM.BaseURL),
			APIKey:  s.getSecret(KeyLLMAPIKey, EnvLLMAPIKey),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(KeyStorageDataDir),
		},
	}

	return settings, nil
}

// Save persists application settings. Empty secrets are not written so
// environment fallbacks keep working.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []storedSetting{
		{KeySearchEndpoint, settings.Search.Endpoint},
		{KeySearchCaseOrigin, settings.Search.CaseOrigin},
		{KeySearchTimeout, int64(settings.Search.TimeoutSeconds)},
		{KeySearchRatePerSecond, settings.Search.RequestsPerSecond},
		{KeySearchMaxQueryLength, int64(settings.Search.MaxQueryLength)},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
		{KeyStorageDataDir, settings.Storage.DataDir},
	}
	if settings.Search.APIToken != "" {
		values = append(values, storedSetting{KeySearchAPIToken, settings.Search.APIToken})
	}
	if settings.LLM.APIKey != "" {
		values = append(values, storedSetting{KeyLLMAPIKey, settings.LLM.APIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case KeySearchTimeout, KeySearchMaxQueryLength:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = int64(n)
	case KeySearchRatePerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	case KeySearchEndpoint, KeySearchCaseOrigin, KeyLLMBaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL: %w", key, domain.ErrInvalidInput)
		}
		parsed = strings.TrimRight(value, "/")
	case KeySearchAPIToken, KeyLLMModel, KeyLLMAPIKey, KeyStorageDataDir:
		parsed = value
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeySearchEndpoint, KeySearchCaseOrigin, KeySearchTimeout,
		KeySearchRatePerSecond, KeySearchAPIToken, KeySearchMaxQueryLength,
		KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey, KeyStorageDataDir,
	}
	sort.Strings(keys)
	return keys
}

// IsSecret reports whether key holds a credential.
func (s *SettingsService) IsSecret(key string) bool {
	return SecretKeys[key]
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getPositiveInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getPositiveFloat(key string, fallback float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return fallback
}

// getSecret prefers the config file and falls back to the environment.
func (s *SettingsService) getSecret(key, envVar string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return s.getenv(envVar)
}
