package domain

import "time"

// Default setting values.
const (
	DefaultSearchEndpoint    = "http://localhost:8000/opinions/most-relevant"
	DefaultCaseOrigin        = "https://www.courtlistener.com"
	DefaultSearchTimeout     = 30
	DefaultRequestsPerSecond = 2.0
	DefaultMaxQueryLength    = 1000
	DefaultLLMModel          = "gpt-4o-mini"
	DefaultLLMBaseURL        = "https://api.openai.com/v1"
)

// SearchSettings configures the case match backend.
type SearchSettings struct {
	// Endpoint is the full URL of the most-relevant opinions endpoint.
	Endpoint string

	// CaseOrigin is prefixed to every backend case path.
	CaseOrigin string

	// TimeoutSeconds bounds a single backend request.
	TimeoutSeconds int

	// RequestsPerSecond throttles outbound backend calls.
	RequestsPerSecond float64

	// APIToken is sent as "Authorization: Token <value>" when set.
	APIToken string

	// MaxQueryLength caps the query text in runes.
	MaxQueryLength int
}

// Timeout returns TimeoutSeconds as a duration.
func (s SearchSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LLMSettings holds LLM provider configuration used for opinion titles.
type LLMSettings struct {
	// Model is the chat model name.
	Model string

	// BaseURL is the OpenAI-compatible API endpoint.
	BaseURL string

	// APIKey is the API key.
	APIKey string
}

// IsConfigured returns true if the LLM can be called.
func (l LLMSettings) IsConfigured() bool {
	return l.APIKey != ""
}

// StorageSettings configures local persistence.
type StorageSettings struct {
	// DataDir holds the notes database. Empty means the config directory.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search  SearchSettings
	LLM     LLMSettings
	Storage StorageSettings
}

// DefaultAppSettings returns the default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Endpoint:          DefaultSearchEndpoint,
			CaseOrigin:        DefaultCaseOrigin,
			TimeoutSeconds:    DefaultSearchTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			MaxQueryLength:    DefaultMaxQueryLength,
		},
		LLM: LLMSettings{
			Model:   DefaultLLMModel,
			BaseURL: DefaultLLMBaseURL,
		},
	}
}
