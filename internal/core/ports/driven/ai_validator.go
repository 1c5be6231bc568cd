package driven

import "github.com/custodia-labs/citewise/internal/core/domain"

// AIConfigValidator checks LLM settings by contacting the provider.
type AIConfigValidator interface {
	// ValidateLLM pings the configured provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
