package driving

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// FactService loads uploaded fact pattern files.
type FactService interface {
	// Load reads the file at path and extracts its text.
	Load(ctx context.Context, path string) (*domain.FactDocument, error)

	// SupportedExtensions lists the file extensions that can be loaded.
	SupportedExtensions() []string
}
