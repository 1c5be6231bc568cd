package driven

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// Normaliser extracts plain text from an uploaded fact file.
// Each normaliser handles specific MIME types (e.g., DOCX, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	// A trailing "/*" matches a whole type family.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text content of a raw file.
	Normalise(ctx context.Context, raw *domain.RawFile) (*domain.FactDocument, error)
}
