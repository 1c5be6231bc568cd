package driven

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// NormaliserRegistry selects the normaliser for an uploaded file.
// When several match its MIME type, the highest priority one wins.
type NormaliserRegistry interface {
	// Normalise extracts text using the best matching normaliser.
	// Returns domain.ErrUnsupportedType when nothing matches.
	Normalise(ctx context.Context, raw *domain.RawFile) (*domain.FactDocument, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
