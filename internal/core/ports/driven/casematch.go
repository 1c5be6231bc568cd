package driven

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// CaseMatchSource returns the cases most similar to a fact pattern.
// Matches are ordered by the backend's own relevance; callers must not
// reorder them.
type CaseMatchSource interface {
	// FindMatches sends the query and returns the raw matches.
	// Transport failures, non-success statuses and malformed bodies are
	// all returned as errors.
	FindMatches(ctx context.Context, query string) ([]domain.RawMatch, error)
}
