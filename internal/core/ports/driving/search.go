package driving

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// CaseSearchService runs a single case search with no conversation state.
// The CLI and MCP server use it.
type CaseSearchService interface {
	// Find returns published results for query in backend order.
	// A limit of zero or less returns every result.
	Find(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
