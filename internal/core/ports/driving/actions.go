package driving

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// ResultActionService provides actions on search results for external actors.
// This is used by TUI and CLI adapters.
type ResultActionService interface {
	// CopyLink copies the result's case link to the system clipboard.
	CopyLink(ctx context.Context, result *domain.SearchResult) error

	// OpenDocument opens a document URL in the default application.
	OpenDocument(ctx context.Context, url string) error
}
