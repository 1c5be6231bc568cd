package driving

import "context"

// OpinionTitleService generates short titles for opinions.
type OpinionTitleService interface {
	// Title returns a title for the opinion at downloadURL that is
	// relevant to query.
	Title(ctx context.Context, downloadURL, query string) (string, error)

	// Available reports whether an LLM is configured.
	Available() bool
}
