package driving

import (
	"context"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// QueryFlow is the conversational submit pipeline used by interactive
// front ends. It owns the conversation, the published results and the
// selection state.
type QueryFlow interface {
	// Begin validates input, records the user turn and issues a ticket.
	Begin(ctx context.Context, input string, file *domain.FactDocument) (domain.Ticket, error)

	// Fetch calls the case match backend for a ticket. It may block.
	Fetch(ticket domain.Ticket) ([]domain.RawMatch, error)

	// Resolve applies a backend response. Responses for a superseded
	// ticket return domain.ErrStaleResponse and change nothing.
	Resolve(seq uint64, matches []domain.RawMatch, fetchErr error) (*domain.Outcome, error)

	// Cancel abandons the in-flight submission, if any.
	Cancel()

	// Submit runs Begin, Fetch and Resolve in sequence.
	Submit(ctx context.Context, input string, file *domain.FactDocument) (*domain.Outcome, error)

	// State returns the lifecycle state.
	State() domain.SubmissionState

	// IsPending reports whether a submission awaits its response.
	IsPending() bool

	// Messages returns a copy of the conversation.
	Messages() []domain.Message

	// Results returns a copy of the published results.
	Results() []domain.SearchResult

	// Toggle opens or closes the result row at index.
	Toggle(index int) error

	// Selection returns the current selection state.
	Selection() domain.SelectionState

	// SetCaseOrigin changes the origin used for case links of future results.
	SetCaseOrigin(origin string)
}
