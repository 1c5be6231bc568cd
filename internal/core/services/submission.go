package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
	"github.com/custodia-labs/citewise/internal/logger"
)

// Ensure SubmissionFlow implements the interface.
var _ driving.QueryFlow = (*SubmissionFlow)(nil)

// FlowOption configures a SubmissionFlow.
type FlowOption func(*SubmissionFlow)

// WithMaxQueryLength caps the query text sent to the backend, in runes.
// Zero or less disables the cap.
func WithMaxQueryLength(n int) FlowOption {
	return func(f *SubmissionFlow) {
		f.maxQueryLength = n
	}
}

// WithRequestIDs overrides request ID generation.
func WithRequestIDs(next func() string) FlowOption {
	return func(f *SubmissionFlow) {
		f.newRequestID = next
	}
}

// SubmissionFlow validates a query, calls the case match backend and
// publishes normalized results. At most one submission is in flight.
type SubmissionFlow struct {
	source         driven.CaseMatchSource
	normalizer     *Normalizer
	conversation   *Conversation
	selection      *SelectionController
	maxQueryLength int
	newRequestID   func() string

	mu       sync.Mutex
	state    domain.SubmissionState
	seq      uint64
	inflight *inflightRequest
	results  []domain.SearchResult
}

// inflightRequest is the submission currently awaiting a response.
type inflightRequest struct {
	ticket domain.Ticket
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSubmissionFlow creates a new submission flow.
func NewSubmissionFlow(
	source driven.CaseMatchSource,
	normalizer *Normalizer,
	conversation *Conversation,
	selection *SelectionController,
	opts ...FlowOption,
) *SubmissionFlow {
	f := &SubmissionFlow{
		source:         source,
		normalizer:     normalizer,
		conversation:   conversation,
		selection:      selection,
		maxQueryLength: domain.DefaultMaxQueryLength,
		newRequestID:   uuid.NewString,
		state:          domain.StateIdle,
		results:        []domain.SearchResult{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Begin validates the input and, if accepted, appends the user message,
// marks the conversation pending and issues a ticket. Rejected input
// leaves every piece of state untouched.
func (f *SubmissionFlow) Begin(ctx context.Context, input string, file *domain.FactDocument) (domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger.Section("Query Submission")

	prev := f.state
	f.state = domain.StateValidating

	input = strings.TrimSpace(input)
	if input == "" && file == nil {
		f.state = prev
		logger.Debug("Rejected: empty input and no file")
		return domain.Ticket{}, domain.ErrEmptyQuery
	}
	if f.conversation.IsPending() {
		f.state = prev
		logger.Debug("Rejected: a query is already pending")
		return domain.Ticket{}, domain.ErrAlreadyPending
	}

	query := buildQuery(input, file, f.maxQueryLength)
	if query == "" {
		f.state = prev
		logger.Debug("Rejected: attached file has no text")
		return domain.Ticket{}, domain.ErrEmptyQuery
	}

	if err := f.conversation.Append(domain.Message{
		Role:    domain.RoleUser,
		Content: userMessage(input, file),
	}); err != nil {
		f.state = prev
		return domain.Ticket{}, err
	}
	f.conversation.SetPending(true)

	f.seq++
	reqCtx, cancel := context.WithCancel(ctx)
	ticket := domain.Ticket{
		Seq:       f.seq,
		RequestID: f.newRequestID(),
		Query:     query,
	}
	f.inflight = &inflightRequest{ticket: ticket, ctx: reqCtx, cancel: cancel}
	f.state = domain.StateAwaitingResponse

	logger.Debug("Request %s (seq %d): %d runes", ticket.RequestID, ticket.Seq, len([]rune(query)))
	return ticket, nil
}

// Fetch calls the backend for ticket. A ticket that is no longer in
// flight returns domain.ErrStaleResponse without calling the backend.
func (f *SubmissionFlow) Fetch(ticket domain.Ticket) ([]domain.RawMatch, error) {
	f.mu.Lock()
	req := f.inflight
	f.mu.Unlock()

	if req == nil || req.ticket.Seq != ticket.Seq {
		return nil, domain.ErrStaleResponse
	}

	logger.Debug("Request %s: calling case match backend", ticket.RequestID)
	return f.source.FindMatches(req.ctx, ticket.Query)
}

// Resolve applies the backend response for seq. On success results are
// normalized and published and the selection is reset. On failure the
// fixed error message is appended. Either way the pending flag is cleared.
func (f *SubmissionFlow) Resolve(seq uint64, matches []domain.RawMatch, fetchErr error) (*domain.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	req := f.inflight
	if req == nil || req.ticket.Seq != seq {
		logger.Debug("Discarding stale response for seq %d", seq)
		return nil, domain.ErrStaleResponse
	}
	req.cancel()
	f.inflight = nil

	if fetchErr != nil {
		f.state = domain.StateFailed
		logger.Warn("Request %s failed: %v", req.ticket.RequestID, fetchErr)
		if err := f.conversation.Append(domain.Message{
			Role:    domain.RoleAssistant,
			Content: domain.SearchErrorText,
		}); err != nil {
			logger.Warn("Request %s: could not record error message: %v", req.ticket.RequestID, err)
		}
		f.conversation.SetPending(false)
		f.state = domain.StateIdle
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, fetchErr)
	}

	f.state = domain.StatePublishing
	results := f.normalizer.Normalize(matches)
	f.selection.Reset()
	f.results = results
	f.conversation.SetPending(false)
	f.state = domain.StateIdle

	logger.Info("Request %s: published %d results", req.ticket.RequestID, len(results))
	return &domain.Outcome{
		RequestID: req.ticket.RequestID,
		Query:     req.ticket.Query,
		Results:   copyResults(results),
	}, nil
}

// Cancel abandons the in-flight submission. Its response, if it ever
// arrives, is discarded as stale.
func (f *SubmissionFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inflight == nil {
		return
	}
	logger.Debug("Cancelling request %s", f.inflight.ticket.RequestID)
	f.inflight.cancel()
	f.inflight = nil
	f.conversation.SetPending(false)
	f.state = domain.StateIdle
}

// Submit runs a whole submission synchronously.
func (f *SubmissionFlow) Submit(ctx context.Context, input string, file *domain.FactDocument) (*domain.Outcome, error) {
	ticket, err := f.Begin(ctx, input, file)
	if err != nil {
		return nil, err
	}
	matches, err := f.Fetch(ticket)
	return f.Resolve(ticket.Seq, matches, err)
}

// State returns the lifecycle state.
func (f *SubmissionFlow) State() domain.SubmissionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IsPending reports whether a submission awaits its response.
func (f *SubmissionFlow) IsPending() bool {
	return f.conversation.IsPending()
}

// Messages returns a copy of the conversation.
func (f *SubmissionFlow) Messages() []domain.Message {
	return f.conversation.Messages()
}

// Results returns a copy of the published results.
func (f *SubmissionFlow) Results() []domain.SearchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyResults(f.results)
}

// Toggle opens or closes the published result at index.
func (f *SubmissionFlow) Toggle(index int) error {
	f.mu.Lock()
	var url string
	if index >= 0 && index < len(f.results) {
		url = f.results[index].FirstOpinionURL()
	}
	f.mu.Unlock()

	return f.selection.Toggle(index, url)
}

// Selection returns the current selection state.
func (f *SubmissionFlow) Selection() domain.SelectionState {
	return f.selection.State()
}

// SetCaseOrigin changes the origin used for case links of future results.
func (f *SubmissionFlow) SetCaseOrigin(origin string) {
	f.normalizer.SetCaseOrigin(origin)
}

// Conversation returns the underlying conversation.
func (f *SubmissionFlow) Conversation() *Conversation {
	return f.conversation
}

// buildQuery joins the typed input and the file text, then applies the cap.
func buildQuery(input string, file *domain.FactDocument, maxRunes int) string {
	parts := make([]string, 0, 2)
	if input != "" {
		parts = append(parts, input)
	}
	if file != nil {
		if text := strings.TrimSpace(file.Content); text != "" {
			parts = append(parts, text)
		}
	}
	query := strings.Join(parts, "\n\n")

	if maxRunes > 0 {
		if runes := []rune(query); len(runes) > maxRunes {
			query = strings.TrimSpace(string(runes[:maxRunes]))
		}
	}
	return query
}

// userMessage is what the conversation shows for the user's turn.
func userMessage(input string, file *domain.FactDocument) string {
	if file == nil {
		return input
	}
	return strings.TrimSpace(fmt.Sprintf("%s (File %q uploaded)", input, file.Name))
}

func copyResults(results []domain.SearchResult) []domain.SearchResult {
	out := make([]domain.SearchResult, len(results))
	copy(out, results)
	return out
}
