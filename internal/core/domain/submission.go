package domain

// SubmissionState is the lifecycle state of a query submission.
type SubmissionState int

const (
	// StateIdle means no query is in flight.
	StateIdle SubmissionState = iota

	// StateValidating means input is being checked.
	StateValidating

	// StateAwaitingResponse means the backend has been called.
	StateAwaitingResponse

	// StatePublishing means results are being normalised and published.
	StatePublishing

	// StateFailed means the backend call failed. The flow returns to Idle
	// once the error message is appended.
	StateFailed
)

// String returns the string representation.
func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StatePublishing:
		return "publishing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is what a successful submission published.
type Outcome struct {
	// RequestID correlates log lines for one submission.
	RequestID string

	// Query is the text sent to the backend.
	Query string

	// Results are the published results, in backend order.
	Results []SearchResult
}

// Ticket identifies one in-flight submission. Seq increases monotonically
// across submissions; only the ticket with the current Seq may publish.
type Ticket struct {
	Seq       uint64
	RequestID string
	Query     string
}
