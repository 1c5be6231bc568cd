// Package domain defines the core business entities for citewise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: A single turn in the chat conversation
//   - RawMatch: An unfiltered case match from the similarity backend
//   - SearchResult: A published, ranked case with viewable opinions
//   - SelectionState: Which result row is open and which document is shown
//   - Note: A free-text research note
//   - FactDocument: An uploaded fact pattern with extracted text
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
