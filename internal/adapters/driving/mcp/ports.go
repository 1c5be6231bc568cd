package mcp

import (
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search finds cases for a fact pattern. Required.
	Search driving.CaseSearchService

	// Notes exposes research notes. Optional.
	Notes driving.NoteService

	// Titles generates opinion titles. Optional.
	Titles driving.OpinionTitleService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
