// Package tui provides an interactive terminal user interface for citewise.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Flow submits queries and owns the conversation, results and selection.
	Flow driving.QueryFlow

	// Facts loads attached fact pattern files.
	Facts driving.FactService

	// Actions opens documents and copies case links.
	Actions driving.ResultActionService

	// Titles generates opinion titles.
	Titles driving.OpinionTitleService

	// Notes manages research notes.
	Notes driving.NoteService

	// Settings is re-read when the config file changes.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(flow driving.QueryFlow, actions driving.ResultActionService) *Ports {
	return &Ports{
		Flow:    flow,
		Actions: actions,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Flow == nil {
		return ErrMissingQueryFlow
	}
	return nil
}
