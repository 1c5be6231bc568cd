package tui

import "errors"

// ErrMissingQueryFlow is returned when the query flow is not provided.
var ErrMissingQueryFlow = errors.New("tui: query flow is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
