// Package mcp provides an MCP (Model Context Protocol) server adapter for citewise.
// It lets AI assistants search case law and read research notes.
package mcp

import "errors"

// ErrMissingSearchService is returned when the case search service is not provided.
var ErrMissingSearchService = errors.New("mcp: case search service is required")
