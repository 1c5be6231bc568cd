// Package clipboard adapts the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/citewise/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

var (
	clipboardWrite       = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// System writes to the OS clipboard.
type System struct{}

// New returns the system clipboard adapter.
func New() *System {
	return &System{}
}

// WriteAll replaces the clipboard contents with text.
func (s *System) WriteAll(text string) error {
	if clipboardUnsupported() {
		return ErrUnsupported
	}
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
