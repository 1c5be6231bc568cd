package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	clipboard driven.Clipboard
	open      func(url string) error
}

// NewResultActionService creates a new result action service.
// clipboard may be nil.
func NewResultActionService(clipboard driven.Clipboard) *ResultActionService {
	return &ResultActionService{
		clipboard: clipboard,
		open:      openURL,
	}
}

// SetOpener replaces the URL opener. Used by tests.
func (s *ResultActionService) SetOpener(open func(url string) error) {
	s.open = open
}

// CopyLink copies the result's case link to the system clipboard.
func (s *ResultActionService) CopyLink(_ context.Context, result *domain.SearchResult) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	if s.clipboard == nil {
		return fmt.Errorf("clipboard unavailable")
	}
	return s.clipboard.WriteAll(result.AbsoluteURL)
}

// OpenDocument opens a document URL in the default application.
func (s *ResultActionService) OpenDocument(_ context.Context, url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("not a web url %q: %w", url, domain.ErrInvalidInput)
	}
	return s.open(url)
}

// openURL opens a URL in the default browser using OS-specific commands.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", url)
	case osLinux:
		cmd = exec.Command("xdg-open", url)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
