package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
	"github.com/custodia-labs/citewise/internal/logger"
)

// Ensure FactService implements the interface.
var _ driving.FactService = (*FactService)(nil)

// MaxFactFileSize is the largest fact file accepted, in bytes.
const MaxFactFileSize = 5 << 20

// factMIMETypes maps accepted file extensions to MIME types.
var factMIMETypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".eml":      "message/rfc822",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FactService reads fact pattern files and extracts their text.
type FactService struct {
	registry driven.NormaliserRegistry
}

// NewFactService creates a new fact service.
func NewFactService(registry driven.NormaliserRegistry) *FactService {
	return &FactService{registry: registry}
}

// Load reads the file at path and returns its extracted text.
func (s *FactService) Load(ctx context.Context, path string) (*domain.FactDocument, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("file path is blank: %w", domain.ErrInvalidInput)
	}
	path = expandHome(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, domain.ErrInvalidInput)
	}
	if info.Size() > MaxFactFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", path, MaxFactFileSize, domain.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := factMIMETypes[ext]
	if !ok {
		return nil, fmt.Errorf("extension %q: %w", ext, domain.ErrUnsupportedType)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger.Debug("Loading fact file %s (%s, %d bytes)", path, mimeType, len(content))

	doc, err := s.registry.Normalise(ctx, &domain.RawFile{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", path, err)
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil, fmt.Errorf("%s has no text: %w", path, domain.ErrInvalidInput)
	}

	return doc, nil
}

// SupportedExtensions lists the accepted file extensions in sorted order.
func (s *FactService) SupportedExtensions() []string {
	exts := make([]string, 0, len(factMIMETypes))
	for ext := range factMIMETypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
