package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
	"github.com/custodia-labs/citewise/internal/logger"
)

// Ensure OpinionTitleService implements the interface.
var _ driving.OpinionTitleService = (*OpinionTitleService)(nil)

// titleMaxTokens keeps generated titles to a single short line.
const titleMaxTokens = 30

const titlePrompt = "Understand this following court case opinion: %s. " +
	"Then generate a title for this opinion that is relevant to the query: %s"

// OpinionTitleService asks the LLM for query-relevant opinion titles.
type OpinionTitleService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

var _ driven.PromptStoreAware = (*OpinionTitleService)(nil)

// NewOpinionTitleService creates a new title service. llm may be nil.
func NewOpinionTitleService(llm driven.LLMService) *OpinionTitleService {
	return &OpinionTitleService{llm: llm}
}

// SetPromptStore lets users override the title prompt.
func (s *OpinionTitleService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Available reports whether an LLM is configured.
func (s *OpinionTitleService) Available() bool {
	return s.llm != nil
}

// Title returns a title for the opinion at downloadURL.
func (s *OpinionTitleService) Title(ctx context.Context, downloadURL, query string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	downloadURL = strings.TrimSpace(downloadURL)
	if downloadURL == "" {
		return "", fmt.Errorf("download url is blank: %w", domain.ErrInvalidInput)
	}

	logger.Debug("Titling %s with %s", downloadURL, s.llm.ModelName())

	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: fmt.Sprintf(s.template(), downloadURL, strings.TrimSpace(query))},
	}, driven.ChatOptions{MaxTokens: titleMaxTokens})
	if err != nil {
		return "", fmt.Errorf("generate title: %w", err)
	}

	return cleanTitle(reply), nil
}

// template returns the stored prompt when it carries both placeholders.
func (s *OpinionTitleService) template() string {
	if s.prompts == nil {
		return titlePrompt
	}
	tpl, err := s.prompts.Load(driven.PromptOpinionTitle)
	if err != nil {
		logger.Warn("Loading title prompt: %v", err)
		return titlePrompt
	}
	if strings.Count(tpl, "%s") != 2 || strings.Count(tpl, "%") != 2 {
		logger.Warn("Title prompt needs exactly two %%s placeholders, using default")
		return titlePrompt
	}
	return tpl
}

// cleanTitle strips whitespace, wrapping quotes and a "Title:" prefix.
func cleanTitle(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "\"'*")
	if len(s) >= 6 && strings.EqualFold(s[:6], "title:") {
		s = s[6:]
	}
	return strings.Trim(strings.TrimSpace(s), "\"'*")
}
