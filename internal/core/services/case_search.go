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

// Ensure CaseSearchService implements the interface.
var _ driving.CaseSearchService = (*CaseSearchService)(nil)

// CaseSearchService runs one-shot case searches without conversation state.
type CaseSearchService struct {
	source         driven.CaseMatchSource
	normalizer     *Normalizer
	maxQueryLength int
}

// NewCaseSearchService creates a new case search service.
func NewCaseSearchService(source driven.CaseMatchSource, normalizer *Normalizer) *CaseSearchService {
	return &CaseSearchService{
		source:         source,
		normalizer:     normalizer,
		maxQueryLength: domain.DefaultMaxQueryLength,
	}
}

// SetMaxQueryLength caps the query sent to the backend, in runes.
// Zero or less disables the cap.
func (s *CaseSearchService) SetMaxQueryLength(n int) {
	s.maxQueryLength = n
}

// Find returns published results for query, truncated to limit when limit > 0.
func (s *CaseSearchService) Find(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	logger.Section("Case Search")
	logger.Debug("Query: %q, limit: %d", query, limit)

	query = buildQuery(strings.TrimSpace(query), nil, s.maxQueryLength)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	matches, err := s.source.FindMatches(ctx, query)
	if err != nil {
		logger.Warn("Case search failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	results := s.normalizer.Normalize(matches)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	logger.Info("Final results: %d", len(results))

	return results, nil
}
