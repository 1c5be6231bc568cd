package services

import (
	"math"
	"strings"
	"sync"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/logger"
)

// Similarity maps a backend distance to a score in [0, 100].
// NaN maps to 0. A distance of -1 divides by zero, yields +Inf and is
// clamped to 100, as is any other overflow.
func Similarity(distance float64) float64 {
	if math.IsNaN(distance) {
		return 0
	}
	score := 100 / (1 + distance)
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}

// Normalizer turns raw backend matches into published results.
type Normalizer struct {
	mu         sync.RWMutex
	caseOrigin string
}

// NewNormalizer creates a normalizer that links cases under caseOrigin.
func NewNormalizer(caseOrigin string) *Normalizer {
	return &Normalizer{caseOrigin: strings.TrimRight(caseOrigin, "/")}
}

// CaseOrigin returns the origin prefixed to every case path.
func (n *Normalizer) CaseOrigin() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.caseOrigin
}

// SetCaseOrigin replaces the case origin for subsequent calls.
func (n *Normalizer) SetCaseOrigin(origin string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.caseOrigin = strings.TrimRight(origin, "/")
}

// Normalize drops opinions without a download URL, then drops matches left
// with no opinions. Survivors keep backend order. The result is never nil.
func (n *Normalizer) Normalize(matches []domain.RawMatch) []domain.SearchResult {
	origin := n.CaseOrigin()
	results := make([]domain.SearchResult, 0, len(matches))

	for i := range matches {
		m := &matches[i]

		opinions := make([]domain.Opinion, 0, len(m.Opinions))
		for _, op := range m.Opinions {
			if op.DownloadURL == nil || *op.DownloadURL == "" {
				continue
			}
			opinions = append(opinions, domain.Opinion{
				Snippet:     op.Snippet,
				DownloadURL: *op.DownloadURL,
			})
		}

		if len(opinions) == 0 {
			logger.Debug("Dropping %q: no downloadable opinions", m.CaseName)
			continue
		}

		results = append(results, domain.SearchResult{
			CaseName:    m.CaseName,
			AbsoluteURL: joinCaseURL(origin, m.AbsoluteURL),
			Similarity:  Similarity(m.Distance),
			Court:       m.Court,
			DateFiled:   m.DateFiled,
			Opinions:    opinions,
		})
	}

	logger.Debug("Normalized %d matches into %d results", len(matches), len(results))
	return results
}

// joinCaseURL concatenates origin and the backend path. Backend paths
// start with "/"; one is added when missing.
func joinCaseURL(origin, suffix string) string {
	if suffix == "" {
		return origin
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	return origin + suffix
}
