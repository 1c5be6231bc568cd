// Package opinions is the HTTP adapter for the most-relevant opinions backend.
package opinions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CaseMatchSource = (*Client)(nil)

// maxResponseBytes caps how much of a backend reply is read.
const maxResponseBytes = 16 << 20

// Config configures the backend client.
type Config struct {
	// Endpoint is the full URL of /opinions/most-relevant.
	Endpoint string

	// APIToken is sent as "Authorization: Token <value>" when set.
	APIToken string

	// Timeout bounds a single request. Zero uses the default.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
}

// ConfigFromSettings maps search settings onto a client config.
func ConfigFromSettings(s domain.SearchSettings) Config {
	return Config{
		Endpoint:          s.Endpoint,
		APIToken:          s.APIToken,
		Timeout:           s.Timeout(),
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// Client fetches candidate matches from the backend.
type Client struct {
	http     *http.Client
	endpoint string
	token    string
	limiter  *RateLimiter
}

// wireOpinion and wireMatch mirror the backend JSON records.
type wireOpinion struct {
	ID          int64   `json:"id"`
	Snippet     string  `json:"snippet"`
	DownloadURL *string `json:"download_url"`
	Type        string  `json:"type"`
}

type wireMatch struct {
	CaseName    string        `json:"caseName"`
	AbsoluteURL string        `json:"absolute_url"`
	Distance    float64       `json:"_distance"`
	Court       string        `json:"court"`
	DateFiled   string        `json:"dateFiled"`
	DocketID    int64         `json:"docket_id"`
	Opinions    []wireOpinion `json:"opinions"`
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = domain.DefaultSearchEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("search endpoint %q: %w", endpoint, domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Duration(domain.DefaultSearchTimeout) * time.Second
	}

	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		endpoint: endpoint,
		token:    cfg.APIToken,
		limiter:  NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// FindMatches returns the backend's matches for query in backend order.
func (c *Client) FindMatches(ctx context.Context, query string) ([]domain.RawMatch, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL, err := c.requestURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	c.limiter.Observe(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, snippet(body))
	}

	var wire []wireMatch
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	logger.Debug("Backend returned %d matches in %s", len(wire), time.Since(start).Round(time.Millisecond))

	matches := make([]domain.RawMatch, len(wire))
	for i, w := range wire {
		matches[i] = w.toDomain()
	}
	return matches, nil
}

func (c *Client) requestURL(query string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (w wireMatch) toDomain() domain.RawMatch {
	opinions := make([]domain.RawOpinion, len(w.Opinions))
	for i, o := range w.Opinions {
		opinions[i] = domain.RawOpinion{
			ID:          o.ID,
			Snippet:     o.Snippet,
			DownloadURL: o.DownloadURL,
			Type:        o.Type,
		}
	}
	return domain.RawMatch{
		CaseName:    w.CaseName,
		AbsoluteURL: w.AbsoluteURL,
		Distance:    w.Distance,
		Court:       w.Court,
		DateFiled:   w.DateFiled,
		DocketID:    w.DocketID,
		Opinions:    opinions,
	}
}

// snippet shortens an error body for messages.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
