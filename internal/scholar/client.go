// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar resolves author names to bibliometric profiles through
// the Semantic Scholar author search, with an optional SQLite cache.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// authorSearchBase is the Semantic Scholar author search endpoint. Declared
// as a var so tests can substitute an httptest server.
var authorSearchBase = "https://api.semanticscholar.org/graph/v1/author/search"

const authorFields = "hIndex,citationCount,paperCount,url"

// Client looks up author profiles. It is safe for concurrent use; all
// requests share one rate limiter.
type Client struct {
	HTTP *http.Client
	cfg  types.ScholarConfig
	pol  httputil.Policy
}

// NewClient builds a client from cfg. Retry notices go to w.
func NewClient(cfg types.ScholarConfig, w io.Writer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		HTTP: &http.Client{Timeout: timeout},
		cfg:  cfg,
		pol:  httputil.Policy{MaxRetries: cfg.MaxRetries, Log: w},
	}
	if cfg.RequestsPerSecond > 0 {
		c.pol.Limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Lookup returns the profile of the first author search hit for name.
// It returns digest.ErrNoProfile when the search has no results; missing
// numeric fields become 0 and a missing URL becomes types.DefaultProfileURL.
func (c *Client) Lookup(ctx context.Context, name string) (types.AuthorProfile, error) {
	params := url.Values{
		"query":  {name},
		"fields": {authorFields},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authorSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return types.AuthorProfile{}, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("x-api-key", c.cfg.APIKey)
	}

	resp, err := httputil.Do(ctx, c.HTTP, req, c.pol)
	if err != nil {
		return types.AuthorProfile{}, fmt.Errorf("Semantic Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.AuthorProfile{}, fmt.Errorf("Semantic Scholar returned HTTP %d", resp.StatusCode)
	}

	var sr authorSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.AuthorProfile{}, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	if len(sr.Data) == 0 {
		return types.AuthorProfile{}, fmt.Errorf("%w: %s", digest.ErrNoProfile, name)
	}
	return sr.Data[0].profile(name), nil
}

type authorSearchResponse struct {
	Total int            `json:"total"`
	Data  []authorResult `json:"data"`
}

type authorResult struct {
	AuthorID      string `json:"authorId"`
	Name          string `json:"name"`
	HIndex        *int   `json:"hIndex"`
	CitationCount *int   `json:"citationCount"`
	PaperCount    *int   `json:"paperCount"`
	URL           string `json:"url"`
}

func (a authorResult) profile(query string) types.AuthorProfile {
	p := types.AuthorProfile{
		Name:          query,
		HIndex:        deref(a.HIndex),
		CitationCount: deref(a.CitationCount),
		PaperCount:    deref(a.PaperCount),
		ProfileURL:    a.URL,
	}
	if p.ProfileURL == "" {
		p.ProfileURL = types.DefaultProfileURL
	}
	return p
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
