// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed downloads RSS and Atom feeds and maps their items to raw
// entries for the digest pipeline.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Fetcher reads one feed source per call.
type Fetcher struct {
	Client *http.Client
	cfg    types.FeedConfig
	log    io.Writer
}

// NewFetcher builds a fetcher from cfg. Retry notices go to w.
func NewFetcher(cfg types.FeedConfig, w io.Writer) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		Client: &http.Client{Timeout: timeout},
		cfg:    cfg,
		log:    w,
	}
}

// Fetch downloads source and returns its items in document order. Items are
// mapped without validation; malformed ones are rejected downstream.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]types.RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := httputil.Do(ctx, f.Client, req, httputil.Policy{Log: f.log})
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed parse failed: %w", err)
	}

	entries := make([]types.RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toRawEntry(item, source))
	}
	return entries, nil
}

func toRawEntry(item *gofeed.Item, source string) types.RawEntry {
	e := types.RawEntry{
		ID:              item.GUID,
		Title:           item.Title,
		Summary:         item.Description,
		Link:            item.Link,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
		Source:          source,
	}
	if e.ID == "" {
		e.ID = item.Link
	}
	if e.Summary == "" {
		e.Summary = item.Content
	}
	if e.Published == "" && item.UpdatedParsed != nil {
		e.Published = item.Updated
		e.PublishedParsed = item.UpdatedParsed
	}

	switch {
	case len(item.Authors) > 0:
		e.Authors = make([]types.RawAuthor, 0, len(item.Authors))
		for _, a := range item.Authors {
			if a != nil {
				e.Authors = append(e.Authors, types.RawAuthor{Name: a.Name})
			}
		}
	case item.Author != nil:
		e.Authors = []types.RawAuthor{{Name: item.Author.Name}}
	}
	return e
}
