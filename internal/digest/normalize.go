// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest turns one fetch cycle of raw feed entries into a ranked,
// render-ready report: normalize, deduplicate, match against the interest
// profile, score authors, rank, and assemble.
package digest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrMalformedEntry marks a raw entry that lacks a mandatory field.
var ErrMalformedEntry = errors.New("malformed entry")

// publishedLayouts are tried in order against the raw timestamp before
// falling back to the supplier's parsed value.
var publishedLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// Normalize converts a raw entry into a Record. It fails with
// ErrMalformedEntry when the ID, title, or summary is missing. Title and
// summary are copied unmodified.
func Normalize(e types.RawEntry) (types.Record, error) {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return types.Record{}, fmt.Errorf("%w: missing id", ErrMalformedEntry)
	case strings.TrimSpace(e.Title) == "":
		return types.Record{}, fmt.Errorf("%w: %s: missing title", ErrMalformedEntry, e.ID)
	case strings.TrimSpace(e.Summary) == "":
		return types.Record{}, fmt.Errorf("%w: %s: missing summary", ErrMalformedEntry, e.ID)
	}

	return types.Record{
		ID:          e.ID,
		PublishedAt: parsePublished(e),
		Title:       e.Title,
		Summary:     e.Summary,
		URL:         e.Link,
		Authors:     ParseAuthors(e.Authors),
		Source:      e.Source,
	}, nil
}

// ParseAuthors takes the first structured author's composite name and
// splits it on commas. Pieces that are blank after trimming are dropped.
// A nil or empty list yields no authors.
func ParseAuthors(raw []types.RawAuthor) []string {
	if len(raw) == 0 {
		return []string{}
	}
	parts := strings.Split(raw[0].Name, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parsePublished prefers the raw string so the feed's own offset is kept;
// parsers normalise PublishedParsed to UTC.
func parsePublished(e types.RawEntry) time.Time {
	if s := strings.TrimSpace(e.Published); s != "" {
		for _, layout := range publishedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	if e.PublishedParsed != nil {
		return *e.PublishedParsed
	}
	return time.Time{}
}
