// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func rawEntry(id, title, summary string) types.RawEntry {
	return types.RawEntry{
		ID:        id,
		Title:     title,
		Summary:   summary,
		Link:      "https://arxiv.org/abs/" + id,
		Published: "Mon, 16 Sep 2024 00:00:00 -0400",
		Authors:   []types.RawAuthor{{Name: "Alice Smith, Bob Jones"}},
		Source:    "https://rss.arxiv.org/rss/hep-th",
	}
}

func TestNormalize(t *testing.T) {
	e := rawEntry("oai:arXiv.org:2409.12345v1", "Title", "Abstract with <b>markup</b> and $x^2$.")

	r, err := Normalize(e)
	require.NoError(t, err)

	assert.Equal(t, e.ID, r.ID)
	assert.Equal(t, e.Title, r.Title)
	assert.Equal(t, e.Summary, r.Summary, "summary must be carried byte-for-byte")
	assert.Equal(t, e.Link, r.URL)
	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, r.Authors)
	assert.Empty(t, r.MatchedKeywords)
	assert.Equal(t, 2024, r.PublishedAt.Year())
	assert.Equal(t, time.September, r.PublishedAt.Month())
}

func TestNormalizeMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		entry types.RawEntry
	}{
		{"missing id", rawEntry("", "Title", "Summary")},
		{"blank id", rawEntry("   ", "Title", "Summary")},
		{"missing title", rawEntry("id-1", "", "Summary")},
		{"missing summary", rawEntry("id-1", "Title", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.entry)
			if !errors.Is(err, ErrMalformedEntry) {
				t.Errorf("Normalize() error = %v, want ErrMalformedEntry", err)
			}
		})
	}
}

func TestNormalizeKeepsFeedOffset(t *testing.T) {
	parsed := time.Date(2024, 9, 16, 4, 0, 0, 0, time.UTC)
	e := rawEntry("id-1", "Title", "Summary")
	e.Published = "Mon, 16 Sep 2024 00:00:00 -0400"
	e.PublishedParsed = &parsed

	r, err := Normalize(e)
	require.NoError(t, err)
	assert.True(t, r.PublishedAt.Equal(parsed))
	_, offset := r.PublishedAt.Zone()
	assert.Equal(t, -4*3600, offset)
	assert.Equal(t, "2024-09-16 00:00", r.PublishedAt.Format("2006-01-02 15:04"))
}

func TestNormalizeFallsBackToParsedTimestamp(t *testing.T) {
	parsed := time.Date(2024, 9, 17, 4, 0, 0, 0, time.UTC)
	e := rawEntry("id-1", "Title", "Summary")
	e.Published = "garbage"
	e.PublishedParsed = &parsed

	r, err := Normalize(e)
	require.NoError(t, err)
	assert.True(t, r.PublishedAt.Equal(parsed))
}

func TestNormalizeUnparseableTimestamp(t *testing.T) {
	e := rawEntry("id-1", "Title", "Summary")
	e.Published = "sometime last week"

	r, err := Normalize(e)
	require.NoError(t, err)
	assert.True(t, r.PublishedAt.IsZero())
}

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name string
		raw  []types.RawAuthor
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty", []types.RawAuthor{}, []string{}},
		{"single", []types.RawAuthor{{Name: "Alice Smith"}}, []string{"Alice Smith"}},
		{"comma separated", []types.RawAuthor{{Name: "Alice Smith,  Bob Jones ,Carol White"}}, []string{"Alice Smith", "Bob Jones", "Carol White"}},
		{"only first element used", []types.RawAuthor{{Name: "Alice Smith"}, {Name: "Bob Jones"}}, []string{"Alice Smith"}},
		{"name with comma is split", []types.RawAuthor{{Name: "Smith, Alice"}}, []string{"Smith", "Alice"}},
		{"blank pieces dropped", []types.RawAuthor{{Name: "Alice Smith, , Bob Jones,"}}, []string{"Alice Smith", "Bob Jones"}},
		{"blank name", []types.RawAuthor{{Name: ""}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAuthors(tt.raw))
		})
	}
}
