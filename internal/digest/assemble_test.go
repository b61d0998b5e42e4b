// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestExtractAnchor(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"http://arxiv.org/abs/2409.12345", "2409.12345"},
		{"http://arxiv.org/abs/2409.12345v2", "2409.12345v2"},
		{"https://arxiv.org/abs/1501.0123", "1501.0123"},
		{"https://arxiv.org/abs/2409.12345v12?context=hep-th", "2409.12345v12"},
		{"http://example.com/x/y/z", "z"},
		{"oai:arXiv.org:2409.12345v1", "oai:arXiv.org:2409.12345v1"},
		{"http://arxiv.org/abs/hep-th/9901001", "9901001"},
		{"no-slashes", "no-slashes"},
		{"trailing/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ExtractAnchor(tt.id); got != tt.want {
				t.Errorf("ExtractAnchor(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestAssembleEmptyState(t *testing.T) {
	date := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)
	report := Assemble(nil, date)

	assert.True(t, report.NoMatches)
	assert.Empty(t, report.Entries)
	assert.Equal(t, date, report.Date)
}

func TestAssembleEntries(t *testing.T) {
	published := time.Date(2024, 9, 16, 0, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	ranked := []types.ScoredRecord{
		{
			Record: types.Record{
				ID:              "http://arxiv.org/abs/2409.12345v2",
				Title:           "On $\\mathcal{N}=4$ duality",
				Summary:         "We prove <b>things</b>.",
				URL:             "https://arxiv.org/abs/2409.12345",
				PublishedAt:     published,
				Authors:         []string{"Alice", "Bob"},
				MatchedKeywords: []string{"AQFT", "duality"},
			},
			AuthorProfiles: []types.AuthorProfile{
				{Name: "Alice", HIndex: 12, CitationCount: 900, PaperCount: 40, ProfileURL: "https://s2/alice"},
				{Name: "Bob", HIndex: 55, CitationCount: 12000, PaperCount: 210, ProfileURL: "#"},
			},
			RankScore: 55,
		},
		{
			Record:    types.Record{ID: "oai:arXiv.org:2409.00001v1", Title: "No authors", MatchedKeywords: []string{"MERA"}},
			RankScore: 0,
		},
	}

	report := Assemble(ranked, time.Now())
	assert.False(t, report.NoMatches)
	require.Len(t, report.Entries, 2)

	e := report.Entries[0]
	assert.Equal(t, "2409.12345v2", e.Anchor)
	assert.Equal(t, ranked[0].Title, e.Title)
	assert.Equal(t, ranked[0].Summary, e.Summary)
	assert.Equal(t, 55, e.RankScore)
	assert.Equal(t, 4, e.Tier)
	assert.Equal(t, "Top researcher", e.TierLabel)
	assert.Equal(t, "🏅", e.TierEmoji)
	assert.Equal(t, "AQFT • duality", e.Keywords)
	assert.Equal(t, []string{"AQFT", "duality"}, e.KeywordsList)
	assert.Equal(t, "2024-09-16 00:00", e.Published, "display keeps the feed's offset")
	require.Len(t, e.Authors, 2)
	assert.Equal(t, types.AuthorRow{Name: "Alice", HIndex: 12, CitationCount: 900, PaperCount: 40, ProfileURL: "https://s2/alice"}, e.Authors[0])
	assert.Equal(t, "Bob", e.Authors[1].Name)

	e = report.Entries[1]
	assert.Equal(t, "oai:arXiv.org:2409.00001v1", e.Anchor)
	assert.Equal(t, 1, e.Tier)
	assert.Empty(t, e.Published)
	assert.Empty(t, e.Authors)
}
