// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var testKeywords = []string{"AQFT", "conformal bootstrap", "duality", "Yang Mills", "MERA"}

func TestMatcherMatch(t *testing.T) {
	m := NewMatcher(testKeywords)

	tests := []struct {
		name    string
		title   string
		summary string
		want    []string
	}{
		{"no hit", "Black holes", "Nothing relevant here.", nil},
		{"title hit", "Duality in gauge theory", "abstract", []string{"duality"}},
		{"summary hit", "A paper", "We study the conformal bootstrap.", []string{"conformal bootstrap"}},
		{"case insensitive", "aqft revisited", "", []string{"AQFT"}},
		{"substring not token", "Self-dualityness", "", []string{"duality"}},
		{"hit in both fields counted once", "MERA networks", "we use MERA", []string{"MERA"}},
		{"profile order kept", "MERA and Yang Mills", "duality and AQFT", []string{"AQFT", "duality", "Yang Mills", "MERA"}},
		{"phrase split across fields misses", "conformal", "bootstrap", nil},
		{"markup does not hide hit", "<i>Yang Mills</i>", "", []string{"Yang Mills"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(types.Record{Title: tt.title, Summary: tt.summary})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcherDuplicateKeywordsCountOnce(t *testing.T) {
	m := NewMatcher([]string{"duality", "MERA", "duality"})
	got := m.Match(types.Record{Title: "duality", Summary: "MERA"})
	assert.Equal(t, []string{"duality", "MERA"}, got)
}

func TestMatcherFilter(t *testing.T) {
	m := NewMatcher(testKeywords)
	records := []types.Record{
		{ID: "1", Title: "Unrelated", Summary: "nothing"},
		{ID: "2", Title: "Duality", Summary: "x"},
		{ID: "3", Title: "Other", Summary: "nothing"},
		{ID: "4", Title: "MERA", Summary: "AQFT"},
	}

	matched := m.Filter(records)
	require.Len(t, matched, 2)
	assert.Equal(t, "2", matched[0].ID)
	assert.Equal(t, []string{"duality"}, matched[0].MatchedKeywords)
	assert.Equal(t, "4", matched[1].ID)
	assert.Equal(t, []string{"AQFT", "MERA"}, matched[1].MatchedKeywords)

	assert.Empty(t, records[1].MatchedKeywords, "Filter must not modify its input")
}

// Every record is in the matched subset exactly when some keyword is a
// case-insensitive substring of its title or summary.
func TestMatcherFilterExclusivity(t *testing.T) {
	m := NewMatcher(testKeywords)
	records := []types.Record{
		{ID: "1", Title: "yang mills mass gap", Summary: ""},
		{ID: "2", Title: "Yang-Mills", Summary: "hyphen breaks the phrase"},
		{ID: "3", Title: "", Summary: "CONFORMAL BOOTSTRAP"},
		{ID: "4", Title: "camera", Summary: "no keyword here"},
	}

	matched := m.Filter(records)
	ids := make([]string, len(matched))
	for i, r := range matched {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids, "camera contains mera as a substring")
}
