// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestFormatTableNoMatches(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(types.Report{NoMatches: true}, &buf)
	assert.Equal(t, "No papers matched the interest profile.\n", buf.String())
}

func TestFormatTable(t *testing.T) {
	report := types.Report{
		Entries: []types.ReportEntry{
			{Anchor: "2409.00003", Title: "MERA networks", RankScore: 55, TierEmoji: "🏅",
				Authors: []types.AuthorRow{{Name: "Bob"}, {Name: "Carol"}}},
			{Anchor: "2409.00001", Title: strings.Repeat("long title ", 10), RankScore: 12, TierEmoji: "🔵",
				Authors: []types.AuthorRow{{Name: "Alice"}}},
		},
		Stats: types.RunStats{Duplicates: 1},
	}

	var buf bytes.Buffer
	FormatTable(report, &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "Rank")
	assert.Contains(t, lines[2], "MERA networks")
	assert.Contains(t, lines[2], "Bob et al.")
	assert.Contains(t, lines[3], "...")
	assert.Contains(t, lines[3], "Alice")
	assert.Contains(t, out, "2 papers (1 duplicates removed)")
}

func TestFormatJSON(t *testing.T) {
	report := types.Report{RunID: "abc", Entries: []types.ReportEntry{{Anchor: "x", RankScore: 7}}}

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(report, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "abc", decoded["run_id"])
	entries := decoded["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(7), entries[0].(map[string]any)["rank_score"])
}
