// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func scored(id string, score int) types.ScoredRecord {
	return types.ScoredRecord{Record: types.Record{ID: id}, RankScore: score}
}

func ids(records []types.ScoredRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestRankDescending(t *testing.T) {
	in := []types.ScoredRecord{scored("a", 3), scored("b", 120), scored("c", 40)}
	assert.Equal(t, []string{"b", "c", "a"}, ids(Rank(in)))
}

func TestRankStableOnTies(t *testing.T) {
	in := []types.ScoredRecord{
		scored("first-zero", 0),
		scored("first-ten", 10),
		scored("second-zero", 0),
		scored("second-ten", 10),
		scored("third-zero", 0),
	}
	assert.Equal(t,
		[]string{"first-ten", "second-ten", "first-zero", "second-zero", "third-zero"},
		ids(Rank(in)))
}

func TestRankDoesNotModifyInput(t *testing.T) {
	in := []types.ScoredRecord{scored("a", 1), scored("b", 2)}
	_ = Rank(in)
	assert.Equal(t, []string{"a", "b"}, ids(in))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
