// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"sort"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Rank orders records by RankScore, highest first. Records with equal
// scores keep their input order; no secondary key is applied. The input
// slice is not modified.
func Rank(records []types.ScoredRecord) []types.ScoredRecord {
	ranked := make([]types.ScoredRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankScore > ranked[j].RankScore
	})
	return ranked
}
