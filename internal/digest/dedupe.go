// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import "github.com/pdiddy/arxiv-digest/pkg/types"

// Deduplicate keeps the first record seen for every ID, in the order the
// IDs were first seen. Later records with the same ID are dropped without
// merging any of their fields. It returns the unique records and the
// number removed.
func Deduplicate(records []types.Record) ([]types.Record, int) {
	seen := make(map[string]struct{}, len(records))
	deduped := make([]types.Record, 0, len(records))
	removed := 0

	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			removed++
			continue
		}
		seen[r.ID] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped, removed
}
