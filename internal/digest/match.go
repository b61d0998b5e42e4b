// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Matcher tests records against an ordered keyword list. Matching is a
// case-insensitive substring search over title and summary; there is no
// word-boundary logic, so multi-word phrases and fragments both match.
type Matcher struct {
	keywords []string
	lowered  []string
}

// NewMatcher prepares a matcher for the given keywords.
func NewMatcher(keywords []string) *Matcher {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &Matcher{keywords: keywords, lowered: lowered}
}

// Match returns the keywords that hit title or summary, in keyword order,
// each at most once.
func (m *Matcher) Match(r types.Record) []string {
	title := strings.ToLower(r.Title)
	summary := strings.ToLower(r.Summary)

	var hits []string
	seen := make(map[string]struct{})
	for i, kw := range m.lowered {
		if kw == "" {
			continue
		}
		if !strings.Contains(title, kw) && !strings.Contains(summary, kw) {
			continue
		}
		if _, dup := seen[m.keywords[i]]; dup {
			continue
		}
		seen[m.keywords[i]] = struct{}{}
		hits = append(hits, m.keywords[i])
	}
	return hits
}

// Filter returns copies of the records with at least one hit, with
// MatchedKeywords set. Records without hits are dropped; input order is
// preserved.
func (m *Matcher) Filter(records []types.Record) []types.Record {
	var matched []types.Record
	for _, r := range records {
		hits := m.Match(r)
		if len(hits) == 0 {
			continue
		}
		r.MatchedKeywords = hits
		matched = append(matched, r)
	}
	return matched
}
