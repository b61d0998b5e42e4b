// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// raw feed entries, normalized records, author profiles, scored records, the
// assembled report, and the configuration for every stage.
package types

import "time"

// RawEntry is one item exactly as the feed supplier delivered it. The
// pipeline never mutates it.
type RawEntry struct {
	// ID is the supplier's stable identifier (RSS guid or Atom id).
	ID string `json:"id" yaml:"id"`

	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Link    string `json:"link" yaml:"link"`

	// Published is the raw publication timestamp string.
	Published string `json:"published" yaml:"published"`

	// PublishedParsed is set when the supplier could parse Published.
	PublishedParsed *time.Time `json:"published_parsed,omitempty" yaml:"published_parsed,omitempty"`

	// Authors is the supplier's structured author list. Nil means the
	// supplier exposed no structured author data at all.
	Authors []RawAuthor `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Source is the feed URL the entry came from.
	Source string `json:"source" yaml:"source"`
}

// RawAuthor is one structured author element. arXiv feeds put every author
// into a single comma-separated Name.
type RawAuthor struct {
	Name string `json:"name" yaml:"name"`
}

// Record is a normalized feed entry. Created once per unique ID.
type Record struct {
	// ID is the dedup key; never empty.
	ID string `json:"id" yaml:"id"`

	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
	Title       string    `json:"title" yaml:"title"`

	// Summary is carried byte-for-byte, markup and TeX included.
	Summary string `json:"summary" yaml:"summary"`

	URL string `json:"url" yaml:"url"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// MatchedKeywords holds the profile keywords that hit, in profile order.
	// Empty until the keyword matcher has run.
	MatchedKeywords []string `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`

	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// DefaultProfileURL is used when the bibliometric service returns no URL.
const DefaultProfileURL = "#"

// AuthorProfile holds bibliometric signals for one author name.
type AuthorProfile struct {
	Name          string `json:"name" yaml:"name"`
	HIndex        int    `json:"h_index" yaml:"h_index"`
	CitationCount int    `json:"citation_count" yaml:"citation_count"`
	PaperCount    int    `json:"paper_count" yaml:"paper_count"`
	ProfileURL    string `json:"profile_url" yaml:"profile_url"`
}

// ScoredRecord is a matched Record enriched with author profiles and its
// rank score.
type ScoredRecord struct {
	Record `yaml:",inline"`

	// AuthorProfiles follows Authors order; authors whose lookup failed
	// are omitted.
	AuthorProfiles []AuthorProfile `json:"author_profiles" yaml:"author_profiles"`

	// RankScore is the maximum HIndex over AuthorProfiles, 0 when empty.
	RankScore int `json:"rank_score" yaml:"rank_score"`
}
