// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Report is the ordered, render-ready result of one digest run.
type Report struct {
	// RunID identifies the run that produced the report.
	RunID string `json:"run_id" yaml:"run_id"`

	// Date is the report date; persisted paths are derived from it.
	Date time.Time `json:"date" yaml:"date"`

	// NoMatches is the empty-state marker: set when no record matched the
	// interest profile. Entries is empty whenever NoMatches is true.
	NoMatches bool `json:"no_matches" yaml:"no_matches"`

	Entries []ReportEntry `json:"entries" yaml:"entries"`

	Stats RunStats `json:"stats" yaml:"stats"`
}

// Count returns the number of papers in the report.
func (r Report) Count() int {
	return len(r.Entries)
}

// ReportEntry is one paper as the renderer consumes it.
type ReportEntry struct {
	// Anchor is the in-document link target derived from the record ID.
	Anchor string `json:"anchor" yaml:"anchor"`

	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Summary string `json:"summary" yaml:"summary"`

	RankScore int    `json:"rank_score" yaml:"rank_score"`
	Tier      int    `json:"tier" yaml:"tier"`
	TierLabel string `json:"tier_label" yaml:"tier_label"`
	TierEmoji string `json:"tier_emoji" yaml:"tier_emoji"`
	TierClass string `json:"tier_class" yaml:"tier_class"`

	// Keywords is MatchedKeywords joined for display.
	Keywords     string   `json:"keywords" yaml:"keywords"`
	KeywordsList []string `json:"keywords_list" yaml:"keywords_list"`

	// Published is the publication time in the fixed display format, or
	// empty when the feed carried no usable timestamp.
	Published string `json:"published" yaml:"published"`

	Authors []AuthorRow `json:"authors" yaml:"authors"`
}

// AuthorRow is one line of a paper's author table.
type AuthorRow struct {
	Name          string `json:"name" yaml:"name"`
	HIndex        int    `json:"h_index" yaml:"h_index"`
	CitationCount int    `json:"citation_count" yaml:"citation_count"`
	PaperCount    int    `json:"paper_count" yaml:"paper_count"`
	ProfileURL    string `json:"profile_url" yaml:"profile_url"`
}

// RunStats counts what happened to entries as they moved through the
// pipeline.
type RunStats struct {
	Sources        int `json:"sources" yaml:"sources"`
	SourcesFailed  int `json:"sources_failed" yaml:"sources_failed"`
	Fetched        int `json:"fetched" yaml:"fetched"`
	Malformed      int `json:"malformed" yaml:"malformed"`
	Duplicates     int `json:"duplicates" yaml:"duplicates"`
	Unique         int `json:"unique" yaml:"unique"`
	Matched        int `json:"matched" yaml:"matched"`
	Scored         int `json:"scored" yaml:"scored"`
	RecordsFailed  int `json:"records_failed" yaml:"records_failed"`
	LookupFailures int `json:"lookup_failures" yaml:"lookup_failures"`
}

// HasFailures reports whether any source, entry, record, or lookup failed.
func (s RunStats) HasFailures() bool {
	return s.SourcesFailed > 0 || s.Malformed > 0 || s.RecordsFailed > 0 || s.LookupFailures > 0
}
