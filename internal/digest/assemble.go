// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	// PublishedLayout is the display format for publication times.
	PublishedLayout = "2006-01-02 15:04"

	// KeywordSeparator joins matched keywords for display.
	KeywordSeparator = " • "
)

// arxivAbsPattern captures a new-style arXiv ID with optional version from
// an abstract URL. The match is unanchored.
var arxivAbsPattern = regexp.MustCompile(`arxiv\.org/abs/(\d{4}\.\d{4,5}(?:v\d+)?)`)

// ExtractAnchor derives the in-document anchor for a record ID: the arXiv
// ID when id contains "arxiv.org/abs/<YYYY>.<NNNN[N]>[vK]", otherwise the
// last "/"-separated segment of id.
func ExtractAnchor(id string) string {
	if m := arxivAbsPattern.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return id[strings.LastIndex(id, "/")+1:]
}

// Assemble maps ranked records to the report structure consumed by the
// renderers. With no records the report carries the NoMatches marker.
func Assemble(ranked []types.ScoredRecord, date time.Time) types.Report {
	report := types.Report{Date: date}
	if len(ranked) == 0 {
		report.NoMatches = true
		return report
	}

	report.Entries = make([]types.ReportEntry, 0, len(ranked))
	for _, sr := range ranked {
		report.Entries = append(report.Entries, assembleEntry(sr))
	}
	return report
}

func assembleEntry(sr types.ScoredRecord) types.ReportEntry {
	tier := TierFor(sr.RankScore)

	entry := types.ReportEntry{
		Anchor:       ExtractAnchor(sr.ID),
		ID:           sr.ID,
		Title:        sr.Title,
		URL:          sr.URL,
		Summary:      sr.Summary,
		RankScore:    sr.RankScore,
		Tier:         int(tier),
		TierLabel:    tier.Label(),
		TierEmoji:    tier.Emoji(),
		TierClass:    tier.Class(),
		Keywords:     strings.Join(sr.MatchedKeywords, KeywordSeparator),
		KeywordsList: append([]string(nil), sr.MatchedKeywords...),
		Authors:      make([]types.AuthorRow, 0, len(sr.AuthorProfiles)),
	}
	if !sr.PublishedAt.IsZero() {
		entry.Published = sr.PublishedAt.Format(PublishedLayout)
	}
	for _, p := range sr.AuthorProfiles {
		entry.Authors = append(entry.Authors, types.AuthorRow{
			Name:          p.Name,
			HIndex:        p.HIndex,
			CitationCount: p.CitationCount,
			PaperCount:    p.PaperCount,
			ProfileURL:    p.ProfileURL,
		})
	}
	return entry
}
