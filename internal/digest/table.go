// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// FormatTable writes the ranked report as a human-readable table to w.
func FormatTable(report types.Report, w io.Writer) {
	if report.NoMatches {
		fmt.Fprintln(w, "No papers matched the interest profile.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-2s  %-56s  %-20s  %s\n",
		"Rank", "Score", "", "Title", "Authors", "Anchor")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, e := range report.Entries {
		fmt.Fprintf(w, "%-4d  %-5d  %-2s  %-56s  %-20s  %s\n",
			i+1, e.RankScore, e.TierEmoji, truncate(e.Title, 53), formatAuthors(e.Authors), e.Anchor)
	}

	fmt.Fprintf(w, "\n%d papers", report.Count())
	if report.Stats.Duplicates > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", report.Stats.Duplicates)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(report types.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func formatAuthors(rows []types.AuthorRow) string {
	switch len(rows) {
	case 0:
		return ""
	case 1:
		return truncate(rows[0].Name, 17)
	default:
		return truncate(rows[0].Name, 11) + " et al."
	}
}
