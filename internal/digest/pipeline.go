// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrNoEntries is returned when not a single feed source could be read.
var ErrNoEntries = errors.New("no feed source could be read")

// Supplier yields the raw entries of one feed source.
type Supplier interface {
	Fetch(ctx context.Context, source string) ([]types.RawEntry, error)
}

// Pipeline runs one fetch cycle from feed sources to an assembled report.
type Pipeline struct {
	Supplier Supplier
	Lookup   Lookup
	Profile  types.Profile

	// Concurrency bounds parallel author lookups per record (default 1).
	Concurrency int

	// SourceDelay is the pause between consecutive feed sources.
	SourceDelay time.Duration

	// Now supplies the report date; defaults to time.Now.
	Now func() time.Time

	// Out receives progress lines and diagnostics.
	Out io.Writer
}

// Run fetches every source, normalizes, deduplicates, matches, scores,
// ranks, and assembles the report. Failures of single sources, entries,
// authors, or records are reported on Out and counted in the report stats;
// Run fails only when the profile is invalid, when every source failed, or
// when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) (types.Report, error) {
	w := p.Out
	if w == nil {
		w = io.Discard
	}
	if err := p.Profile.Validate(); err != nil {
		return types.Report{}, fmt.Errorf("invalid profile: %w", err)
	}

	var stats types.RunStats
	raw, err := p.collect(ctx, w, &stats)
	if err != nil {
		return types.Report{}, err
	}

	records := make([]types.Record, 0, len(raw))
	for _, e := range raw {
		r, err := Normalize(e)
		if err != nil {
			fmt.Fprintf(w, "skipped: %v\n", err)
			stats.Malformed++
			continue
		}
		records = append(records, r)
	}

	unique, removed := Deduplicate(records)
	stats.Duplicates = removed
	stats.Unique = len(unique)
	fmt.Fprintf(w, "found %d unique papers (%d duplicates removed), filtering by %d keywords\n",
		len(unique), removed, len(p.Profile.Keywords))

	matched := NewMatcher(p.Profile.Keywords).Filter(unique)
	stats.Matched = len(matched)
	fmt.Fprintf(w, "  -> %d relevant papers\n", len(matched))

	scorer := NewScorer(p.Lookup, p.Concurrency, w)
	scored, scoreStats, err := scorer.ScoreAll(ctx, matched)
	if err != nil {
		return types.Report{}, err
	}
	stats.Scored = scoreStats.Scored
	stats.RecordsFailed = scoreStats.RecordsFailed
	stats.LookupFailures = scoreStats.LookupFailures

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	report := Assemble(Rank(scored), now())
	report.RunID = uuid.NewString()
	report.Stats = stats

	fmt.Fprintf(w, "\nRun summary: %d fetched, %d malformed, %d duplicates, %d matched, %d scored, %d failed\n",
		stats.Fetched, stats.Malformed, stats.Duplicates, stats.Matched, stats.Scored, stats.RecordsFailed)
	return report, nil
}

// collect reads every source in order and concatenates their entries.
func (p *Pipeline) collect(ctx context.Context, w io.Writer, stats *types.RunStats) ([]types.RawEntry, error) {
	var all []types.RawEntry
	stats.Sources = len(p.Profile.FeedSources)

	for i, src := range p.Profile.FeedSources {
		if i > 0 && p.SourceDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.SourceDelay):
			}
		}
		fmt.Fprintf(w, "fetching: %s\n", src)
		entries, err := p.Supplier.Fetch(ctx, src)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			fmt.Fprintf(w, "warning: feed %s failed: %v\n", src, err)
			stats.SourcesFailed++
			continue
		}
		all = append(all, entries...)
	}

	if stats.Sources > 0 && stats.SourcesFailed == stats.Sources {
		return nil, fmt.Errorf("%w: all %d sources failed", ErrNoEntries, stats.Sources)
	}
	stats.Fetched = len(all)
	return all, nil
}
