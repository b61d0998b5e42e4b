// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrNoProfile is returned by a Lookup when the bibliometric service has no
// profile for a name. The scorer treats it as an ordinary absence.
var ErrNoProfile = errors.New("no author profile")

// Lookup resolves one author name to a bibliometric profile. Any error
// means "absent"; the scorer never retries.
type Lookup interface {
	Lookup(ctx context.Context, name string) (types.AuthorProfile, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, name string) (types.AuthorProfile, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, name string) (types.AuthorProfile, error) {
	return f(ctx, name)
}

// ScoreStats counts scoring outcomes across a batch.
type ScoreStats struct {
	Scored         int
	RecordsFailed  int
	LookupFailures int
}

// Scorer enriches matched records with author profiles and a rank score.
type Scorer struct {
	lookup      Lookup
	concurrency int
	w           io.Writer
}

// NewScorer returns a scorer that issues at most concurrency lookups at a
// time for one record. Concurrency below 1 means sequential lookups.
func NewScorer(lookup Lookup, concurrency int, w io.Writer) *Scorer {
	if concurrency < 1 {
		concurrency = 1
	}
	if w == nil {
		w = io.Discard
	}
	return &Scorer{lookup: lookup, concurrency: concurrency, w: w}
}

// ScoreAll scores each record in order. A record that faults is skipped and
// reported on the writer; the rest of the batch continues. The only error
// returned is context cancellation.
func (s *Scorer) ScoreAll(ctx context.Context, records []types.Record) ([]types.ScoredRecord, ScoreStats, error) {
	var stats ScoreStats
	scored := make([]types.ScoredRecord, 0, len(records))

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return scored, stats, err
		}
		fmt.Fprintf(s.w, "scoring [%d/%d]: %s\n", i+1, len(records), truncate(r.Title, 50))

		sr, failures, err := s.Score(ctx, r)
		stats.LookupFailures += failures
		if err != nil {
			fmt.Fprintf(s.w, "failed:  %s (%v)\n", r.ID, err)
			stats.RecordsFailed++
			continue
		}
		stats.Scored++
		scored = append(scored, sr)
	}
	return scored, stats, nil
}

// Score looks up every author of r and derives its rank score. Lookups
// that fail are left out of AuthorProfiles; failures counts those that
// failed for a reason other than ErrNoProfile. A non-nil error means the
// record itself could not be scored and must be skipped.
func (s *Scorer) Score(ctx context.Context, r types.Record) (sr types.ScoredRecord, failures int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scoring %s: %v", r.ID, p)
		}
	}()

	results := s.resolveAll(ctx, r.Authors)

	profiles := make([]types.AuthorProfile, 0, len(r.Authors))
	for i, res := range results {
		if res.fault != nil {
			return types.ScoredRecord{}, failures, res.fault
		}
		if res.err != nil {
			if errors.Is(res.err, ErrNoProfile) {
				fmt.Fprintf(s.w, "  no profile: %s\n", r.Authors[i])
			} else {
				fmt.Fprintf(s.w, "  warning: lookup failed for %s: %v\n", r.Authors[i], res.err)
				failures++
			}
			continue
		}
		profiles = append(profiles, sanitizeProfile(r.Authors[i], res.profile))
	}

	return types.ScoredRecord{
		Record:         r,
		AuthorProfiles: profiles,
		RankScore:      RankScore(profiles),
	}, failures, nil
}

// RankScore is the highest h-index among profiles, or 0.
func RankScore(profiles []types.AuthorProfile) int {
	best := 0
	for _, p := range profiles {
		if p.HIndex > best {
			best = p.HIndex
		}
	}
	return best
}

type lookupResult struct {
	profile types.AuthorProfile
	err     error
	// fault is set when the lookup panicked; it fails the whole record.
	fault error
}

// resolveAll returns one result per name, indexed like names. With
// concurrency > 1 lookups run in parallel but results keep name order, and
// one failure never cancels the others.
func (s *Scorer) resolveAll(ctx context.Context, names []string) []lookupResult {
	results := make([]lookupResult, len(names))
	if s.concurrency == 1 || len(names) < 2 {
		for i, name := range names {
			results[i] = s.resolve(ctx, name)
		}
		return results
	}

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.resolve(ctx, name)
		}(i, name)
	}
	wg.Wait()
	return results
}

func (s *Scorer) resolve(ctx context.Context, name string) (res lookupResult) {
	defer func() {
		if p := recover(); p != nil {
			res = lookupResult{fault: fmt.Errorf("lookup %q panicked: %v", name, p)}
		}
	}()
	profile, err := s.lookup.Lookup(ctx, name)
	return lookupResult{profile: profile, err: err}
}

// sanitizeProfile keys the profile by the record's author name and applies
// the defaults for missing data.
func sanitizeProfile(name string, p types.AuthorProfile) types.AuthorProfile {
	p.Name = name
	p.HIndex = max(p.HIndex, 0)
	p.CitationCount = max(p.CitationCount, 0)
	p.PaperCount = max(p.PaperCount, 0)
	if p.ProfileURL == "" {
		p.ProfileURL = types.DefaultProfileURL
	}
	return p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
