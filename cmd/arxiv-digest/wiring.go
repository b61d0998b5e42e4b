// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/archive"
	"github.com/pdiddy/arxiv-digest/internal/cycle"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/feed"
	"github.com/pdiddy/arxiv-digest/internal/notify"
	"github.com/pdiddy/arxiv-digest/internal/scholar"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// buildCycle wires the production stages for cfg. The returned close
// function releases the profile cache.
func buildCycle(ctx context.Context, cfg types.DigestConfig, mail bool, w io.Writer) (*cycle.Cycle, func(), error) {
	var lookup digest.Lookup = scholar.NewClient(cfg.Scholar, w)
	closer := func() {}

	if cfg.Scholar.CachePath != "" {
		cache, err := scholar.OpenCache(cfg.Scholar.CachePath, cfg.Scholar.CacheTTL)
		if err != nil {
			return nil, closer, err
		}
		lookup = scholar.CachedLookup{Cache: cache, Next: lookup}
		closer = func() { cache.Close() }
	}

	c := &cycle.Cycle{
		Pipeline: &digest.Pipeline{
			Supplier:    feed.NewFetcher(cfg.Feed, w),
			Lookup:      lookup,
			Profile:     cfg.Profile,
			Concurrency: cfg.Scholar.Concurrency,
			SourceDelay: cfg.Feed.SourceDelay,
			Out:         w,
		},
		Report: cfg.Report,
		Repo:   archive.NewRepo("."),
		Out:    w,
	}
	if cfg.Gist.Enabled {
		c.Gist = archive.NewGistPublisher(ctx, cfg.Gist.Token, cfg.Gist.Public)
	}
	if mail {
		c.Mailer = notify.NewMailer(cfg.Mail, w)
	}
	return c, closer, nil
}

// deliveryError turns delivery failures into an exit error under --strict.
func deliveryError(res cycle.Result, strict bool) error {
	if !strict || !res.DeliveryFailed() {
		return nil
	}
	return fmt.Errorf("%d delivery step(s) failed", len(res.DeliveryErrors))
}

// warnFailures prints a closing line when the run skipped anything.
func warnFailures(res cycle.Result, w io.Writer) {
	s := res.Report.Stats
	if !s.HasFailures() {
		return
	}
	fmt.Fprintf(w, "warning: run finished with failures (sources %d, malformed %d, records %d, lookups %d)\n",
		s.SourcesFailed, s.Malformed, s.RecordsFailed, s.LookupFailures)
}

// clockIn returns a clock reading the current time in loc, so the report
// date and archive path follow the schedule's zone.
func clockIn(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}
