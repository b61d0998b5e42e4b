// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache", "scholar.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	_, _, hit, err := c.Get(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, hit)

	want := types.AuthorProfile{Name: "Alice", HIndex: 12, CitationCount: 900, PaperCount: 40, ProfileURL: "https://s2/alice"}
	require.NoError(t, c.Put(ctx, "Alice", want, true))

	got, found, hit, err := c.Get(ctx, "Alice")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestCacheExpiry(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()
	start := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }

	require.NoError(t, c.Put(ctx, "Old", types.AuthorProfile{HIndex: 1}, true))
	c.now = func() time.Time { return start.Add(50 * time.Minute) }
	require.NoError(t, c.Put(ctx, "New", types.AuthorProfile{HIndex: 2}, true))

	c.now = func() time.Time { return start.Add(90 * time.Minute) }
	_, _, hit, err := c.Get(ctx, "Old")
	require.NoError(t, err)
	assert.False(t, hit, "entry older than the TTL is a miss")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, CacheStats{Entries: 2, Expired: 1}, stats)

	removed, err := c.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, _, hit, err = c.Get(ctx, "New")
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCacheCutoffWithinSecond(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()
	start := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)

	c.now = func() time.Time { return start }
	require.NoError(t, c.Put(ctx, "Whole", types.AuthorProfile{HIndex: 1}, true))
	c.now = func() time.Time { return start.Add(500 * time.Millisecond) }
	require.NoError(t, c.Put(ctx, "Fraction", types.AuthorProfile{HIndex: 2}, true))

	c.now = func() time.Time { return start.Add(time.Hour + 250*time.Millisecond) }
	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, CacheStats{Entries: 2, Expired: 1}, stats)

	removed, err := c.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, _, hit, err := c.Get(ctx, "Fraction")
	require.NoError(t, err)
	assert.True(t, hit)
	_, _, hit, err = c.Get(ctx, "Whole")
	require.NoError(t, err)
	assert.False(t, hit)
}

type countingLookup struct {
	calls int
	fn    func(name string) (types.AuthorProfile, error)
}

func (l *countingLookup) Lookup(_ context.Context, name string) (types.AuthorProfile, error) {
	l.calls++
	return l.fn(name)
}

func TestCachedLookup(t *testing.T) {
	ctx := context.Background()
	next := &countingLookup{fn: func(name string) (types.AuthorProfile, error) {
		switch name {
		case "Alice":
			return types.AuthorProfile{Name: "Alice", HIndex: 12, ProfileURL: "#"}, nil
		case "Flaky":
			return types.AuthorProfile{}, errors.New("HTTP 500")
		default:
			return types.AuthorProfile{}, digest.ErrNoProfile
		}
	}}
	l := CachedLookup{Cache: openTestCache(t, time.Hour), Next: next}

	for range 2 {
		p, err := l.Lookup(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, 12, p.HIndex)
	}
	assert.Equal(t, 1, next.calls, "second lookup served from cache")

	for range 2 {
		_, err := l.Lookup(ctx, "Nobody")
		assert.ErrorIs(t, err, digest.ErrNoProfile)
	}
	assert.Equal(t, 2, next.calls, "no-profile answers are cached")

	for range 2 {
		_, err := l.Lookup(ctx, "Flaky")
		require.Error(t, err)
		assert.NotErrorIs(t, err, digest.ErrNoProfile)
	}
	assert.Equal(t, 4, next.calls, "transport errors are never cached")

	stats, err := l.Cache.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.Negative)
}
