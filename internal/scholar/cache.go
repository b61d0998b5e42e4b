// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// timeLayout is fixed width so fetched_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Cache stores author lookups in SQLite. Entries older than the TTL are
// ignored and removed by Prune. "No profile" answers are cached too, so a
// missing author is not searched again on the next run.
type Cache struct {
	db  *sql.DB
	ttl time.Duration

	// now is overridden in tests.
	now func() time.Time
}

// CacheStats describes the cache contents.
type CacheStats struct {
	Entries  int
	Negative int
	Expired  int
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	c := &Cache{db: db, ttl: ttl, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS author_profiles (
			name TEXT PRIMARY KEY,
			h_index INTEGER NOT NULL DEFAULT 0,
			citation_count INTEGER NOT NULL DEFAULT 0,
			paper_count INTEGER NOT NULL DEFAULT 0,
			profile_url TEXT NOT NULL DEFAULT '#',
			found INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_author_profiles_fetched_at ON author_profiles(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the cached answer for name. hit is false when nothing fresh
// is stored; found is false for a cached "no profile" answer.
func (c *Cache) Get(ctx context.Context, name string) (p types.AuthorProfile, found, hit bool, err error) {
	var (
		foundInt  int
		fetchedAt string
	)
	err = c.db.QueryRowContext(ctx,
		`SELECT h_index, citation_count, paper_count, profile_url, found, fetched_at
		 FROM author_profiles WHERE name = ?`, name,
	).Scan(&p.HIndex, &p.CitationCount, &p.PaperCount, &p.ProfileURL, &foundInt, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.AuthorProfile{}, false, false, nil
	}
	if err != nil {
		return types.AuthorProfile{}, false, false, fmt.Errorf("reading cache for %s: %w", name, err)
	}

	ts, err := time.Parse(timeLayout, fetchedAt)
	if err != nil || c.expired(ts) {
		return types.AuthorProfile{}, false, false, nil
	}
	p.Name = name
	return p, foundInt == 1, true, nil
}

// Put stores a lookup answer. found=false records a "no profile" answer.
func (c *Cache) Put(ctx context.Context, name string, p types.AuthorProfile, found bool) error {
	foundInt := 0
	if found {
		foundInt = 1
	}
	url := p.ProfileURL
	if url == "" {
		url = types.DefaultProfileURL
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO author_profiles (name, h_index, citation_count, paper_count, profile_url, found, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			h_index = excluded.h_index,
			citation_count = excluded.citation_count,
			paper_count = excluded.paper_count,
			profile_url = excluded.profile_url,
			found = excluded.found,
			fetched_at = excluded.fetched_at`,
		name, p.HIndex, p.CitationCount, p.PaperCount, url, foundInt,
		c.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("writing cache for %s: %w", name, err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).UTC().Format(timeLayout)
	res, err := c.db.ExecContext(ctx, `DELETE FROM author_profiles WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats counts entries, negative entries, and expired entries.
func (c *Cache) Stats(ctx context.Context) (CacheStats, error) {
	var s CacheStats
	cutoff := "0000"
	if c.ttl > 0 {
		cutoff = c.now().Add(-c.ttl).UTC().Format(timeLayout)
	}
	err := c.db.QueryRowContext(ctx,
		`SELECT count(*),
			coalesce(sum(CASE WHEN found = 0 THEN 1 ELSE 0 END), 0),
			coalesce(sum(CASE WHEN fetched_at < ? THEN 1 ELSE 0 END), 0)
		 FROM author_profiles`, cutoff,
	).Scan(&s.Entries, &s.Negative, &s.Expired)
	if err != nil {
		return CacheStats{}, fmt.Errorf("reading cache stats: %w", err)
	}
	return s, nil
}

func (c *Cache) expired(fetchedAt time.Time) bool {
	return c.ttl > 0 && c.now().Sub(fetchedAt) > c.ttl
}

// CachedLookup answers from the cache when it can and falls through to
// Next otherwise. Profiles and "no profile" answers are stored; transport
// errors are not. A broken cache never fails a lookup.
type CachedLookup struct {
	Cache *Cache
	Next  digest.Lookup
}

// Lookup implements digest.Lookup.
func (l CachedLookup) Lookup(ctx context.Context, name string) (types.AuthorProfile, error) {
	if p, found, hit, err := l.Cache.Get(ctx, name); err == nil && hit {
		if !found {
			return types.AuthorProfile{}, fmt.Errorf("%w: %s (cached)", digest.ErrNoProfile, name)
		}
		return p, nil
	}

	p, err := l.Next.Lookup(ctx, name)
	switch {
	case err == nil:
		_ = l.Cache.Put(ctx, name, p, true)
	case errors.Is(err, digest.ErrNoProfile):
		_ = l.Cache.Put(ctx, name, types.AuthorProfile{}, false)
	}
	return p, err
}
