// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

// withServer points authorSearchBase at a test server for one test.
func withServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := authorSearchBase
	authorSearchBase = ts.URL
	t.Cleanup(func() {
		authorSearchBase = old
		ts.Close()
	})
	return ts
}

func testConfig() types.ScholarConfig {
	return types.ScholarConfig{HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "arxiv-digest-test/1.0"}}
}

func TestLookupRequest(t *testing.T) {
	var captured *http.Request
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"total":1,"data":[{"authorId":"1","name":"Juan Maldacena","hIndex":98,"citationCount":60000,"paperCount":190,"url":"https://www.semanticscholar.org/author/1"}]}`)
	})

	cfg := testConfig()
	cfg.APIKey = "secret"
	p, err := NewClient(cfg, nil).Lookup(context.Background(), "Juan Maldacena")
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "Juan Maldacena", q.Get("query"))
	assert.Equal(t, authorFields, q.Get("fields"))
	assert.Equal(t, "secret", captured.Header.Get("x-api-key"))
	assert.Equal(t, "arxiv-digest-test/1.0", captured.Header.Get("User-Agent"))

	assert.Equal(t, types.AuthorProfile{
		Name:          "Juan Maldacena",
		HIndex:        98,
		CitationCount: 60000,
		PaperCount:    190,
		ProfileURL:    "https://www.semanticscholar.org/author/1",
	}, p)
}

func TestLookupNoAPIKeyHeader(t *testing.T) {
	var captured *http.Request
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"data":[{"hIndex":1}]}`)
	})

	_, err := NewClient(testConfig(), nil).Lookup(context.Background(), "A")
	require.NoError(t, err)
	assert.Empty(t, captured.Header.Get("x-api-key"))
}

func TestLookupFirstResultWins(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"name":"X. Chen","hIndex":4},{"name":"Xi Chen","hIndex":80}]}`)
	})

	p, err := NewClient(testConfig(), nil).Lookup(context.Background(), "X. Chen")
	require.NoError(t, err)
	assert.Equal(t, 4, p.HIndex)
}

func TestLookupMissingFields(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"name":"Someone","hIndex":null}]}`)
	})

	p, err := NewClient(testConfig(), nil).Lookup(context.Background(), "Someone")
	require.NoError(t, err)
	assert.Zero(t, p.HIndex)
	assert.Zero(t, p.CitationCount)
	assert.Zero(t, p.PaperCount)
	assert.Equal(t, types.DefaultProfileURL, p.ProfileURL)
}

func TestLookupNoResults(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":0,"data":[]}`)
	})

	_, err := NewClient(testConfig(), nil).Lookup(context.Background(), "Nobody")
	assert.ErrorIs(t, err, digest.ErrNoProfile)
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{not json`)
		}},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withServer(t, tt.handler)
			cfg := testConfig()
			cfg.MaxRetries = 1

			_, err := NewClient(cfg, nil).Lookup(context.Background(), "A")
			require.Error(t, err)
			assert.NotErrorIs(t, err, digest.ErrNoProfile)
		})
	}
}

func TestLookupRetriesRateLimit(t *testing.T) {
	calls := 0
	withServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"data":[{"hIndex":9}]}`)
	})

	p, err := NewClient(testConfig(), nil).Lookup(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 9, p.HIndex)
	assert.Equal(t, 2, calls)
}
