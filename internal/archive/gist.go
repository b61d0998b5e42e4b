// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// gistTimeout bounds one gist upload.
const gistTimeout = 30 * time.Second

// GistPublisher uploads a report as a GitHub gist.
type GistPublisher struct {
	gh     *gh.Client
	public bool
}

// NewGistPublisher returns a publisher authenticated with token.
func NewGistPublisher(ctx context.Context, token string, public bool) *GistPublisher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = gistTimeout
	return &GistPublisher{gh: gh.NewClient(tc), public: public}
}

// newGistPublisherWithClient is used by tests to point at a fake API.
func newGistPublisherWithClient(client *http.Client, baseURL string, public bool) (*GistPublisher, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, err
	}
	c := gh.NewClient(client)
	c.BaseURL = u
	return &GistPublisher{gh: c, public: public}, nil
}

// Publish creates a gist holding content under filename and returns its
// HTML URL.
func (p *GistPublisher) Publish(ctx context.Context, filename, description string, content []byte) (string, error) {
	gist := &gh.Gist{
		Description: gh.Ptr(description),
		Public:      gh.Ptr(p.public),
		Files: map[gh.GistFilename]gh.GistFile{
			gh.GistFilename(filename): {Content: gh.Ptr(string(content))},
		},
	}

	created, _, err := p.gh.Gists.Create(ctx, gist)
	if err != nil {
		var rateErr *gh.RateLimitError
		if errors.As(err, &rateErr) {
			return "", fmt.Errorf("gist rate limited until %v: %w", rateErr.Rate.Reset.Time, err)
		}
		return "", fmt.Errorf("creating gist: %w", err)
	}
	htmlURL := created.GetHTMLURL()
	if htmlURL == "" {
		return "", errors.New("creating gist: response has no html_url")
	}
	return htmlURL, nil
}
