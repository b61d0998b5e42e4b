// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the throttled, retrying HTTP call shared by the
// feed and scholar clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RetryBaseDelay is the first backoff step on a throttled response. Tests
// override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After value.
var MaxRetryAfter = 60 * time.Second

const defaultMaxRetries = 3

// Policy controls how Do throttles and retries one request.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt. Zero
	// selects the default (3); a negative value disables retries.
	MaxRetries int

	// Limiter, when set, is waited on before every attempt.
	Limiter *rate.Limiter

	// Log receives one line per retry. Nil discards.
	Log io.Writer
}

// Retryable reports whether status is worth another attempt: 429 and the
// transient 5xx gateway codes.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Do executes req and retries retryable statuses with exponential backoff
// starting at RetryBaseDelay. A Retry-After header in seconds replaces the
// computed delay, capped at MaxRetryAfter.
//
// Transport errors are returned immediately. When retries are exhausted the
// last response is returned unread so the caller can inspect its status.
// Cancelling ctx during a wait returns ctx.Err().
func Do(ctx context.Context, client *http.Client, req *http.Request, p Policy) (*http.Response, error) {
	maxRetries := p.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}
	log := p.Log
	if log == nil {
		log = io.Discard
	}

	for attempt := 0; ; attempt++ {
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		fmt.Fprintf(log, "  retry: %s returned %d, waiting %v (%d/%d)\n",
			req.URL.Host, resp.StatusCode, wait, attempt+1, maxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		if d > MaxRetryAfter {
			d = MaxRetryAfter
		}
		return d
	}
	return RetryBaseDelay << attempt
}
