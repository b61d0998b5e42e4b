// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Profile is the interest profile: which feeds to read and which keywords
// make an entry interesting. It is always passed explicitly.
type Profile struct {
	// Keywords is the ordered keyword list. Matching output follows this order.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// FeedSources lists feed URLs in the order they are read.
	FeedSources []string `json:"feed_sources" yaml:"feed_sources" mapstructure:"feed_sources"`
}

// Validate reports whether the profile can drive a run.
func (p Profile) Validate() error {
	if len(p.Keywords) == 0 {
		return errors.New("profile has no keywords")
	}
	for i, kw := range p.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("profile keyword %d is blank", i)
		}
	}
	if len(p.FeedSources) == 0 {
		return errors.New("profile has no feed sources")
	}
	return nil
}

// FeedConfig holds settings for the feed supplier.
type FeedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SourceDelay is the pause between consecutive feed sources (default 1s).
	SourceDelay time.Duration `json:"source_delay" yaml:"source_delay" mapstructure:"source_delay"`
}

// ScholarConfig holds settings for the Semantic Scholar author lookup.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// RequestsPerSecond throttles lookups (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries bounds retries on HTTP 429 (0 uses the httputil default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Concurrency is the number of author lookups in flight per record (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// CachePath is the SQLite file for the profile cache. Empty disables caching.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty" mapstructure:"cache_path"`

	// CacheTTL is how long a cached profile stays valid (default 7 days).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ReportFormat selects a rendered document format.
type ReportFormat string

const (
	FormatHTML     ReportFormat = "html"
	FormatMarkdown ReportFormat = "markdown"
)

// Ext returns the file extension for the format.
func (f ReportFormat) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// ReportConfig holds settings for rendering and persisting reports.
type ReportConfig struct {
	// Dir is the base reports directory (contains <YYYY>/<YYYYMMDD>.<ext>).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Formats lists the rendered formats to persist (default html).
	Formats []ReportFormat `json:"formats" yaml:"formats" mapstructure:"formats"`

	// Title heads every rendered report.
	Title string `json:"title" yaml:"title" mapstructure:"title"`
}

// MailConfig holds SMTP settings for the summary notification.
type MailConfig struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	Sender   string `json:"sender" yaml:"sender" mapstructure:"sender"`
	Receiver string `json:"receiver" yaml:"receiver" mapstructure:"receiver"`
	Password string `json:"-" yaml:"-" mapstructure:"password"`

	// MaxAttempts bounds send attempts (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`
}

// Configured reports whether all credentials needed to send are present.
func (m MailConfig) Configured() bool {
	return m.Sender != "" && m.Receiver != "" && m.Password != ""
}

// GistConfig holds settings for publishing the report as a GitHub gist.
type GistConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Token   string `json:"-" yaml:"-" mapstructure:"token"`
	Public  bool   `json:"public" yaml:"public" mapstructure:"public"`
}

// ScheduleConfig holds settings for the daily serve mode.
type ScheduleConfig struct {
	// At is the daily run time in HH:MM.
	At string `json:"at" yaml:"at" mapstructure:"at"`

	// Timezone is an IANA zone name (default UTC).
	Timezone string `json:"timezone" yaml:"timezone" mapstructure:"timezone"`
}

// DigestConfig groups all stage configurations for a digest run.
type DigestConfig struct {
	Profile  Profile        `json:"profile" yaml:"profile" mapstructure:"profile"`
	Feed     FeedConfig     `json:"feed" yaml:"feed" mapstructure:"feed"`
	Scholar  ScholarConfig  `json:"scholar" yaml:"scholar" mapstructure:"scholar"`
	Report   ReportConfig   `json:"report" yaml:"report" mapstructure:"report"`
	Mail     MailConfig     `json:"mail" yaml:"mail" mapstructure:"mail"`
	Gist     GistConfig     `json:"gist" yaml:"gist" mapstructure:"gist"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
}

const defaultUserAgent = "arxiv-digest/0.1"

// DefaultProfile returns a fresh copy of the built-in interest profile:
// mathematical-physics keywords over the hep-th, math-ph and quant-ph feeds.
func DefaultProfile() Profile {
	return Profile{
		Keywords: []string{
			"axiomatic quantum field theory", "algebraic quantum field theory", "AQFT", "Ryu-Takayanagi",
			"measurement-induced", "resource theory", "resource theoretic",
			"Haag", "LSZ", "conformal bootstrap", "duality",
			"non-perturbative", "Yang Mills", "Renormalization Group", "MERA",
		},
		FeedSources: []string{
			"https://rss.arxiv.org/rss/hep-th",
			"https://rss.arxiv.org/rss/math-ph",
			"https://rss.arxiv.org/rss/quant-ph",
		},
	}
}

// DefaultDigestConfig returns the configuration used when no file or flag
// overrides a value.
func DefaultDigestConfig() DigestConfig {
	return DigestConfig{
		Profile: DefaultProfile(),
		Feed: FeedConfig{
			HTTPConfig:  HTTPConfig{Timeout: 30 * time.Second, UserAgent: defaultUserAgent},
			SourceDelay: time.Second,
		},
		Scholar: ScholarConfig{
			HTTPConfig:        HTTPConfig{Timeout: 10 * time.Second, UserAgent: defaultUserAgent},
			RequestsPerSecond: 1,
			Concurrency:       1,
			CacheTTL:          7 * 24 * time.Hour,
		},
		Report: ReportConfig{
			Dir:     "reports",
			Formats: []ReportFormat{FormatHTML},
			Title:   "arXiv paper report",
		},
		Mail: MailConfig{
			Host:        "smtp.gmail.com",
			Port:        465,
			MaxAttempts: 3,
		},
		Schedule: ScheduleConfig{
			At:       "07:00",
			Timezone: "UTC",
		},
	}
}

// Validate checks the settings every run depends on.
func (c DigestConfig) Validate() error {
	if err := c.Profile.Validate(); err != nil {
		return err
	}
	for _, f := range c.Report.Formats {
		if f != FormatHTML && f != FormatMarkdown {
			return fmt.Errorf("unsupported report format %q: use html or markdown", f)
		}
	}
	if c.Report.Dir == "" {
		return errors.New("report directory is empty")
	}
	if c.Scholar.Concurrency < 0 {
		return fmt.Errorf("scholar concurrency must not be negative, got %d", c.Scholar.Concurrency)
	}
	if c.Gist.Enabled && c.Gist.Token == "" {
		return errors.New("gist publishing enabled but no GitHub token configured")
	}
	return nil
}
