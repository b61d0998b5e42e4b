// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/internal/secrets"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// envKeys are the nested settings that can be set from ARXIV_DIGEST_*
// variables even when no config file mentions them.
var envKeys = []string{
	"feed.timeout", "feed.user_agent", "feed.source_delay",
	"scholar.timeout", "scholar.requests_per_second", "scholar.max_retries",
	"scholar.concurrency", "scholar.cache_path", "scholar.cache_ttl",
	"report.dir", "report.title",
	"mail.host", "mail.port", "mail.max_attempts",
	"gist.enabled", "gist.public",
	"schedule.at", "schedule.timezone",
}

func bindEnvKeys() {
	for _, k := range envKeys {
		_ = viper.BindEnv(k)
	}
}

// loadConfig builds the effective configuration: built-in defaults, then the
// config file and environment, then the profile file, then secrets, then
// command flags.
func loadConfig(cmd *cobra.Command) (types.DigestConfig, error) {
	cfg := types.DefaultDigestConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		p, err := loadProfile(path)
		if err != nil {
			return cfg, err
		}
		cfg.Profile = p
	}

	applySecrets(&cfg, loadedSecrets)

	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadProfile reads an interest profile from a YAML file.
func loadProfile(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var p types.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return types.Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

func applySecrets(cfg *types.DigestConfig, s secrets.Set) {
	if cfg.Scholar.APIKey == "" {
		cfg.Scholar.APIKey = s.Get(secrets.ScholarAPIKey)
	}
	if cfg.Mail.Sender == "" {
		cfg.Mail.Sender = s.Get(secrets.GmailSender)
	}
	if cfg.Mail.Receiver == "" {
		cfg.Mail.Receiver = s.Get(secrets.GmailReceiver)
	}
	if cfg.Mail.Password == "" {
		cfg.Mail.Password = s.Get(secrets.GmailAppPassword)
	}
	if cfg.Gist.Token == "" {
		cfg.Gist.Token = s.Get(secrets.GitHubToken)
	}
}

func applyFlags(cmd *cobra.Command, cfg *types.DigestConfig) {
	flags := cmd.Flags()
	if flags.Changed("reports-dir") {
		cfg.Report.Dir, _ = flags.GetString("reports-dir")
	}
	if flags.Changed("format") {
		names, _ := flags.GetStringSlice("format")
		cfg.Report.Formats = nil
		for _, n := range names {
			f := types.ReportFormat(n)
			if n == "md" {
				f = types.FormatMarkdown
			}
			cfg.Report.Formats = append(cfg.Report.Formats, f)
		}
	}
	if flags.Changed("concurrency") {
		cfg.Scholar.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("cache") {
		cfg.Scholar.CachePath, _ = flags.GetString("cache")
	}
	if flags.Changed("gist") {
		cfg.Gist.Enabled, _ = flags.GetBool("gist")
	}
}

// addRunFlags registers the flags shared by run and serve.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("profile", "", "interest profile YAML (keywords, feed_sources)")
	cmd.Flags().String("reports-dir", "", "base directory for reports (default reports)")
	cmd.Flags().StringSlice("format", nil, "report format: html, markdown (repeatable)")
	cmd.Flags().Int("concurrency", 0, "parallel author lookups per paper (default 1)")
	cmd.Flags().String("cache", "", "SQLite author profile cache (default: none)")
	cmd.Flags().Bool("gist", false, "publish the Markdown report as a GitHub gist")
	cmd.Flags().Bool("no-mail", false, "do not send the summary mail")
	cmd.Flags().Bool("strict", false, "exit non-zero when publishing or mailing fails")
}
