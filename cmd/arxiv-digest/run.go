// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/digest"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build today's digest once",
	Long: `Run fetches every feed in the interest profile, keeps the entries that
match a keyword, scores each by the highest h-index among its authors, and
writes reports/<YYYY>/<YYYYMMDD>.<ext> plus a YAML sidecar. With --gist the
Markdown report is published as a gist. A summary mail is sent when
GMAIL_SENDER, GMAIL_RECEIVER and GMAIL_APP_PASSWORD are set.

Progress goes to stderr; the ranked table (or JSON with --json) goes to stdout.`,
	RunE: runDigest,
}

func init() {
	addRunFlags(runCmd)
	runCmd.Flags().Bool("json", false, "print the assembled report as JSON")

	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	noMail, _ := cmd.Flags().GetBool("no-mail")
	strict, _ := cmd.Flags().GetBool("strict")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, closeCache, err := buildCycle(ctx, cfg, !noMail, os.Stderr)
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := c.Run(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := digest.FormatJSON(res.Report, os.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stdout)
		digest.FormatTable(res.Report, os.Stdout)
	}
	warnFailures(res, os.Stderr)
	return deliveryError(res, strict)
}
