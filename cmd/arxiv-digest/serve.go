// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/schedule"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the digest every day at a fixed time",
	Long: `Serve stays in the foreground and runs the same cycle as "run" once a
day at schedule.at (HH:MM) in schedule.timezone. A run still in progress
when the next one is due causes that next run to be skipped. Stop with
Ctrl-C or SIGTERM.`,
	RunE: runServe,
}

func init() {
	addRunFlags(serveCmd)
	serveCmd.Flags().String("at", "", "daily run time HH:MM (default 07:00)")
	serveCmd.Flags().String("timezone", "", "IANA time zone for --at (default UTC)")
	serveCmd.Flags().Bool("now", false, "also run once immediately")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("at") {
		cfg.Schedule.At, _ = cmd.Flags().GetString("at")
	}
	if cmd.Flags().Changed("timezone") {
		cfg.Schedule.Timezone, _ = cmd.Flags().GetString("timezone")
	}
	noMail, _ := cmd.Flags().GetBool("no-mail")
	runNow, _ := cmd.Flags().GetBool("now")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var daily *schedule.Daily
	var running sync.Mutex
	task := func() {
		if !running.TryLock() {
			fmt.Fprintln(os.Stderr, "skipped: previous digest still running")
			return
		}
		defer running.Unlock()
		runScheduled(ctx, cfg, !noMail, daily.Location())
	}

	daily, err = schedule.New(cfg.Schedule.At, cfg.Schedule.Timezone, task, os.Stderr)
	if err != nil {
		return err
	}
	daily.Start()
	fmt.Fprintf(os.Stderr, "serving: next run at %s\n", daily.Next(time.Now()).Format(time.RFC1123))

	if runNow {
		go task()
	}

	<-ctx.Done()
	fmt.Fprintln(os.Stderr, "stopping: waiting for a running digest to finish")
	daily.Stop()
	return nil
}

// runScheduled runs one cycle dated in loc and reports the outcome; errors
// never stop the scheduler.
func runScheduled(ctx context.Context, cfg types.DigestConfig, mail bool, loc *time.Location) {
	start := time.Now()
	fmt.Fprintf(os.Stderr, "\n=== digest run %s ===\n", start.Format(time.RFC3339))

	c, closeCache, err := buildCycle(ctx, cfg, mail, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed:  %v\n", err)
		return
	}
	defer closeCache()
	c.Pipeline.Now = clockIn(loc)

	res, err := c.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed:  %v\n", err)
		return
	}
	warnFailures(res, os.Stderr)
	fmt.Fprintf(os.Stderr, "done: %d papers in %v (run %s)\n",
		res.Report.Count(), time.Since(start).Round(time.Second), res.Report.RunID)
}
