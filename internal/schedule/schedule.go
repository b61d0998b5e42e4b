// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule runs a task once a day at a wall-clock time in a given
// time zone.
package schedule

import (
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

var hhmm = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

// Daily triggers one task per day. A run that is still going when the next
// one is due causes that next run to be skipped.
type Daily struct {
	cron     *cron.Cron
	spec     cron.Schedule
	location *time.Location
}

// New builds a scheduler that calls task every day at "HH:MM" in timezone.
// Scheduler notices go to w.
func New(at, timezone string, task func(), w io.Writer) (*Daily, error) {
	if task == nil {
		return nil, errors.New("task must not be nil")
	}
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}
	hour, minute, err := ParseTime(at)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}

	logger := cron.PrintfLogger(log.New(w, "schedule: ", 0))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	expr := fmt.Sprintf("%d %d * * *", minute, hour)
	if _, err := c.AddFunc(expr, task); err != nil {
		return nil, fmt.Errorf("adding cron entry %q: %w", expr, err)
	}
	spec, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing cron entry %q: %w", expr, err)
	}
	return &Daily{cron: c, spec: spec, location: loc}, nil
}

// Start begins firing in the background.
func (d *Daily) Start() {
	d.cron.Start()
}

// Stop halts the scheduler and waits for a running task to return.
func (d *Daily) Stop() {
	<-d.cron.Stop().Done()
}

// Next returns the first run time strictly after t.
func (d *Daily) Next(t time.Time) time.Time {
	return d.spec.Next(t.In(d.location))
}

// Location returns the scheduler's time zone.
func (d *Daily) Location() *time.Location {
	return d.location
}

// ParseTime splits "HH:MM" (24-hour) into hour and minute.
func ParseTime(value string) (hour, minute int, err error) {
	if !hhmm.MatchString(value) {
		return 0, 0, fmt.Errorf("invalid time %q: use HH:MM", value)
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}
