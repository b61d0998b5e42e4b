// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cycle runs one complete digest: build the report, render and
// archive it, publish it, and mail the summary. Delivery problems are
// collected and reported, never allowed to discard a built report.
package cycle

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/arxiv-digest/internal/archive"
	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/notify"
	"github.com/pdiddy/arxiv-digest/internal/render"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Publisher uploads a rendered document and returns where it can be read.
type Publisher interface {
	Publish(ctx context.Context, filename, description string, content []byte) (string, error)
}

// Locator maps a saved file to its URL in a hosted repository.
type Locator interface {
	BlobURL(path string) (string, error)
}

// Notifier delivers the run summary. It returns false when delivery was
// skipped on purpose.
type Notifier interface {
	Notify(ctx context.Context, s notify.Summary) (bool, error)
}

// Cycle wires the stages of one run. Gist, Repo, and Mailer are optional.
type Cycle struct {
	Pipeline *digest.Pipeline
	Report   types.ReportConfig

	Gist   Publisher
	Repo   Locator
	Mailer Notifier

	Out io.Writer
}

// Result is everything one run produced.
type Result struct {
	Report  types.Report
	Saved   archive.Saved
	GistURL string
	BlobURL string
	Mailed  bool

	// DeliveryErrors lists gist and mail failures.
	DeliveryErrors []error
}

// ReportURL prefers the gist over the repository blob.
func (r Result) ReportURL() string {
	if r.GistURL != "" {
		return r.GistURL
	}
	return r.BlobURL
}

// DeliveryFailed reports whether publishing or mailing failed.
func (r Result) DeliveryFailed() bool {
	return len(r.DeliveryErrors) > 0
}

// Run executes the cycle. It fails only when the report could not be built
// or saved.
func (c *Cycle) Run(ctx context.Context) (Result, error) {
	w := c.Out
	if w == nil {
		w = io.Discard
	}

	report, err := c.Pipeline.Run(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{Report: report}

	formats := c.Report.Formats
	if len(formats) == 0 {
		formats = []types.ReportFormat{types.FormatHTML}
	}
	docs := make(map[types.ReportFormat][]byte, len(formats))
	for _, f := range formats {
		doc, err := render.Render(report, c.Report.Title, f)
		if err != nil {
			return res, err
		}
		docs[f] = doc
	}

	res.Saved, err = archive.Save(c.Report.Dir, report, docs)
	if err != nil {
		return res, err
	}
	primary := res.Saved.Primary(formats)
	fmt.Fprintf(w, "report saved: %s\n", primary)

	if c.Gist != nil {
		res.GistURL, err = c.publishGist(ctx, report, docs)
		if err != nil {
			fmt.Fprintf(w, "warning: gist: %v\n", err)
			res.DeliveryErrors = append(res.DeliveryErrors, err)
		} else {
			fmt.Fprintf(w, "gist published: %s\n", res.GistURL)
		}
	}

	if c.Repo != nil {
		if res.BlobURL, err = c.Repo.BlobURL(primary); err != nil {
			fmt.Fprintf(w, "  no GitHub URL: %v\n", err)
		}
	}

	if c.Mailer != nil {
		res.Mailed, err = c.Mailer.Notify(ctx, notify.Summary{
			Title: c.Report.Title,
			Date:  report.Date,
			Count: report.Count(),
			URL:   res.ReportURL(),
			Path:  primary,
		})
		if err != nil {
			fmt.Fprintf(w, "warning: mail: %v\n", err)
			res.DeliveryErrors = append(res.DeliveryErrors, err)
		}
	}
	return res, nil
}

func (c *Cycle) publishGist(ctx context.Context, report types.Report, docs map[types.ReportFormat][]byte) (string, error) {
	md, ok := docs[types.FormatMarkdown]
	if !ok {
		var err error
		if md, err = render.Markdown(report, c.Report.Title); err != nil {
			return "", err
		}
	}
	name := filepath.Base(archive.Path("", report, types.FormatMarkdown.Ext()))
	return c.Gist.Publish(ctx, name, render.Heading(c.Report.Title, report), md)
}
