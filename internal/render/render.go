// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns an assembled report into an HTML page for browsers
// and a Markdown document for gists and mail clients.
package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// EmptyMessage is shown when no paper matched the interest profile.
const EmptyMessage = "No new papers matched your keywords today."

// DateLayout formats the report date in headings.
const DateLayout = "2006-01-02"

type page struct {
	Title string
	Date  string
	types.Report
}

var funcs = map[string]any{
	"thousands": Thousands,
	"inc":       func(i int) int { return i + 1 },
}

var htmlTmpl = htmltemplate.Must(htmltemplate.New("report.html").
	Funcs(htmltemplate.FuncMap(funcs)).
	Funcs(htmltemplate.FuncMap{
		"math": func(s string) htmltemplate.HTML { return htmltemplate.HTML(EscapeMath(s)) },
	}).
	Parse(htmlSource))

var markdownTmpl = texttemplate.Must(texttemplate.New("report.md").
	Funcs(texttemplate.FuncMap(funcs)).
	Funcs(texttemplate.FuncMap{
		"math": EscapeMath,
		"cell": markdownCell,
		"line": oneLine,
	}).
	Parse(markdownSource))

// Heading returns the document title for report.
func Heading(title string, report types.Report) string {
	return fmt.Sprintf("%s (%s)", title, report.Date.Format(DateLayout))
}

// HTML renders report as a standalone page with MathJax enabled.
func HTML(report types.Report, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, newPage(report, title)); err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown renders report as a Markdown document.
func Markdown(report types.Report, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, newPage(report, title)); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Render dispatches on format.
func Render(report types.Report, title string, format types.ReportFormat) ([]byte, error) {
	switch format {
	case types.FormatHTML:
		return HTML(report, title)
	case types.FormatMarkdown:
		return Markdown(report, title)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

func newPage(report types.Report, title string) page {
	return page{Title: title, Date: report.Date.Format(DateLayout), Report: report}
}

// markdownCell keeps table cells on one line and away from the column
// separator.
func markdownCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
