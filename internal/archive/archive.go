// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists rendered reports under a dated directory tree
// and publishes them: a GitHub blob URL for reports committed to a repo,
// and an optional gist.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Saved lists the files written for one report.
type Saved struct {
	// Paths maps each rendered format to its file.
	Paths map[types.ReportFormat]string

	// Sidecar is the YAML dump of the report and its run stats.
	Sidecar string
}

// Primary returns the path of the first format in formats that was saved.
func (s Saved) Primary(formats []types.ReportFormat) string {
	for _, f := range formats {
		if p, ok := s.Paths[f]; ok {
			return p
		}
	}
	return ""
}

// Path returns <dir>/<YYYY>/<YYYYMMDD>.<ext> for the report date.
func Path(dir string, report types.Report, ext string) string {
	return filepath.Join(dir, report.Date.Format("2006"), report.Date.Format("20060102")+"."+ext)
}

// Save writes every rendered document and the YAML sidecar for report.
// A second run on the same date overwrites the earlier files. Each file is
// written to a temporary name and renamed into place.
func Save(dir string, report types.Report, docs map[types.ReportFormat][]byte) (Saved, error) {
	saved := Saved{Paths: make(map[types.ReportFormat]string, len(docs))}

	formats := make([]types.ReportFormat, 0, len(docs))
	for f := range docs {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	for _, f := range formats {
		path := Path(dir, report, f.Ext())
		if err := writeFileAtomic(path, docs[f]); err != nil {
			return saved, fmt.Errorf("saving %s report: %w", f, err)
		}
		saved.Paths[f] = path
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return saved, fmt.Errorf("marshaling report sidecar: %w", err)
	}
	sidecar := Path(dir, report, "yaml")
	if err := writeFileAtomic(sidecar, data); err != nil {
		return saved, fmt.Errorf("saving report sidecar: %w", err)
	}
	saved.Sidecar = sidecar
	return saved, nil
}

// LoadSidecar reads a report back from its YAML sidecar.
func LoadSidecar(path string) (types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Report{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var report types.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.Report{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return report, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
