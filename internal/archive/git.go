// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNotGitHub is returned when the repository has no GitHub origin.
var ErrNotGitHub = errors.New("origin is not a GitHub remote")

// defaultBranch is used when the current branch cannot be determined.
const defaultBranch = "main"

var (
	sshRemote   = regexp.MustCompile(`^git@github\.com:([^/]+)/(.+?)(?:\.git)?$`)
	httpsRemote = regexp.MustCompile(`^https://(?:[^@/]+@)?github\.com/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// runner abstracts command execution for testing.
type runner interface {
	Output(dir, name string, args ...string) (string, error)
}

// osRunner is the production runner backed by os/exec.
type osRunner struct{}

func (osRunner) Output(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Repo locates files of a git working tree on GitHub.
type Repo struct {
	// Dir is any directory inside the working tree.
	Dir string
	run runner
}

// NewRepo returns a Repo for the working tree containing dir.
func NewRepo(dir string) *Repo {
	return &Repo{Dir: dir, run: osRunner{}}
}

// ParseRemote extracts owner and repository from an SSH or HTTPS GitHub
// remote URL.
func ParseRemote(remote string) (owner, repo string, err error) {
	remote = strings.TrimSpace(remote)
	for _, re := range []*regexp.Regexp{sshRemote, httpsRemote} {
		if m := re.FindStringSubmatch(remote); m != nil {
			return m[1], m[2], nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrNotGitHub, remote)
}

// BlobURL returns https://github.com/<owner>/<repo>/blob/<branch>/<path>
// for a file inside the working tree. The file need not be committed yet.
func (r *Repo) BlobURL(path string) (string, error) {
	remote, err := r.run.Output(r.Dir, "git", "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("reading origin: %w", err)
	}
	owner, repo, err := ParseRemote(remote)
	if err != nil {
		return "", err
	}

	top, err := r.run.Output(r.Dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("locating working tree: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(top, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the working tree %s", path, top)
	}

	branch, err := r.run.Output(r.Dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || branch == "" || branch == "HEAD" {
		branch = defaultBranch
	}

	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", owner, repo, branch, filepath.ToSlash(rel)), nil
}
