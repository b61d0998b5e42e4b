// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves credentials from the process environment, an
// optional .env file, and a directory of plain-text key files. In the
// directory each file is one secret: the filename is the key and the
// trimmed contents are the value.
package secrets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key names as they appear in the secrets directory.
const (
	ScholarAPIKey    = "semantic-scholar-api-key"
	GmailAppPassword = "gmail-app-password"
	GmailSender      = "gmail-sender"
	GmailReceiver    = "gmail-receiver"
	GitHubToken      = "github-token"
)

// envNames maps each key to the environment variable that overrides it.
var envNames = map[string]string{
	ScholarAPIKey:    "SEMANTIC_SCHOLAR_API_KEY",
	GmailAppPassword: "GMAIL_APP_PASSWORD",
	GmailSender:      "GMAIL_SENDER",
	GmailReceiver:    "GMAIL_RECEIVER",
	GitHubToken:      "GITHUB_TOKEN",
}

// EnvName returns the environment variable for key, or "" if key has none.
func EnvName(key string) string {
	return envNames[key]
}

// Set is a resolved collection of secrets.
type Set struct {
	files  map[string]string
	getenv func(string) string
}

// Get returns the value for key. The environment wins over the secrets
// directory.
func (s Set) Get(key string) string {
	if name, ok := envNames[key]; ok && s.getenv != nil {
		if v := strings.TrimSpace(s.getenv(name)); v != "" {
			return v
		}
	}
	return s.files[key]
}

// Open loads the .env file at envFile (if present) into the process
// environment without overriding variables already set, then reads dir.
// Empty arguments skip that source. Unreadable key files are reported on w.
func Open(envFile, dir string, w io.Writer) (Set, error) {
	if envFile != "" {
		if err := LoadDotEnv(envFile); err != nil {
			return Set{}, err
		}
	}
	files := map[string]string{}
	if dir != "" {
		var err error
		if files, err = Load(dir, w); err != nil {
			return Set{}, err
		}
	}
	return Set{files: files, getenv: os.Getenv}, nil
}

// LoadDotEnv loads path into the environment. A missing file is not an
// error; variables already set are kept.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on w but do not abort.
func Load(dir string, w io.Writer) (map[string]string, error) {
	if w == nil {
		w = io.Discard
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}
