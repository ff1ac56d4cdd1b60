// Package batch queues job descriptions and optimizes one resume against
// each of them in turn.
package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"atsopt/internal/domain"
)

// Load reads a job batch file. A missing file is an empty batch.
func Load(path string) ([]domain.BatchJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewOpError(domain.ErrInputNotFound, "load batch", path, err)
	}
	var jobs []domain.BatchJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, domain.NewOpError(domain.ErrFormat, "load batch", path, err)
	}
	return jobs, nil
}

// Save writes jobs as an indented JSON array.
func Save(path string, jobs []domain.BatchJob) error {
	if jobs == nil {
		jobs = []domain.BatchJob{}
	}
	return writeJSON(path, jobs)
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// SafeName keeps letters, digits, spaces, '-' and '_', trims the result and
// replaces spaces with underscores.
func SafeName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(sb.String()), " ", "_")
}

// JobDirName is the per-job directory name for company and position.
func JobDirName(company, position string) string {
	name := SafeName(company) + "_" + SafeName(position)
	if strings.Trim(name, "_") == "" {
		return "job"
	}
	return name
}
