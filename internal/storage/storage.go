// Package storage publishes finished artifacts (optimized resumes, PDFs,
// keyword lists and batch summaries) to a configured destination.
package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"atsopt/internal/domain"
)

// ContentType guesses the MIME type of an artifact from its key.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Key joins path segments into a slash-separated object key.
func Key(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(filepath.ToSlash(p), "/")
		if p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, "/")
}

// PutFile uploads the file at localPath under key.
func PutFile(ctx context.Context, s domain.Store, key, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return domain.NewOpError(domain.ErrInputNotFound, "publish", localPath, err)
	}
	defer f.Close()
	return s.Put(ctx, key, f)
}
