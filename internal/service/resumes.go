package service

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"atsopt/internal/domain"
)

// Chooser picks one entry from a menu.
type Chooser interface {
	Choose(title string, options []string) (int, error)
}

// FindResumes lists the .docx files in dir, skipping previously generated
// outputs that carry suffix and Word lock files.
func FindResumes(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".docx") || strings.HasPrefix(name, "~$") {
			continue
		}
		if suffix != "" && strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), suffix) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

// SelectResume resolves the resume to optimize. An explicit path must exist.
// Otherwise the .docx files in dir are listed: a single one is used as is,
// several are offered through c. A nil c means no one can be asked.
func SelectResume(explicit, dir, suffix string, c Chooser) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", domain.NewOpError(domain.ErrInputNotFound, "resume", explicit, err)
		}
		return explicit, nil
	}
	found, err := FindResumes(dir, suffix)
	if err != nil {
		return "", domain.NewOpError(domain.ErrInputNotFound, "resume", dir, err)
	}
	switch {
	case len(found) == 0:
		return "", domain.NewOpError(domain.ErrInputNotFound, "resume", dir, errors.New("no .docx files found"))
	case len(found) == 1:
		return found[0], nil
	case c == nil:
		return "", domain.NewOpError(domain.ErrInputNotFound, "resume", dir, errors.New("several .docx files found; pass --resume"))
	}
	names := make([]string, len(found))
	for i, f := range found {
		names[i] = filepath.Base(f)
	}
	idx, err := c.Choose("Select resume file", names)
	if err != nil {
		return "", err
	}
	return found[idx], nil
}
