// Package render converts optimized resumes to PDF and reads text back out
// of PDF and plain-text inputs.
package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"atsopt/internal/domain"
	"atsopt/internal/logger"
)

// Converter shells out to an office suite running headless.
type Converter struct {
	Command string
	Timeout time.Duration
	log     zerolog.Logger
}

func NewConverter(command string, timeout time.Duration) *Converter {
	if command == "" {
		command = "soffice"
	}
	return &Converter{Command: command, Timeout: timeout, log: logger.Component("render")}
}

// ToPDF renders docxPath to pdfPath. Failures are ErrExternalService and
// leave the DOCX untouched.
func (c *Converter) ToPDF(ctx context.Context, docxPath, pdfPath string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	outDir := filepath.Dir(pdfPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("pdf %s: %w", pdfPath, err)
	}

	cmd := exec.CommandContext(ctx, c.Command, "--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("converter timed out after %s", c.Timeout)
		} else if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return domain.NewOpError(domain.ErrExternalService, "pdf", pdfPath, err)
	}

	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))+".pdf")
	if produced != pdfPath {
		if err := os.Rename(produced, pdfPath); err != nil {
			return domain.NewOpError(domain.ErrExternalService, "pdf", pdfPath, err)
		}
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return domain.NewOpError(domain.ErrExternalService, "pdf", pdfPath, errors.New("converter produced no output"))
	}
	c.log.Debug().Str("pdf", pdfPath).Msg("pdf rendered")
	return nil
}

// PDFText extracts the plain text of every page of a PDF file.
func PDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NewOpError(domain.ErrInputNotFound, "read pdf", path, err)
		}
		return "", domain.NewOpError(domain.ErrFormat, "read pdf", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// ReadText returns the text of a job description file. PDF files are
// extracted; anything else is read as UTF-8 text.
func ReadText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return PDFText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NewOpError(domain.ErrInputNotFound, "read", path, err)
		}
		return "", domain.NewOpError(domain.ErrFormat, "read", path, err)
	}
	return string(data), nil
}
