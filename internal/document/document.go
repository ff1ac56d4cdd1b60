// Package document models a WordprocessingML (.docx) resume: its paragraphs
// and runs, its core and custom metadata properties, and saving the result
// as a new package.
//
// A Document is owned by one caller at a time and is not safe for
// concurrent use.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/nguyenthenguyen/docx"

	"atsopt/internal/domain"
)

const (
	partDocument     = "word/document.xml"
	partCore         = "docProps/core.xml"
	partCustom       = "docProps/custom.xml"
	partContentTypes = "[Content_Types].xml"
	partRels         = "_rels/.rels"
)

// Document is an in-memory, editable resume.
type Document struct {
	path     string
	editable *docx.Docx
	parts    map[string][]byte
	body     *etree.Document
	core     *etree.Document
	custom   *etree.Document
	dirty    map[string]bool
}

// Open loads the .docx at path. A missing file yields domain.ErrInputNotFound;
// anything that is not a readable package yields domain.ErrFormat.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewOpError(domain.ErrInputNotFound, "open", path, err)
		}
		return nil, domain.NewOpError(domain.ErrFormat, "open", path, err)
	}
	d, err := FromBytes(data)
	if err != nil {
		return nil, domain.NewOpError(domain.ErrFormat, "open", path, err)
	}
	d.path = path
	return d, nil
}

// FromBytes parses a .docx package held in memory.
func FromBytes(data []byte) (*Document, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	editable := r.Editable()

	body := etree.NewDocument()
	if err := body.ReadFromString(editable.GetContent()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", partDocument, err)
	}
	if body.FindElement("//w:body") == nil {
		return nil, fmt.Errorf("%s has no w:body", partDocument)
	}

	parts, err := readParts(data, partCore, partCustom, partContentTypes, partRels)
	if err != nil {
		return nil, err
	}
	return &Document{
		editable: editable,
		parts:    parts,
		body:     body,
		dirty:    make(map[string]bool),
	}, nil
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string { return d.path }

// Save serialises the document to path, creating parent directories. The
// path must differ from the one the document was opened from.
func (d *Document) Save(path string) error {
	if d.path != "" && samePath(d.path, path) {
		return domain.NewOpError(domain.ErrFormat, "save", path, errors.New("refusing to overwrite the input document"))
	}
	data, err := d.Bytes()
	if err != nil {
		return domain.NewOpError(domain.ErrFormat, "save", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Bytes serialises the document to a .docx package.
func (d *Document) Bytes() ([]byte, error) {
	content, err := d.body.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serialise body: %w", err)
	}
	d.editable.SetContent(content)

	var buf bytes.Buffer
	if err := d.editable.Write(&buf); err != nil {
		return nil, fmt.Errorf("write package: %w", err)
	}

	overrides := make(map[string][]byte)
	for name := range d.dirty {
		var doc *etree.Document
		switch name {
		case partCore:
			doc = d.core
		case partCustom:
			doc = d.custom
		}
		if doc == nil {
			continue
		}
		out, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialise %s: %w", name, err)
		}
		overrides[name] = out
	}
	if len(overrides) == 0 {
		return buf.Bytes(), nil
	}
	if err := d.registerParts(overrides); err != nil {
		return nil, err
	}
	return rewriteParts(buf.Bytes(), overrides)
}

func samePath(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
