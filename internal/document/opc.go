package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

const (
	ctCore   = "application/vnd.openxmlformats-package.core-properties+xml"
	ctCustom = "application/vnd.openxmlformats-officedocument.custom-properties+xml"

	relCore   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relCustom = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"
)

var partRegistration = map[string]struct{ contentType, relType string }{
	partCore:   {ctCore, relCore},
	partCustom: {ctCustom, relCustom},
}

// readParts returns the raw bytes of the named package parts that exist.
func readParts(data []byte, names ...string) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	parts := make(map[string][]byte)
	for _, f := range zr.File {
		if !want[f.Name] {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		parts[f.Name] = b
	}
	return parts, nil
}

// registerParts makes sure every overridden part has a content type override
// and a package relationship, adding the updated registries to overrides.
func (d *Document) registerParts(overrides map[string][]byte) error {
	types := etree.NewDocument()
	if err := types.ReadFromBytes(d.parts[partContentTypes]); err != nil || types.Root() == nil {
		return fmt.Errorf("parse %s: %v", partContentTypes, err)
	}
	rels := etree.NewDocument()
	if raw, ok := d.parts[partRels]; ok {
		if err := rels.ReadFromBytes(raw); err != nil || rels.Root() == nil {
			return fmt.Errorf("parse %s: %v", partRels, err)
		}
	} else {
		rels.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		rels.CreateElement("Relationships").CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	}

	typesChanged, relsChanged := false, false
	for name := range overrides {
		reg, ok := partRegistration[name]
		if !ok {
			continue
		}
		if addOverride(types.Root(), "/"+name, reg.contentType) {
			typesChanged = true
		}
		if addRelationship(rels.Root(), name, reg.relType) {
			relsChanged = true
		}
	}
	if typesChanged {
		b, err := types.WriteToBytes()
		if err != nil {
			return err
		}
		overrides[partContentTypes] = b
		d.parts[partContentTypes] = b
	}
	if relsChanged {
		b, err := rels.WriteToBytes()
		if err != nil {
			return err
		}
		overrides[partRels] = b
		d.parts[partRels] = b
	}
	return nil
}

func addOverride(root *etree.Element, partName, contentType string) bool {
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == partName {
			return false
		}
	}
	o := root.CreateElement("Override")
	o.CreateAttr("PartName", partName)
	o.CreateAttr("ContentType", contentType)
	return true
}

func addRelationship(root *etree.Element, target, relType string) bool {
	used := make(map[string]bool)
	for _, r := range root.SelectElements("Relationship") {
		if r.SelectAttrValue("Type", "") == relType {
			return false
		}
		used[r.SelectAttrValue("Id", "")] = true
	}
	id := ""
	for n := 1; ; n++ {
		id = "rId" + strconv.Itoa(n)
		if !used[id] {
			break
		}
	}
	r := root.CreateElement("Relationship")
	r.CreateAttr("Id", id)
	r.CreateAttr("Type", relType)
	r.CreateAttr("Target", target)
	return true
}

// rewriteParts copies a package, replacing or appending the given parts.
func rewriteParts(data []byte, overrides map[string][]byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reopen package: %w", err)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	written := make(map[string]bool, len(overrides))
	for _, f := range zr.File {
		body, ok := overrides[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		if err := writePart(zw, f.Name, body); err != nil {
			return nil, err
		}
		written[f.Name] = true
	}
	for _, name := range []string{partContentTypes, partRels, partCore, partCustom} {
		body, ok := overrides[name]
		if !ok || written[name] {
			continue
		}
		if err := writePart(zw, name, body); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, name string, body []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
