package document

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

const (
	nsCoreProps   = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC          = "http://purl.org/dc/elements/1.1/"
	nsDCTerms     = "http://purl.org/dc/terms/"
	nsCustomProps = "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
	nsVTypes      = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"

	// fmtidUserDefined is the property set id Word uses for user-defined properties.
	fmtidUserDefined = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"
)

// Core property names understood by CoreProperty and SetCoreProperty.
const (
	PropTitle    = "title"
	PropSubject  = "subject"
	PropCreator  = "creator"
	PropKeywords = "keywords"
	PropComments = "comments"
	PropCategory = "category"
)

var coreTags = map[string]string{
	PropTitle:    "dc:title",
	PropSubject:  "dc:subject",
	PropCreator:  "dc:creator",
	PropKeywords: "cp:keywords",
	PropComments: "dc:description",
	PropCategory: "cp:category",
}

func (d *Document) coreDoc() (*etree.Document, error) {
	if d.core != nil {
		return d.core, nil
	}
	doc := etree.NewDocument()
	if raw, ok := d.parts[partCore]; ok {
		if err := doc.ReadFromBytes(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", partCore, err)
		}
		if doc.Root() == nil {
			return nil, fmt.Errorf("%s is empty", partCore)
		}
	} else {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		root := doc.CreateElement("cp:coreProperties")
		root.CreateAttr("xmlns:cp", nsCoreProps)
		root.CreateAttr("xmlns:dc", nsDC)
		root.CreateAttr("xmlns:dcterms", nsDCTerms)
	}
	d.core = doc
	return doc, nil
}

// CoreProperty returns a core (Dublin Core) property value.
func (d *Document) CoreProperty(name string) (string, error) {
	tag, ok := coreTags[name]
	if !ok {
		return "", fmt.Errorf("unknown core property %q", name)
	}
	doc, err := d.coreDoc()
	if err != nil {
		return "", err
	}
	if el := doc.Root().SelectElement(tag); el != nil {
		return el.Text(), nil
	}
	return "", nil
}

// SetCoreProperty sets a core property, creating the element when absent.
func (d *Document) SetCoreProperty(name, value string) error {
	tag, ok := coreTags[name]
	if !ok {
		return fmt.Errorf("unknown core property %q", name)
	}
	doc, err := d.coreDoc()
	if err != nil {
		return err
	}
	root := doc.Root()
	ensureNamespace(root, "cp", nsCoreProps)
	ensureNamespace(root, "dc", nsDC)
	el := root.SelectElement(tag)
	if el == nil {
		el = root.CreateElement(tag)
	}
	el.SetText(value)
	d.dirty[partCore] = true
	return nil
}

func ensureNamespace(root *etree.Element, prefix, uri string) {
	if root.SelectAttr("xmlns:"+prefix) == nil {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
}

func (d *Document) customDoc() (*etree.Document, error) {
	if d.custom != nil {
		return d.custom, nil
	}
	doc := etree.NewDocument()
	if raw, ok := d.parts[partCustom]; ok {
		if err := doc.ReadFromBytes(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", partCustom, err)
		}
		if doc.Root() == nil || doc.Root().Tag != "Properties" {
			return nil, fmt.Errorf("%s has no Properties root", partCustom)
		}
	} else {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		root := doc.CreateElement("Properties")
		root.CreateAttr("xmlns", nsCustomProps)
		root.CreateAttr("xmlns:vt", nsVTypes)
	}
	d.custom = doc
	return doc, nil
}

// CustomProperty returns a user-defined property value and whether it exists.
func (d *Document) CustomProperty(name string) (string, bool, error) {
	doc, err := d.customDoc()
	if err != nil {
		return "", false, err
	}
	for _, p := range doc.Root().SelectElements("property") {
		if p.SelectAttrValue("name", "") != name {
			continue
		}
		if v := p.SelectElement("vt:lpwstr"); v != nil {
			return v.Text(), true, nil
		}
		return "", true, nil
	}
	return "", false, nil
}

// SetCustomProperty stores a user-defined string property, replacing any
// existing property of the same name.
func (d *Document) SetCustomProperty(name, value string) error {
	if name == "" {
		return fmt.Errorf("custom property name is empty")
	}
	doc, err := d.customDoc()
	if err != nil {
		return err
	}
	root := doc.Root()
	ensureNamespace(root, "vt", nsVTypes)

	nextPID := 2
	var target *etree.Element
	for _, p := range root.SelectElements("property") {
		if pid, err := strconv.Atoi(p.SelectAttrValue("pid", "")); err == nil && pid >= nextPID {
			nextPID = pid + 1
		}
		if p.SelectAttrValue("name", "") == name {
			target = p
		}
	}
	if target == nil {
		target = root.CreateElement("property")
		target.CreateAttr("fmtid", fmtidUserDefined)
		target.CreateAttr("pid", strconv.Itoa(nextPID))
		target.CreateAttr("name", name)
	}
	for _, c := range target.ChildElements() {
		target.RemoveChild(c)
	}
	target.CreateElement("vt:lpwstr").SetText(value)
	d.dirty[partCustom] = true
	return nil
}
