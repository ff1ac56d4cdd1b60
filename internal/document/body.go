package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// RunStyle describes the character formatting of an added run.
type RunStyle struct {
	Hidden     bool
	Color      string
	HalfPoints int
	Bold       bool
}

// Runs coloured like the page or this small are treated as unseen.
const (
	InvisibleColor         = "FFFFFF"
	MaxInvisibleHalfPoints = 2
)

// Invisible reports whether runs written with s are left out of VisibleText.
func (s RunStyle) Invisible() bool {
	return s.Hidden || strings.EqualFold(s.Color, InvisibleColor) ||
		(s.HalfPoints > 0 && s.HalfPoints <= MaxInvisibleHalfPoints)
}

func (d *Document) bodyElement() *etree.Element {
	return d.body.FindElement("//w:body")
}

func (d *Document) paragraphs() []*etree.Element {
	return d.bodyElement().SelectElements("w:p")
}

// ParagraphCount returns the number of top-level body paragraphs.
func (d *Document) ParagraphCount() int {
	return len(d.paragraphs())
}

// AppendParagraph adds a paragraph holding one run with the given text and
// style at the end of the body, ahead of the section properties.
func (d *Document) AppendParagraph(text string, style RunStyle) {
	body := d.bodyElement()
	p := etree.NewElement("w:p")
	if sect := body.SelectElement("w:sectPr"); sect != nil {
		body.InsertChildAt(sect.Index(), p)
	} else {
		body.AddChild(p)
	}
	p.AddChild(newRun(text, style))
}

// AppendRun appends a run to the paragraph at index.
func (d *Document) AppendRun(index int, text string, style RunStyle) error {
	paras := d.paragraphs()
	if index < 0 || index >= len(paras) {
		return fmt.Errorf("paragraph %d out of range (%d paragraphs)", index, len(paras))
	}
	paras[index].AddChild(newRun(text, style))
	return nil
}

func newRun(text string, style RunStyle) *etree.Element {
	r := etree.NewElement("w:r")
	rPr := r.CreateElement("w:rPr")
	if style.Bold {
		rPr.CreateElement("w:b")
	}
	if style.Hidden {
		rPr.CreateElement("w:vanish")
	}
	if style.Color != "" {
		rPr.CreateElement("w:color").CreateAttr("w:val", style.Color)
	}
	if style.HalfPoints > 0 {
		v := strconv.Itoa(style.HalfPoints)
		rPr.CreateElement("w:sz").CreateAttr("w:val", v)
		rPr.CreateElement("w:szCs").CreateAttr("w:val", v)
	}
	if len(rPr.ChildElements()) == 0 {
		r.RemoveChild(rPr)
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
	return r
}

// VisibleParagraphs returns the text a reader sees in each top-level
// paragraph. Runs that are hidden, white, or at most one point high are
// left out.
func (d *Document) VisibleParagraphs() []string {
	paras := d.paragraphs()
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		out = append(out, paragraphText(p, true))
	}
	return out
}

// VisibleText joins the non-empty visible paragraphs with newlines.
func (d *Document) VisibleText() string {
	var lines []string
	for _, t := range d.VisibleParagraphs() {
		if strings.TrimSpace(t) != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

// FullText returns every run's text, as a text extraction tool reads it.
func (d *Document) FullText() string {
	paras := d.paragraphs()
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		lines = append(lines, paragraphText(p, false))
	}
	return strings.Join(lines, "\n")
}

func paragraphText(p *etree.Element, visibleOnly bool) string {
	var sb strings.Builder
	for _, r := range p.FindElements(".//w:r") {
		if visibleOnly && invisible(r) {
			continue
		}
		for _, c := range r.ChildElements() {
			switch c.Tag {
			case "t":
				sb.WriteString(c.Text())
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func invisible(r *etree.Element) bool {
	rPr := r.SelectElement("w:rPr")
	if rPr == nil {
		return false
	}
	if v := rPr.SelectElement("w:vanish"); v != nil && onOff(v) {
		return true
	}
	if c := rPr.SelectElement("w:color"); c != nil && strings.EqualFold(c.SelectAttrValue("w:val", ""), InvisibleColor) {
		return true
	}
	if sz := rPr.SelectElement("w:sz"); sz != nil {
		if n, err := strconv.Atoi(sz.SelectAttrValue("w:val", "")); err == nil && n <= MaxInvisibleHalfPoints {
			return true
		}
	}
	return false
}

func onOff(el *etree.Element) bool {
	switch el.SelectAttrValue("w:val", "true") {
	case "0", "false", "off":
		return false
	}
	return true
}
