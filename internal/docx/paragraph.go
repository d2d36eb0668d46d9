package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	el *etree.Element
}

// Element returns the underlying w:p element.
func (p *Paragraph) Element() *etree.Element {
	return p.el
}

// runContainers are paragraph children whose runs belong to the paragraph text.
var runContainers = map[string]bool{
	"hyperlink": true,
	"smartTag":  true,
	"ins":       true,
	"fldSimple": true,
	"customXml": true,
}

// Runs returns the text runs of the paragraph in document order.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			switch {
			case isW(c, "r"):
				out = append(out, &Run{el: c})
			case c.Space == "w" && runContainers[c.Tag]:
				walk(c)
			case isW(c, "sdt"):
				if content := c.SelectElement("w:sdtContent"); content != nil {
					walk(content)
				}
			}
		}
	}
	walk(p.el)
	return out
}

// Text returns the paragraph text. Tabs become "\t" and breaks "\n".
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text())
	}
	return b.String()
}

// SetText replaces the paragraph text. The first run keeps its formatting and
// receives the text; every other run is removed.
func (p *Paragraph) SetText(text string) {
	runs := p.Runs()
	if len(runs) == 0 {
		p.AddRun(text)
		return
	}
	runs[0].SetText(text)
	for _, r := range runs[1:] {
		r.remove()
	}
}

// Clear removes every run, keeping paragraph properties.
func (p *Paragraph) Clear() {
	for _, r := range p.Runs() {
		r.remove()
	}
}

// AddRun appends a run holding text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{el: p.el.CreateElement("w:r")}
	if text != "" {
		r.SetText(text)
	}
	return r
}

// HasFieldCode reports whether the paragraph carries a complex or simple field.
func (p *Paragraph) HasFieldCode() bool {
	return p.el.FindElement(".//w:fldChar") != nil ||
		p.el.FindElement(".//w:instrText") != nil ||
		p.el.FindElement(".//w:fldSimple") != nil
}

// HasDrawing reports whether the paragraph contains a drawing.
func (p *Paragraph) HasDrawing() bool {
	return p.el.FindElement(".//w:drawing") != nil
}

// RemoveDrawings deletes every drawing of the paragraph and returns how many were removed.
func (p *Paragraph) RemoveDrawings() int {
	drawings := p.el.FindElements(".//w:drawing")
	for _, dr := range drawings {
		if parent := dr.Parent(); parent != nil {
			parent.RemoveChild(dr)
		}
	}
	return len(drawings)
}

// Remove detaches the paragraph from its parent.
func (p *Paragraph) Remove() {
	if parent := p.el.Parent(); parent != nil {
		parent.RemoveChild(p.el)
	}
}

// Next returns the sibling paragraph directly after p, or nil.
func (p *Paragraph) Next() *Paragraph {
	parent := p.el.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.ChildElements()
	for i, c := range siblings {
		if c == p.el && i+1 < len(siblings) && isW(siblings[i+1], "p") {
			return &Paragraph{el: siblings[i+1]}
		}
	}
	return nil
}

// InsertParagraphAfter creates an empty paragraph directly after p.
func (p *Paragraph) InsertParagraphAfter() *Paragraph {
	np := etree.NewElement("w:p")
	parent := p.el.Parent()
	if parent == nil {
		return &Paragraph{el: np}
	}
	parent.InsertChildAt(p.el.Index()+1, np)
	return &Paragraph{el: np}
}

// Run wraps a w:r element.
type Run struct {
	el *etree.Element
}

// Element returns the underlying w:r element.
func (r *Run) Element() *etree.Element {
	return r.el
}

// Text returns the run text.
func (r *Run) Text() string {
	var b strings.Builder
	for _, c := range r.el.ChildElements() {
		switch {
		case isW(c, "t"):
			b.WriteString(c.Text())
		case isW(c, "tab"):
			b.WriteByte('\t')
		case isW(c, "br"), isW(c, "cr"):
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SetText replaces the run content, keeping its properties.
func (r *Run) SetText(text string) {
	for _, c := range r.el.ChildElements() {
		if isW(c, "t") || isW(c, "tab") || isW(c, "br") || isW(c, "cr") {
			r.el.RemoveChild(c)
		}
	}

	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		t := r.el.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(b.String())
		b.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.el.CreateElement("w:tab")
		case '\n':
			flush()
			r.el.CreateElement("w:br")
		default:
			b.WriteRune(ch)
		}
	}
	flush()
}

func (r *Run) remove() {
	if parent := r.el.Parent(); parent != nil {
		parent.RemoveChild(r.el)
	}
}
