package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Table wraps a w:tbl element.
type Table struct {
	el *etree.Element
}

// Rows returns the table rows.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, c := range t.el.ChildElements() {
		if isW(c, "tr") {
			out = append(out, &Row{el: c})
		}
	}
	return out
}

// Text joins the text of every non-empty cell with spaces.
func (t *Table) Text() string {
	var parts []string
	for _, r := range t.Rows() {
		for _, c := range r.Cells() {
			if text := c.Text(); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// Paragraphs returns every paragraph of every cell, nested tables included.
func (t *Table) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, r := range t.Rows() {
		for _, c := range r.Cells() {
			out = append(out, c.Paragraphs()...)
			for _, nested := range blockTables(c.el) {
				out = append(out, nested.Paragraphs()...)
			}
		}
	}
	return out
}

// Row wraps a w:tr element.
type Row struct {
	el *etree.Element
}

// Cells returns the row cells.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, c := range r.el.ChildElements() {
		switch {
		case isW(c, "tc"):
			out = append(out, &Cell{el: c})
		case isW(c, "sdt"):
			if content := c.SelectElement("w:sdtContent"); content != nil {
				for _, tc := range content.SelectElements("w:tc") {
					out = append(out, &Cell{el: tc})
				}
			}
		}
	}
	return out
}

// Cell wraps a w:tc element.
type Cell struct {
	el *etree.Element
}

// Paragraphs returns the cell paragraphs.
func (c *Cell) Paragraphs() []*Paragraph {
	return blockParagraphs(c.el)
}

// Text returns the cell paragraphs joined with line breaks.
func (c *Cell) Text() string {
	paragraphs := c.Paragraphs()
	parts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// SetText leaves a single paragraph in the cell holding text in the given
// font. The paragraph keeps its properties.
func (c *Cell) SetText(text, family string, sizePt float64) {
	paragraphs := c.Paragraphs()
	var p *Paragraph
	if len(paragraphs) == 0 {
		p = &Paragraph{el: c.el.CreateElement("w:p")}
	} else {
		p = paragraphs[0]
		for _, extra := range paragraphs[1:] {
			extra.Remove()
		}
	}
	p.Clear()
	r := p.AddRun(text)
	if family != "" {
		r.SetFont(family)
	}
	if sizePt > 0 {
		r.SetSize(sizePt)
	}
}
