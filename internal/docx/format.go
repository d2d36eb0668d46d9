package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// Length units.
const (
	TwipsPerPoint = 20
	TwipsPerInch  = 1440
	EMUPerInch    = 914400
)

// Paragraph alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
	AlignBoth   = "both"
)

// Tab stop kinds and leaders.
const (
	TabRight  = "right"
	TabLeft   = "left"
	LeaderDot = "dot"
)

// Child order of w:pPr required by the schema.
var pPrOrder = []string{
	"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
	"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens",
	"kinsoku", "wordWrap", "overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN",
	"bidi", "adjustRightInd", "snapToGrid", "spacing", "ind", "contextualSpacing",
	"mirrorIndents", "suppressOverlap", "jc", "textDirection", "textAlignment",
	"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr", "pPrChange",
}

// Child order of w:rPr required by the schema.
var rPrOrder = []string{
	"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
	"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish",
	"webHidden", "color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight",
	"u", "effect", "bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang",
	"eastAsianLayout", "specVanish", "oMath",
}

// Tab is a paragraph tab stop. Pos is in twips.
type Tab struct {
	Kind   string
	Leader string
	Pos    int
}

// properties returns the w:pPr of the paragraph, creating it as the first child.
func (p *Paragraph) properties() *etree.Element {
	if pPr := p.el.SelectElement("w:pPr"); pPr != nil {
		return pPr
	}
	pPr := etree.NewElement("w:pPr")
	p.el.InsertChildAt(0, pPr)
	return pPr
}

// SetAlignment sets w:jc.
func (p *Paragraph) SetAlignment(align string) {
	jc := ensureChild(p.properties(), "jc", pPrOrder)
	setVal(jc, align)
}

// Alignment returns the w:jc value, or "" when unset.
func (p *Paragraph) Alignment() string {
	pPr := p.el.SelectElement("w:pPr")
	if pPr == nil {
		return ""
	}
	if jc := pPr.SelectElement("w:jc"); jc != nil {
		return jc.SelectAttrValue("w:val", "")
	}
	return ""
}

// SetIndent sets the left and first-line indents in twips.
func (p *Paragraph) SetIndent(left, firstLine int) {
	ind := ensureChild(p.properties(), "ind", pPrOrder)
	for _, a := range []string{"w:start", "w:hanging", "w:firstLine", "w:left"} {
		ind.RemoveAttr(a)
	}
	ind.CreateAttr("w:left", strconv.Itoa(left))
	ind.CreateAttr("w:firstLine", strconv.Itoa(firstLine))
}

// SetSpacing sets the space before and after the paragraph in twips.
func (p *Paragraph) SetSpacing(before, after int) {
	sp := ensureChild(p.properties(), "spacing", pPrOrder)
	sp.RemoveAttr("w:beforeAutospacing")
	sp.RemoveAttr("w:afterAutospacing")
	sp.CreateAttr("w:before", strconv.Itoa(before))
	sp.CreateAttr("w:after", strconv.Itoa(after))
}

// SetKeepTogether keeps the paragraph lines together and with the next paragraph.
func (p *Paragraph) SetKeepTogether() {
	pPr := p.properties()
	ensureChild(pPr, "keepNext", pPrOrder)
	ensureChild(pPr, "keepLines", pPrOrder)
}

// SetTabs replaces the paragraph tab stops.
func (p *Paragraph) SetTabs(tabs ...Tab) {
	pPr := p.properties()
	if old := pPr.SelectElement("w:tabs"); old != nil {
		pPr.RemoveChild(old)
	}
	if len(tabs) == 0 {
		return
	}
	el := ensureChild(pPr, "tabs", pPrOrder)
	for _, t := range tabs {
		tab := el.CreateElement("w:tab")
		tab.CreateAttr("w:val", t.Kind)
		if t.Leader != "" {
			tab.CreateAttr("w:leader", t.Leader)
		}
		tab.CreateAttr("w:pos", strconv.Itoa(t.Pos))
	}
}

// Tabs returns the paragraph tab stops.
func (p *Paragraph) Tabs() []Tab {
	pPr := p.el.SelectElement("w:pPr")
	if pPr == nil {
		return nil
	}
	el := pPr.SelectElement("w:tabs")
	if el == nil {
		return nil
	}
	var out []Tab
	for _, t := range el.SelectElements("w:tab") {
		pos, _ := strconv.Atoi(t.SelectAttrValue("w:pos", "0"))
		out = append(out, Tab{
			Kind:   t.SelectAttrValue("w:val", ""),
			Leader: t.SelectAttrValue("w:leader", ""),
			Pos:    pos,
		})
	}
	return out
}

// SetFont applies a font family and size in points to every run.
func (p *Paragraph) SetFont(family string, sizePt float64) {
	for _, r := range p.Runs() {
		r.SetFont(family)
		r.SetSize(sizePt)
	}
}

func (r *Run) properties() *etree.Element {
	if rPr := r.el.SelectElement("w:rPr"); rPr != nil {
		return rPr
	}
	rPr := etree.NewElement("w:rPr")
	r.el.InsertChildAt(0, rPr)
	return rPr
}

// SetFont sets the run font family for every script.
func (r *Run) SetFont(family string) {
	fonts := ensureChild(r.properties(), "rFonts", rPrOrder)
	for _, a := range []string{"w:asciiTheme", "w:hAnsiTheme", "w:cstheme", "w:eastAsiaTheme"} {
		fonts.RemoveAttr(a)
	}
	for _, a := range []string{"w:ascii", "w:hAnsi", "w:cs", "w:eastAsia"} {
		fonts.CreateAttr(a, family)
	}
}

// Font returns the ASCII font family of the run, or "".
func (r *Run) Font() string {
	rPr := r.el.SelectElement("w:rPr")
	if rPr == nil {
		return ""
	}
	if fonts := rPr.SelectElement("w:rFonts"); fonts != nil {
		return fonts.SelectAttrValue("w:ascii", "")
	}
	return ""
}

// SetSize sets the run size in points.
func (r *Run) SetSize(pt float64) {
	halfPoints := strconv.Itoa(int(pt * 2))
	rPr := r.properties()
	setVal(ensureChild(rPr, "sz", rPrOrder), halfPoints)
	setVal(ensureChild(rPr, "szCs", rPrOrder), halfPoints)
}

// Size returns the run size in points, or 0 when unset.
func (r *Run) Size() float64 {
	rPr := r.el.SelectElement("w:rPr")
	if rPr == nil {
		return 0
	}
	sz := rPr.SelectElement("w:sz")
	if sz == nil {
		return 0
	}
	v, err := strconv.Atoi(sz.SelectAttrValue("w:val", "0"))
	if err != nil {
		return 0
	}
	return float64(v) / 2
}

// SetItalic turns italics on.
func (r *Run) SetItalic() {
	rPr := r.properties()
	ensureChild(rPr, "i", rPrOrder)
	ensureChild(rPr, "iCs", rPrOrder)
}

// Italic reports whether the run is italic.
func (r *Run) Italic() bool {
	rPr := r.el.SelectElement("w:rPr")
	if rPr == nil {
		return false
	}
	i := rPr.SelectElement("w:i")
	if i == nil {
		return false
	}
	v := i.SelectAttrValue("w:val", "true")
	return v != "false" && v != "0"
}

// ensureChild returns the w:<tag> child of parent, inserting it at the
// position the schema order requires.
func ensureChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if el := parent.SelectElement("w:" + tag); el != nil {
		return el
	}
	rank := indexOf(order, tag)
	el := etree.NewElement("w:" + tag)
	for _, c := range parent.ChildElements() {
		if c.Space == "w" && indexOf(order, c.Tag) > rank {
			parent.InsertChildAt(c.Index(), el)
			return el
		}
	}
	parent.AddChild(el)
	return el
}

func indexOf(order []string, tag string) int {
	for i, t := range order {
		if t == tag {
			return i
		}
	}
	return len(order)
}

func setVal(el *etree.Element, v string) {
	el.RemoveAttr("w:val")
	el.CreateAttr("w:val", v)
}
