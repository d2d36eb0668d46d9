package assembler

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/docx"
)

// Body font of generated documents.
const (
	BodyFont     = "Times New Roman"
	BodyFontSize = 12
	StampSize    = 10
	CaptionSize  = 11
)

const (
	paragraphSpacing = 6 * docx.TwipsPerPoint
	// tocTabPos is the right tab stop of table of contents lines, 6.2in.
	tocTabPos     = 62 * docx.TwipsPerInch / 10
	tocTitle      = "СОДЕРЖАНИЕ"
	maxFormulaLen = 120
)

var (
	engineeringKeywords = []string{"расчет", "нагруз", "конструк"}
	formulaTokens       = []string{"Fh", "Fz", "σ", "τ", "R", "M", "Q", "N"}

	tocLine     = regexp.MustCompile(`^(?P<num>\d+)\s*[.)]?\s*(?P<title>.+?)\s*(?:\.+|\s)+(?P<page>\d+)$`)
	formulaOnly = regexp.MustCompile(`^[A-Za-zА-Яа-я0-9\s()+\-*=/.,≥≤≈]+$`)
)

// formatEngineeringText sets the body font and spacing of calculation paragraphs.
func formatEngineeringText(paragraphs []*docx.Paragraph) int {
	n := 0
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text())
		if text == "" || !containsAny(config.FoldKey(text), engineeringKeywords) {
			continue
		}
		p.SetSpacing(paragraphSpacing, paragraphSpacing)
		p.SetFont(BodyFont, BodyFontSize)
		n++
	}
	return n
}

// formatTableOfContents normalizes the lines between the contents title and
// the first blank paragraph. Lines that carry fields keep their text.
func formatTableOfContents(paragraphs []*docx.Paragraph) int {
	start := -1
	for i, p := range paragraphs {
		if strings.Contains(strings.ToUpper(p.Text()), tocTitle) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	n := 0
	for _, p := range paragraphs[start+1:] {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			break
		}
		if !p.HasFieldCode() {
			if normalized, ok := NormalizeTOCLine(text); ok && normalized != p.Text() {
				p.SetText(normalized)
			}
		}
		p.SetAlignment(docx.AlignLeft)
		p.SetIndent(0, 0)
		p.SetSpacing(0, 0)
		p.SetKeepTogether()
		p.SetTabs(docx.Tab{Kind: docx.TabRight, Leader: docx.LeaderDot, Pos: tocTabPos})
		p.SetFont(BodyFont, BodyFontSize)
		n++
	}
	return n
}

// NormalizeTOCLine rewrites a contents line as "N. Title\tPage". Lines that
// already hold a tab are returned unchanged.
func NormalizeTOCLine(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, "\t") {
		return text, true
	}
	m := tocLine.FindStringSubmatch(text)
	if m == nil {
		return text, false
	}
	num := m[tocLine.SubexpIndex("num")]
	title := strings.Trim(strings.TrimSpace(m[tocLine.SubexpIndex("title")]), ".")
	page := m[tocLine.SubexpIndex("page")]
	return num + ". " + title + "\t" + page, true
}

// LooksLikeFormula reports whether a paragraph holds a short formula line.
func LooksLikeFormula(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > maxFormulaLen {
		return false
	}
	if !strings.Contains(text, "=") && !strings.ContainsAny(text, "≥≤≈") {
		return false
	}
	return containsAny(text, formulaTokens) || formulaOnly.MatchString(text)
}

// formatFormulas centers formula lines.
func formatFormulas(paragraphs []*docx.Paragraph) int {
	n := 0
	for _, p := range paragraphs {
		if !LooksLikeFormula(p.Text()) {
			continue
		}
		p.SetAlignment(docx.AlignCenter)
		p.SetIndent(0, 0)
		p.SetSpacing(paragraphSpacing, paragraphSpacing)
		p.SetFont(BodyFont, BodyFontSize)
		n++
	}
	return n
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
