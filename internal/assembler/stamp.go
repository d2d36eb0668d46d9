package assembler

import (
	"strings"
	"time"

	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/docx"
)

// documentTitle prefixes the stamp name when the product has none.
const documentTitle = "Расчет на прочность"

// Stamp holds the title block values of a document.
type Stamp struct {
	Name      string
	Article   string
	Date      time.Time
	Developer string
	Checker   string
	Scale     string
}

// value returns the stamp value for a label, or false when the label is not a stamp field.
func (s Stamp) value(label string) (string, bool) {
	switch {
	case strings.Contains(label, "наимен"):
		if s.Name == "" {
			return documentTitle, true
		}
		return s.Name, true
	case strings.Contains(label, "обознач"), strings.Contains(label, "номер документа"), strings.Contains(label, "№ докум"):
		if s.Article == "" {
			return "", true
		}
		return "арт." + s.Article, true
	case label == "лист", strings.Contains(label, "листов"):
		return "1", true
	case label == "масштаб":
		return s.Scale, true
	case label == "дата":
		return s.Date.Format(DateLayout), true
	case strings.Contains(label, "разраб"):
		return s.Developer, true
	case strings.Contains(label, "пров."), strings.Contains(label, "н.контр"):
		return s.Checker, true
	}
	return "", false
}

// isStamp reports whether a table is the title block.
func isStamp(t *docx.Table) bool {
	text := config.FoldKey(t.Text())
	return strings.Contains(text, "разраб") && strings.Contains(text, "лист")
}

type stampWrite struct {
	cell  *docx.Cell
	value string
}

// fillStamp writes the stamp values next to their labels. Labels are read
// before anything is written, so a written value never acts as a label.
func fillStamp(tables []*docx.Table, s Stamp) int {
	var writes []stampWrite
	for _, t := range tables {
		if !isStamp(t) {
			continue
		}
		for _, row := range t.Rows() {
			cells := row.Cells()
			for i, c := range cells {
				label := config.FoldKey(c.Text())
				if label == "" {
					continue
				}
				v, ok := s.value(label)
				if !ok || v == "" {
					continue
				}
				target := c
				if i+1 < len(cells) {
					target = cells[i+1]
				}
				writes = append(writes, stampWrite{cell: target, value: v})
			}
		}
	}

	for _, w := range writes {
		w.cell.SetText(w.value, BodyFont, StampSize)
	}
	return len(writes)
}
