package assembler

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/docx"
	"github.com/MeKo-Tech/rpgen/internal/utils"
)

// Figure layout.
const (
	MainCaption      = "Рис.1 Общий вид изделия"
	imageLongSideIn  = 6.0
	shortAnchorRunes = 50
	// fallbackAnchorOffset counts paragraphs after the general information title.
	fallbackAnchorOffset = 3
	generalInfoTitle     = "ОБЩИЕ СВЕДЕНИЯ"
)

// ErrNoAnchor is returned when the template has no place for the product image.
var ErrNoAnchor = errors.New("no anchor paragraph for the product image")

// isMainFigure reports whether text names the general view figure.
func isMainFigure(text string) bool {
	return strings.Contains(text, "Общий вид") && strings.Contains(text, "Рис. 1")
}

// IsCaption reports whether text is a figure caption or a reference to a figure.
func IsCaption(text string) bool {
	text = strings.TrimSpace(text)
	lower := config.FoldKey(text)
	return strings.HasPrefix(text, "Рис.") ||
		strings.HasPrefix(text, "На Рис.") ||
		(strings.Contains(lower, "приведен") && strings.Contains(lower, "рис"))
}

// removeCaptions deletes figure captions other than the general view caption.
func removeCaptions(paragraphs []*docx.Paragraph) int {
	n := 0
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text())
		if IsCaption(text) && !isMainFigure(text) {
			p.Remove()
			n++
		}
	}
	return n
}

// removeExtraDrawings deletes drawings from paragraphs that do not belong to the general view.
func removeExtraDrawings(paragraphs []*docx.Paragraph) int {
	n := 0
	for _, p := range paragraphs {
		text := p.Text()
		if strings.Contains(text, "Рис. 1") || strings.Contains(text, "Общий вид") {
			continue
		}
		n += p.RemoveDrawings()
	}
	return n
}

// findImageAnchor returns the paragraph that receives the product image.
func findImageAnchor(paragraphs []*docx.Paragraph) *docx.Paragraph {
	for _, p := range paragraphs {
		text := p.Text()
		if strings.Contains(text, "Рис. 1") ||
			(strings.Contains(text, "Общий вид") && strings.Contains(text, "конструкци")) {
			return p
		}
	}
	for i, p := range paragraphs {
		if strings.Contains(p.Text(), generalInfoTitle) {
			if i+fallbackAnchorOffset < len(paragraphs) {
				return paragraphs[i+fallbackAnchorOffset]
			}
			return nil
		}
	}
	return nil
}

// insertImage places the product picture at the anchor and captions it.
func insertImage(doc *docx.Document, imagePath string, constraints utils.ImageConstraints) error {
	anchor := findImageAnchor(doc.Paragraphs())
	if anchor == nil {
		return ErrNoAnchor
	}

	img, err := utils.PrepareImage(imagePath, constraints)
	if err != nil {
		return err
	}
	w, h := utils.FitLongSide(img.Width, img.Height, imageLongSideIn)

	anchor.RemoveDrawings()
	if utf8.RuneCountInString(strings.TrimSpace(anchor.Text())) < shortAnchorRunes {
		anchor.Clear()
	}
	err = doc.AddPicture(anchor, docx.Picture{
		Data:   img.Data,
		Ext:    img.Ext,
		Width:  int64(w * docx.EMUPerInch),
		Height: int64(h * docx.EMUPerInch),
	})
	if err != nil {
		return fmt.Errorf("embed %s: %w", imagePath, err)
	}
	anchor.SetAlignment(docx.AlignCenter)
	addCaption(anchor, MainCaption)
	return nil
}

// addCaption writes the caption into the paragraph after p when that one
// mentions a figure, otherwise into a new paragraph.
func addCaption(p *docx.Paragraph, caption string) {
	target := p.Next()
	if target == nil || !strings.Contains(config.FoldKey(target.Text()), "рис") {
		target = p.InsertParagraphAfter()
	}
	target.SetText(caption)
	target.SetAlignment(docx.AlignCenter)
	if runs := target.Runs(); len(runs) > 0 {
		runs[0].SetItalic()
		runs[0].SetSize(CaptionSize)
	}
}
