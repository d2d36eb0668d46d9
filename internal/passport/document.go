package passport

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Run is a fragment of text placed on a page, in PDF user space units.
type Run struct {
	Text     string
	X        float64
	Y        float64
	W        float64
	FontSize float64
}

// Page holds the text runs of one passport page. Number is one-based.
type Page struct {
	Number int
	Runs   []Run
}

// Document is a decoded passport.
type Document struct {
	Path  string
	Pages []Page
}

var disableConfigDir sync.Once

// Validate checks that path exists and is a structurally valid PDF.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPassportUnreadable, path, err)
	}

	disableConfigDir.Do(api.DisableConfigDir)
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPassportUnreadable, path, err)
	}
	return nil
}

// OpenDocument validates the passport and decodes the text runs of every page.
func OpenDocument(path string) (doc *Document, err error) {
	if err := Validate(path); err != nil {
		return nil, err
	}

	// The content decoder panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ParseError{Path: path, Err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()

	reader, err := pdf.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc = &Document{Path: path}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{Number: i})
			continue
		}
		doc.Pages = append(doc.Pages, Page{Number: i, Runs: pageRuns(page)})
	}
	if len(doc.Pages) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("document has no pages")}
	}
	return doc, nil
}

func pageRuns(page pdf.Page) []Run {
	content := page.Content()
	runs := make([]Run, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		runs = append(runs, Run{Text: t.S, X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize})
	}
	return runs
}
