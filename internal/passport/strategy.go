package passport

import "strings"

// Strategy finds technical data in a decoded passport. An empty result means
// the strategy did not recognize the layout.
type Strategy interface {
	Name() string
	Extract(doc *Document, layout Layout) *TechnicalData
}

// DefaultStrategies returns the strategies in the order they are tried.
func DefaultStrategies() []Strategy {
	return []Strategy{
		TableHeaderStrategy{},
		PageSequence{PageHeuristicStrategy{}, FreeTextStrategy{}},
	}
}

// dataPages are the zero-based pages that usually carry the technical data section.
var dataPages = []int{3, 4, 2}

const technicalSectionTitle = "Основные технические данные"

// TableHeaderStrategy looks on every page for a table headed "Параметр | Значение".
type TableHeaderStrategy struct{}

func (TableHeaderStrategy) Name() string { return "table_header" }

func (TableHeaderStrategy) Extract(doc *Document, layout Layout) *TechnicalData {
	for _, page := range doc.Pages {
		for _, table := range layout.Tables(page) {
			if len(table) <= 1 {
				continue
			}
			header := strings.ToUpper(strings.Join(table[0], " "))
			if !strings.Contains(header, "ПАРАМЕТР") || !strings.Contains(header, "ЗНАЧЕНИЕ") {
				continue
			}
			if data := ParseTable(table); data.Len() > 0 {
				return data
			}
		}
	}
	return NewTechnicalData()
}

// PageStrategy finds technical data on a single page.
type PageStrategy interface {
	Strategy
	ExtractPage(page Page, layout Layout) *TechnicalData
}

// PageHeuristicStrategy parses any sizeable table on the technical data pages.
type PageHeuristicStrategy struct{}

func (PageHeuristicStrategy) Name() string { return "page_heuristic" }

func (s PageHeuristicStrategy) Extract(doc *Document, layout Layout) *TechnicalData {
	return PageSequence{s}.Extract(doc, layout)
}

func (PageHeuristicStrategy) ExtractPage(page Page, layout Layout) *TechnicalData {
	for _, table := range layout.Tables(page) {
		if len(table) <= 2 {
			continue
		}
		if data := ParseTable(table); data.Len() > 0 {
			return data
		}
	}
	return NewTechnicalData()
}

// FreeTextStrategy reads dimension lines from the text of the technical data pages.
type FreeTextStrategy struct{}

func (FreeTextStrategy) Name() string { return "free_text" }

func (s FreeTextStrategy) Extract(doc *Document, layout Layout) *TechnicalData {
	return PageSequence{s}.Extract(doc, layout)
}

func (FreeTextStrategy) ExtractPage(page Page, layout Layout) *TechnicalData {
	return ParseFreeText(layout.Text(page))
}

// PageSequence visits the technical data pages in order and tries every
// page strategy on a page before moving to the next page.
type PageSequence []PageStrategy

func (p PageSequence) Name() string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

func (p PageSequence) Extract(doc *Document, layout Layout) *TechnicalData {
	for _, page := range technicalPages(doc, layout) {
		for _, s := range p {
			if data := s.ExtractPage(page, layout); data.Len() > 0 {
				return data
			}
		}
	}
	return NewTechnicalData()
}

func technicalPages(doc *Document, layout Layout) []Page {
	var pages []Page
	for _, idx := range dataPages {
		if idx >= len(doc.Pages) {
			continue
		}
		page := doc.Pages[idx]
		if strings.Contains(layout.Text(page), technicalSectionTitle) {
			pages = append(pages, page)
		}
	}
	return pages
}
