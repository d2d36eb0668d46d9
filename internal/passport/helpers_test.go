package passport

import "unicode/utf8"

const glyphWidth = 5.0

// textRun places a whole string as one run at (x, y).
func textRun(x, y float64, s string) Run {
	return Run{Text: s, X: x, Y: y, W: glyphWidth * float64(utf8.RuneCountInString(s)), FontSize: 10}
}

// row lays out cells at fixed column offsets on one baseline.
func row(y float64, cells ...string) []Run {
	runs := make([]Run, 0, len(cells))
	for i, c := range cells {
		if c == "" {
			continue
		}
		runs = append(runs, textRun(50+float64(i)*250, y, c))
	}
	return runs
}

func page(number int, rows ...[]Run) Page {
	p := Page{Number: number}
	for _, r := range rows {
		p.Runs = append(p.Runs, r...)
	}
	return p
}

func blankPages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = page(i+1, row(700, "Паспорт изделия"))
	}
	return pages
}
