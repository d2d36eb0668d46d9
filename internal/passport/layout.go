package passport

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Layout controls how runs are grouped into lines and cells.
type Layout struct {
	// CellGap is the horizontal gap that separates two cells.
	CellGap float64
	// LineTolerance is the largest baseline difference within one line.
	LineTolerance float64
}

// DefaultLayout returns the thresholds that fit the standard passport layout.
func DefaultLayout() Layout {
	return Layout{CellGap: 12, LineTolerance: 2}
}

// Cell is a horizontally contiguous piece of a line.
type Cell struct {
	Text string
	X    float64
}

// Line is a row of cells sharing a baseline, ordered left to right.
type Line struct {
	Y        float64
	FontSize float64
	Cells    []Cell
}

// cellSeparator keeps column boundaries visible in plain page text.
const cellSeparator = "  "

// Text joins the cells of a line.
func (l Line) Text() string {
	parts := make([]string, len(l.Cells))
	for i, c := range l.Cells {
		parts[i] = c.Text
	}
	return strings.Join(parts, cellSeparator)
}

// Table is a block of consecutive multi-cell lines. Continuation lines of a
// wrapped cell are joined to that cell with a line break.
type Table [][]string

// Lines groups the page runs into lines, top to bottom.
func (l Layout) Lines(p Page) []Line {
	runs := append([]Run(nil), p.Runs...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Y > runs[j].Y })

	var groups [][]Run
	for _, r := range runs {
		n := len(groups)
		if n > 0 && math.Abs(groups[n-1][0].Y-r.Y) <= l.LineTolerance {
			groups[n-1] = append(groups[n-1], r)
			continue
		}
		groups = append(groups, []Run{r})
	}

	lines := make([]Line, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].X < g[j].X })
		if line, ok := l.splitCells(g); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func (l Layout) splitCells(runs []Run) (Line, bool) {
	line := Line{Y: runs[0].Y}
	var b strings.Builder
	cellX := runs[0].X
	end := runs[0].X

	flush := func() {
		text := strings.Join(strings.Fields(b.String()), " ")
		if text != "" {
			line.Cells = append(line.Cells, Cell{Text: text, X: cellX})
		}
		b.Reset()
	}

	for i, r := range runs {
		line.FontSize = math.Max(line.FontSize, r.FontSize)
		if i > 0 {
			gap := r.X - end
			switch {
			case gap > l.CellGap:
				flush()
				cellX = r.X
			case gap > wordGap(r) && !endsWithSpace(b.String()) && !startsWithSpace(r.Text):
				b.WriteByte(' ')
			}
		}
		b.WriteString(r.Text)
		end = math.Max(end, r.X+r.W)
	}
	flush()

	return line, len(line.Cells) > 0
}

// wordGap is the gap that reads as a space between glyphs of the same word.
func wordGap(r Run) float64 {
	if r.FontSize <= 0 {
		return 2
	}
	return r.FontSize * 0.2
}

func endsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[len(s)-1]))
}

func startsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[0]))
}

// Text returns the page text, one line per row.
func (l Layout) Text(p Page) string {
	lines := l.Lines(p)
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text()
	}
	return strings.Join(parts, "\n")
}

// Tables finds the tables of a page.
func (l Layout) Tables(p Page) []Table {
	var (
		tables  []Table
		current Table
		columns []float64
		prev    Line
	)
	closeTable := func() {
		if len(current) > 0 {
			tables = append(tables, current)
		}
		current, columns = nil, nil
	}

	for _, line := range l.Lines(p) {
		switch {
		case len(line.Cells) >= 2:
			if len(current) > 0 && !l.continues(line, prev) {
				closeTable()
			}
			row := make([]string, len(line.Cells))
			for i, c := range line.Cells {
				row[i] = c.Text
			}
			if len(current) == 0 {
				for _, c := range line.Cells {
					columns = append(columns, c.X)
				}
			}
			current = append(current, row)
		case len(current) > 0 && l.continues(line, prev):
			if col := l.column(columns, line.Cells[0].X); col >= 0 {
				last := current[len(current)-1]
				if col < len(last) {
					last[col] += "\n" + line.Cells[0].Text
					break
				}
			}
			closeTable()
		default:
			closeTable()
		}
		prev = line
	}
	closeTable()

	return tables
}

// continues reports whether a single-cell line sits right below prev.
func (l Layout) continues(line, prev Line) bool {
	size := math.Max(line.FontSize, prev.FontSize)
	if size <= 0 {
		size = 10
	}
	return prev.Y-line.Y <= 2*size
}

// column returns the index of the column starting at x, or -1.
func (l Layout) column(columns []float64, x float64) int {
	for i, cx := range columns {
		if math.Abs(cx-x) <= l.CellGap {
			return i
		}
	}
	return -1
}
