// Package catalog reads the product catalog workbook.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrCatalogUnreadable is returned when the workbook is missing or cannot be parsed.
var ErrCatalogUnreadable = errors.New("catalog workbook unreadable")

// DefaultChildrenCount is used when the children count cell is empty or invalid.
const DefaultChildrenCount = 1

// Product is one catalog row that has both an article and a name.
type Product struct {
	Article       string
	Name          string
	ImagePath     string
	ChildrenCount int
	Category      Category
	// RowIndex is the zero-based data row, the header excluded.
	RowIndex int
}

// Rows holds the data rows of a worksheet, header removed.
type Rows [][]string

// Options tunes how rows become products.
type Options struct {
	// ImagesDir resolves relative image paths when set.
	ImagesDir string
	Logger    *slog.Logger
}

// Load reads the named worksheet (or the first one when sheet is empty) and
// drops the header row.
func Load(path, sheet string) (Rows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCatalogUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s: no worksheets", ErrCatalogUnreadable, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: sheet %q: %w", ErrCatalogUnreadable, path, sheet, err)
	}
	if len(rows) == 0 {
		return Rows{}, nil
	}
	return Rows(rows[1:]), nil
}

// ToProducts converts data rows into products. Rows without an article or a
// name are skipped and counted, as are rows that fail while being read.
func ToProducts(rows Rows, mapping ColumnMapping, opts Options) ([]Product, int, error) {
	idx, err := mapping.resolve()
	if err != nil {
		return nil, 0, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	products := make([]Product, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		p, ok, rowErr := convertRow(i, row, idx, opts.ImagesDir)
		switch {
		case rowErr != nil:
			logger.Warn("catalog row skipped", "row", i, "error", rowErr)
			skipped++
		case !ok:
			logger.Debug("catalog row without article or name", "row", i)
			skipped++
		default:
			products = append(products, p)
		}
	}
	return products, skipped, nil
}

func convertRow(i int, row []string, idx columnIndexes, imagesDir string) (p Product, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row %d: %v", i, r)
		}
	}()

	article, hasArticle := cell(row, idx.article)
	name, hasName := cell(row, idx.name)
	if !hasArticle || !hasName {
		return Product{}, false, nil
	}

	imagePath, _ := cell(row, idx.imagePath)
	if imagePath != "" && imagesDir != "" && !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(imagesDir, imagePath)
	}

	countText, _ := cell(row, idx.childrenCount)

	return Product{
		Article:       article,
		Name:          name,
		ImagePath:     imagePath,
		ChildrenCount: ParseChildrenCount(countText),
		Category:      CategoryOf(name),
		RowIndex:      i,
	}, true, nil
}

// cell returns the trimmed cell value; absent and blank cells report false.
func cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

// ParseChildrenCount parses a numeric cell, accepting a decimal comma, and
// truncates it. Empty, invalid and negative input yields DefaultChildrenCount.
func ParseChildrenCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return DefaultChildrenCount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return DefaultChildrenCount
	}
	return int(v)
}
