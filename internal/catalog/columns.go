package catalog

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnMapping maps logical catalog fields to spreadsheet column letters.
type ColumnMapping struct {
	Article       string
	Name          string
	ImagePath     string
	ChildrenCount string
}

// DefaultColumnMapping returns the A-D layout of the standard catalog.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{Article: "A", Name: "B", ImagePath: "C", ChildrenCount: "D"}
}

type columnIndexes struct {
	article, name, imagePath, childrenCount int
}

// ColumnIndex converts a column letter to a zero-based index (A→0, Z→25, AA→26).
func ColumnIndex(letter string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(letter))
	if err != nil {
		return -1, fmt.Errorf("invalid column %q: %w", letter, err)
	}
	return n - 1, nil
}

func (m ColumnMapping) resolve() (columnIndexes, error) {
	var idx columnIndexes
	fields := []struct {
		name   string
		letter string
		dst    *int
	}{
		{"article", m.Article, &idx.article},
		{"name", m.Name, &idx.name},
		{"image_path", m.ImagePath, &idx.imagePath},
		{"children_count", m.ChildrenCount, &idx.childrenCount},
	}
	for _, f := range fields {
		i, err := ColumnIndex(f.letter)
		if err != nil {
			return columnIndexes{}, fmt.Errorf("column mapping %s: %w", f.name, err)
		}
		*f.dst = i
	}
	return idx, nil
}
