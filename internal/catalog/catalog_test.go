package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLoadSkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Артикул", "Наименование", "Картинка", "Дети"},
		{"GA9999", "Домик Тест", "img/ga9999.png", 4},
		{"GA1000", "Качалка", "", ""},
	})

	rows, err := Load(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "GA9999", rows[0][0])
	assert.Equal(t, "4", rows[0][3])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogUnreadable))
}

func TestLoadNotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := Load(path, "")
	assert.ErrorIs(t, err, ErrCatalogUnreadable)
}

func TestLoadUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeWorkbook(t, path, [][]interface{}{{"Артикул"}})

	_, err := Load(path, "Каталог")
	assert.ErrorIs(t, err, ErrCatalogUnreadable)
}

func TestToProducts(t *testing.T) {
	rows := Rows{
		{"GA9999", "Домик Тест", "/abs/ga9999.png", "10"},
		{"", "Без артикула", "", "3"},
		{"GA2000", "  ", "", "3"},
		{"GA3000", "Мини-беседка Уют", "pics/ga3000.jpg", "2,7"},
		{"GA4000", "Качели"},
		{"GA5000", "Песочница Кораблик", "", "-3"},
		{"GA6000", "Игровой комплекс", "", "0"},
	}

	products, skipped, err := ToProducts(rows, DefaultColumnMapping(), Options{ImagesDir: "/data/images"})
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, products, 5)
	assert.LessOrEqual(t, len(products), len(rows))

	house := products[0]
	assert.Equal(t, "GA9999", house.Article)
	assert.Equal(t, "Домик Тест", house.Name)
	assert.Equal(t, "/abs/ga9999.png", house.ImagePath)
	assert.Equal(t, 10, house.ChildrenCount)
	assert.Equal(t, Houses, house.Category)
	assert.Equal(t, 0, house.RowIndex)

	gazebo := products[1]
	assert.Equal(t, filepath.Join("/data/images", "pics/ga3000.jpg"), gazebo.ImagePath)
	assert.Equal(t, 2, gazebo.ChildrenCount)
	assert.Equal(t, MiniGazebos, gazebo.Category)
	assert.Equal(t, 3, gazebo.RowIndex)

	swing := products[2]
	assert.Empty(t, swing.ImagePath)
	assert.Equal(t, DefaultChildrenCount, swing.ChildrenCount)
	assert.Equal(t, PlayElements, swing.Category)

	assert.Equal(t, DefaultChildrenCount, products[3].ChildrenCount)
	assert.Equal(t, 0, products[4].ChildrenCount)
}

func TestToProductsCustomMapping(t *testing.T) {
	rows := Rows{{"x", "Беседка Лесная", "GA7000", "", "5"}}
	mapping := ColumnMapping{Article: "C", Name: "B", ImagePath: "D", ChildrenCount: "E"}

	products, skipped, err := ToProducts(rows, mapping, Options{})
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, products, 1)
	assert.Equal(t, "GA7000", products[0].Article)
	assert.Equal(t, 5, products[0].ChildrenCount)
	assert.Equal(t, Gazebos, products[0].Category)
}

func TestToProductsInvalidMapping(t *testing.T) {
	_, _, err := ToProducts(Rows{}, ColumnMapping{Article: "1", Name: "B", ImagePath: "C", ChildrenCount: "D"}, Options{})
	assert.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	tests := map[string]int{"A": 0, "B": 1, "Z": 25, "AA": 26, "AB": 27, "d": 3}
	for letter, want := range tests {
		got, err := ColumnIndex(letter)
		require.NoError(t, err, letter)
		assert.Equal(t, want, got, letter)
	}

	_, err := ColumnIndex("")
	assert.Error(t, err)
}

func TestParseChildrenCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{" 4 ", 4},
		{"3.9", 3},
		{"2,5", 2},
		{"0", 0},
		{"", 1},
		{"много", 1},
		{"-2", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseChildrenCount(tt.in), "input %q", tt.in)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Домик Теремок", Houses},
		{"ИГРОВОЙ КОМПЛЕКС Замок", PlaySystems},
		{"Песочница с крышкой", Sandboxes},
		{"Мини-беседка Уют", MiniGazebos},
		{"Минибеседка", MiniGazebos},
		{"Беседка Лесная", Gazebos},
		{"Качалка на пружине", PlayElements},
		{"Домик-беседка", Houses},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryOf(tt.name), tt.name)
	}
}

func TestGenitive(t *testing.T) {
	assert.Equal(t, "игрового домика", Houses.Genitive())
	assert.Equal(t, "игрового комплекса", PlaySystems.Genitive())
	assert.Equal(t, "игрового элемента", PlayElements.Genitive())
	assert.Equal(t, "мини-беседки", MiniGazebos.Genitive())
	assert.Equal(t, "беседки", Gazebos.Genitive())
	assert.Equal(t, "песочницы", Sandboxes.Genitive())
	assert.Equal(t, FallbackGenitive, Category("Качели").Genitive())
}
