package testutil

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Narrative blocks of the sample template, as found in texts_by_category.json.
const (
	SampleGeneralInfo  = "Объектом расчета является песочница"
	SampleDescription  = "Конструкция песочницы выполнена из клееного бруса"
	SampleConclusion   = "По результатам расчета прочность песочницы обеспечена"
	SampleTemplateName = "template.docx"
)

// SampleTemplate returns the body blocks of a calculation template written
// for the "Змейка без песочницы" product, article 810152.
func SampleTemplate() []string {
	return []string{
		Para("Расчет на прочность"),
		Para("Змейка без песочницы ", "арт.810152"),
		Para("СОДЕРЖАНИЕ"),
		Para("1 Общие сведения....3"),
		Para("2) Расчетная схема 5"),
		FieldPara("3. Выводы\t9"),
		Para(""),
		Para("ОБЩИЕ СВЕДЕНИЯ"),
		Para(SampleGeneralInfo),
		Para(SampleDescription),
		Para("Изделие предназначено для детей."),
		DrawingPara("Рис. 1 Общий вид конструкции"),
		Para("Рис. 2 Расчетная схема"),
		DrawingPara("Схема нагружения"),
		Para("Нагрузка от 10 детей массой 32,5 кг."),
		Para("Fh = 646,8 Н"),
		Para("Fz = 6468 Н"),
		Para("σ = M / W ≤ R"),
		Para("Расчет песочницы, артикул GA8808 выполнен."),
		Para(SampleConclusion),
		TableXML([][]string{
			{"Разраб.", "", "Наименование", ""},
			{"Пров.", "", "Обозначение", ""},
			{"Н.контр.", "", "Масштаб", ""},
			{"Дата", "", "Лист", "", "Листов", ""},
		}),
	}
}

// Workspace is a self-contained run directory: configuration, catalog,
// passports, images, template and output.
type Workspace struct {
	Root         string
	ConfigDir    string
	PassportsDir string
	ImagesDir    string
	OutputDir    string
	TemplatePath string
	CatalogPath  string
	LogPath      string
}

// NewWorkspace creates the directory layout of a run under a temp dir.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	w, err := NewWorkspaceAt(CreateTempDir(t))
	require.NoError(t, err)
	return w
}

// NewWorkspaceAt creates the directory layout of a run under root.
func NewWorkspaceAt(root string) (*Workspace, error) {
	w := &Workspace{
		Root:         root,
		ConfigDir:    filepath.Join(root, "config"),
		PassportsDir: filepath.Join(root, "passports"),
		ImagesDir:    filepath.Join(root, "images"),
		OutputDir:    filepath.Join(root, "output"),
		TemplatePath: filepath.Join(root, "templates", SampleTemplateName),
		CatalogPath:  filepath.Join(root, "catalog.xlsx"),
		LogPath:      filepath.Join(root, "logs", "rp_generator.log"),
	}
	for _, dir := range []string{w.ConfigDir, w.PassportsDir, w.ImagesDir, w.OutputDir} {
		if err := EnsureDir(dir); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// ConfigMap returns the settings of the workspace as written to config.json.
func (w *Workspace) ConfigMap() map[string]interface{} {
	return map[string]interface{}{
		"paths": map[string]interface{}{
			"excel":         w.CatalogPath,
			"passports":     w.PassportsDir,
			"template_docx": w.TemplatePath,
			"output_docs":   w.OutputDir,
			"log_file":      w.LogPath,
		},
		"region":           "Санкт-Петербург",
		"loads":            map[string]interface{}{"mass_child": 53.8},
		"passport_pattern": "*{ART}*.pdf",
	}
}

// WriteConfig writes config.json, applying top-level overrides.
func (w *Workspace) WriteConfig(t *testing.T, overrides map[string]interface{}) {
	t.Helper()

	cfg := w.ConfigMap()
	for k, v := range overrides {
		cfg[k] = v
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	WriteFile(t, filepath.Join(w.ConfigDir, "config.json"), data)
}

// WriteTexts writes texts_by_category.json. A nil map writes the sample narrative
// for sandboxes and houses.
func (w *Workspace) WriteTexts(t *testing.T, texts map[string]map[string]string) {
	t.Helper()

	if texts == nil {
		blocks := map[string]string{
			"general_info":             SampleGeneralInfo,
			"construction_description": SampleDescription,
			"conclusion":               SampleConclusion,
		}
		texts = map[string]map[string]string{"Песочницы": blocks, "Домики": blocks}
	}
	data, err := json.MarshalIndent(texts, "", "  ")
	require.NoError(t, err)
	WriteFile(t, filepath.Join(w.ConfigDir, "texts_by_category.json"), data)
}

// WriteTemplate writes the template package; no blocks means SampleTemplate.
func (w *Workspace) WriteTemplate(t *testing.T, body ...string) {
	t.Helper()

	if len(body) == 0 {
		body = SampleTemplate()
	}
	WriteDocx(t, w.TemplatePath, body...)
}

// WriteCatalog writes the catalog workbook with a header row followed by rows.
func (w *Workspace) WriteCatalog(t *testing.T, rows [][]interface{}) {
	t.Helper()

	WriteWorkbook(t, w.CatalogPath, CatalogRows(rows))
}

// CatalogRows prepends the catalog header row.
func CatalogRows(rows [][]interface{}) [][]interface{} {
	return append([][]interface{}{
		{"Артикул", "Наименование", "Картинка", "Количество детей"},
	}, rows...)
}

// AddImage writes a product picture into the images directory and returns its path.
func (w *Workspace) AddImage(t *testing.T, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(w.ImagesDir, name)
	SaveImage(t, CreateProductImage(name, width, height), path)
	return path
}

// AddPassport writes a passport file with the given content and returns its path.
func (w *Workspace) AddPassport(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(w.PassportsDir, name)
	WriteFile(t, path, content)
	return path
}

// WriteWorkbook writes rows to the first sheet of a new workbook.
func WriteWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	require.NoError(t, SaveWorkbook(path, rows))
}

// SaveWorkbook writes rows to the first sheet of a new workbook.
func SaveWorkbook(path string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		r := row
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &r); err != nil {
			return err
		}
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return f.SaveAs(path)
}
