package orchestrator

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/rpgen/internal/assembler"
	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/runlog"
	"github.com/MeKo-Tech/rpgen/internal/testutil"
)

func loadWorkspace(t *testing.T, ws *testutil.Workspace, overrides map[string]interface{}) (*config.Config, config.Texts) {
	t.Helper()

	ws.WriteConfig(t, overrides)
	ws.WriteTexts(t, nil)
	cfgFile, textsFile := config.Files(ws.ConfigDir)

	cfg, err := config.NewLoader().LoadWithFile(cfgFile)
	require.NoError(t, err)
	texts, err := config.LoadTexts(textsFile)
	require.NoError(t, err)
	return cfg, texts
}

func TestExecuteMixedCatalog(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteTemplate(t)

	okImage := ws.AddImage(t, "GA9999.png", 400, 200)
	ws.AddPassport(t, "Паспорт GA9999.pdf", testutil.MinimalPDF("Passport GA9999"))
	noPassportImage := ws.AddImage(t, "GA2.png", 50, 50)
	brokenImage := ws.AddImage(t, "GA3.png", 50, 50)
	ws.AddPassport(t, "GA3.pdf", []byte("this is not a pdf"))

	ws.WriteCatalog(t, [][]interface{}{
		{"GA9999", "Песочница Кораблик", okImage, 10},
		{"GA1", "Домик Теремок", filepath.Join(ws.ImagesDir, "missing.png"), 4},
		{"", "Строка без артикула", "", ""},
		{"GA2", "Горка", noPassportImage, 2},
		{"GA3", "Беседка", brokenImage, 6},
	})

	metricsFile := filepath.Join(ws.Root, "metrics", "rpgen.prom")
	reportFile := filepath.Join(ws.Root, "reports", "run.yaml")
	cfg, texts := loadWorkspace(t, ws, nil)
	cfg.Paths.MetricsFile = metricsFile
	cfg.Paths.ReportFile = reportFile

	var logs bytes.Buffer
	res, err := Execute(context.Background(), cfg, texts, runlog.NewLogger(&logs, slog.LevelInfo), nil)
	require.NoError(t, err)

	stats := res.Stats
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, stats.SkippedRows)
	assert.Equal(t, map[ErrorKind]int{ErrNoImage: 1, ErrNoPassport: 1, ErrPDFParse: 1}, stats.Errors)
	assert.Equal(t, stats.Total, stats.Succeeded+stats.Failed())

	out := filepath.Join(ws.OutputDir, assembler.OutputFileName("GA9999", "Песочница Кораблик"))
	assert.Equal(t, out, res.Outcomes[0].OutputPath)
	assert.True(t, testutil.FileExists(out))
	assert.True(t, testutil.DocxHasPart(out, "word/media/product1.png"))

	text := logs.String()
	assert.Contains(t, text, "НАЧАЛО РАБОТЫ ПРОГРАММЫ")
	assert.Contains(t, text, "Все компоненты инициализированы успешно")
	assert.Contains(t, text, "Загружено изделий из Excel: 4")
	assert.Contains(t, text, "OK | GA9999 | Песочница Кораблик")
	assert.Contains(t, text, "ERR_NO_IMAGE | GA1")
	assert.Contains(t, text, "ERR_NO_PASSPORT | GA2")
	assert.Contains(t, text, "ERR_PDF_PARSE | GA3")

	assert.True(t, testutil.FileExists(metricsFile))
	assert.True(t, testutil.FileExists(reportFile))
}

func TestExecuteMissingCatalog(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	cfg, texts := loadWorkspace(t, ws, nil)

	var logs bytes.Buffer
	res, err := Execute(context.Background(), cfg, texts, runlog.NewLogger(&logs, slog.LevelInfo), nil)

	require.ErrorIs(t, err, ErrInitialization)
	assert.Nil(t, res)
	assert.Contains(t, logs.String(), "ERR_EXCEL_READ")
}

func TestExecuteInvalidColumn(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	cfg, texts := loadWorkspace(t, ws, nil)
	cfg.ExcelColumns.Name = "1"

	var logs bytes.Buffer
	_, err := Execute(context.Background(), cfg, texts, runlog.NewLogger(&logs, slog.LevelInfo), nil)

	require.ErrorIs(t, err, ErrInitialization)
	assert.Contains(t, logs.String(), "ERR_INIT")
}

func TestExecuteCategoryAllowList(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteTemplate(t)
	image := ws.AddImage(t, "GA9999.png", 120, 80)
	ws.AddPassport(t, "GA9999.pdf", testutil.MinimalPDF("Passport"))
	ws.WriteCatalog(t, [][]interface{}{
		{"GA9999", "Песочница Кораблик", image, 10},
		{"GA5", "Домик Теремок", "", 4},
	})
	cfg, texts := loadWorkspace(t, ws, map[string]interface{}{"categories": []string{"Песочницы"}})

	res, err := Execute(context.Background(), cfg, texts, runlog.Discard(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Total)
	assert.Equal(t, 1, res.Stats.Succeeded)
}

func TestNewComponentsCreatesOutputDir(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	cfg, texts := loadWorkspace(t, ws, nil)
	cfg.Paths.OutputDocs = filepath.Join(ws.Root, "nested", "docs")

	comps, err := NewComponents(cfg, texts, runlog.Discard())
	require.NoError(t, err)

	info, err := os.Stat(cfg.Paths.OutputDocs)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NotNil(t, comps.Locator)
	assert.Equal(t, "A", comps.Mapping.Article)
}

func TestNewComponentsBadRefreshCommand(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	cfg, texts := loadWorkspace(t, ws, nil)
	cfg.FieldRefreshCommand = `soffice "unterminated`

	_, err := NewComponents(cfg, texts, runlog.Discard())
	require.ErrorIs(t, err, ErrInitialization)
}
