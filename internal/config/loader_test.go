package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `{
  "paths": {
    "excel": "data/catalog.xlsx",
    "passports": "data/passports",
    "template_docx": "templates/template.docx",
    "output_docs": "output",
    "log_file": "logs/run.log"
  },
  "region": "Москва",
  "loads": {
    "mass_child": 50,
    "snow_load": {"S0": 180},
    "wind_load": {"W0": 23}
  },
  "passport_pattern": "ПС_{article}.pdf",
  "categories": ["Домики", "Песочницы"],
  "stamp": {"developer": "Иванов"}
}`

// clearRpgenEnvVars clears all RPGEN_ environment variables.
func clearRpgenEnvVars() {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			parts := strings.SplitN(env, "=", 2)
			_ = os.Unsetenv(parts[0]) // Ignore error in cleanup function
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// TestNewLoader tests loader creation.
func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if loader.v == nil {
		t.Error("Loader viper instance is nil")
	}
}

func TestFiles(t *testing.T) {
	cfgPath, textsPath := Files("conf")
	if cfgPath != filepath.Join("conf", "config.json") {
		t.Errorf("config path = %s", cfgPath)
	}
	if textsPath != filepath.Join("conf", "texts_by_category.json") {
		t.Errorf("texts path = %s", textsPath)
	}
}

// TestLoadWithFile tests loading a complete settings file.
func TestLoadWithFile(t *testing.T) {
	clearRpgenEnvVars()
	tmpDir := t.TempDir()
	configFile := writeFile(t, tmpDir, ConfigFileName, sampleConfig)

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}

	if cfg.Region != "Москва" {
		t.Errorf("Expected region Москва, got %s", cfg.Region)
	}
	if cfg.Loads.MassChild != 50 {
		t.Errorf("Expected mass_child 50, got %v", cfg.Loads.MassChild)
	}
	if s0, ok := cfg.SnowLoad(); !ok || s0 != 180 {
		t.Errorf("SnowLoad() = %v, %v", s0, ok)
	}
	if w0, ok := cfg.WindLoad(); !ok || w0 != 23 {
		t.Errorf("WindLoad() = %v, %v", w0, ok)
	}
	if cfg.PassportPattern != "ПС_{article}.pdf" {
		t.Errorf("Unexpected passport pattern %s", cfg.PassportPattern)
	}
	if len(cfg.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %v", cfg.Categories)
	}

	// Defaults fill what the file omits
	if cfg.Stamp.Developer != "Иванов" {
		t.Errorf("Expected developer from file, got %s", cfg.Stamp.Developer)
	}
	if cfg.Stamp.Checker != DefaultChecker {
		t.Errorf("Expected default checker, got %s", cfg.Stamp.Checker)
	}
	if cfg.ExcelColumns.ChildrenCount != "D" {
		t.Errorf("Expected default children_count column D, got %s", cfg.ExcelColumns.ChildrenCount)
	}
	if cfg.PDF.CellGap != 12 {
		t.Errorf("Expected default cell gap 12, got %v", cfg.PDF.CellGap)
	}
	if loader.GetConfigFileUsed() != configFile {
		t.Errorf("GetConfigFileUsed() = %s", loader.GetConfigFileUsed())
	}
}

// TestLoadWithMissingFile tests that an absent settings file is reported as ErrConfigMissing.
func TestLoadWithMissingFile(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadWithFile(filepath.Join(t.TempDir(), ConfigFileName))
	if !errors.Is(err, ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing, got %v", err)
	}
}

// TestLoadWithInvalidFile tests that a malformed settings file fails.
func TestLoadWithInvalidFile(t *testing.T) {
	configFile := writeFile(t, t.TempDir(), ConfigFileName, `{"paths": `)

	loader := NewLoader()
	if _, err := loader.LoadWithFile(configFile); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

// TestLoadValidationFailure tests that missing required settings are rejected.
func TestLoadValidationFailure(t *testing.T) {
	clearRpgenEnvVars()
	configFile := writeFile(t, t.TempDir(), ConfigFileName, `{"paths": {"excel": "a.xlsx"}}`)

	loader := NewLoader()
	_, err := loader.LoadWithFile(configFile)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Expected validation error, got %v", err)
	}

	cfg, err := NewLoader().LoadWithFileWithoutValidation(configFile)
	if err != nil {
		t.Fatalf("LoadWithFileWithoutValidation() unexpected error: %v", err)
	}
	if cfg.Paths.Excel != "a.xlsx" {
		t.Errorf("Expected excel path a.xlsx, got %s", cfg.Paths.Excel)
	}
}

// TestEnvironmentOverride tests RPGEN_ environment variable overrides.
func TestEnvironmentOverride(t *testing.T) {
	clearRpgenEnvVars()
	t.Setenv("RPGEN_REGION", "Казань")
	t.Setenv("RPGEN_LOG_LEVEL", debugLevel)

	configFile := writeFile(t, t.TempDir(), ConfigFileName, sampleConfig)
	cfg, err := NewLoader().LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.Region != "Казань" {
		t.Errorf("Expected region from environment, got %s", cfg.Region)
	}
	if cfg.LogLevel != debugLevel {
		t.Errorf("Expected log level from environment, got %s", cfg.LogLevel)
	}
}

func TestLoadTexts(t *testing.T) {
	textsFile := writeFile(t, t.TempDir(), TextsFileName, `{
  "Домики": {
    "general_info": "Объектом расчета является игровой домик",
    "construction_description": "Домик выполнен из клееного бруса",
    "conclusion": "Прочность домика обеспечена"
  },
  "Песочницы": {
    "general_info": "Объектом расчета является песочница"
  }
}`)

	texts, err := LoadTexts(textsFile)
	if err != nil {
		t.Fatalf("LoadTexts() unexpected error: %v", err)
	}
	if texts.Len() != 2 {
		t.Errorf("Expected 2 categories, got %d", texts.Len())
	}
	if got := texts.For("Домики").Conclusion; got != "Прочность домика обеспечена" {
		t.Errorf("Unexpected conclusion %q", got)
	}
	if got := texts.For("Песочницы").Conclusion; got != "" {
		t.Errorf("Missing block of a known category should stay empty, got %q", got)
	}
}

func TestLoadTextsMissing(t *testing.T) {
	_, err := LoadTexts(filepath.Join(t.TempDir(), TextsFileName))
	if !errors.Is(err, ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing, got %v", err)
	}
}
