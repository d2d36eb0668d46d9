package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the settings file looked up inside the config directory.
	ConfigFileName = "config.json"

	// TextsFileName is the per-category narrative file looked up inside the config directory.
	TextsFileName = "texts_by_category.json"

	// DefaultConfigDir is the config directory relative to the working directory.
	DefaultConfigDir = "config"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "RPGEN"
)

// Loader handles loading configuration from the settings file, environment and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Files returns the settings and texts file paths inside dir.
func Files(dir string) (string, string) {
	return filepath.Join(dir, ConfigFileName), filepath.Join(dir, TextsFileName)
}

// CheckFiles returns ErrConfigMissing for the first of the given files that does not exist.
func CheckFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrConfigMissing, p)
			}
			return fmt.Errorf("cannot access %s: %w", p, err)
		}
	}
	return nil
}

// LoadWithFile loads configuration from a specific file path and validates it.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	cfg, err := l.LoadWithFileWithoutValidation(configFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithFileWithoutValidation loads configuration from a specific file path without validation.
func (l *Loader) LoadWithFileWithoutValidation(configFile string) (*Config, error) {
	if err := CheckFiles(configFile); err != nil {
		return nil, err
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// LoadTexts loads the per-category narrative texts.
func LoadTexts(textsFile string) (Texts, error) {
	if err := CheckFiles(textsFile); err != nil {
		return Texts{}, err
	}

	v := viper.New()
	v.SetConfigFile(textsFile)
	if err := v.ReadInConfig(); err != nil {
		return Texts{}, fmt.Errorf("error reading texts file %s: %w", textsFile, err)
	}

	var raw map[string]CategoryTexts
	if err := v.Unmarshal(&raw); err != nil {
		return Texts{}, fmt.Errorf("error unmarshaling texts: %w", err)
	}

	return NewTexts(raw), nil
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("paths.excel", defaults.Paths.Excel)
	l.v.SetDefault("paths.passports", defaults.Paths.Passports)
	l.v.SetDefault("paths.template_docx", defaults.Paths.TemplateDocx)
	l.v.SetDefault("paths.output_docs", defaults.Paths.OutputDocs)
	l.v.SetDefault("paths.log_file", defaults.Paths.LogFile)
	l.v.SetDefault("paths.images", defaults.Paths.Images)
	l.v.SetDefault("paths.metrics_file", defaults.Paths.MetricsFile)
	l.v.SetDefault("paths.report_file", defaults.Paths.ReportFile)

	l.v.SetDefault("region", defaults.Region)
	l.v.SetDefault("loads.mass_child", defaults.Loads.MassChild)
	l.v.SetDefault("passport_pattern", defaults.PassportPattern)

	l.v.SetDefault("excel_columns.article", defaults.ExcelColumns.Article)
	l.v.SetDefault("excel_columns.name", defaults.ExcelColumns.Name)
	l.v.SetDefault("excel_columns.image_path", defaults.ExcelColumns.ImagePath)
	l.v.SetDefault("excel_columns.children_count", defaults.ExcelColumns.ChildrenCount)
	l.v.SetDefault("excel_sheet", defaults.ExcelSheet)

	l.v.SetDefault("stamp.developer", defaults.Stamp.Developer)
	l.v.SetDefault("stamp.checker", defaults.Stamp.Checker)
	l.v.SetDefault("stamp.scale", defaults.Stamp.Scale)

	l.v.SetDefault("pdf.cell_gap", defaults.PDF.CellGap)
	l.v.SetDefault("pdf.line_tolerance", defaults.PDF.LineTolerance)

	l.v.SetDefault("field_refresh_command", defaults.FieldRefreshCommand)
	l.v.SetDefault("debug_mode", defaults.DebugMode)
	l.v.SetDefault("log_level", defaults.LogLevel)
}
