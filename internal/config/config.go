package config

import (
	"errors"
	"fmt"
	"strings"
)

// Default values used when config.json omits a setting.
const (
	DefaultRegion          = "Санкт-Петербург"
	DefaultMassChild       = 53.8
	DefaultPassportPattern = "*{ART}*.pdf"
	DefaultDeveloper       = "Автогенератор"
	DefaultChecker         = "Контроль СК"
	DefaultScale           = "1:10"
)

// ErrConfigMissing is returned when a required configuration file does not exist.
var ErrConfigMissing = errors.New("configuration file not found")

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			LogFile: "logs/rp_generator.log",
		},
		Region: DefaultRegion,
		Loads: LoadsConfig{
			MassChild: DefaultMassChild,
		},
		PassportPattern: DefaultPassportPattern,
		ExcelColumns: ExcelColumnsConfig{
			Article:       "A",
			Name:          "B",
			ImagePath:     "C",
			ChildrenCount: "D",
		},
		Stamp: StampConfig{
			Developer: DefaultDeveloper,
			Checker:   DefaultChecker,
			Scale:     DefaultScale,
		},
		PDF: PDFConfig{
			CellGap:       12,
			LineTolerance: 2,
		},
		LogLevel: "info",
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	required := []struct{ key, value string }{
		{"paths.excel", c.Paths.Excel},
		{"paths.passports", c.Paths.Passports},
		{"paths.template_docx", c.Paths.TemplateDocx},
		{"paths.output_docs", c.Paths.OutputDocs},
		{"paths.log_file", c.Paths.LogFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("missing required setting: %s", r.key)
		}
	}

	if c.Loads.MassChild <= 0 {
		return fmt.Errorf("invalid loads.mass_child: %v (must be positive)", c.Loads.MassChild)
	}

	if strings.TrimSpace(c.PassportPattern) == "" {
		return errors.New("passport_pattern must not be empty")
	}

	columns := map[string]string{
		"excel_columns.article":        c.ExcelColumns.Article,
		"excel_columns.name":           c.ExcelColumns.Name,
		"excel_columns.image_path":     c.ExcelColumns.ImagePath,
		"excel_columns.children_count": c.ExcelColumns.ChildrenCount,
	}
	for key, letter := range columns {
		if err := validateColumnLetter(letter); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if c.PDF.CellGap <= 0 {
		return fmt.Errorf("invalid pdf.cell_gap: %v (must be positive)", c.PDF.CellGap)
	}
	if c.PDF.LineTolerance < 0 {
		return fmt.Errorf("invalid pdf.line_tolerance: %v (must not be negative)", c.PDF.LineTolerance)
	}

	return nil
}

// SnowLoad returns the configured S0 value and whether it is set.
func (c *Config) SnowLoad() (float64, bool) {
	return optionalLoad(c.Loads.SnowLoad.S0)
}

// WindLoad returns the configured W0 value and whether it is set.
func (c *Config) WindLoad() (float64, bool) {
	return optionalLoad(c.Loads.WindLoad.W0)
}

func optionalLoad(v *float64) (float64, bool) {
	if v == nil || *v == 0 {
		return 0, false
	}
	return *v, true
}

// contains checks if a slice contains a specific item.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// validateColumnLetter accepts spreadsheet column names such as "A" or "AB".
func validateColumnLetter(letter string) error {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return errors.New("column letter is empty")
	}
	for _, r := range letter {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("column letter %q contains %q", letter, r)
		}
	}
	return nil
}
