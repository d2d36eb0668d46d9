//nolint:lll
package config

// Config represents the complete configuration of the rpgen batch run.
// It is loaded from config.json, environment variables (RPGEN_ prefix) and defaults.
type Config struct {
	// Filesystem locations
	Paths PathsConfig `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Calculation region used in narrative text
	Region string `mapstructure:"region" yaml:"region" json:"region"`

	// Load parameters
	Loads LoadsConfig `mapstructure:"loads" yaml:"loads" json:"loads"`

	// Passport filename template, {ART} or {article} is replaced by the article code
	PassportPattern string `mapstructure:"passport_pattern" yaml:"passport_pattern" json:"passport_pattern"`

	// Optional category allow-list; empty means all categories
	Categories []string `mapstructure:"categories" yaml:"categories" json:"categories"`

	// Catalog layout
	ExcelColumns ExcelColumnsConfig `mapstructure:"excel_columns" yaml:"excel_columns" json:"excel_columns"`
	ExcelSheet   string             `mapstructure:"excel_sheet" yaml:"excel_sheet" json:"excel_sheet"`

	// Title block constants
	Stamp StampConfig `mapstructure:"stamp" yaml:"stamp" json:"stamp"`

	// Passport layout tuning
	PDF PDFConfig `mapstructure:"pdf" yaml:"pdf" json:"pdf"`

	// External command that refreshes computed fields; empty disables it
	FieldRefreshCommand string `mapstructure:"field_refresh_command" yaml:"field_refresh_command" json:"field_refresh_command"`

	DebugMode bool   `mapstructure:"debug_mode" yaml:"debug_mode" json:"debug_mode"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// PathsConfig contains input and output locations.
type PathsConfig struct {
	Excel        string `mapstructure:"excel" yaml:"excel" json:"excel"`
	Passports    string `mapstructure:"passports" yaml:"passports" json:"passports"`
	TemplateDocx string `mapstructure:"template_docx" yaml:"template_docx" json:"template_docx"`
	OutputDocs   string `mapstructure:"output_docs" yaml:"output_docs" json:"output_docs"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file" json:"log_file"`
	Images       string `mapstructure:"images" yaml:"images" json:"images"`
	MetricsFile  string `mapstructure:"metrics_file" yaml:"metrics_file" json:"metrics_file"`
	ReportFile   string `mapstructure:"report_file" yaml:"report_file" json:"report_file"`
}

// LoadsConfig contains the user load and climate load settings.
type LoadsConfig struct {
	MassChild float64         `mapstructure:"mass_child" yaml:"mass_child" json:"mass_child"`
	SnowLoad  SnowLoadConfig  `mapstructure:"snow_load" yaml:"snow_load" json:"snow_load"`
	WindLoad  WindLoadConfig  `mapstructure:"wind_load" yaml:"wind_load" json:"wind_load"`
}

// SnowLoadConfig holds the normative snow load S0, kg/m².
type SnowLoadConfig struct {
	S0 *float64 `mapstructure:"s0" yaml:"S0,omitempty" json:"S0,omitempty"`
}

// WindLoadConfig holds the normative wind pressure W0, kg/m².
type WindLoadConfig struct {
	W0 *float64 `mapstructure:"w0" yaml:"W0,omitempty" json:"W0,omitempty"`
}

// ExcelColumnsConfig maps logical catalog fields to spreadsheet column letters.
type ExcelColumnsConfig struct {
	Article       string `mapstructure:"article" yaml:"article" json:"article"`
	Name          string `mapstructure:"name" yaml:"name" json:"name"`
	ImagePath     string `mapstructure:"image_path" yaml:"image_path" json:"image_path"`
	ChildrenCount string `mapstructure:"children_count" yaml:"children_count" json:"children_count"`
}

// StampConfig contains the fixed values written into the title block.
type StampConfig struct {
	Developer string `mapstructure:"developer" yaml:"developer" json:"developer"`
	Checker   string `mapstructure:"checker" yaml:"checker" json:"checker"`
	Scale     string `mapstructure:"scale" yaml:"scale" json:"scale"`
}

// PDFConfig tunes how passport pages are split into table cells.
type PDFConfig struct {
	// Minimum horizontal gap between text runs, in points, that starts a new cell
	CellGap float64 `mapstructure:"cell_gap" yaml:"cell_gap" json:"cell_gap"`
	// Maximum baseline difference, in points, for runs on the same line
	LineTolerance float64 `mapstructure:"line_tolerance" yaml:"line_tolerance" json:"line_tolerance"`
}

// CategoryTexts holds the narrative blocks used for one product category.
type CategoryTexts struct {
	GeneralInfo             string `mapstructure:"general_info" yaml:"general_info" json:"general_info"`
	ConstructionDescription string `mapstructure:"construction_description" yaml:"construction_description" json:"construction_description"`
	Conclusion              string `mapstructure:"conclusion" yaml:"conclusion" json:"conclusion"`
}
