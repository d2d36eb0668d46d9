package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Report is the machine-readable record of a run.
type Report struct {
	StartedAt   time.Time       `yaml:"started_at"`
	FinishedAt  time.Time       `yaml:"finished_at"`
	Cancelled   bool            `yaml:"cancelled,omitempty"`
	Total       int             `yaml:"total"`
	Succeeded   int             `yaml:"succeeded"`
	SkippedRows int             `yaml:"skipped_rows"`
	Errors      map[string]int  `yaml:"errors,omitempty"`
	Products    []ProductReport `yaml:"products"`
}

// ProductReport is the report entry of one product.
type ProductReport struct {
	Article    string   `yaml:"article"`
	Name       string   `yaml:"name"`
	Category   string   `yaml:"category"`
	Status     string   `yaml:"status"`
	Error      string   `yaml:"error,omitempty"`
	Passport   string   `yaml:"passport,omitempty"`
	Parameters int      `yaml:"parameters"`
	Output     string   `yaml:"output,omitempty"`
	Warnings   []string `yaml:"warnings,omitempty"`
}

// NewReport builds the report of a finished run.
func NewReport(result *Result) *Report {
	r := &Report{
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		Cancelled:   result.Cancelled,
		Total:       result.Stats.Total,
		Succeeded:   result.Stats.Succeeded,
		SkippedRows: result.Stats.SkippedRows,
		Products:    make([]ProductReport, 0, len(result.Outcomes)),
	}
	if len(result.Stats.Errors) > 0 {
		r.Errors = make(map[string]int, len(result.Stats.Errors))
		for k, v := range result.Stats.Errors {
			r.Errors[string(k)] = v
		}
	}
	for _, o := range result.Outcomes {
		status := "ok"
		if !o.Succeeded() {
			status = string(o.Kind)
		}
		r.Products = append(r.Products, ProductReport{
			Article:    o.Product.Article,
			Name:       o.Product.Name,
			Category:   o.Product.Category.String(),
			Status:     status,
			Error:      o.Message,
			Passport:   o.PassportPath,
			Parameters: o.Parameters,
			Output:     o.OutputPath,
			Warnings:   o.Warnings,
		})
	}
	return r
}

// WriteFile writes the report as YAML.
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
