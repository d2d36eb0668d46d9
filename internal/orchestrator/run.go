package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/MeKo-Tech/rpgen/internal/assembler"
	"github.com/MeKo-Tech/rpgen/internal/catalog"
	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/passport"
	"github.com/MeKo-Tech/rpgen/internal/refresh"
	"github.com/MeKo-Tech/rpgen/internal/runlog"
)

// Components are the collaborators a run is built from.
type Components struct {
	Locator   Locator
	Extractor Extractor
	Generator Generator
	Mapping   catalog.ColumnMapping
}

// NewComponents constructs the run collaborators described by cfg.
func NewComponents(cfg *config.Config, texts config.Texts, log *runlog.Logger) (*Components, error) {
	mapping := catalog.ColumnMapping{
		Article:       cfg.ExcelColumns.Article,
		Name:          cfg.ExcelColumns.Name,
		ImagePath:     cfg.ExcelColumns.ImagePath,
		ChildrenCount: cfg.ExcelColumns.ChildrenCount,
	}
	for _, letter := range []string{mapping.Article, mapping.Name, mapping.ImagePath, mapping.ChildrenCount} {
		if _, err := catalog.ColumnIndex(letter); err != nil {
			return nil, fmt.Errorf("%w: excel column %q: %w", ErrInitialization, letter, err)
		}
	}

	if err := os.MkdirAll(cfg.Paths.OutputDocs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: output directory: %w", ErrInitialization, err)
	}

	refresher, err := refresh.New(cfg.FieldRefreshCommand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	layout := passport.Layout{CellGap: cfg.PDF.CellGap, LineTolerance: cfg.PDF.LineTolerance}
	opts := assembler.OptionsFromConfig(cfg, texts)
	opts.Refresher = refresher
	opts.Logger = log.Logger

	return &Components{
		Locator:   passport.NewLocator(cfg.Paths.Passports, cfg.PassportPattern),
		Extractor: passport.NewExtractor(layout, passport.WithLogger(log.Logger)),
		Generator: assembler.New(opts),
		Mapping:   mapping,
	}, nil
}

// Execute performs a complete run: it builds the components, reads the
// catalog, processes every product and writes the optional metrics and
// report files. Initialization failures are returned wrapped in ErrInitialization.
func Execute(ctx context.Context, cfg *config.Config, texts config.Texts, log *runlog.Logger, progress ProgressCallback) (*Result, error) {
	log.Start()

	comps, err := NewComponents(cfg, texts, log)
	if err != nil {
		log.Failure("ERR_INIT", "INIT", "Система", "", err.Error())
		return nil, err
	}
	log.Info("Все компоненты инициализированы успешно")

	log.Info("Загрузка данных из Excel: " + cfg.Paths.Excel)
	rows, err := catalog.Load(cfg.Paths.Excel, cfg.ExcelSheet)
	if err != nil {
		log.Failure("ERR_EXCEL_READ", "EXCEL", "Система", "", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	products, skipped, err := catalog.ToProducts(rows, comps.Mapping, catalog.Options{
		ImagesDir: cfg.Paths.Images,
		Logger:    log.Logger,
	})
	if err != nil {
		log.Failure("ERR_EXCEL_READ", "EXCEL", "Система", "", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	log.Info(fmt.Sprintf("Загружено изделий из Excel: %d", len(products)))

	metrics := NewMetrics()
	orch := New(comps.Locator, comps.Extractor, comps.Generator, log, Options{
		Categories: cfg.Categories,
		Metrics:    metrics,
		Progress:   progress,
	})
	res := orch.Run(ctx, products, skipped)

	if path := cfg.Paths.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			log.Warn("metrics file not written", "path", path, "error", err)
		}
	}
	if path := cfg.Paths.ReportFile; path != "" {
		if err := NewReport(res).WriteFile(path); err != nil {
			log.Warn("report file not written", "path", path, "error", err)
		}
	}
	return res, nil
}
