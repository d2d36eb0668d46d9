package passport

import (
	"fmt"
	"log/slog"
)

// Extractor pulls technical data out of passport PDFs.
type Extractor struct {
	layout     Layout
	strategies []Strategy
	open       func(path string) (*Document, error)
	logger     *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithStrategies replaces the default strategy chain.
func WithStrategies(strategies ...Strategy) ExtractorOption {
	return func(e *Extractor) { e.strategies = strategies }
}

// WithLogger sets the logger used for strategy diagnostics.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = logger }
}

// NewExtractor creates an extractor with the given layout thresholds.
func NewExtractor(layout Layout, opts ...ExtractorOption) *Extractor {
	if layout.CellGap <= 0 {
		layout.CellGap = DefaultLayout().CellGap
	}
	if layout.LineTolerance < 0 {
		layout.LineTolerance = DefaultLayout().LineTolerance
	}
	e := &Extractor{
		layout:     layout,
		strategies: DefaultStrategies(),
		open:       OpenDocument,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract decodes the passport at path and runs the strategy chain. An empty
// result without error means no strategy recognized the layout.
func (e *Extractor) Extract(path string) (*TechnicalData, error) {
	doc, err := e.open(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument runs the strategy chain over an already decoded passport.
func (e *Extractor) ExtractDocument(doc *Document) (data *TechnicalData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = &ParseError{Path: doc.Path, Err: fmt.Errorf("extraction panic: %v", r)}
		}
	}()

	for _, s := range e.strategies {
		result := s.Extract(doc, e.layout)
		if result.Len() == 0 {
			e.logger.Debug("extraction strategy found nothing", "strategy", s.Name(), "passport", doc.Path)
			continue
		}
		result.RemoveImpactZone()
		e.logger.Debug("technical data extracted",
			"strategy", s.Name(), "passport", doc.Path, "parameters", result.Len())
		return result, nil
	}
	return NewTechnicalData(), nil
}
