// Package orchestrator drives a generation run. Each product passes the
// image, passport, extraction and generation gates in order; the first gate
// that fails decides the error kind, and nothing a product does stops the run.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/rpgen/internal/catalog"
	"github.com/MeKo-Tech/rpgen/internal/passport"
	"github.com/MeKo-Tech/rpgen/internal/runlog"
)

// Options configure an Orchestrator.
type Options struct {
	// Categories is the allow-list of product categories; empty allows all.
	Categories []string
	Metrics    *Metrics
	Progress   ProgressCallback
}

// Orchestrator processes products one at a time.
type Orchestrator struct {
	locator   Locator
	extractor Extractor
	generator Generator
	log       *runlog.Logger
	opts      Options
}

// Result is the outcome of a run.
type Result struct {
	Stats      *RunStatistics
	Outcomes   []Outcome
	StartedAt  time.Time
	FinishedAt time.Time
	Cancelled  bool
}

// New creates an Orchestrator.
func New(locator Locator, extractor Extractor, generator Generator, log *runlog.Logger, opts Options) *Orchestrator {
	if log == nil {
		log = runlog.Discard()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Progress == nil {
		opts.Progress = NoOpProgressCallback{}
	}
	return &Orchestrator{
		locator:   locator,
		extractor: extractor,
		generator: generator,
		log:       log,
		opts:      opts,
	}
}

// Metrics returns the run metrics.
func (o *Orchestrator) Metrics() *Metrics {
	return o.opts.Metrics
}

// FilterCategories keeps the products whose category is allowed.
func (o *Orchestrator) FilterCategories(products []catalog.Product) []catalog.Product {
	if len(o.opts.Categories) == 0 {
		return products
	}
	allowed := make(map[catalog.Category]bool, len(o.opts.Categories))
	for _, c := range o.opts.Categories {
		allowed[catalog.Category(c)] = true
	}
	kept := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if allowed[p.Category] {
			kept = append(kept, p)
		}
	}
	return kept
}

// Run processes products in order. Cancelling ctx stops the run before the
// next product; the summary is written either way.
func (o *Orchestrator) Run(ctx context.Context, products []catalog.Product, skippedRows int) *Result {
	res := &Result{Stats: NewRunStatistics(), StartedAt: time.Now()}
	res.Stats.SkippedRows = skippedRows
	o.opts.Metrics.skipped(skippedRows)

	if len(o.opts.Categories) > 0 {
		products = o.FilterCategories(products)
		o.log.Info(fmt.Sprintf("После фильтрации по категориям осталось: %d изделий", len(products)))
	}

	o.log.Section("НАЧАЛО ОБРАБОТКИ ИЗДЕЛИЙ")
	o.opts.Progress.OnStart(len(products))

	total := len(products)
	for i, p := range products {
		if err := ctx.Err(); err != nil {
			res.Cancelled = true
			o.log.Warn("Обработка прервана пользователем", "remaining", total-i, "error", err)
			break
		}
		o.opts.Progress.OnProduct(i+1, total, p)
		o.log.Info(fmt.Sprintf("[%d/%d] Обработка: %s - %s", i+1, total, p.Article, p.Name))

		out := o.Process(ctx, p)
		o.record(res, out)
	}

	res.FinishedAt = time.Now()
	o.opts.Metrics.finished()
	o.opts.Progress.OnComplete(res.Stats)
	o.log.Summary(res.Stats.Summary())
	return res
}

func (o *Orchestrator) record(res *Result, out Outcome) {
	res.Outcomes = append(res.Outcomes, out)
	res.Stats.Record(out)
	o.opts.Metrics.observe(out)

	p := out.Product
	if out.Succeeded() {
		o.log.Success(p.Article, p.Name, out.OutputPath)
		return
	}
	image := ""
	if out.Kind == ErrNoImage {
		image = p.ImagePath
	}
	o.log.Failure(string(out.Kind), p.Article, p.Name, image, out.Message)
}

// Process runs one product through the gates. Panics are recovered and
// reported as ERR_UNKNOWN.
func (o *Orchestrator) Process(ctx context.Context, p catalog.Product) (out Outcome) {
	start := time.Now()
	out = Outcome{Product: p, Stage: StagePending}
	defer func() {
		if r := recover(); r != nil {
			out = fail(out, ErrUnknown, fmt.Sprintf("Неизвестная ошибка: %v", r))
		}
		out.Duration = time.Since(start)
	}()

	if !imageExists(p.ImagePath) {
		return fail(out, ErrNoImage, "Файл изображения не найден: "+p.ImagePath)
	}
	out.Stage = StageImageChecked

	path, found, err := o.locator.Find(p.Article)
	if err != nil {
		return fail(out, ErrNoPassport, fmt.Sprintf("Паспорт не найден для артикула %s: %v", p.Article, err))
	}
	if !found {
		return fail(out, ErrNoPassport, "Паспорт не найден для артикула "+p.Article)
	}
	out.Stage = StagePassportFound
	out.PassportPath = path

	data, err := o.extractor.Extract(path)
	if err != nil {
		return fail(out, ErrPDFParse, fmt.Sprintf("Ошибка парсинга PDF: %v", err))
	}
	if data == nil {
		data = passport.NewTechnicalData()
	}
	if data.Len() == 0 {
		msg := "Не удалось извлечь технические данные из паспорта " + p.Article
		out.Warnings = append(out.Warnings, msg)
		o.log.Warn(msg, "passport", path)
	}
	out.Stage = StageDataExtracted
	out.Extracted = true
	out.Parameters = data.Len()

	outputPath, err := o.generator.Generate(ctx, p, data)
	if err != nil {
		return fail(out, ErrTemplate, fmt.Sprintf("Ошибка генерации документа: %v", err))
	}
	out.Stage = StageDocumentGenerated
	out.OutputPath = outputPath
	return out
}

func fail(out Outcome, kind ErrorKind, msg string) Outcome {
	out.Stage = StageFailed
	out.Kind = kind
	out.Message = msg
	return out
}

func imageExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
