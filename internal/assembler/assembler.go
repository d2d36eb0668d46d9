// Package assembler produces the calculation document of a product from the
// template: it substitutes product data, reformats the calculation text, fills
// the title block and inserts the product image.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MeKo-Tech/rpgen/internal/catalog"
	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/docx"
	"github.com/MeKo-Tech/rpgen/internal/passport"
	"github.com/MeKo-Tech/rpgen/internal/refresh"
	"github.com/MeKo-Tech/rpgen/internal/utils"
)

var (
	// ErrTemplate is returned when the template cannot be copied or opened.
	ErrTemplate = errors.New("template error")
	// ErrDocumentWrite is returned when the generated document cannot be saved.
	ErrDocumentWrite = errors.New("document write error")
)

// Options configure an Assembler.
type Options struct {
	TemplatePath string
	OutputDir    string
	MassChild    float64
	Region       string
	Climate      Climate
	Stamp        config.StampConfig
	Texts        config.Texts
	Image        utils.ImageConstraints
	Refresher    refresh.Refresher
	Logger       *slog.Logger
	// Now returns the document date; time.Now when nil.
	Now func() time.Time
}

// OptionsFromConfig returns the options described by cfg.
func OptionsFromConfig(cfg *config.Config, texts config.Texts) Options {
	snow, hasSnow := cfg.SnowLoad()
	wind, hasWind := cfg.WindLoad()
	return Options{
		TemplatePath: cfg.Paths.TemplateDocx,
		OutputDir:    cfg.Paths.OutputDocs,
		MassChild:    cfg.Loads.MassChild,
		Region:       cfg.Region,
		Climate:      Climate{Snow: snow, HasSnow: hasSnow, Wind: wind, HasWind: hasWind},
		Stamp:        cfg.Stamp,
		Texts:        texts,
		Image:        utils.DefaultImageConstraints(),
	}
}

// Assembler generates documents from one template.
type Assembler struct {
	opts   Options
	logger *slog.Logger
	save   func(doc *docx.Document, path string) error
}

// New creates an Assembler. Missing stamp values get the defaults.
func New(opts Options) *Assembler {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Refresher == nil {
		opts.Refresher = refresh.Noop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MassChild <= 0 {
		opts.MassChild = config.DefaultMassChild
	}
	if opts.Image.MaxWidth == 0 {
		opts.Image = utils.DefaultImageConstraints()
	}
	if opts.Stamp.Developer == "" {
		opts.Stamp.Developer = config.DefaultDeveloper
	}
	if opts.Stamp.Checker == "" {
		opts.Stamp.Checker = config.DefaultChecker
	}
	if opts.Stamp.Scale == "" {
		opts.Stamp.Scale = config.DefaultScale
	}
	return &Assembler{opts: opts, logger: opts.Logger, save: (*docx.Document).Save}
}

// Input returns the generation input of a product.
func (a *Assembler) Input(product catalog.Product, data *passport.TechnicalData) Input {
	return Input{
		Product: product,
		Data:    data,
		Loads:   ComputeLoads(product.ChildrenCount, a.opts.MassChild),
		Region:  a.opts.Region,
		Climate: a.opts.Climate,
		Texts:   a.opts.Texts.For(product.Category.String()),
		Date:    a.opts.Now(),
	}
}

// Generate writes the document of a product and returns its path. Failures
// to reformat, insert the image or refresh fields are logged as warnings.
func (a *Assembler) Generate(ctx context.Context, product catalog.Product, data *passport.TechnicalData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	log := a.logger.With("article", product.Article)

	outPath := filepath.Join(a.opts.OutputDir, OutputFileName(product.Article, product.Name))
	if err := copyFile(a.opts.TemplatePath, outPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	doc, err := docx.Open(outPath)
	if err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	in := a.Input(product, data)
	a.fill(doc, in, log)

	if err := a.save(doc, outPath); err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("%w: %w", ErrDocumentWrite, err)
	}

	if err := a.opts.Refresher.Refresh(ctx, outPath); err != nil {
		if errors.Is(err, refresh.ErrUnavailable) {
			log.Debug("field refresh skipped", "error", err)
		} else {
			log.Warn("field refresh failed", "path", outPath, "error", err)
		}
	}

	return outPath, nil
}

// fill applies every document pass in order.
func (a *Assembler) fill(doc *docx.Document, in Input, log *slog.Logger) {
	sub := NewSubstitution(Rules(in))
	changed := substitute(sub, doc.Paragraphs())
	for _, t := range doc.Tables() {
		changed += substitute(sub, t.Paragraphs())
	}
	changed += substitute(sub, doc.HeaderFooterParagraphs())
	log.Debug("substituted", "paragraphs", changed, "rules", len(sub.Rules()))

	a.reformat(doc, log)

	stamp := Stamp{
		Name:      in.Product.Name,
		Article:   in.Product.Article,
		Date:      in.Date,
		Developer: a.opts.Stamp.Developer,
		Checker:   a.opts.Stamp.Checker,
		Scale:     a.opts.Stamp.Scale,
	}
	log.Debug("stamp filled", "cells", fillStamp(doc.Tables(), stamp))

	log.Debug("captions removed", "count", removeCaptions(doc.Paragraphs()))
	log.Debug("drawings removed", "count", removeExtraDrawings(doc.Paragraphs()))

	if in.Product.ImagePath != "" {
		if _, err := os.Stat(in.Product.ImagePath); err == nil {
			if err := insertImage(doc, in.Product.ImagePath, a.opts.Image); err != nil {
				log.Warn("image insertion failed", "image", in.Product.ImagePath, "error", err)
			}
		}
	}

	if err := doc.SetUpdateFieldsOnOpen(); err != nil {
		log.Warn("cannot enable field update on open", "error", err)
	}
}

// reformat applies the typography passes. A panic in one pass is logged and
// leaves the document as the previous passes made it.
func (a *Assembler) reformat(doc *docx.Document, log *slog.Logger) {
	passes := []struct {
		name string
		run  func([]*docx.Paragraph) int
	}{
		{"engineering text", formatEngineeringText},
		{"table of contents", formatTableOfContents},
		{"formulas", formatFormulas},
	}
	for _, pass := range passes {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Warn("formatting failed", "pass", pass.name, "panic", r)
				}
			}()
			log.Debug("formatted", "pass", pass.name, "paragraphs", pass.run(doc.Paragraphs()))
		}()
	}
}

// substitute applies sub to the full text of each paragraph.
func substitute(sub *Substitution, paragraphs []*docx.Paragraph) int {
	n := 0
	for _, p := range paragraphs {
		if out, ok := sub.Apply(p.Text()); ok {
			p.SetText(out)
			n++
		}
	}
	return n
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
