package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/MeKo-Tech/rpgen/internal/catalog"
	"github.com/MeKo-Tech/rpgen/internal/passport"
)

// ErrInitialization is returned when the run cannot start: the catalog,
// the template or another shared input is unusable.
var ErrInitialization = errors.New("initialization failed")

// Stage is the furthest step a product reached.
type Stage int

const (
	StagePending Stage = iota
	StageImageChecked
	StagePassportFound
	StageDataExtracted
	StageDocumentGenerated
	StageFailed
)

var stageNames = map[Stage]string{
	StagePending:           "pending",
	StageImageChecked:      "image_checked",
	StagePassportFound:     "passport_found",
	StageDataExtracted:     "data_extracted",
	StageDocumentGenerated: "document_generated",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrorKind classifies a failed product.
type ErrorKind string

const (
	ErrNoImage    ErrorKind = "ERR_NO_IMAGE"
	ErrNoPassport ErrorKind = "ERR_NO_PASSPORT"
	ErrPDFParse   ErrorKind = "ERR_PDF_PARSE"
	ErrTemplate   ErrorKind = "ERR_TEMPLATE"
	ErrUnknown    ErrorKind = "ERR_UNKNOWN"
)

// Locator finds the passport of an article.
type Locator interface {
	Find(article string) (path string, found bool, err error)
}

// Extractor reads technical data from a passport.
type Extractor interface {
	Extract(path string) (*passport.TechnicalData, error)
}

// Generator writes the document of a product.
type Generator interface {
	Generate(ctx context.Context, product catalog.Product, data *passport.TechnicalData) (string, error)
}

// Outcome is the result of processing one product.
type Outcome struct {
	Product      catalog.Product
	Stage        Stage
	Kind         ErrorKind
	Message      string
	PassportPath string
	Extracted    bool
	Parameters   int
	OutputPath   string
	Warnings     []string
	Duration     time.Duration
}

// Succeeded reports whether the document was generated.
func (o Outcome) Succeeded() bool {
	return o.Stage == StageDocumentGenerated
}
