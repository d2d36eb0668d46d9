package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the run counters, kept in their own registry so that a run can
// be exported as a node_exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	productsTotal    *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	rowsSkipped      prometheus.Counter
	productDuration  *prometheus.HistogramVec
	passportParams   prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
}

// NewMetrics registers the run metrics in a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		productsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpgen_products_total",
				Help: "Total number of processed products",
			},
			[]string{"status"}, // status: ok, error
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpgen_product_errors_total",
				Help: "Failed products by error kind",
			},
			[]string{"kind"},
		),
		rowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "rpgen_catalog_rows_skipped_total",
			Help: "Catalog rows without article or name",
		}),
		productDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rpgen_product_duration_seconds",
				Help:    "Time spent on one product",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		passportParams: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rpgen_passport_parameters",
			Help:    "Number of technical parameters extracted from a passport",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rpgen_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(o Outcome) {
	if o.Succeeded() {
		m.productsTotal.WithLabelValues("ok").Inc()
	} else {
		m.productsTotal.WithLabelValues("error").Inc()
		m.errorsTotal.WithLabelValues(string(o.Kind)).Inc()
	}
	m.productDuration.WithLabelValues(o.Stage.String()).Observe(o.Duration.Seconds())
	if o.Extracted {
		m.passportParams.Observe(float64(o.Parameters))
	}
}

func (m *Metrics) skipped(n int) {
	m.rowsSkipped.Add(float64(n))
}

func (m *Metrics) finished() {
	m.lastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile writes the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
