package orchestrator

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MeKo-Tech/rpgen/internal/catalog"
)

// ProgressCallback receives progress events during a run.
type ProgressCallback interface {
	// OnStart is called when processing begins with the total number of products.
	OnStart(total int)

	// OnProduct is called before a product is processed.
	OnProduct(current, total int, product catalog.Product)

	// OnComplete is called when processing is finished or cancelled.
	OnComplete(stats *RunStatistics)
}

// NoOpProgressCallback implements ProgressCallback but does nothing.
type NoOpProgressCallback struct{}

func (NoOpProgressCallback) OnStart(int)                         {}
func (NoOpProgressCallback) OnProduct(int, int, catalog.Product) {}
func (NoOpProgressCallback) OnComplete(*RunStatistics)           {}

// ConsoleProgressCallback prints a progress line per product.
type ConsoleProgressCallback struct {
	writer    io.Writer
	mutex     sync.Mutex
	startTime time.Time
}

// NewConsoleProgressCallback creates a console progress reporter.
func NewConsoleProgressCallback(writer io.Writer) *ConsoleProgressCallback {
	return &ConsoleProgressCallback{writer: writer}
}

func (c *ConsoleProgressCallback) OnStart(total int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.startTime = time.Now()
	_, _ = fmt.Fprintf(c.writer, "Изделий к обработке: %d\n", total)
}

func (c *ConsoleProgressCallback) OnProduct(current, total int, product catalog.Product) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	percent := 0.0
	if total > 0 {
		percent = float64(current) / float64(total) * 100
	}
	_, _ = fmt.Fprintf(c.writer, "[%d/%d %5.1f%%] %s - %s\n", current, total, percent, product.Article, product.Name)
}

func (c *ConsoleProgressCallback) OnComplete(stats *RunStatistics) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	elapsed := time.Since(c.startTime)
	_, _ = fmt.Fprintf(c.writer, "Готово: %d из %d за %v\n", stats.Succeeded, stats.Total, elapsed.Round(time.Millisecond))
}
