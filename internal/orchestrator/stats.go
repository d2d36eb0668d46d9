package orchestrator

import "github.com/MeKo-Tech/rpgen/internal/runlog"

// RunStatistics counts the outcomes of a run. Every processed product is
// counted once, so Total == Succeeded + the sum of Errors.
type RunStatistics struct {
	Total       int
	Succeeded   int
	Errors      map[ErrorKind]int
	SkippedRows int

	order []ErrorKind
}

// NewRunStatistics returns empty statistics.
func NewRunStatistics() *RunStatistics {
	return &RunStatistics{Errors: make(map[ErrorKind]int)}
}

// Record counts one outcome.
func (s *RunStatistics) Record(o Outcome) {
	s.Total++
	if o.Succeeded() {
		s.Succeeded++
		return
	}
	if _, seen := s.Errors[o.Kind]; !seen {
		s.order = append(s.order, o.Kind)
	}
	s.Errors[o.Kind]++
}

// Failed returns the number of products with errors.
func (s *RunStatistics) Failed() int {
	n := 0
	for _, c := range s.Errors {
		n += c
	}
	return n
}

// ErrorCounts returns the error histogram in order of first occurrence.
func (s *RunStatistics) ErrorCounts() []runlog.KindCount {
	counts := make([]runlog.KindCount, 0, len(s.order))
	for _, k := range s.order {
		counts = append(counts, runlog.KindCount{Kind: string(k), Count: s.Errors[k]})
	}
	return counts
}

// Summary converts the statistics to the log summary block.
func (s *RunStatistics) Summary() runlog.Summary {
	return runlog.Summary{
		Total:       s.Total,
		Succeeded:   s.Succeeded,
		Errors:      s.ErrorCounts(),
		SkippedRows: s.SkippedRows,
	}
}
