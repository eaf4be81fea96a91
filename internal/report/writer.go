package report

import (
	"io"

	"github.com/khoj-tools/lostfoundscan/internal/analyze"
	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// Writer defines the interface for record and summary output.
// Implementations write scraped data in various formats to files,
// stdout, or any other io.Writer destination with the same API.
type Writer interface {
	// Write outputs the records to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(records []model.Record) (int, error)

	// WriteSummary outputs an analysis summary.
	WriteSummary(summary *analyze.Summary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, useful for
// outputting to both terminal and file. It is a separate type rather
// than io.MultiWriter because the Writer interface carries records,
// not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the records to all configured Writers. Returns the
// total bytes written across all writers; stops on first error.
func (m *MultiWriter) Write(records []model.Record) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *analyze.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
