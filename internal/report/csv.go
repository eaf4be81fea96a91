package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/khoj-tools/lostfoundscan/internal/analyze"
	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// CSVWriter outputs records and summaries in CSV format, the default
// output for spreadsheet import. Columns follow model.FieldNames
// order; a record's absent fields become empty cells, so CSV output
// does not distinguish absent from blank the way JSON does.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// countingWriter tracks bytes written, since encoding/csv hides its
// write counts.
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}

// Write outputs a header row followed by one row per record.
func (w *CSVWriter) Write(records []model.Record) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := csv.NewWriter(cw)

	if err := enc.Write(model.FieldNames); err != nil {
		return cw.n, err
	}

	row := make([]string, len(model.FieldNames))
	for _, rec := range records {
		for i, name := range model.FieldNames {
			row[i] = rec[name]
		}
		if err := enc.Write(row); err != nil {
			return cw.n, err
		}
	}

	enc.Flush()
	return cw.n, enc.Error()
}

// WriteSummary outputs the summary as metric,key,value rows, one row
// per non-zero counter.
func (w *CSVWriter) WriteSummary(summary *analyze.Summary) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := csv.NewWriter(cw)

	write := func(metric, key string, value int) error {
		return enc.Write([]string{metric, key, strconv.Itoa(value)})
	}

	if err := enc.Write([]string{"metric", "key", "value"}); err != nil {
		return cw.n, err
	}
	if err := write("total", "records", summary.TotalRecords); err != nil {
		return cw.n, err
	}

	for _, c := range analyze.TopCounts(summary.Stations, 0) {
		if err := write("station", c.Name, c.Count); err != nil {
			return cw.n, err
		}
	}
	for _, c := range analyze.TopCounts(summary.Areas, 0) {
		if err := write("area", c.Name, c.Count); err != nil {
			return cw.n, err
		}
	}
	for _, c := range analyze.TopCounts(summary.EmailDomains, 0) {
		if err := write("email_domain", c.Name, c.Count); err != nil {
			return cw.n, err
		}
	}
	for hour, count := range summary.Hours {
		if count == 0 {
			continue
		}
		if err := write("hour", strconv.Itoa(hour), count); err != nil {
			return cw.n, err
		}
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if count := summary.Weekdays[day]; count > 0 {
			if err := write("weekday", day.String(), count); err != nil {
				return cw.n, err
			}
		}
	}
	for month := time.January; month <= time.December; month++ {
		if count := summary.Months[month]; count > 0 {
			if err := write("month", month.String(), count); err != nil {
				return cw.n, err
			}
		}
	}
	if err := write("pin", "mumbai", summary.MumbaiPins); err != nil {
		return cw.n, err
	}
	if err := write("pin", "other", summary.OtherPins); err != nil {
		return cw.n, err
	}
	if err := write("pin", "missing", summary.MissingPins); err != nil {
		return cw.n, err
	}

	enc.Flush()
	return cw.n, enc.Error()
}
