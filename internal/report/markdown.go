package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/khoj-tools/lostfoundscan/internal/analyze"
	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// MarkdownWriter outputs records and summaries in Markdown format for
// documentation and sharing. The nao1215/markdown library gives
// type-safe generation of tables, alerts, and mermaid pie charts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the records as a Markdown table.
func (w *MarkdownWriter) Write(records []model.Record) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Lost & Found Records")
	md.PlainText("")
	md.PlainTextf("Total records: %d", len(records))
	md.PlainText("")

	if len(records) > 0 {
		rows := make([][]string, len(records))
		for i, rec := range records {
			row := make([]string, len(model.FieldNames))
			for j, name := range model.FieldNames {
				row[j] = truncateString(rec[name], 60)
			}
			rows[i] = row
		}
		md.Table(markdown.TableSet{
			Header: model.FieldNames,
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteSummary outputs the analysis summary with ranked tables, a pin
// code pie chart, and a data-quality alert.
func (w *MarkdownWriter) WriteSummary(summary *analyze.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Lost & Found Analysis")
	md.PlainText("")
	md.PlainTextf("Total records: %d", summary.TotalRecords)
	md.PlainText("")

	w.writeRankedTable(md, "Police Stations", "Station", summary.Stations)
	w.writeRankedTable(md, "Areas", "Area", summary.Areas)
	w.writeRankedTable(md, "E-mail Providers", "Provider", summary.EmailDomains)
	w.writeTimeDistributions(md, summary)
	w.writePinChart(md, summary)
	w.writeDataQuality(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeRankedTable writes a section with the top 10 entries of a
// count map. Empty maps are skipped entirely.
func (w *MarkdownWriter) writeRankedTable(md *markdown.Markdown, title, keyHeader string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	md.H2(title)
	md.PlainText("")

	top := analyze.TopCounts(counts, 10)
	rows := make([][]string, len(top))
	for i, c := range top {
		rows[i] = []string{c.Name, strconv.Itoa(c.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{keyHeader, "Records"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTimeDistributions writes the hour, weekday, and month tables.
func (w *MarkdownWriter) writeTimeDistributions(md *markdown.Markdown, summary *analyze.Summary) {
	if summary.ParsedDates == 0 {
		return
	}

	md.H2("Time Distribution")
	md.PlainText("")

	var hourRows [][]string
	for hour, count := range summary.Hours {
		if count > 0 {
			hourRows = append(hourRows, []string{strconv.Itoa(hour) + ":00", strconv.Itoa(count)})
		}
	}
	if len(hourRows) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Hour", "Records"},
			Rows:   hourRows,
		})
		md.PlainText("")
	}

	var dayRows [][]string
	for day := time.Sunday; day <= time.Saturday; day++ {
		if count := summary.Weekdays[day]; count > 0 {
			dayRows = append(dayRows, []string{day.String(), strconv.Itoa(count)})
		}
	}
	if len(dayRows) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Weekday", "Records"},
			Rows:   dayRows,
		})
		md.PlainText("")
	}

	var monthRows [][]string
	for month := time.January; month <= time.December; month++ {
		if count := summary.Months[month]; count > 0 {
			monthRows = append(monthRows, []string{month.String(), strconv.Itoa(count)})
		}
	}
	if len(monthRows) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Month", "Records"},
			Rows:   monthRows,
		})
		md.PlainText("")
	}
}

// writePinChart writes a mermaid pie chart of the pin code split.
func (w *MarkdownWriter) writePinChart(md *markdown.Markdown, summary *analyze.Summary) {
	if summary.MumbaiPins+summary.OtherPins+summary.MissingPins == 0 {
		return
	}

	md.H2("Pin Codes")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Pin Code Distribution"),
		piechart.WithShowData(true),
	)
	if summary.MumbaiPins > 0 {
		chart.LabelAndIntValue("Mumbai (400xxx)", uint64(summary.MumbaiPins))
	}
	if summary.OtherPins > 0 {
		chart.LabelAndIntValue("Other", uint64(summary.OtherPins))
	}
	if summary.MissingPins > 0 {
		chart.LabelAndIntValue("Missing", uint64(summary.MissingPins))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeDataQuality writes an alert reflecting how clean the scraped
// data was.
func (w *MarkdownWriter) writeDataQuality(md *markdown.Markdown, summary *analyze.Summary) {
	switch {
	case summary.TotalRecords == 0:
		md.Note("No records were scraped. The listing may be empty or the scrape failed.")
	case summary.UnparsedDates > 0:
		md.Warningf(
			"%d record(s) carry a date that does not match the portal's DDMMYYYY HHMM format and were excluded from the time distribution.",
			summary.UnparsedDates,
		)
	default:
		md.Tip("All dated records parsed cleanly.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [lostfoundscan](https://github.com/khoj-tools/lostfoundscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
