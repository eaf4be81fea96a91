package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// recordSelector matches the table element that wraps one report on a
// listing page. The portal renders every report inside a table with
// this class and no other stable marker.
const recordSelector = "table.mb-50"

// ExtractRecords parses listing page markup and returns the report
// records it contains, in document order.
//
// Each report table holds a series of p elements; within each, a span
// carrying a title attribute names the field and the next span sibling
// holds the value. Only the allow-listed field names are captured, so
// decorative or unexpected labels never leak into records. Every
// matched table yields one record, even when no allow-listed field is
// found, so output positions stay one-to-one with the page's rows.
func ExtractRecords(html string) ([]model.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing markup: %w", err)
	}

	var records []model.Record
	doc.Find(recordSelector).Each(func(_ int, table *goquery.Selection) {
		rec := model.Record{}
		table.Find("p").Each(func(_ int, p *goquery.Selection) {
			label := p.Find("span[title]").First()
			if label.Length() == 0 {
				return
			}

			name := strings.TrimSpace(label.AttrOr("title", ""))
			if !model.IsAllowedField(name) {
				return
			}

			// A label with no paired value span leaves the field absent,
			// matching the missing-key contract of Record.
			value := label.NextFiltered("span")
			if value.Length() == 0 {
				return
			}
			rec[name] = strings.TrimSpace(value.Text())
		})
		records = append(records, rec)
	})

	return records, nil
}
