package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TotalPages reports how many pages the listing spans, based on the
// pagination control in the given markup.
//
// The portal renders page links as anchors inside a ul with the
// pagination class; the highest numeric anchor text is the page count.
// Navigation anchors ("Next", "»") are non-numeric and ignored. When
// the control is absent or holds no numeric links, the listing is a
// single page and 1 is returned. Malformed markup also yields 1: a
// pagination failure must never abort a scrape that already has page
// one in hand.
func TotalPages(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 1
	}

	total := 1
	doc.Find("ul.pagination a").Each(func(_ int, a *goquery.Selection) {
		n, err := strconv.Atoi(strings.TrimSpace(a.Text()))
		if err == nil && n > total {
			total = n
		}
	})
	return total
}
