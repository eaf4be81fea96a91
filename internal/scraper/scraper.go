package scraper

import (
	"context"
	"log/slog"

	"github.com/khoj-tools/lostfoundscan/internal/model"
)

// Scraper orchestrates a full listing scrape: it fetches the first
// page, discovers the page count from it, fans the remaining pages out
// through a scheduler, and aggregates the extracted records.
type Scraper struct {
	fetcher   Fetcher
	scheduler Scheduler
	logger    *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scraper using the given fetcher and scheduler.
func New(fetcher Fetcher, scheduler Scheduler, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:   fetcher,
		scheduler: scheduler,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scrapes every page of the listing selected by params and returns
// the aggregated records.
//
// The first page doubles as the page-count probe, so it is fetched
// exactly once and its records are reused rather than refetched during
// fan-out. Failures are absorbed: a failed first page yields an empty
// result, and a failed later page drops only that page's records. Run
// never returns an error; callers needing failure detail get it from
// the logger.
func (s *Scraper) Run(ctx context.Context, params model.SearchParams) []model.Record {
	first, err := s.fetcher.Fetch(ctx, params.WithPage(1))
	if err != nil {
		s.logger.Warn("first page fetch failed, nothing to scrape", "error", err)
		return []model.Record{}
	}

	records, err := ExtractRecords(first.HTML)
	if err != nil {
		s.logger.Warn("first page extraction failed, nothing to scrape", "error", err)
		return []model.Record{}
	}

	total := TotalPages(first.HTML)
	s.logger.Info("listing discovered",
		"complaint_type", params.ComplaintType.String(),
		"article_type", string(params.ArticleType),
		"total_pages", total,
		"first_page_records", len(records),
	)
	if total <= 1 {
		return records
	}

	rest := make([]int, 0, total-1)
	for page := 2; page <= total; page++ {
		rest = append(rest, page)
	}

	records = append(records, s.scheduler.Schedule(ctx, rest, s.scrapePage(params))...)

	s.logger.Info("scrape complete", "total_records", len(records))
	return records
}

// scrapePage returns the PageFunc handed to the scheduler: fetch one
// page for the given search, extract its records.
func (s *Scraper) scrapePage(params model.SearchParams) PageFunc {
	return func(ctx context.Context, page int) ([]model.Record, error) {
		p, err := s.fetcher.Fetch(ctx, params.WithPage(page))
		if err != nil {
			return nil, err
		}
		return ExtractRecords(p.HTML)
	}
}
