package scraper

import (
	"context"
	"log/slog"
	"sync"

	"github.com/khoj-tools/lostfoundscan/internal/model"
	"golang.org/x/sync/errgroup"
)

// PageFunc fetches and extracts a single listing page, returning its
// records. Implementations are called concurrently from scheduler
// goroutines.
type PageFunc func(ctx context.Context, page int) ([]model.Record, error)

// Scheduler runs a PageFunc over a set of page numbers with bounded
// concurrency and returns the aggregated records. A page whose
// PageFunc fails contributes nothing; the failure never aborts the
// other pages.
type Scheduler interface {
	Schedule(ctx context.Context, pages []int, fn PageFunc) []model.Record
}

// OrderedScheduler fans the pages out over an errgroup and aggregates
// the results in submission order: records from page 2 always precede
// records from page 3, regardless of which response arrived first.
type OrderedScheduler struct {
	concurrency int
	logger      *slog.Logger
}

// SchedulerOption configures a scheduler.
type SchedulerOption func(*schedulerConfig)

type schedulerConfig struct {
	concurrency int
	logger      *slog.Logger
}

// WithSchedulerConcurrency sets the maximum number of pages fetched
// simultaneously. Default is 10.
func WithSchedulerConcurrency(n int) SchedulerOption {
	return func(c *schedulerConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithSchedulerLogger sets a custom logger for per-page failures.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(c *schedulerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newSchedulerConfig(opts ...SchedulerOption) schedulerConfig {
	c := schedulerConfig{
		concurrency: 10,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewOrderedScheduler creates an OrderedScheduler.
func NewOrderedScheduler(opts ...SchedulerOption) *OrderedScheduler {
	cfg := newSchedulerConfig(opts...)
	return &OrderedScheduler{
		concurrency: cfg.concurrency,
		logger:      cfg.logger,
	}
}

// Schedule fetches the given pages concurrently and returns their
// records in page submission order.
func (s *OrderedScheduler) Schedule(ctx context.Context, pages []int, fn PageFunc) []model.Record {
	// Per-page slots keep aggregation deterministic without locking.
	results := make([][]model.Record, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			records, err := fn(ctx, page)
			if err != nil {
				s.logger.Warn("page fetch failed", "page", page, "error", err)
				return nil
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("schedule interrupted", "error", err)
	}

	var all []model.Record
	for _, records := range results {
		all = append(all, records...)
	}
	return all
}

// PoolScheduler runs a fixed set of worker goroutines that drain a
// shared page queue. Records are aggregated in completion order, so
// the output ordering varies from run to run. Callers that need a
// stable ordering should use OrderedScheduler instead.
type PoolScheduler struct {
	workers int
	logger  *slog.Logger
}

// NewPoolScheduler creates a PoolScheduler with the given number of
// workers. Values below 1 fall back to 10.
func NewPoolScheduler(workers int, opts ...SchedulerOption) *PoolScheduler {
	cfg := newSchedulerConfig(opts...)
	if workers < 1 {
		workers = 10
	}
	return &PoolScheduler{
		workers: workers,
		logger:  cfg.logger,
	}
}

// Schedule fetches the given pages through the worker pool and returns
// their records in completion order.
func (s *PoolScheduler) Schedule(ctx context.Context, pages []int, fn PageFunc) []model.Record {
	queue := make(chan int)

	var (
		mu  sync.Mutex
		all []model.Record
		wg  sync.WaitGroup
	)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range queue {
				records, err := fn(ctx, page)
				if err != nil {
					s.logger.Warn("page fetch failed", "page", page, "error", err)
					continue
				}
				mu.Lock()
				all = append(all, records...)
				mu.Unlock()
			}
		}()
	}

	for _, page := range pages {
		select {
		case <-ctx.Done():
			s.logger.Warn("schedule interrupted", "error", ctx.Err())
			close(queue)
			wg.Wait()
			return all
		case queue <- page:
		}
	}
	close(queue)
	wg.Wait()

	return all
}
