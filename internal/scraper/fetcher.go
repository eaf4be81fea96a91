package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/khoj-tools/lostfoundscan/internal/model"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the per-request timeout applied when no custom
// timeout is configured. The portal is slow under load; anything past
// this is treated as a failed page.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool to the portal.
const DefaultUserAgent = "lostfoundscan/1.0 (+https://github.com/khoj-tools/lostfoundscan)"

// defaultMaxBodySize caps how much of a response body is read.
// Listing pages are well under 1MB; the cap guards against a
// misbehaving server streaming unbounded data.
const defaultMaxBodySize = 5 * 1024 * 1024

// Fetcher retrieves one listing page for a set of search parameters.
// Implementations must be safe for concurrent use: the schedulers call
// Fetch from multiple goroutines.
type Fetcher interface {
	Fetch(ctx context.Context, params model.SearchParams) (model.Page, error)
}

// fetcherConfig holds the settings shared by both fetcher variants.
type fetcherConfig struct {
	baseURL     string
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// FetcherOption configures a fetcher.
type FetcherOption func(*fetcherConfig)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(c *fetcherConfig) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) FetcherOption {
	return func(c *fetcherConfig) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

func newFetcherConfig(baseURL string, opts ...FetcherOption) fetcherConfig {
	c := fetcherConfig{
		baseURL:     baseURL,
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SimpleFetcher issues each request on a fresh connection. It pairs
// with the worker-pool scheduler, where each worker holds at most one
// request in flight at a time.
type SimpleFetcher struct {
	cfg    fetcherConfig
	client *http.Client
}

// NewSimpleFetcher creates a SimpleFetcher for the given listing URL.
func NewSimpleFetcher(baseURL string, opts ...FetcherOption) (*SimpleFetcher, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	cfg := newFetcherConfig(baseURL, opts...)
	return &SimpleFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}, nil
}

// Fetch retrieves the listing page selected by params.
func (f *SimpleFetcher) Fetch(ctx context.Context, params model.SearchParams) (model.Page, error) {
	return doFetch(ctx, f.client, f.cfg, params)
}

// PooledFetcher reuses keep-alive connections across requests. It pairs
// with the errgroup scheduler, which fans many requests out to the same
// host at once and benefits from connection reuse.
type PooledFetcher struct {
	cfg    fetcherConfig
	client *http.Client
}

// NewPooledFetcher creates a PooledFetcher for the given listing URL.
// maxConns bounds the idle connections kept open to the portal; values
// below 1 fall back to 10.
func NewPooledFetcher(baseURL string, maxConns int, opts ...FetcherOption) (*PooledFetcher, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if maxConns < 1 {
		maxConns = 10
	}
	cfg := newFetcherConfig(baseURL, opts...)
	return &PooledFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.timeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxConns,
				MaxIdleConnsPerHost: maxConns,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Fetch retrieves the listing page selected by params.
func (f *PooledFetcher) Fetch(ctx context.Context, params model.SearchParams) (model.Page, error) {
	return doFetch(ctx, f.client, f.cfg, params)
}

// doFetch performs the HTTP request shared by both fetcher variants.
// The response body is decoded to UTF-8 based on the Content-Type
// header, so downstream extraction never sees legacy encodings.
func doFetch(ctx context.Context, client *http.Client, cfg fetcherConfig, params model.SearchParams) (model.Page, error) {
	reqURL := cfg.baseURL + "?" + params.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.Page{}, fmt.Errorf("build request for page %d: %w", params.Page, err)
	}
	req.Header.Set("User-Agent", cfg.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return model.Page{}, fmt.Errorf("fetch page %d: %w", params.Page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Page{}, fmt.Errorf("%w: %d for page %d", ErrUnexpectedStatus, resp.StatusCode, params.Page)
	}

	limited := io.LimitReader(resp.Body, cfg.maxBodySize)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return model.Page{}, fmt.Errorf("decode page %d: %w", params.Page, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return model.Page{}, fmt.Errorf("read page %d: %w", params.Page, err)
	}

	return model.Page{Number: params.Page, HTML: string(body)}, nil
}
