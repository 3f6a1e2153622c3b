// Package http provides an HTTP-based implementation of webcat.Fetcher
// and an XML sitemap reader.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webcat"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 20 * time.Second

// DefaultUserAgent identifies webcat to the servers it fetches from.
var DefaultUserAgent = "webcat/" + webcat.Version

// Ensure Fetcher implements webcat.Fetcher at compile time.
var _ webcat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
// The underlying client is built once and shared by all concurrent fetches.
// Fetcher never retries.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (20s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Client returns the shared HTTP client so other HTTP consumers (such as
// SitemapService) reuse the same timeout.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Fetch retrieves the page at url. Every error it returns is a
// *webcat.FetchError classified as an HTTP status, network or body failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcat.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &webcat.FetchError{URL: url, Reason: fmt.Sprintf("network: %v", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &webcat.FetchError{URL: url, Reason: fmt.Sprintf("network: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &webcat.FetchError{
			URL:        url,
			Reason:     "HTTP " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &webcat.FetchError{URL: url, Reason: fmt.Sprintf("read body: %v", err), StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, &webcat.FetchError{URL: url, Reason: fmt.Sprintf("read body: %v", err), StatusCode: resp.StatusCode}
	}

	return &webcat.Page{URL: url, HTML: string(b)}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
