package webcat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Page represents a fetched web page.
type Page struct {
	URL  string
	HTML string
}

// FetchError describes why a single page could not be fetched.
// The URL is the one that was requested, not the one a redirect ended at.
type FetchError struct {
	URL        string
	Reason     string
	StatusCode int // zero when no response was received
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Reason)
}

// RateLimited reports whether the failure indicates the server throttled us.
func (e *FetchError) RateLimited() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(e.Reason, "429") || strings.Contains(e.Reason, "Too Many Requests")
}

// FetchProgress reports progress during page fetching.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// FetchProgressFunc is called as pages are fetched.
type FetchProgressFunc func(FetchProgress)

// Fetcher retrieves the HTML of a single URL.
type Fetcher interface {
	// Fetch performs one request and returns the page.
	// Any failure is returned as a *FetchError carrying the requested URL.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// LinkExtractor extracts the same-host links of a page.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute link targets resolved
	// against baseURL, with fragments removed, restricted to the host of
	// baseURL. Order follows the document; duplicates are allowed.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
