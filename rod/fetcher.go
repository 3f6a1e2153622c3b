// Package rod fetches pages through headless Chrome so that content built
// by JavaScript is present in the returned HTML.
package rod

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webcat"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load, navigation through load event.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements webcat.Fetcher at compile time.
var _ webcat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool    *browserPool
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout      time.Duration
	recycleAfter int64
}

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter replaces the browser after it has served n pages.
// Non-positive values keep DefaultRecycleAfter.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.recycleAfter = n
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool, err := newBrowserPool(cfg.recycleAfter, launchChrome)
	if err != nil {
		return nil, err
	}

	return &Fetcher{pool: pool, timeout: cfg.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML. A non-2xx status
// on the main document is reported like the HTTP fetcher reports it; other
// failures are *webcat.FetchError with a "browser:" reason.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcat.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, browserError(url, err)
	}

	browser, release, err := f.pool.acquire()
	if err != nil {
		return nil, browserError(url, err)
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, browserError(url, err)
	}
	defer func() { _ = page.Close() }()

	p := page.Context(ctx).Timeout(f.timeout)

	// Subscribe before navigating so the main document response is not missed.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	var doc *proto.NetworkResponse
	waitDoc := p.Context(watchCtx).EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.FrameID != page.FrameID {
			return false
		}
		doc = e.Response
		return true
	})
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		waitDoc()
	}()
	documentResponse := func() *proto.NetworkResponse {
		stopWatch()
		<-watched
		return doc
	}

	if err := p.Navigate(url); err != nil {
		if fe := statusError(url, documentResponse()); fe != nil {
			return nil, fe
		}
		return nil, browserError(url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, browserError(url, err)
	}
	if fe := statusError(url, documentResponse()); fe != nil {
		return nil, fe
	}

	html, err := p.HTML()
	if err != nil {
		return nil, browserError(url, err)
	}

	return &webcat.Page{URL: url, HTML: html}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.pool.close()
}

// LauncherPID returns the process ID of the current browser launcher, or
// zero after Close.
func (f *Fetcher) LauncherPID() int {
	return f.pool.pid()
}

func browserError(url string, err error) *webcat.FetchError {
	return &webcat.FetchError{URL: url, Reason: fmt.Sprintf("browser: %v", err)}
}

// statusError returns nil unless resp carries a non-2xx status. Status 0
// means the browser had no HTTP status to report.
func statusError(url string, resp *proto.NetworkResponse) *webcat.FetchError {
	if resp == nil || resp.Status == 0 || (resp.Status >= 200 && resp.Status <= 299) {
		return nil
	}
	text := resp.StatusText
	if text == "" {
		text = http.StatusText(resp.Status)
	}
	return &webcat.FetchError{
		URL:        url,
		Reason:     strings.TrimSpace(fmt.Sprintf("HTTP %d %s", resp.Status, text)),
		StatusCode: resp.Status,
	}
}
