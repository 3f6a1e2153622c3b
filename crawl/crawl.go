// Package crawl discovers, fetches and orders the pages that make up a
// document. Discoverer turns one seed page into a target list, Scheduler
// fetches the list concurrently and Reorder restores the caller's order.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/webcat"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of in-flight fetches when
// Scheduler.Concurrency is not set.
const DefaultConcurrency = 10

// Scheduler fetches a list of URLs through a bounded sliding window.
type Scheduler struct {
	Fetcher webcat.Fetcher

	// Limiter throttles requests per host. Nil disables throttling.
	Limiter webcat.DomainLimiter

	// Concurrency bounds the number of in-flight fetches.
	Concurrency int

	// Logger receives internal faults. Nil discards them.
	Logger *slog.Logger
}

// fetchResult holds the outcome of fetching a single URL. Exactly one of
// page, err and fault is set.
type fetchResult struct {
	url   string
	page  *webcat.Page
	err   *webcat.FetchError
	fault error
}

// FetchAll fetches every URL and returns the pages and failures in
// completion order. Repeated URLs are fetched once. One failure never stops
// the others; a worker that panics is logged and its URL is absent from both
// slices. The progress callback, if provided, receives one event per URL.
func (s *Scheduler) FetchAll(ctx context.Context, urls []string, progress webcat.FetchProgressFunc) ([]*webcat.Page, []*webcat.FetchError) {
	urls = dedupe(urls)
	if len(urls) == 0 {
		return nil, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fetchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			g.Go(func() error {
				resultCh <- s.fetchOne(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var (
		pages     []*webcat.Page
		failures  []*webcat.FetchError
		completed int
	)
	total := len(urls)
	for result := range resultCh {
		completed++

		var progressErr error
		switch {
		case result.fault != nil:
			s.logger().Error("internal fault", "url", result.url, "err", result.fault)
			progressErr = result.fault
		case result.err != nil:
			failures = append(failures, result.err)
			progressErr = result.err
		default:
			pages = append(pages, result.page)
		}

		if progress != nil {
			progress(webcat.FetchProgress{
				URL:       result.url,
				Completed: completed,
				Total:     total,
				Error:     progressErr,
			})
		}
	}

	return pages, failures
}

// fetchOne fetches a single URL and converts every outcome, including a
// panic in the fetcher, into a fetchResult.
func (s *Scheduler) fetchOne(ctx context.Context, url string) (result fetchResult) {
	result.url = url
	defer func() {
		if r := recover(); r != nil {
			result = fetchResult{
				url:   url,
				fault: webcat.Errorf(webcat.EINTERNAL, "fetch %s: panic: %v", url, r),
			}
		}
	}()

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, webcat.HostOf(url)); err != nil {
			result.err = &webcat.FetchError{URL: url, Reason: fmt.Sprintf("rate limit: %v", err)}
			return result
		}
	}

	page, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		result.err = asFetchError(url, err)
		return result
	}
	if page == nil {
		result.err = &webcat.FetchError{URL: url, Reason: "internal: fetcher returned no page"}
		return result
	}
	if page.URL != url {
		page = &webcat.Page{URL: url, HTML: page.HTML}
	}
	result.page = page
	return result
}

// asFetchError returns err as a *webcat.FetchError for url.
func asFetchError(url string, err error) *webcat.FetchError {
	var fe *webcat.FetchError
	if errors.As(err, &fe) {
		if fe.URL == url {
			return fe
		}
		return &webcat.FetchError{URL: url, Reason: fe.Reason, StatusCode: fe.StatusCode}
	}
	return &webcat.FetchError{URL: url, Reason: err.Error()}
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dedupe returns urls with repeats after the first occurrence removed.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
