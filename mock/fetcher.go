package mock

import (
	"context"

	"github.com/fwojciec/webcat"
)

var _ webcat.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webcat.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*webcat.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*webcat.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
