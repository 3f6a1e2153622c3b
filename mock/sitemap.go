package mock

import (
	"context"

	"github.com/fwojciec/webcat"
)

var _ webcat.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of webcat.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string, filter *webcat.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *webcat.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL, filter)
}
