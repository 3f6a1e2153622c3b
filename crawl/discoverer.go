package crawl

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/fwojciec/webcat"
)

// prefixShare is the fraction of discovered URLs a path prefix must cover
// to be treated as the site's content section.
const prefixShare = 0.7

// Discoverer finds the pages related to a seed page by looking at the seed's
// own links. It fetches exactly one page.
type Discoverer struct {
	Fetcher webcat.Fetcher
	Links   webcat.LinkExtractor
}

// Discover fetches seed, collects its same-host links, narrows them to the
// dominant path prefix when one exists and returns them sorted, with the seed
// included. Failing to fetch the seed is an error.
func (d *Discoverer) Discover(ctx context.Context, seed string) ([]string, error) {
	seedURL, err := webcat.NormalizeURL(seed)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", seed, err)
	}

	page, err := d.Fetcher.Fetch(ctx, seedURL)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", seedURL, err)
	}

	links, err := d.Links.ExtractLinks(page.HTML, seedURL)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", seedURL, err)
	}

	host := webcat.HostOf(seedURL)
	links, _ = webcat.NormalizeURLs(links)
	urls := make([]string, 0, len(links)+1)
	for _, u := range links {
		if webcat.HostOf(u) == host {
			urls = append(urls, u)
		}
	}

	if prefix, ok := BestPrefix(urls); ok {
		urls = filterByPrefix(urls, prefix)
	}

	if !slices.Contains(urls, seedURL) {
		urls = append(urls, seedURL)
	}
	sort.Strings(urls)
	return urls, nil
}

// BestPrefix returns the path prefix shared by the most URLs, provided at
// least max(2, ceil(0.7*len(urls))) of them share it. Each URL contributes
// every '/'-delimited prefix of its path once; root paths contribute none.
// Ties go to the shortest prefix, then the lexicographically smallest.
func BestPrefix(urls []string) (string, bool) {
	counts := make(map[string]int)
	for _, raw := range urls {
		for _, prefix := range pathPrefixes(pathOf(raw)) {
			counts[prefix]++
		}
	}

	threshold := max(2, int(math.Ceil(prefixShare*float64(len(urls)))))

	var best string
	bestCount := 0
	for prefix, count := range counts {
		if count < threshold {
			continue
		}
		if count > bestCount || (count == bestCount && prefixLess(prefix, best)) {
			best, bestCount = prefix, count
		}
	}
	return best, bestCount > 0
}

// pathPrefixes lists the '/'-delimited prefixes of path, each ending in '/'.
// "/docs/api/v2" yields "/docs/", "/docs/api/" and "/docs/api/v2/".
func pathPrefixes(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	prefixes := make([]string, 0, len(segments))
	for i := range segments {
		prefixes = append(prefixes, "/"+strings.Join(segments[:i+1], "/")+"/")
	}
	return prefixes
}

func prefixLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func pathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

func filterByPrefix(urls []string, prefix string) []string {
	var out []string
	for _, u := range urls {
		if strings.HasPrefix(pathOf(u), prefix) {
			out = append(out, u)
		}
	}
	return out
}
