// Package goquery implements link extraction and body selection over parsed
// HTML documents using github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webcat"
)

// Ensure LinkExtractor implements webcat.LinkExtractor at compile time.
var _ webcat.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns every same-host hyperlink of a page.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns the targets of all a[href] elements,
// resolved against baseURL and normalized (fragment removed). Links to other
// hosts and non-HTTP links (mailto:, javascript:, ...) are skipped. Host
// comparison ignores the port. Links are returned in document order and may
// repeat.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webcat.Errorf(webcat.EINVALID, "invalid base URL: %v", err)
	}
	host := strings.ToLower(base.Hostname())

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webcat.Errorf(webcat.EINVALID, "failed to parse HTML: %v", err)
	}

	// A <base href> changes how relative links resolve.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved, err := webcat.ResolveURL(base, href)
		if err != nil {
			return
		}

		// Exact host match, subdomains are different hosts
		if webcat.HostOf(resolved) != host {
			return
		}

		links = append(links, resolved)
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
