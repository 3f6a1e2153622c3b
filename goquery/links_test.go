package goquery_test

import (
	"testing"

	"github.com/fwojciec/webcat"
	"github.com/fwojciec/webcat/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure LinkExtractor implements webcat.LinkExtractor at compile time.
var _ webcat.LinkExtractor = (*goquery.LinkExtractor)(nil)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against base URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/docs/intro">Intro</a>
<a href="guide">Guide</a>
<a href="../about">About</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/docs/start")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/intro",
			"https://example.com/docs/guide",
			"https://example.com/about",
		}, links)
	})

	t.Run("strips fragments", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a#frag1">1</a><a href="/a#frag2">2</a><a href="/a">3</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/a",
		}, links)
	})

	t.Run("filters external hosts and subdomains", func(t *testing.T) {
		t.Parallel()

		html := `
<a href="https://example.com/docs/a">same</a>
<a href="https://other.com/docs/b">other</a>
<a href="https://api.example.com/docs/c">subdomain</a>
<a href="http://EXAMPLE.com/docs/d">case and scheme</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/a",
			"http://example.com/docs/d",
		}, links)
	})

	t.Run("skips non-HTTP links", func(t *testing.T) {
		t.Parallel()

		html := `
<a href="mailto:team@example.com">mail</a>
<a href="javascript:void(0)">js</a>
<a href="tel:+123">phone</a>
<a href="">empty</a>
<a href="/ok">ok</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/ok"}, links)
	})

	t.Run("honours base element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><base href="/v2/"></head><body><a href="intro">Intro</a></body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/docs/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/v2/intro"}, links)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/x'>x</a>", "://bad")

		require.Error(t, err)
		assert.Equal(t, webcat.EINVALID, webcat.ErrorCode(err))
	})
}
