package webcat_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/webcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	t.Run("strips fragment", func(t *testing.T) {
		t.Parallel()

		u, err := webcat.NormalizeURL("https://example.com/docs/a#section-2")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs/a", u)
	})

	t.Run("lower-cases scheme and host", func(t *testing.T) {
		t.Parallel()

		u, err := webcat.NormalizeURL("HTTPS://Example.COM/Docs")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/Docs", u)
	})

	t.Run("keeps query", func(t *testing.T) {
		t.Parallel()

		u, err := webcat.NormalizeURL("https://example.com/search?q=go#top")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/search?q=go", u)
	})

	t.Run("maps an empty path to root", func(t *testing.T) {
		t.Parallel()

		u, err := webcat.NormalizeURL("https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", u)
	})

	t.Run("maps an empty path with a query to root", func(t *testing.T) {
		t.Parallel()

		u, err := webcat.NormalizeURL("https://example.com?page=2")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/?page=2", u)
	})

	t.Run("drops default ports", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]string{
			"https://example.com:443/":   "https://example.com/",
			"http://Example.com:80/docs": "http://example.com/docs",
			"http://[::1]:80/":           "http://[::1]/",
			"https://example.com:8443/":  "https://example.com:8443/",
			"http://example.com:443/":    "http://example.com:443/",
		} {
			u, err := webcat.NormalizeURL(raw)
			require.NoError(t, err)
			assert.Equal(t, want, u, raw)
		}
	})

	t.Run("seed and home link share one key", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://example.com")
		require.NoError(t, err)

		seed, err := webcat.NormalizeURL("https://example.com:443")
		require.NoError(t, err)
		home, err := webcat.ResolveURL(base, "/")
		require.NoError(t, err)

		assert.Equal(t, seed, home)
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()

		_, err := webcat.NormalizeURL("/docs/a")

		require.Error(t, err)
		assert.Equal(t, webcat.EINVALID, webcat.ErrorCode(err))
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()

		_, err := webcat.NormalizeURL("mailto:someone@example.com")

		require.Error(t, err)
		assert.Equal(t, webcat.EINVALID, webcat.ErrorCode(err))
	})
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/docs/intro")
	require.NoError(t, err)

	u, err := webcat.ResolveURL(base, "../api/v2#auth")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/v2", u)
}

func TestNormalizeURLs(t *testing.T) {
	t.Parallel()

	urls, skipped := webcat.NormalizeURLs([]string{
		"https://example.com/a#x",
		"not a url",
		"https://example.com/b",
		"https://example.com/a",
	})

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
	assert.Len(t, skipped, 1)
}

func TestReadURLs(t *testing.T) {
	t.Parallel()

	input := `# reading list
https://example.com/one

   https://example.com/two#frag
not-a-url
# https://example.com/commented
https://example.com/three
`
	urls, err := webcat.ReadURLs(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/one",
		"https://example.com/two",
		"https://example.com/three",
	}, urls)
}

func TestHostOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", webcat.HostOf("https://Example.com:8443/x"))
	assert.Empty(t, webcat.HostOf("::"))
}
