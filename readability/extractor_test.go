package readability_test

import (
	"testing"

	"github.com/fwojciec/webcat"
	"github.com/fwojciec/webcat/htmltomarkdown"
	"github.com/fwojciec/webcat/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docPage is a typical documentation page: chrome around one article.
const docPage = `<!DOCTYPE html>
<html>
<head><title>Install Guide</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article>
<h1>Installing the tool</h1>
<p>This is the important article paragraph text that must be kept.</p>
<h2>From npm</h2>
<p>Here is a code example:</p>
<pre><code>npm install my-package</code></pre>
<p>See <a href="/docs/config">the configuration page</a> next.</p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps the article and drops page chrome", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(docPage)

		require.NoError(t, err)
		assert.Equal(t, "Install Guide", result.Title)
		assert.Contains(t, result.ContentHTML, "important article paragraph text")
		assert.Contains(t, result.ContentHTML, "From npm")
		assert.Contains(t, result.ContentHTML, "npm install my-package")
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Sidebar navigation content")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", " \n "} {
			_, err := readability.NewExtractor().Extract(in)
			require.Error(t, err)
			assert.Equal(t, webcat.EINVALID, webcat.ErrorCode(err))
		}
	})

	t.Run("page without text yields no content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Nothing Here</title></head>
<body><div></div></body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Empty(t, result.ContentHTML)
	})
}

func TestExtractor_WithCharThreshold(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Short</title></head>
<body><article><p>A short but real paragraph of article text.</p></article></body>
</html>`

	t.Run("low threshold keeps short article", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor(readability.WithCharThreshold(10))
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "short but real paragraph")
	})

	t.Run("non-positive threshold keeps default", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor(readability.WithCharThreshold(0))
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Short", result.Title)
	})
}

// Readable mode feeds ContentHTML straight into the converter.
func TestExtractor_ContentConvertsToMarkdown(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(docPage)
	require.NoError(t, err)

	md, err := htmltomarkdown.NewConverter().Convert(result.ContentHTML, "https://example.com/docs/install")

	require.NoError(t, err)
	assert.Contains(t, md, "important article paragraph text")
	assert.Contains(t, md, "npm install my-package")
	assert.NotContains(t, md, "Home Nav Link")
}
