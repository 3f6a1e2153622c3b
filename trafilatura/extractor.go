// Package trafilatura extracts the main content of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webcat"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webcat.Extractor at compile time.
var _ webcat.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. When trafilatura
// finds no main text, ContentHTML is empty.
func (e *Extractor) Extract(rawHTML string) (*webcat.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webcat.Errorf(webcat.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil && strings.TrimSpace(result.ContentText) != "" {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, webcat.Errorf(webcat.EINTERNAL, "render content: %v", err)
		}
	}

	return &webcat.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
