// Package readability extracts the main content of a page with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/webcat"
	"github.com/go-shiori/go-readability"
)

// DefaultCharThreshold is the minimum number of characters an article must
// have for readability to accept its top candidate.
const DefaultCharThreshold = 500

// Ensure Extractor implements webcat.Extractor at compile time.
var _ webcat.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	charThreshold int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCharThreshold sets the minimum article length in characters.
// Non-positive values keep the default.
func WithCharThreshold(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.charThreshold = n
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{charThreshold: DefaultCharThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content. A page without
// readable text yields an empty ContentHTML.
func (e *Extractor) Extract(rawHTML string) (*webcat.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webcat.Errorf(webcat.EINVALID, "empty HTML input")
	}

	parser := readability.NewParser()
	parser.CharThresholds = e.charThreshold

	article, err := parser.Parse(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	result := &webcat.ExtractResult{Title: article.Title}
	if strings.TrimSpace(article.TextContent) != "" {
		result.ContentHTML = article.Content
	}
	return result, nil
}
