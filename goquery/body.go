package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webcat"
)

// Ensure BodyExtractor implements webcat.Extractor at compile time.
var _ webcat.Extractor = (*BodyExtractor)(nil)

// BodyExtractor selects the <body> of a page with script blocks removed.
// Documents without a body (framesets) fall back to the whole document.
type BodyExtractor struct{}

// NewBodyExtractor creates a new BodyExtractor.
func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{}
}

// Extract returns the inner HTML of the body element. ContentHTML is empty
// when the body has no markup left after scripts are stripped.
func (e *BodyExtractor) Extract(html string) (*webcat.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webcat.Errorf(webcat.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())

	sel := doc.Find("body").First()
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("script").Remove()

	content, err := sel.Html()
	if err != nil {
		return nil, err
	}

	return &webcat.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(content),
	}, nil
}
