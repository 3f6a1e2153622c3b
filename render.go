package webcat

import (
	"context"
	"strings"
)

// Mode selects how a page's HTML is reduced before markdown conversion.
type Mode string

// Rendering modes.
const (
	// ModeRaw converts the whole document.
	ModeRaw Mode = "raw"
	// ModeBody converts the <body> element with scripts removed.
	ModeBody Mode = "body"
	// ModeReadable converts the main content found by an Extractor.
	ModeReadable Mode = "readable"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeRaw, ModeBody, ModeReadable:
		return m, nil
	}
	return "", Errorf(EINVALID, "unknown mode %q (want raw, body or readable)", s)
}

// Separated reports whether each page is preceded by a line naming its URL.
func (m Mode) Separated() bool {
	return m != ModeReadable
}

// Filtered reports whether pages whose converted text is empty are omitted.
func (m Mode) Filtered() bool {
	return m != ModeRaw
}

// Fragment is the rendered text of one page, tagged with the page's position
// in the final document.
type Fragment struct {
	Index int
	Text  string
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the selected content as HTML.
	ContentHTML string
}

// Extractor selects the content of an HTML page that should be converted.
type Extractor interface {
	// Extract processes raw HTML and returns the selected content.
	// An empty ContentHTML means the page has nothing worth converting.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. Relative links are
	// resolved against pageURL when it is not empty.
	Convert(html, pageURL string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
