package mock

import "github.com/fwojciec/webcat"

var _ webcat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webcat.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webcat.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webcat.ExtractResult, error) {
	return e.ExtractFn(html)
}
