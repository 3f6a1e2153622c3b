package mock

import "github.com/fwojciec/webcat"

// Compile-time interface verification.
var (
	_ webcat.Prompter  = (*Prompter)(nil)
	_ webcat.Clipboard = (*Clipboard)(nil)
)

// Prompter is a mock implementation of webcat.Prompter.
type Prompter struct {
	ConfirmFn func(message string) (bool, error)
}

func (p *Prompter) Confirm(message string) (bool, error) {
	return p.ConfirmFn(message)
}

// Clipboard is a mock implementation of webcat.Clipboard.
type Clipboard struct {
	CopyFn func(text string) error
}

func (c *Clipboard) Copy(text string) error {
	return c.CopyFn(text)
}
