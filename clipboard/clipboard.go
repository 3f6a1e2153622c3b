// Package clipboard copies the finished document to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/fwojciec/webcat"
)

// Ensure Clipboard implements webcat.Clipboard at compile time.
var _ webcat.Clipboard = (*Clipboard)(nil)

// Clipboard writes to the system clipboard.
type Clipboard struct{}

// NewClipboard creates a new Clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Copy replaces the clipboard contents with text. It fails with EINTERNAL
// when no clipboard utility is available, as on a headless Linux host.
func (c *Clipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return webcat.Errorf(webcat.EINTERNAL, "clipboard not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return webcat.Errorf(webcat.EINTERNAL, "copy to clipboard: %v", err)
	}
	return nil
}
