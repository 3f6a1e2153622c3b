// Package fs creates the output document on disk.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webcat"
	"github.com/kennygrant/sanitize"
)

// maxNameLen keeps generated file names within common file system limits.
const maxNameLen = 200

// OutputPath derives a file name from the first target URL:
// https://example.com/docs/api/ → example.com_docs_api.md
// Each host and path segment is reduced to a portable ASCII name.
func OutputPath(rawURL string) string {
	var parts []string
	if u, err := url.Parse(rawURL); err == nil {
		parts = append(parts, u.Hostname())
		parts = append(parts, strings.Split(u.Path, "/")...)
	}

	var names []string
	for _, p := range parts {
		if n := strings.Trim(sanitize.Name(p), ".-"); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "output.md"
	}
	return truncate(strings.Join(names, "_"), maxNameLen) + ".md"
}

// Create creates or truncates the file at path, making parent directories
// as needed.
func Create(path string) (*os.File, error) {
	if path == "" {
		return nil, webcat.Errorf(webcat.EINVALID, "output path required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// truncate shortens s to at most n bytes without splitting a character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
