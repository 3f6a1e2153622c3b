package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"full yes", "yes\n", true},
		{"upper case", "YES\n", true},
		{"surrounding space", "  y  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"end of input", "", false},
		{"unterminated yes", "y", true},
		{"other", "sure\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Fetch 3 pages?")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Fetch 3 pages? [y/N] ", out.String())
		})
	}
}

func TestCLI_Validate(t *testing.T) {
	t.Parallel()

	valid := func() CLI {
		return CLI{URLs: []string{"https://example.com/"}, Parallel: 10, Timeout: 1}
	}

	tests := []struct {
		name    string
		mutate  func(*CLI)
		wantErr bool
	}{
		{"valid", func(*CLI) {}, false},
		{"no source", func(c *CLI) { c.URLs = nil }, true},
		{"file and args", func(c *CLI) { c.URLFile = "urls.txt" }, true},
		{"sitemap only", func(c *CLI) { c.URLs = nil; c.Sitemap = "https://example.com/sitemap.xml" }, false},
		{"zero parallel", func(c *CLI) { c.Parallel = 0 }, true},
		{"zero timeout", func(c *CLI) { c.Timeout = 0 }, true},
		{"negative rps", func(c *CLI) { c.RPS = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(&c)
			err := c.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
