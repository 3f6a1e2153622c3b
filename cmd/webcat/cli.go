package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webcat"
	"github.com/fwojciec/webcat/crawl"
	"github.com/fwojciec/webcat/render"
)

// CLI defines the command-line interface structure for kong.
type CLI struct {
	URLs      []string      `arg:"" optional:"" name:"url" help:"URLs to fetch. A single URL triggers link discovery unless --single is set"`
	URLFile   string        `short:"u" name:"urls" type:"existingfile" help:"Read URLs from a file, one per line"`
	Sitemap   string        `help:"Read URLs from a sitemap"`
	Single    bool          `short:"s" help:"Fetch only the given URL, without link discovery"`
	Output    string        `short:"o" help:"Output file (default: derived from the first URL)"`
	Parallel  int           `short:"p" default:"10" env:"WEBCAT_PARALLEL" help:"Concurrent fetch limit"`
	Timeout   time.Duration `default:"20s" env:"WEBCAT_TIMEOUT" help:"Fetch timeout per page"`
	Mode      string        `short:"m" default:"body" enum:"raw,body,readable" env:"WEBCAT_MODE" help:"Rendering mode (raw, body, readable)"`
	Extractor string        `default:"readability" enum:"readability,trafilatura" help:"Main-content extractor for readable mode"`
	MinChars  int           `default:"500" help:"Minimum characters for readability to accept an article"`
	Browser   bool          `help:"Fetch pages with a headless browser"`
	RPS       float64       `name:"rps" default:"0" help:"Requests per second per domain (0 disables limiting)"`
	Include   []string      `help:"Only keep URLs matching this regex (repeatable)"`
	Exclude   []string      `help:"Drop URLs matching this regex (repeatable)"`
	Dedupe    bool          `help:"Skip pages whose markdown duplicates an earlier page"`
	Tokens    bool          `help:"Estimate the token count of the output"`
	Clipboard bool          `short:"c" help:"Copy the output to the clipboard"`
	Yes       bool          `short:"y" help:"Skip the confirmation prompt after discovery"`
	Verbose   bool          `short:"v" help:"Log every fetch instead of showing a progress bar"`
	UserAgent string        `env:"WEBCAT_USER_AGENT" help:"User-Agent header for HTTP requests"`
	Version   bool          `help:"Print the version and exit"`
}

// validate checks flag combinations kong cannot express.
func (c *CLI) validate() error {
	sources := 0
	if len(c.URLs) > 0 {
		sources++
	}
	if c.URLFile != "" {
		sources++
	}
	if c.Sitemap != "" {
		sources++
	}
	switch {
	case sources == 0:
		return webcat.Errorf(webcat.EINVALID, "no URLs provided. Run 'webcat --help' for usage")
	case sources > 1:
		return webcat.Errorf(webcat.EINVALID, "URL arguments, --urls and --sitemap are mutually exclusive")
	}
	if c.Parallel < 1 {
		return webcat.Errorf(webcat.EINVALID, "--parallel must be at least 1")
	}
	if c.Timeout <= 0 {
		return webcat.Errorf(webcat.EINVALID, "--timeout must be positive")
	}
	if c.RPS < 0 {
		return webcat.Errorf(webcat.EINVALID, "--rps must not be negative")
	}
	return nil
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Sitemaps   webcat.SitemapService
	Discoverer *crawl.Discoverer
	Scheduler  *crawl.Scheduler
	Renderer   *render.Renderer
	Prompter   webcat.Prompter
	Clipboard  webcat.Clipboard

	// Tokens is nil when token counting is disabled or unavailable.
	Tokens webcat.TokenCounter
}

// RunCmd is the single webcat operation.
type RunCmd struct {
	URLs      []string
	URLFile   string
	Sitemap   string
	Single    bool
	Output    string
	Include   []string
	Exclude   []string
	Parallel  int
	Yes       bool
	Tokens    bool
	Clipboard bool

	// Progress shows a progress bar while fetching.
	Progress bool
}
