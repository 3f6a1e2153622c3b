package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/webcat"
	"github.com/fwojciec/webcat/crawl"
	"github.com/fwojciec/webcat/fs"
)

// Run executes the fetch-and-concatenate pipeline.
func (c *RunCmd) Run(deps *Dependencies) error {
	filter, err := webcat.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return err
	}

	urls, err := c.targets(deps, filter)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return webcat.Errorf(webcat.EINVALID, "no valid URLs")
	}

	if c.discovers() {
		ok, err := c.confirm(deps, urls)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Stdout, "Aborted")
			return nil
		}
	}

	output := c.Output
	if output == "" {
		first := urls[0]
		if c.discovers() {
			first = c.URLs[0]
		}
		output = fs.OutputPath(first)
	}
	f, err := fs.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	bar := newProgressBar(deps.Stderr, len(urls), c.Progress)
	pages, failures := deps.Scheduler.FetchAll(deps.Ctx, urls, fetchProgress(bar))
	_ = bar.Finish()

	if err := deps.Ctx.Err(); err != nil {
		return err
	}

	pages = crawl.Reorder(pages, urls)
	result, err := deps.Renderer.Render(deps.Ctx, f, pages)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	path, err := filepath.Abs(output)
	if err != nil {
		path = output
	}
	fmt.Fprintf(deps.Stdout, "%d pages successfully processed\n", result.Pages)
	fmt.Fprintf(deps.Stdout, "Output: %s (%s)\n", path, crawl.FormatBytes(result.Bytes))
	if result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d duplicate pages\n", result.Duplicates)
	}

	c.reportFailures(deps, failures)

	if c.Tokens && deps.Tokens != nil {
		n, err := deps.Tokens.CountTokens(deps.Ctx, result.Text)
		if err != nil {
			deps.Logger.Warn("token count failed", "err", err)
		} else {
			fmt.Fprintf(deps.Stdout, "Tokens: %s\n", crawl.FormatTokens(n))
		}
	}

	if c.Clipboard {
		if err := deps.Clipboard.Copy(result.Text); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: %s\n", webcat.ErrorMessage(err))
		} else {
			fmt.Fprintln(deps.Stdout, "Copied to clipboard")
		}
	}

	return nil
}

// discovers reports whether the single positional URL is a discovery seed.
func (c *RunCmd) discovers() bool {
	return len(c.URLs) == 1 && !c.Single
}

// targets resolves the input into the ordered list of URLs to fetch.
func (c *RunCmd) targets(deps *Dependencies, filter *webcat.URLFilter) ([]string, error) {
	var urls []string
	switch {
	case c.Sitemap != "":
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap: %w", err)
		}
		urls, _ = webcat.NormalizeURLs(found)

	case c.URLFile != "":
		f, err := os.Open(c.URLFile)
		if err != nil {
			return nil, fmt.Errorf("read urls: %w", err)
		}
		defer f.Close()
		found, err := webcat.ReadURLs(f)
		if err != nil {
			return nil, fmt.Errorf("read urls: %w", err)
		}
		urls, _ = webcat.NormalizeURLs(found)

	case c.discovers():
		found, err := deps.Discoverer.Discover(deps.Ctx, c.URLs[0])
		if err != nil {
			return nil, err
		}
		urls = found

	default:
		var invalid []error
		urls, invalid = webcat.NormalizeURLs(c.URLs)
		if len(invalid) > 0 {
			return nil, invalid[0]
		}
	}
	return filter.Apply(urls), nil
}

// confirm lists the discovered URLs and asks whether to fetch them.
func (c *RunCmd) confirm(deps *Dependencies, urls []string) (bool, error) {
	fmt.Fprintf(deps.Stdout, "Found %d pages:\n", len(urls))
	for i, u := range urls {
		fmt.Fprintf(deps.Stdout, "%4d. %s\n", i+1, u)
	}
	if c.Yes {
		return true, nil
	}
	return deps.Prompter.Confirm(fmt.Sprintf("Fetch %d pages?", len(urls)))
}

// reportFailures prints each failed URL with its reason, in URL order.
func (c *RunCmd) reportFailures(deps *Dependencies, failures []*webcat.FetchError) {
	if len(failures) == 0 {
		return
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].URL < failures[j].URL })

	fmt.Fprintf(deps.Stderr, "\n%d pages failed:\n", len(failures))
	rateLimited := false
	for _, f := range failures {
		fmt.Fprintf(deps.Stderr, "  %s: %s\n", f.URL, f.Reason)
		if f.RateLimited() {
			rateLimited = true
		}
	}
	if rateLimited {
		fmt.Fprintf(deps.Stderr, "Hint: some servers rate limited the requests. Try a lower --parallel (currently %d).\n", c.Parallel)
	}
}
