// Package render turns fetched pages into one markdown document.
//
// Pages are converted concurrently but written strictly in input order, each
// as soon as every page before it has been written.
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webcat"
	"golang.org/x/sync/errgroup"
)

// separatorRule follows the URL on the line that introduces each page.
const separatorRule = "========================================================="

// fragmentGap joins consecutive fragments in the output.
const fragmentGap = "\n\n\n"

// Renderer converts pages to markdown according to Mode.
type Renderer struct {
	Mode webcat.Mode

	// Body selects page content in ModeBody.
	Body webcat.Extractor

	// Extractor selects main content in ModeReadable.
	Extractor webcat.Extractor

	Converter webcat.Converter

	// Workers bounds concurrent conversions. Defaults to runtime.NumCPU().
	Workers int

	// KeepText retains the written document in Result.Text.
	KeepText bool

	// SkipDuplicates drops a page whose markdown matches an earlier page.
	SkipDuplicates bool

	Logger *slog.Logger
}

// Result summarizes a Render call.
type Result struct {
	// Pages is the number of pages given to Render.
	Pages int

	// Written is the number of pages that contributed to the output.
	Written int

	// Duplicates is the number of pages dropped by SkipDuplicates.
	Duplicates int

	// Bytes is the number of bytes written.
	Bytes int64

	// Text is the written document when KeepText is set.
	Text string
}

// Render converts pages and writes them to w in order. Pages whose content
// converts to nothing are omitted in modes that filter; they still count in
// Result.Pages. A write error stops rendering and is returned.
func (r *Renderer) Render(ctx context.Context, w io.Writer, pages []*webcat.Page) (*Result, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	fragments := make([]webcat.Fragment, len(pages))
	ready := make([]chan struct{}, len(pages))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, page := range pages {
			g.Go(func() error {
				defer close(ready[i])
				if gctx.Err() != nil {
					return nil
				}
				fragments[i] = webcat.Fragment{Index: i, Text: r.renderPage(page)}
				return nil
			})
		}
		_ = g.Wait()
	}()

	result, err := r.write(ctx, w, pages, fragments, ready)

	cancel()
	<-done

	if err != nil {
		return nil, err
	}
	return result, nil
}

// write appends fragments to w in index order, waiting for each in turn.
func (r *Renderer) write(ctx context.Context, w io.Writer, pages []*webcat.Page, fragments []webcat.Fragment, ready []chan struct{}) (*Result, error) {
	result := &Result{Pages: len(pages)}
	seen := make(map[uint64]bool)
	var text strings.Builder

	for i, page := range pages {
		select {
		case <-ready[i]:
		case <-ctx.Done():
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body := fragments[i].Text
		if body == "" && r.Mode.Filtered() {
			r.logger().Debug("empty page omitted", "url", page.URL)
			continue
		}
		if r.SkipDuplicates && body != "" {
			h := xxhash.Sum64String(body)
			if seen[h] {
				r.logger().Debug("duplicate page omitted", "url", page.URL)
				result.Duplicates++
				continue
			}
			seen[h] = true
		}

		chunk := r.format(page.URL, body)
		if result.Written > 0 {
			chunk = fragmentGap + chunk
		}

		n, err := io.WriteString(w, chunk)
		result.Bytes += int64(n)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", page.URL, err)
		}
		result.Written++
		if r.KeepText {
			text.WriteString(chunk)
		}
	}

	result.Text = text.String()
	return result, nil
}

// format prefixes body with the page's separator line when the mode uses one.
func (r *Renderer) format(url, body string) string {
	if !r.Mode.Separated() {
		return body
	}
	return url + " " + separatorRule + " \n\n" + body
}

// renderPage returns the trimmed markdown for one page. Any failure,
// including a panic, yields an empty string.
func (r *Renderer) renderPage(page *webcat.Page) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger().Error("render fault", "url", page.URL, "panic", rec)
			text = ""
		}
	}()

	html, err := r.selectContent(page.HTML)
	if err != nil {
		r.logger().Debug("content selection failed", "url", page.URL, "err", err)
		return ""
	}
	if strings.TrimSpace(html) == "" {
		return ""
	}

	md, err := r.Converter.Convert(html, page.URL)
	if err != nil {
		r.logger().Debug("conversion failed", "url", page.URL, "err", err)
		return ""
	}
	return strings.TrimSpace(md)
}

// selectContent reduces a page's HTML to the part that should be converted.
func (r *Renderer) selectContent(html string) (string, error) {
	var extractor webcat.Extractor
	switch r.Mode {
	case webcat.ModeRaw:
		return html, nil
	case webcat.ModeBody:
		extractor = r.Body
	case webcat.ModeReadable:
		extractor = r.Extractor
	}

	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	res, err := extractor.Extract(html)
	if err != nil {
		return "", err
	}
	return res.ContentHTML, nil
}

func (r *Renderer) validate() error {
	switch r.Mode {
	case webcat.ModeRaw, webcat.ModeBody, webcat.ModeReadable:
	default:
		return webcat.Errorf(webcat.EINVALID, "renderer: unknown mode %q", r.Mode)
	}
	if r.Converter == nil {
		return webcat.Errorf(webcat.EINVALID, "renderer: converter required")
	}
	if r.Mode == webcat.ModeBody && r.Body == nil {
		return webcat.Errorf(webcat.EINVALID, "renderer: body extractor required for mode %q", r.Mode)
	}
	if r.Mode == webcat.ModeReadable && r.Extractor == nil {
		return webcat.Errorf(webcat.EINVALID, "renderer: extractor required for mode %q", r.Mode)
	}
	return nil
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
