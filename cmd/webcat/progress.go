package main

import (
	"io"
	"time"

	"github.com/fwojciec/webcat"
	"github.com/fwojciec/webcat/crawl"
	"github.com/schollz/progressbar/v3"
)

// progressWidth is the space reserved for the current URL next to the bar.
const progressWidth = 40

// newProgressBar returns a bar over total fetches written to w. When visible
// is false the bar renders nothing, so fetch logging can use the terminal.
func newProgressBar(w io.Writer, total int, visible bool) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("fetching"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// fetchProgress advances bar once per completed fetch.
func fetchProgress(bar *progressbar.ProgressBar) webcat.FetchProgressFunc {
	return func(p webcat.FetchProgress) {
		bar.Describe(crawl.TruncateURL(p.URL, progressWidth))
		_ = bar.Add(1)
	}
}
