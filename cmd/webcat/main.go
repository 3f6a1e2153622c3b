package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webcat"
	"github.com/fwojciec/webcat/clipboard"
	"github.com/fwojciec/webcat/crawl"
	"github.com/fwojciec/webcat/gemini"
	"github.com/fwojciec/webcat/goquery"
	"github.com/fwojciec/webcat/htmltomarkdown"
	wchttp "github.com/fwojciec/webcat/http"
	"github.com/fwojciec/webcat/readability"
	"github.com/fwojciec/webcat/render"
	"github.com/fwojciec/webcat/rod"
	wslog "github.com/fwojciec/webcat/slog"
	"github.com/fwojciec/webcat/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", webcat.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin answers the discovery confirmation prompt.
	Stdin io.Reader

	// Collaborators used instead of the real ones when set, for testing.
	Fetcher      webcat.Fetcher
	Prompter     webcat.Prompter
	Clipboard    webcat.Clipboard
	TokenCounter webcat.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webcat"),
		kong.Description("Concatenate web pages into a single markdown document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return webcat.Errorf(webcat.EINVALID, "no URLs provided. Run 'webcat --help' for usage")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.Version {
		fmt.Fprintf(stdout, "webcat %s\n", webcat.Version)
		return nil
	}

	if err := cli.validate(); err != nil {
		return err
	}

	deps, cleanup, err := m.wire(ctx, cli, stdout, stderr)
	if err != nil {
		return err
	}
	defer cleanup()

	cmd := &RunCmd{
		URLs:      cli.URLs,
		URLFile:   cli.URLFile,
		Sitemap:   cli.Sitemap,
		Single:    cli.Single,
		Output:    cli.Output,
		Include:   cli.Include,
		Exclude:   cli.Exclude,
		Parallel:  cli.Parallel,
		Yes:       cli.Yes,
		Tokens:    cli.Tokens,
		Clipboard: cli.Clipboard,
		Progress:  !cli.Verbose,
	}
	return cmd.Run(deps)
}

// wire builds the services for one run. The returned cleanup releases the
// fetcher and must be called once the run is over.
func (m *Main) wire(ctx context.Context, cli *CLI, stdout, stderr io.Writer) (*Dependencies, func(), error) {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	mode, err := webcat.ParseMode(cli.Mode)
	if err != nil {
		return nil, nil, err
	}

	httpOpts := []wchttp.Option{wchttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		httpOpts = append(httpOpts, wchttp.WithUserAgent(cli.UserAgent))
	}
	httpFetcher := wchttp.NewFetcher(httpOpts...)

	var fetcher webcat.Fetcher = httpFetcher
	switch {
	case m.Fetcher != nil:
		fetcher = m.Fetcher
	case cli.Browser:
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --browser")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	}
	fetcher = wslog.NewLoggingFetcher(fetcher, logger)
	cleanup := func() { _ = fetcher.Close() }

	var extractor webcat.Extractor
	switch cli.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = readability.NewExtractor(readability.WithCharThreshold(cli.MinChars))
	}

	var limiter webcat.DomainLimiter
	if cli.RPS > 0 {
		limiter = crawl.NewHostLimiter(cli.RPS)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Sitemaps: wslog.NewLoggingSitemapService(
			wchttp.NewSitemapService(httpFetcher.Client()), logger),
		Discoverer: &crawl.Discoverer{
			Fetcher: fetcher,
			Links:   goquery.NewLinkExtractor(),
		},
		Scheduler: &crawl.Scheduler{
			Fetcher:     fetcher,
			Limiter:     limiter,
			Concurrency: cli.Parallel,
			Logger:      logger,
		},
		Renderer: &render.Renderer{
			Mode:           mode,
			Body:           goquery.NewBodyExtractor(),
			Extractor:      wslog.NewLoggingExtractor(extractor, logger),
			Converter:      htmltomarkdown.NewConverter(),
			KeepText:       cli.Clipboard || cli.Tokens,
			SkipDuplicates: cli.Dedupe,
			Logger:         logger,
		},
		Prompter:  m.Prompter,
		Clipboard: m.Clipboard,
		Tokens:    m.TokenCounter,
	}

	if deps.Prompter == nil {
		deps.Prompter = NewPrompter(m.Stdin, stdout)
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.NewClipboard()
	}
	if cli.Tokens && deps.Tokens == nil {
		counter, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			logger.Warn("token counting unavailable", "err", err)
		} else {
			deps.Tokens = counter
		}
	}

	return deps, cleanup, nil
}
