// Package main implements a CLI that prints the display card of a blogger,
// with pending drafts applied.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goccy/go-json"

	"github.com/codeGROOVE-dev/bloggerdesk"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/auth"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/blogger"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/cache"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/config"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/drafts"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/format"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/logging"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/platform"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/status"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/topics"
)

type options struct {
	bloggerPath string
	draftsPath  string
	topicsPath  string
	logLevel    string
	refresh     bool
	noColor     bool
}

// output is the printed card plus the fields only the CLI shows.
type output struct {
	blogger.Card

	PlatformLabel string       `json:"platformLabel"`
	Status        status.Badge `json:"status"`
	Pending       []string     `json:"pending,omitempty"`
	Reach         string       `json:"reach,omitempty"`
}

func main() {
	if err := config.LoadDotenvIfPresent(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.bloggerPath, "blogger", "", "Blogger record JSON file (- for stdin)")
	flag.StringVar(&opts.draftsPath, "drafts", "", "Pending drafts JSON file")
	flag.StringVar(&opts.topicsPath, "topics", cfg.TopicsFile, "Topic catalog YAML file")
	flag.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.refresh, "refresh", false, "Re-fetch the main social account before rendering")
	flag.BoolVar(&opts.noColor, "no-color", os.Getenv("NO_COLOR") != "", "Disable coloured log output")
	flag.Parse()

	if opts.bloggerPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bloggercard -blogger FILE [-drafts FILE] [-topics FILE] [-refresh]")
		os.Exit(2)
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, level, opts.noColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, cfg, opts, logger); err != nil {
		logger.ErrorContext(ctx, "bloggercard failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, cfg config.Config, opts options, logger *slog.Logger) error {
	b, err := readBlogger(opts.bloggerPath)
	if err != nil {
		return err
	}

	var pending drafts.Set
	if opts.draftsPath != "" {
		pending, err = readDrafts(opts.draftsPath)
		if err != nil {
			return err
		}
		if err := pending.Validate(); err != nil {
			return fmt.Errorf("invalid drafts: %w", err)
		}
		if !pending.Empty() && !status.Editable(b.Status) {
			logger.WarnContext(ctx, "drafts pending on a blogger that cannot be edited", "status", b.Status)
		}
		b = drafts.Merge(b, pending)
	}

	if opts.refresh {
		b = refresh(ctx, cfg, b, logger)
	}

	var card blogger.Card
	if opts.topicsPath != "" {
		catalog, err := topics.LoadCatalog(opts.topicsPath)
		if err != nil {
			return err
		}
		card = blogger.PrepareWithTopics(&b, catalog.Lookup())
	} else {
		card = blogger.Prepare(&b)
	}

	out := output{
		Card:          card,
		PlatformLabel: platform.Label(card.Platform),
		Status:        status.For(b.Status),
		Pending:       pending.Fields(),
	}
	if b.Coverage.PostReach > 0 {
		out.Reach = format.Compact(b.Coverage.PostReach)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// refresh re-fetches the main social account. Failures are logged and the
// stored account is kept.
func refresh(ctx context.Context, cfg config.Config, b profile.Blogger, logger *slog.Logger) profile.Blogger {
	current := blogger.MainSocial(&b)
	if current == nil || current.URL == "" {
		logger.InfoContext(ctx, "nothing to refresh: no main social account URL")
		return b
	}

	store, err := cache.NewStore(ctx, cache.WithDir(cfg.CacheDir), cache.WithTTL(cfg.CacheTTL), cache.WithLogger(logger))
	if err != nil {
		logger.WarnContext(ctx, "page cache unavailable", "error", err)
		store = nil
	}
	var httpCache cache.HTTPCache
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.DebugContext(ctx, "close page cache", "error", err)
			}
		}()
		httpCache = store
	}

	acct, err := bloggerdesk.Fetch(ctx, current.URL,
		bloggerdesk.WithHTTPCache(httpCache),
		bloggerdesk.WithLogger(logger),
		bloggerdesk.WithRateLimiter(cache.NewDomainRateLimiter(cfg.RateLimit)),
		bloggerdesk.WithCookies(auth.ChainSource{auth.NewEnvSource(), auth.NewBrowserSource(logger)}),
		bloggerdesk.WithTimeout(cfg.FetchTimeout),
	)
	if err != nil {
		if errors.Is(err, profile.ErrRateLimited) {
			logger.WarnContext(ctx, "rate limited, keeping stored account", "url", current.URL)
		} else {
			logger.WarnContext(ctx, "refresh failed, keeping stored account", "url", current.URL, "error", err)
		}
		return b
	}
	return bloggerdesk.Attach(b, *acct)
}

func readBlogger(path string) (profile.Blogger, error) {
	var b profile.Blogger
	r, closeFn, err := open(path)
	if err != nil {
		return b, err
	}
	defer closeFn()

	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return b, fmt.Errorf("decode blogger %s: %w", path, err)
	}
	return b, nil
}

func readDrafts(path string) (drafts.Set, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return drafts.Set{}, err
	}
	defer closeFn()

	s, err := drafts.Decode(r)
	if err != nil {
		return drafts.Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func open(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // read-only file
}
