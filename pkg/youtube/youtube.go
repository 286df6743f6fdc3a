// Package youtube fetches public YouTube channel data.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/cache"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/htmlutil"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

var (
	channelPattern     = regexp.MustCompile(`(?i)youtube\.com/(@[\w.\-]{3,30}|channel/UC[\w\-]{22}|c/[\w.\-]+|user/[\w.\-]+)/?(?:featured|videos|shorts|streams|about)?/?(?:[?#].*)?$`)
	handlePattern      = regexp.MustCompile(`"canonicalBaseUrl":"/@([\w.\-]+)"`)
	subscribersPattern = regexp.MustCompile(`(?i)([\d][\d.,]*\s?[KMB]?)\s+subscribers`)
)

// Match returns true if the URL is a YouTube channel URL.
func Match(urlStr string) bool {
	path, _ := extractChannel(urlStr)
	return path != ""
}

// AuthRequired returns false because YouTube channels are public.
func AuthRequired() bool { return false }

// ProfileURL returns the channel URL for a handle (with or without @).
func ProfileURL(handle string) string {
	return "https://www.youtube.com/@" + strings.TrimPrefix(handle, "@")
}

// Client handles YouTube requests.
type Client struct {
	httpClient *http.Client
	cache      cache.HTTPCache
	limiter    *cache.DomainRateLimiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   cache.HTTPCache
	limiter *cache.DomainRateLimiter
	logger  *slog.Logger
	timeout time.Duration
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache cache.HTTPCache) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRateLimiter delays requests that follow each other too closely.
func WithRateLimiter(l *cache.DomainRateLimiter) Option {
	return func(c *config) { c.limiter = l }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// New creates a YouTube client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.timeout},
		cache:      cfg.cache,
		limiter:    cfg.limiter,
		logger:     cfg.logger,
	}, nil
}

// Fetch retrieves a YouTube channel as a linked social account.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.SocialAccount, error) {
	path, username := extractChannel(urlStr)
	if path == "" {
		return nil, fmt.Errorf("could not extract channel from: %s", urlStr)
	}
	urlStr = "https://www.youtube.com/" + path

	c.logger.InfoContext(ctx, "fetching youtube channel", "url", urlStr)

	if err := c.limiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0")
	// Subscriber counts are localized; ask for English so the parser can find them.
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	body, err := cache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, err
	}

	return parseHTML(body, urlStr, username), nil
}

func parseHTML(data []byte, urlStr, username string) *profile.SocialAccount {
	content := string(data)

	acct := &profile.SocialAccount{
		Type:     profile.TypeYouTube,
		URL:      urlStr,
		Username: username,
		Title:    htmlutil.MetaContent(content, "og:title"),
	}

	if m := handlePattern.FindStringSubmatch(content); len(m) > 1 {
		acct.Username = m[1]
		acct.URL = ProfileURL(m[1])
	}
	if m := subscribersPattern.FindStringSubmatch(content); len(m) > 1 {
		acct.Subscribers = strings.TrimSpace(m[1])
	}

	return acct
}

// extractChannel returns the channel path ("@handle", "channel/UC...",
// "c/name", "user/name") and the handle when the URL carries one.
func extractChannel(urlStr string) (path, handle string) {
	m := channelPattern.FindStringSubmatch(strings.TrimSpace(urlStr))
	if len(m) < 2 {
		return "", ""
	}
	path = m[1]
	if strings.HasPrefix(path, "@") {
		handle = strings.ToLower(path[1:])
		path = "@" + handle
	}
	return path, handle
}
