// Package tiktok fetches public TikTok profile data.
package tiktok

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/auth"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/cache"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/htmlutil"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

const platform = "tiktok"

var (
	usernamePattern      = regexp.MustCompile(`(?i)tiktok\.com/@([a-z0-9._]{2,24})/?(?:[?#].*)?$`)
	titleNamePattern     = regexp.MustCompile(`^(.*?)\s*\(@([a-zA-Z0-9._]+)\)`)
	followerCountPattern = regexp.MustCompile(`"followerCount":\s*(\d+)`)
	nicknamePattern      = regexp.MustCompile(`"nickname":\s*"((?:[^"\\]|\\.)*)"`)
	followersTextPattern = regexp.MustCompile(`(?i)([\d.,]+[kmb]?)\s+followers`)
)

// Match returns true if the URL is a TikTok profile URL.
func Match(urlStr string) bool {
	return extractUsername(urlStr) != ""
}

// AuthRequired returns false because TikTok profiles are public.
func AuthRequired() bool { return false }

// ProfileURL returns the canonical profile URL for username.
func ProfileURL(username string) string {
	return "https://www.tiktok.com/@" + strings.TrimPrefix(username, "@")
}

// Client handles TikTok requests.
type Client struct {
	httpClient *http.Client
	cache      cache.HTTPCache
	limiter    *cache.DomainRateLimiter
	cookies    auth.Source
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   cache.HTTPCache
	limiter *cache.DomainRateLimiter
	cookies auth.Source
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

// WithCookies sets the session cookie source.
func WithCookies(src auth.Source) Option {
	return func(c *config) { c.cookies = src }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// New creates a TikTok client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.timeout},
		cache:      cfg.cache,
		limiter:    cfg.limiter,
		cookies:    cfg.cookies,
		logger:     cfg.logger,
	}, nil
}

// Fetch retrieves a TikTok profile as a linked social account.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.SocialAccount, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from: %s", urlStr)
	}
	urlStr = ProfileURL(username)

	c.logger.InfoContext(ctx, "fetching tiktok profile", "url", urlStr, "username", username)

	if err := c.limiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0")

	httpCache := c.cache
	if c.cookies != nil {
		if cookies, err := c.cookies.Cookies(ctx, platform); err == nil {
			req.Header.Set("Cookie", auth.Header(platform, cookies))
			httpCache = nil
		}
	}

	body, err := cache.FetchURL(ctx, httpCache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, err
	}

	return parseHTML(body, urlStr, username), nil
}

func parseHTML(data []byte, urlStr, username string) *profile.SocialAccount {
	content := string(data)

	acct := &profile.SocialAccount{
		Type:     profile.TypeTikTok,
		URL:      urlStr,
		Username: username,
	}

	// Embedded state JSON carries exact figures; og tags are rounded.
	if m := followerCountPattern.FindStringSubmatch(content); len(m) > 1 {
		acct.Subscribers = m[1]
	}
	if m := nicknamePattern.FindStringSubmatch(content); len(m) > 1 {
		acct.Title = strings.TrimSpace(unescapeJSON(m[1]))
	}

	// og:title: "Anna B (@anna_b) | TikTok"
	if acct.Title == "" {
		if m := titleNamePattern.FindStringSubmatch(htmlutil.Title(content)); len(m) > 1 {
			acct.Title = strings.TrimSpace(m[1])
		}
	}
	// og:description: "Anna B (@anna_b) on TikTok | 1.2M Likes. 345.6K Followers. ..."
	if acct.Subscribers == "" {
		if m := followersTextPattern.FindStringSubmatch(htmlutil.Description(content)); len(m) > 1 {
			acct.Subscribers = m[1]
		}
	}

	return acct
}

// unescapeJSON decodes the escapes of an embedded JSON string literal.
func unescapeJSON(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

func extractUsername(urlStr string) string {
	m := usernamePattern.FindStringSubmatch(strings.TrimSpace(urlStr))
	if len(m) < 2 {
		return ""
	}
	return strings.ToLower(m[1])
}
