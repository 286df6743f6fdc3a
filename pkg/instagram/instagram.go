// Package instagram fetches public Instagram profile data.
package instagram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/auth"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/cache"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/htmlutil"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

const platform = "instagram"

var (
	usernamePattern  = regexp.MustCompile(`(?i)(?:instagram\.com|instagr\.am)/([a-z0-9._]{1,30})/?(?:[?#].*)?$`)
	titleNamePattern = regexp.MustCompile(`^(.*?)\s*\(@([a-zA-Z0-9._]+)\)`)
	followersPattern = regexp.MustCompile(`(?i)^([\d.,\s]+[kmb]?)\s+followers`)
)

// nonProfiles are first path segments that are not usernames.
var nonProfiles = map[string]bool{
	"p": true, "reel": true, "reels": true, "tv": true, "explore": true,
	"accounts": true, "stories": true, "direct": true, "about": true,
	"developer": true, "legal": true, "web": true, "challenge": true,
}

// Match returns true if the URL is an Instagram profile URL.
func Match(urlStr string) bool {
	return extractUsername(urlStr) != ""
}

// AuthRequired returns false: public profiles expose their metadata,
// session cookies only reduce login walls.
func AuthRequired() bool { return false }

// ProfileURL returns the canonical profile URL for username.
func ProfileURL(username string) string {
	return "https://www.instagram.com/" + strings.TrimPrefix(username, "@") + "/"
}

// Client handles Instagram requests.
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

// New creates an Instagram client.
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

// Fetch retrieves an Instagram profile as a linked social account.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.SocialAccount, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from: %s", urlStr)
	}
	urlStr = ProfileURL(username)

	c.logger.InfoContext(ctx, "fetching instagram profile", "url", urlStr, "username", username)

	if err := c.limiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	httpCache := c.cache
	if c.cookies != nil {
		if cookies, err := c.cookies.Cookies(ctx, platform); err == nil {
			req.Header.Set("Cookie", auth.Header(platform, cookies))
			// Logged-in pages are personalized and must not be shared through the cache.
			httpCache = nil
		} else {
			c.logger.DebugContext(ctx, "no instagram cookies", "error", err)
		}
	}

	body, err := cache.FetchURL(ctx, httpCache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, err
	}

	acct := parseHTML(body, urlStr, username)
	if acct.Title == "" && acct.Subscribers == "" && strings.Contains(string(body), "/accounts/login") {
		return nil, fmt.Errorf("%s: %w", urlStr, profile.ErrAuthRequired)
	}
	return acct, nil
}

func parseHTML(data []byte, urlStr, username string) *profile.SocialAccount {
	content := string(data)

	acct := &profile.SocialAccount{
		Type:     profile.TypeInstagram,
		URL:      urlStr,
		Username: username,
	}

	// og:title: "Anna B (@anna_b) • Instagram photos and videos"
	if m := titleNamePattern.FindStringSubmatch(htmlutil.MetaContent(content, "og:title")); len(m) > 2 {
		acct.Title = strings.TrimSpace(m[1])
		acct.Username = m[2]
	}

	// og:description: "12K Followers, 345 Following, 678 Posts - See Instagram photos and videos from ..."
	if m := followersPattern.FindStringSubmatch(htmlutil.Description(content)); len(m) > 1 {
		acct.Subscribers = strings.TrimSpace(m[1])
	}

	return acct
}

func extractUsername(urlStr string) string {
	m := usernamePattern.FindStringSubmatch(strings.TrimSpace(urlStr))
	if len(m) < 2 {
		return ""
	}
	name := strings.ToLower(m[1])
	if nonProfiles[name] || strings.Trim(name, ".") == "" {
		return ""
	}
	return name
}
