// Package telegram fetches public Telegram channel and user data from t.me preview pages.
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/cache"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

var (
	usernamePattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?(?:t\.me|telegram\.me|telegram\.dog)/(?:s/)?([a-z][a-z0-9_]{4,31})/?(?:[?#].*)?$`)
	counterType     = regexp.MustCompile(`(?i)^(?:subscribers?|members?)$`)
	audiencePattern = regexp.MustCompile(`(?i)^([\d][\d\s.,]*[KMB]?)\s+(?:subscribers?|members?|подписчик\S*|участник\S*)`)
)

// nonProfiles are reserved t.me paths.
var nonProfiles = map[string]bool{
	"joinchat": true, "addstickers": true, "addemoji": true, "share": true,
	"proxy": true, "socks": true, "setlanguage": true, "addtheme": true,
	"iv": true, "login": true, "contact": true,
}

// Match returns true if the URL is a public Telegram channel, group or user link.
// Invite links (t.me/+..., t.me/joinchat/...) are not profiles.
func Match(urlStr string) bool {
	return extractUsername(urlStr) != ""
}

// AuthRequired returns false because t.me previews are public.
func AuthRequired() bool { return false }

// ProfileURL returns the preview URL for username.
func ProfileURL(username string) string {
	return "https://t.me/" + strings.TrimPrefix(username, "@")
}

// Client handles Telegram requests.
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

// New creates a Telegram client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), timeout: 5 * time.Second}
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

// Fetch retrieves a Telegram channel or user as a linked social account.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.SocialAccount, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from: %s", urlStr)
	}
	urlStr = ProfileURL(username)

	c.logger.InfoContext(ctx, "fetching telegram profile", "url", urlStr, "username", username)

	if err := c.limiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	body, err := cache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, err
	}

	acct := parseHTML(body, urlStr, username)
	// t.me answers 200 for unknown names and renders a generic page without a title block.
	if acct.Title == "" {
		return nil, fmt.Errorf("%s: %w", urlStr, profile.ErrProfileNotFound)
	}
	return acct, nil
}

func parseHTML(data []byte, urlStr, username string) *profile.SocialAccount {
	acct := &profile.SocialAccount{
		Type:     profile.TypeTelegram,
		URL:      urlStr,
		Username: username,
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return acct
	}

	acct.Title = text(doc.Find(".tgme_page_title").First())

	// Channel pages: "12 345 subscribers"; groups: "1 234 members, 56 online";
	// user pages: "@username".
	if m := audiencePattern.FindStringSubmatch(text(doc.Find(".tgme_page_extra").First())); len(m) > 1 {
		acct.Subscribers = strings.TrimSpace(m[1])
	}
	// Message preview pages (t.me/s/name) carry the count in the header counters.
	if acct.Subscribers == "" {
		doc.Find(".tgme_header_counter, .tgme_channel_info_counter").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if !counterType.MatchString(text(sel.Find(".counter_type"))) {
				return true
			}
			acct.Subscribers = text(sel.Find(".counter_value"))
			return acct.Subscribers == ""
		})
	}

	return acct
}

// text returns the selection's text with whitespace runs collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func extractUsername(urlStr string) string {
	m := usernamePattern.FindStringSubmatch(strings.TrimSpace(urlStr))
	if len(m) < 2 {
		return ""
	}
	name := strings.ToLower(m[1])
	if nonProfiles[name] {
		return ""
	}
	return name
}
