// Package bloggerdesk fetches public social network profiles and links them
// to blogger records.
//
// Example:
//
//	acct, err := bloggerdesk.Fetch(ctx, "https://www.instagram.com/anna_b/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(acct.Title, acct.Subscribers)
package bloggerdesk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/auth"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/cache"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/instagram"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/platform"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/telegram"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/tiktok"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/youtube"
)

// Option configures Fetch and Link.
type Option func(*config)

type config struct {
	cache   cache.HTTPCache
	limiter *cache.DomainRateLimiter
	cookies auth.Source
	logger  *slog.Logger
	timeout time.Duration
}

// WithHTTPCache sets the page cache shared by every platform client.
func WithHTTPCache(httpCache cache.HTTPCache) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRateLimiter sets the per-host request limiter.
func WithRateLimiter(l *cache.DomainRateLimiter) Option {
	return func(c *config) { c.limiter = l }
}

// WithCookies sets the session cookie source for platforms that use one.
func WithCookies(src auth.Source) Option {
	return func(c *config) { c.cookies = src }
}

// WithTimeout sets the HTTP timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Fetch retrieves the public profile at url as a social account.
// URLs of unsupported networks fail with profile.ErrUnsupportedPlatform.
func Fetch(ctx context.Context, url string, opts ...Option) (*profile.SocialAccount, error) {
	p, ok := platform.Detect(url)
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, profile.ErrUnsupportedPlatform)
	}
	cfg := newConfig(opts)
	cfg.logger.DebugContext(ctx, "dispatching profile fetch", "platform", p, "url", url)

	switch p {
	case platform.Instagram:
		o := []instagram.Option{
			instagram.WithHTTPCache(cfg.cache),
			instagram.WithLogger(cfg.logger),
			instagram.WithRateLimiter(cfg.limiter),
			instagram.WithCookies(cfg.cookies),
		}
		if cfg.timeout > 0 {
			o = append(o, instagram.WithTimeout(cfg.timeout))
		}
		client, err := instagram.New(ctx, o...)
		if err != nil {
			return nil, err
		}
		return client.Fetch(ctx, url)

	case platform.TikTok:
		o := []tiktok.Option{
			tiktok.WithHTTPCache(cfg.cache),
			tiktok.WithLogger(cfg.logger),
			tiktok.WithRateLimiter(cfg.limiter),
			tiktok.WithCookies(cfg.cookies),
		}
		if cfg.timeout > 0 {
			o = append(o, tiktok.WithTimeout(cfg.timeout))
		}
		client, err := tiktok.New(ctx, o...)
		if err != nil {
			return nil, err
		}
		return client.Fetch(ctx, url)

	case platform.YouTube:
		o := []youtube.Option{
			youtube.WithHTTPCache(cfg.cache),
			youtube.WithLogger(cfg.logger),
			youtube.WithRateLimiter(cfg.limiter),
		}
		if cfg.timeout > 0 {
			o = append(o, youtube.WithTimeout(cfg.timeout))
		}
		client, err := youtube.New(ctx, o...)
		if err != nil {
			return nil, err
		}
		return client.Fetch(ctx, url)

	case platform.Telegram:
		o := []telegram.Option{
			telegram.WithHTTPCache(cfg.cache),
			telegram.WithLogger(cfg.logger),
			telegram.WithRateLimiter(cfg.limiter),
		}
		if cfg.timeout > 0 {
			o = append(o, telegram.WithTimeout(cfg.timeout))
		}
		client, err := telegram.New(ctx, o...)
		if err != nil {
			return nil, err
		}
		return client.Fetch(ctx, url)

	default:
		return nil, fmt.Errorf("%s: %w", url, profile.ErrUnsupportedPlatform)
	}
}

// Link fetches the profile at url and returns a copy of b with that account
// attached. An existing account of the same network is replaced in place;
// otherwise the account is appended. b itself is never modified.
func Link(ctx context.Context, b profile.Blogger, url string, opts ...Option) (profile.Blogger, error) {
	acct, err := Fetch(ctx, url, opts...)
	if err != nil {
		return b, err
	}
	return Attach(b, *acct), nil
}

// Attach returns a copy of b with acct attached the way Link does.
func Attach(b profile.Blogger, acct profile.SocialAccount) profile.Blogger {
	out := b.Clone()
	for i := range out.Social {
		if out.Social[i].Type == acct.Type {
			out.Social[i] = acct
			return out
		}
	}
	out.Social = append(out.Social, acct)
	return out
}
