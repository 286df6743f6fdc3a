package cache

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DomainRateLimiter enforces a minimum delay between requests to the same host.
// It is safe for concurrent use from multiple goroutines.
type DomainRateLimiter struct {
	hosts    sync.Map // host -> *rate.Limiter
	minDelay time.Duration
}

// NewDomainRateLimiter creates a rate limiter that enforces minDelay between
// requests to the same host. A zero delay disables waiting.
func NewDomainRateLimiter(minDelay time.Duration) *DomainRateLimiter {
	return &DomainRateLimiter{minDelay: minDelay}
}

// Wait blocks until a request to rawURL's host may be sent. It returns an
// error when ctx is done first or its deadline is too close to wait out.
// Hosts that differ only by a "www." prefix share a limiter.
func (r *DomainRateLimiter) Wait(ctx context.Context, rawURL string) error {
	if r == nil || r.minDelay <= 0 {
		return nil
	}
	host := hostOf(rawURL)
	if host == "" {
		return nil
	}

	v, ok := r.hosts.Load(host)
	if !ok {
		v, _ = r.hosts.LoadOrStore(host, rate.NewLimiter(rate.Every(r.minDelay), 1))
	}
	return v.(*rate.Limiter).Wait(ctx) //nolint:forcetypeassert // only Wait stores values
}

// hostOf returns the lowercased host of rawURL without "www.", or "" on error.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
