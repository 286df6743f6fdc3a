// Package cache provides HTTP response caching and fetching helpers for
// platform clients.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/bdcache"
	"github.com/codeGROOVE-dev/bdcache/persist/localfs"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

// maxBodySize caps how much of a profile page is read.
const maxBodySize = 2 << 20

// HTTPCache defines the interface for caching HTTP responses.
type HTTPCache interface {
	Get(ctx context.Context, url string) (data []byte, etag string, headers map[string]string, found bool)
	SetAsync(ctx context.Context, url string, data []byte, etag string, headers map[string]string) error
	SetAsyncWithTTL(ctx context.Context, url string, data []byte, etag string, headers map[string]string, ttl time.Duration) error
}

// Entry is a cached HTTP response.
type Entry struct {
	Data    []byte            `json:"data"`
	ETag    string            `json:"etag,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Store is an HTTPCache backed by bdcache, optionally persisted to disk.
type Store struct {
	cache   *bdcache.Cache[string, Entry]
	logger  *slog.Logger
	pending sync.WaitGroup
	ttl     time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	logger *slog.Logger
	dir    string
	ttl    time.Duration
}

// WithDir persists cached responses under dir. An empty dir keeps the
// cache in memory only.
func WithDir(dir string) StoreOption {
	return func(c *storeConfig) { c.dir = dir }
}

// WithTTL sets the default time-to-live of cached responses.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) { c.ttl = ttl }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(c *storeConfig) { c.logger = logger }
}

// NewStore creates a response cache.
func NewStore(ctx context.Context, opts ...StoreOption) (*Store, error) {
	cfg := &storeConfig{logger: slog.Default(), ttl: 24 * time.Hour}
	for _, opt := range opts {
		opt(cfg)
	}

	var c *bdcache.Cache[string, Entry]
	var err error
	if cfg.dir != "" {
		p, perr := localfs.New[string, Entry]("bloggerdesk-http", cfg.dir)
		if perr != nil {
			return nil, fmt.Errorf("open cache dir %s: %w", cfg.dir, perr)
		}
		c, err = bdcache.New[string, Entry](ctx, bdcache.WithPersistence(p))
	} else {
		c, err = bdcache.New[string, Entry](ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &Store{cache: c, ttl: cfg.ttl, logger: cfg.logger}, nil
}

// Get returns a cached response for url.
func (s *Store) Get(ctx context.Context, url string) (data []byte, etag string, headers map[string]string, found bool) {
	e, ok, err := s.cache.Get(ctx, storeKey(url))
	if err != nil {
		s.logger.DebugContext(ctx, "cache read failed", "url", url, "error", err)
		return nil, "", nil, false
	}
	if !ok {
		return nil, "", nil, false
	}
	return e.Data, e.ETag, e.Headers, true
}

// SetAsync stores a response with the default TTL without blocking the caller.
func (s *Store) SetAsync(ctx context.Context, url string, data []byte, etag string, headers map[string]string) error {
	return s.SetAsyncWithTTL(ctx, url, data, etag, headers, s.ttl)
}

// SetAsyncWithTTL stores a response with the given TTL without blocking the caller.
func (s *Store) SetAsyncWithTTL(ctx context.Context, url string, data []byte, etag string, headers map[string]string, ttl time.Duration) error {
	e := Entry{Data: data, ETag: etag, Headers: headers}
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.cache.Set(ctx, storeKey(url), e, ttl); err != nil {
			s.logger.WarnContext(ctx, "cache write failed", "url", url, "error", err)
		}
	}()
	return nil
}

// Close waits for pending writes, then flushes and releases the underlying cache.
func (s *Store) Close() error {
	s.pending.Wait()
	return s.cache.Close()
}

// storeKey maps a URL to a key the disk store accepts: it rejects '/'.
func storeKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// FetchURL returns the body of req, consulting httpCache first when it is
// non-nil and storing successful responses in it.
func FetchURL(ctx context.Context, httpCache HTTPCache, client *http.Client, req *http.Request, logger *slog.Logger) ([]byte, error) {
	urlStr := req.URL.String()

	if httpCache != nil {
		if data, _, _, found := httpCache.Get(ctx, urlStr); found {
			logger.DebugContext(ctx, "cache hit", "url", urlStr)
			return data, nil
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // error ignored intentionally

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, fmt.Errorf("%s: %w", urlStr, profile.ErrProfileNotFound)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%s: %w", urlStr, profile.ErrRateLimited)
	default:
		return nil, &StatusError{URL: urlStr, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	if httpCache != nil {
		_ = httpCache.SetAsync(ctx, urlStr, body, resp.Header.Get("ETag"), nil) //nolint:errcheck // async, error ignored
	}

	return body, nil
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.URL)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
