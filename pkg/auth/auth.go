// Package auth provides session cookies for platforms whose public pages
// are served in full only to logged-in visitors.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register cookie store finders

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

// Spec describes the session cookies of one platform.
type Spec struct {
	EnvMap    map[string]string // cookie name -> env suffix, when it differs from upper-case name
	Name      string
	Domain    string
	EnvPrefix string
	Cookies   []string
}

// EnvName returns the environment variable holding cookie name.
func (s Spec) EnvName(name string) string {
	suffix := strings.ToUpper(name)
	if mapped, ok := s.EnvMap[name]; ok {
		suffix = mapped
	}
	return s.EnvPrefix + "_" + suffix
}

// Specs lists platforms that accept session cookies.
var Specs = []Spec{
	{
		Name:      "instagram",
		Domain:    "instagram.com",
		EnvPrefix: "INSTAGRAM",
		Cookies:   []string{"sessionid", "csrftoken", "ds_user_id"},
	},
	{
		Name:      "tiktok",
		Domain:    "tiktok.com",
		EnvPrefix: "TIKTOK",
		Cookies:   []string{"sessionid", "tt_csrf_token"},
		EnvMap:    map[string]string{"tt_csrf_token": "CSRF_TOKEN"},
	},
}

// SpecFor returns the cookie spec for platform.
func SpecFor(platform string) (Spec, bool) {
	for _, s := range Specs {
		if s.Name == platform {
			return s, true
		}
	}
	return Spec{}, false
}

// Source yields session cookies for a platform.
type Source interface {
	Cookies(ctx context.Context, platform string) (map[string]string, error)
}

// EnvSource reads cookies from environment variables such as INSTAGRAM_SESSIONID.
type EnvSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSource creates an EnvSource backed by the process environment.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

// Cookies returns the cookies of platform that are set in the environment.
func (s *EnvSource) Cookies(_ context.Context, platform string) (map[string]string, error) {
	spec, ok := SpecFor(platform)
	if !ok {
		return nil, fmt.Errorf("%s: %w", platform, profile.ErrUnsupportedPlatform)
	}
	out := make(map[string]string)
	for _, name := range spec.Cookies {
		if v, ok := s.lookup(spec.EnvName(name)); ok && strings.TrimSpace(v) != "" {
			out[name] = strings.TrimSpace(v)
		}
	}
	if len(out) == 0 {
		return nil, profile.ErrNoCookies
	}
	return out, nil
}

// BrowserSource reads cookies from locally installed browsers.
type BrowserSource struct {
	logger *slog.Logger
}

// NewBrowserSource creates a BrowserSource.
func NewBrowserSource(logger *slog.Logger) *BrowserSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserSource{logger: logger}
}

// Cookies returns the valid cookies of platform found in any browser.
// When several browsers hold the same cookie the first one read wins.
func (s *BrowserSource) Cookies(ctx context.Context, platform string) (map[string]string, error) {
	spec, ok := SpecFor(platform)
	if !ok {
		return nil, fmt.Errorf("%s: %w", platform, profile.ErrUnsupportedPlatform)
	}

	cookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(spec.Domain))
	if err != nil && len(cookies) == 0 {
		return nil, fmt.Errorf("read browser cookies: %w", err)
	}
	if err != nil {
		s.logger.DebugContext(ctx, "some cookie stores failed", "platform", platform, "error", err)
	}

	wanted := make(map[string]bool, len(spec.Cookies))
	for _, name := range spec.Cookies {
		wanted[name] = true
	}

	out := make(map[string]string)
	for _, c := range cookies {
		if c == nil || !wanted[c.Name] {
			continue
		}
		if _, seen := out[c.Name]; !seen {
			out[c.Name] = c.Value
		}
	}
	if len(out) == 0 {
		return nil, profile.ErrNoCookies
	}
	s.logger.DebugContext(ctx, "found browser cookies", "platform", platform, "count", len(out))
	return out, nil
}

// ChainSource tries sources in order and returns the first non-empty result.
type ChainSource []Source

// Cookies implements Source.
func (c ChainSource) Cookies(ctx context.Context, platform string) (map[string]string, error) {
	for _, src := range c {
		cookies, err := src.Cookies(ctx, platform)
		if err == nil && len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, profile.ErrNoCookies
}

// Header formats cookies as a Cookie request header value, ordered as in the platform Spec.
func Header(platform string, cookies map[string]string) string {
	spec, ok := SpecFor(platform)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(cookies))
	for _, name := range spec.Cookies {
		if v, ok := cookies[name]; ok {
			parts = append(parts, name+"="+v)
		}
	}
	return strings.Join(parts, "; ")
}
