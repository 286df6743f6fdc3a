package youtube

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/@AnnaB", true},
		{"https://youtube.com/@anna.b/videos", true},
		{"https://m.youtube.com/@anna_b?si=x", true},
		{"https://www.youtube.com/channel/UC1234567890abcdefghijAB", true},
		{"https://www.youtube.com/c/AnnaB", true},
		{"https://www.youtube.com/user/annab/", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"https://www.youtube.com/channel/short", false},
		{"https://youtu.be/dQw4w9WgXcQ", false},
		{"https://tiktok.com/@anna_b", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Match(tt.url)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	if AuthRequired() {
		t.Error("YouTube should not require auth")
	}
}

func TestExtractChannel(t *testing.T) {
	tests := []struct {
		url        string
		wantPath   string
		wantHandle string
	}{
		{"https://www.youtube.com/@AnnaB", "@annab", "annab"},
		{"https://www.youtube.com/@AnnaB/about", "@annab", "annab"},
		{"https://www.youtube.com/channel/UC1234567890abcdefghijAB", "channel/UC1234567890abcdefghijAB", ""},
		{"https://www.youtube.com/user/annab", "user/annab", ""},
		{"https://example.com/@annab", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			path, handle := extractChannel(tt.url)
			if path != tt.wantPath || handle != tt.wantHandle {
				t.Errorf("extractChannel(%q) = %q, %q; want %q, %q", tt.url, path, handle, tt.wantPath, tt.wantHandle)
			}
		})
	}
}

func TestParseHTML(t *testing.T) {
	page := `<meta property="og:title" content="Anna B">
<script>var ytInitialData = {"metadata":{"channelMetadataRenderer":{"title":"Anna B"}},"header":{"canonicalBaseUrl":"/@annab","subscriberCountText":{"simpleText":"1.23M subscribers"}}};</script>`

	acct := parseHTML([]byte(page), "https://www.youtube.com/channel/UC1234567890abcdefghijAB", "")
	if acct.Title != "Anna B" {
		t.Errorf("Title = %q, want %q", acct.Title, "Anna B")
	}
	if acct.Username != "annab" {
		t.Errorf("Username = %q, want %q", acct.Username, "annab")
	}
	if acct.URL != "https://www.youtube.com/@annab" {
		t.Errorf("URL = %q, want %q", acct.URL, "https://www.youtube.com/@annab")
	}
	if acct.Subscribers != "1.23M" {
		t.Errorf("Subscribers = %q, want %q", acct.Subscribers, "1.23M")
	}
	if acct.Type != profile.TypeYouTube {
		t.Errorf("Type = %q, want %q", acct.Type, profile.TypeYouTube)
	}
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := New(ctx, WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.httpClient = server.Client()
	client.httpClient.Transport = &mockTransport{mockURL: server.URL}

	_, err = client.Fetch(ctx, "https://www.youtube.com/@nobody")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("Fetch() error = %v, want %v", err, profile.ErrProfileNotFound)
	}
}

// mockTransport redirects requests to the mock server
type mockTransport struct {
	mockURL string
}

func (t *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = strings.TrimPrefix(t.mockURL, "http://")
	return http.DefaultTransport.RoundTrip(req)
}
