package telegram

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
		{"https://t.me/anna_blog", true},
		{"t.me/anna_blog", true},
		{"https://t.me/s/anna_blog", true},
		{"https://telegram.me/Anna_Blog/", true},
		{"https://t.me/+AbCdEf123", false},
		{"https://t.me/joinchat/AbCdEf123", false},
		{"https://t.me/anna_blog/123", false},
		{"https://t.me/abc", false},
		{"https://example.com/t.me/anna_blog", false},
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
		t.Error("Telegram should not require auth")
	}
}

func TestParseHTML(t *testing.T) {
	tests := []struct {
		name            string
		html            string
		wantTitle       string
		wantSubscribers string
	}{
		{
			name: "channel",
			html: `<div class="tgme_page_title" dir="auto"><span dir="auto">Anna&#39;s blog</span></div>
<div class="tgme_page_extra">12 345 subscribers</div>`,
			wantTitle:       "Anna's blog",
			wantSubscribers: "12 345",
		},
		{
			name: "group",
			html: `<div class="tgme_page_title"><span dir="auto">Anna chat</span></div>
<div class="tgme_page_extra">1 234 members, 56 online</div>`,
			wantTitle:       "Anna chat",
			wantSubscribers: "1 234",
		},
		{
			name: "user",
			html: `<div class="tgme_page_title"><span dir="auto">Anna</span></div>
<div class="tgme_page_extra">@anna_blog</div>`,
			wantTitle: "Anna",
		},
		{
			name: "preview page counters",
			html: `<div class="tgme_page_title"><span dir="auto">Anna</span></div>
<div class="tgme_header_counter"><span class="counter_value">12.3K</span> <span class="counter_type">subscribers</span></div>`,
			wantTitle:       "Anna",
			wantSubscribers: "12.3K",
		},
		{
			name: "nested title markup",
			html: `<div class="tgme_page_title"><div class="verified"><i></i></div>
  <span dir="auto">Anna  &amp;  Co</span>
</div>
<div class="tgme_page_extra">2&nbsp;000 subscribers</div>`,
			wantTitle:       "Anna & Co",
			wantSubscribers: "2 000",
		},
		{
			name: "channel info counters",
			html: `<div class="tgme_page_title"><span dir="auto">Anna</span></div>
<div class="tgme_channel_info_counters">
  <div class="tgme_channel_info_counter"><span class="counter_value">1.2K</span> <span class="counter_type">photos</span></div>
  <div class="tgme_channel_info_counter"><span class="counter_value">45.6K</span> <span class="counter_type">subscribers</span></div>
</div>`,
			wantTitle:       "Anna",
			wantSubscribers: "45.6K",
		},
		{
			name: "no title block",
			html: `<div class="tgme_page_description">If you have Telegram, you can contact us right away.</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := parseHTML([]byte(tt.html), "https://t.me/anna_blog", "anna_blog")
			if acct.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", acct.Title, tt.wantTitle)
			}
			if acct.Subscribers != tt.wantSubscribers {
				t.Errorf("Subscribers = %q, want %q", acct.Subscribers, tt.wantSubscribers)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/anna_blog" {
			_, _ = w.Write([]byte(`<div class="tgme_page_title"><span dir="auto">Anna</span></div><div class="tgme_page_extra">900 subscribers</div>`))
			return
		}
		_, _ = w.Write([]byte(`<div class="tgme_page_description">If you have Telegram, you can contact us right away.</div>`))
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := New(ctx, WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.httpClient = server.Client()
	client.httpClient.Transport = &mockTransport{mockURL: server.URL}

	t.Run("found", func(t *testing.T) {
		acct, err := client.Fetch(ctx, "https://t.me/s/Anna_Blog")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if acct.Subscribers != "900" {
			t.Errorf("Subscribers = %q, want %q", acct.Subscribers, "900")
		}
		if acct.URL != "https://t.me/anna_blog" {
			t.Errorf("URL = %q, want %q", acct.URL, "https://t.me/anna_blog")
		}
	})

	t.Run("unknown_name", func(t *testing.T) {
		_, err := client.Fetch(ctx, "https://t.me/nobody_here")
		if !errors.Is(err, profile.ErrProfileNotFound) {
			t.Errorf("Fetch() error = %v, want %v", err, profile.ErrProfileNotFound)
		}
	})
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
