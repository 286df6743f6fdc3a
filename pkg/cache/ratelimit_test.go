package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHostOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.instagram.com/anna/", "instagram.com"},
		{"https://Instagram.com/anna", "instagram.com"},
		{"https://t.me/anna", "t.me"},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := hostOf(tt.url); got != tt.want {
				t.Errorf("hostOf(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDomainRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("delays_same_host", func(t *testing.T) {
		r := NewDomainRateLimiter(50 * time.Millisecond)
		start := time.Now()
		if err := r.Wait(ctx, "https://t.me/a"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if err := r.Wait(ctx, "https://t.me/b"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
			t.Errorf("second Wait() returned after %v, want >= 50ms", elapsed)
		}
	})

	t.Run("other_host_not_delayed", func(t *testing.T) {
		r := NewDomainRateLimiter(time.Hour)
		if err := r.Wait(ctx, "https://t.me/a"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		done := make(chan error, 1)
		go func() { done <- r.Wait(ctx, "https://tiktok.com/@a") }()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Wait() error = %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("Wait() blocked on unrelated host")
		}
	})

	t.Run("honors_context", func(t *testing.T) {
		r := NewDomainRateLimiter(time.Hour)
		if err := r.Wait(ctx, "https://t.me/a"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := r.Wait(cctx, "https://t.me/a"); !errors.Is(err, context.Canceled) {
			t.Errorf("Wait(cancelled) error = %v, want %v", err, context.Canceled)
		}

		dctx, dcancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer dcancel()
		start := time.Now()
		if err := r.Wait(dctx, "https://www.t.me/a"); err == nil {
			t.Error("Wait() with short deadline error = nil, want error")
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("Wait() with short deadline blocked for %v", elapsed)
		}
	})

	t.Run("nil_limiter", func(t *testing.T) {
		var r *DomainRateLimiter
		if err := r.Wait(ctx, "https://t.me/a"); err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	})
}
