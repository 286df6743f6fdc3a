// Package profile defines the common blogger and social account types.
package profile

import (
	"errors"
	"slices"
)

// Common errors returned by platform packages.
var (
	ErrAuthRequired        = errors.New("authentication required")
	ErrNoCookies           = errors.New("no cookies available")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// APIType is the social network tag used by the marketplace backend.
// Values outside the known constants are legal and mean "a network this
// build does not know about".
type APIType string

// Backend social network tags.
const (
	TypeInstagram APIType = "INSTAGRAM"
	TypeTikTok    APIType = "TIKTOK"
	TypeYouTube   APIType = "YOUTUBE"
	TypeTelegram  APIType = "TELEGRAM"
)

// SocialAccount is one linked social network profile of a blogger.
type SocialAccount struct {
	Type        APIType `json:"type"`
	Title       string  `json:"title,omitempty"`       // Display title reported by the platform
	Username    string  `json:"username,omitempty"`    // Handle without @ prefix
	Subscribers string  `json:"subscribers,omitempty"` // Raw count as delivered by the backend
	URL         string  `json:"url,omitempty"`
}

// Prices holds advertising prices in minor currency units.
type Prices struct {
	Post        int64 `json:"post,omitempty"`
	Story       int64 `json:"story,omitempty"`
	Reels       int64 `json:"reels,omitempty"`
	Integration int64 `json:"integration,omitempty"`
}

// Coverage holds audience reach figures.
type Coverage struct {
	PostReach   int64  `json:"postReach,omitempty"`
	StoryReach  int64  `json:"storyReach,omitempty"`
	ReelsReach  int64  `json:"reelsReach,omitempty"`
	Subscribers string `json:"subscribers,omitempty"`
}

// Blogger is the published, backend-authoritative blogger record.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Blogger struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status,omitempty"`
	Social      []SocialAccount `json:"social"`
	Topics      []int           `json:"topics,omitempty"`
	Prices      Prices          `json:"prices"`
	Coverage    Coverage        `json:"coverage"`
}

// Clone returns a copy of b that shares no slices with it.
func (b Blogger) Clone() Blogger {
	b.Social = slices.Clone(b.Social)
	b.Topics = slices.Clone(b.Topics)
	return b
}
