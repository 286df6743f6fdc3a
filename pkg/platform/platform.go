// Package platform maps backend social network tags to local platform
// identifiers and recognizes profile URLs.
package platform

import (
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/instagram"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/telegram"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/tiktok"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/youtube"
)

// Platform is the lowercase local identifier of a social network.
type Platform string

// Supported platforms.
const (
	Instagram Platform = "instagram"
	TikTok    Platform = "tiktok"
	YouTube   Platform = "youtube"
	Telegram  Platform = "telegram"
)

// unknownLabel is shown for platforms without a label.
const unknownLabel = "Другая сеть"

type entry struct {
	local Platform
	api   profile.APIType
	label string
	match func(string) bool
}

// entries is ordered by display priority. It is never modified.
var entries = []entry{
	{local: Instagram, api: profile.TypeInstagram, label: "Instagram", match: instagram.Match},
	{local: TikTok, api: profile.TypeTikTok, label: "TikTok", match: tiktok.Match},
	{local: YouTube, api: profile.TypeYouTube, label: "YouTube", match: youtube.Match},
	{local: Telegram, api: profile.TypeTelegram, label: "Telegram", match: telegram.Match},
}

// FromAPI converts a backend tag into a local platform identifier.
// Unknown tags, including ones added to the backend later, return false;
// callers should skip such accounts rather than fail.
func FromAPI(t profile.APIType) (Platform, bool) {
	for _, e := range entries {
		if e.api == t {
			return e.local, true
		}
	}
	return "", false
}

// ToAPI converts a local platform identifier back into the backend tag.
func ToAPI(p Platform) (profile.APIType, bool) {
	for _, e := range entries {
		if e.local == p {
			return e.api, true
		}
	}
	return "", false
}

// Label returns a human readable platform name.
func Label(p Platform) string {
	for _, e := range entries {
		if e.local == p {
			return e.label
		}
	}
	return unknownLabel
}

// All returns the supported platforms in display order.
func All() []Platform {
	out := make([]Platform, len(entries))
	for i, e := range entries {
		out[i] = e.local
	}
	return out
}

// Detect returns the platform whose profile URL format matches urlStr.
func Detect(urlStr string) (Platform, bool) {
	for _, e := range entries {
		if e.match(urlStr) {
			return e.local, true
		}
	}
	return "", false
}
