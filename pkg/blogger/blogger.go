// Package blogger derives display data from a published blogger record.
//
// All functions are pure: they never modify their input and are safe for
// concurrent use.
package blogger

import (
	"strings"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/format"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/platform"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/topics"
)

// NotSpecified is shown when a blogger has no usable name anywhere.
const NotSpecified = "Не указано"

// Card is the display-ready view of a blogger.
type Card struct {
	MainSocial       *profile.SocialAccount `json:"mainSocial,omitempty"`
	Platform         platform.Platform      `json:"platform,omitempty"`
	DisplayName      string                 `json:"displayName"`
	Username         string                 `json:"username"`
	Subscribers      string                 `json:"subscribers"`
	SubscribersLabel string                 `json:"subscribersLabel"`
	Topics           []string               `json:"topics,omitempty"`
}

// MainSocial returns the account that represents the blogger publicly:
// the first Instagram account wherever it sits, else the first account,
// else nil. The returned pointer aliases b.Social.
func MainSocial(b *profile.Blogger) *profile.SocialAccount {
	if b == nil || len(b.Social) == 0 {
		return nil
	}
	for i := range b.Social {
		if b.Social[i].Type == profile.TypeInstagram {
			return &b.Social[i]
		}
	}
	return &b.Social[0]
}

// Candidate yields one possible display name.
type Candidate func(b *profile.Blogger, main *profile.SocialAccount) string

// NameCandidates is the display name fallback chain, highest priority first.
var NameCandidates = []Candidate{
	SocialTitle,
	FirstName,
	LastName,
	SocialUsername,
}

// SocialTitle is the display title reported by the main social account.
func SocialTitle(_ *profile.Blogger, main *profile.SocialAccount) string {
	if main == nil {
		return ""
	}
	return main.Title
}

// FirstName is the name stored on the blogger record.
func FirstName(b *profile.Blogger, _ *profile.SocialAccount) string {
	if b == nil {
		return ""
	}
	return b.Name
}

// LastName is the last name stored on the blogger record.
func LastName(b *profile.Blogger, _ *profile.SocialAccount) string {
	if b == nil {
		return ""
	}
	return b.LastName
}

// SocialUsername is the handle of the main social account.
func SocialUsername(_ *profile.Blogger, main *profile.SocialAccount) string {
	if main == nil {
		return ""
	}
	return main.Username
}

// DisplayName returns the first candidate that is non-blank after
// trimming, trimmed, or NotSpecified. It never returns a blank string.
func DisplayName(b *profile.Blogger) string {
	return firstNonEmpty(b, MainSocial(b), NameCandidates, NotSpecified)
}

func firstNonEmpty(b *profile.Blogger, main *profile.SocialAccount, chain []Candidate, fallback string) string {
	for _, c := range chain {
		if v := strings.TrimSpace(c(b, main)); v != "" {
			return v
		}
	}
	return fallback
}

// Prepare builds the display card of b. Username is "" and Subscribers is
// "0" when there is nothing better, so renderers need no nil checks.
func Prepare(b *profile.Blogger) Card {
	main := MainSocial(b)
	card := Card{
		MainSocial:  main,
		DisplayName: firstNonEmpty(b, main, NameCandidates, NotSpecified),
		Subscribers: "0",
	}
	if main != nil {
		card.Username = main.Username
		if strings.TrimSpace(main.Subscribers) != "" {
			card.Subscribers = main.Subscribers
		}
		if p, ok := platform.FromAPI(main.Type); ok {
			card.Platform = p
		}
	}
	card.SubscribersLabel = format.Subscribers(card.Subscribers)
	return card
}

// PrepareWithTopics builds the display card of b and resolves its topic
// IDs through lookup. Unknown topic IDs are left out.
func PrepareWithTopics(b *profile.Blogger, lookup topics.Lookup) Card {
	card := Prepare(b)
	if b != nil {
		card.Topics = topics.IDsToNames(b.Topics, lookup)
	}
	return card
}
