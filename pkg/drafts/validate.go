package drafts

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/format"
)

const (
	maxNameRunes        = 100
	maxDescriptionRunes = 2000
)

var nonNegative = validation.Min(int64(0))

// Validate checks every present field of s.
func (s Set) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Profile),
		validation.Field(&s.Price),
		validation.Field(&s.Coverage),
	)
}

// Validate checks the pending profile fields.
func (d *ProfileDraft) Validate() error {
	if d == nil {
		return nil
	}
	return validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.RuneLength(0, maxNameRunes)),
		validation.Field(&d.LastName, validation.RuneLength(0, maxNameRunes)),
		validation.Field(&d.Description, validation.RuneLength(0, maxDescriptionRunes)),
		validation.Field(&d.Topics, validation.By(topicIDs)),
	)
}

// Validate checks the pending prices.
func (d *PriceDraft) Validate() error {
	if d == nil {
		return nil
	}
	return validation.ValidateStruct(d,
		validation.Field(&d.Post, nonNegative),
		validation.Field(&d.Story, nonNegative),
		validation.Field(&d.Reels, nonNegative),
		validation.Field(&d.Integration, nonNegative),
	)
}

// Validate checks the pending reach figures.
func (d *CoverageDraft) Validate() error {
	if d == nil {
		return nil
	}
	return validation.ValidateStruct(d,
		validation.Field(&d.PostReach, nonNegative),
		validation.Field(&d.StoryReach, nonNegative),
		validation.Field(&d.ReelsReach, nonNegative),
		validation.Field(&d.Subscribers, validation.By(subscriberCount)),
	)
}

func topicIDs(value any) error {
	ids, ok := value.(*[]int)
	if !ok || ids == nil {
		return nil
	}
	seen := make(map[int]bool, len(*ids))
	for _, id := range *ids {
		if id <= 0 {
			return fmt.Errorf("topic id %d must be positive", id)
		}
		if seen[id] {
			return fmt.Errorf("topic id %d is listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

// subscriberCount accepts "" (cleared) or anything format.Count understands.
func subscriberCount(value any) error {
	s, ok := value.(*string)
	if !ok || s == nil || *s == "" {
		return nil
	}
	if _, ok := format.Count(*s); !ok {
		return fmt.Errorf("%q is not a subscriber count", *s)
	}
	return nil
}
