// Package drafts overlays pending edits onto a published blogger record.
//
// Every draft field is a pointer. A nil pointer means the field has no
// pending change; a non-nil pointer, even to "" or 0, replaces the
// published value. JSON decoding keeps that distinction: a missing key or
// null leaves the field nil, while "" or 0 produce a non-nil pointer.
package drafts

import (
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-json"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/profile"
)

// ProfileDraft holds pending edits of the profile section.
type ProfileDraft struct {
	Name        *string `json:"name,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Description *string `json:"description,omitempty"`
	Topics      *[]int  `json:"topics,omitempty"`
}

// PriceDraft holds pending edits of advertising prices.
type PriceDraft struct {
	Post        *int64 `json:"post,omitempty"`
	Story       *int64 `json:"story,omitempty"`
	Reels       *int64 `json:"reels,omitempty"`
	Integration *int64 `json:"integration,omitempty"`
}

// CoverageDraft holds pending edits of audience reach.
type CoverageDraft struct {
	PostReach   *int64  `json:"postReach,omitempty"`
	StoryReach  *int64  `json:"storyReach,omitempty"`
	ReelsReach  *int64  `json:"reelsReach,omitempty"`
	Subscribers *string `json:"subscribers,omitempty"`
}

// Set is the group of drafts pending for one blogger. Any member may be nil.
//
// The three drafts address disjoint fields of the record, so the order
// they are applied in cannot change the result. Merge still applies them
// in a fixed order: profile, coverage, price.
type Set struct {
	Profile  *ProfileDraft  `json:"profile,omitempty"`
	Price    *PriceDraft    `json:"price,omitempty"`
	Coverage *CoverageDraft `json:"coverage,omitempty"`
}

// Merge returns record with every pending field of set applied.
// record is not modified and the result shares no slices with record or set.
func Merge(record profile.Blogger, set Set) profile.Blogger {
	out := record.Clone()
	set.Profile.apply(&out)
	set.Coverage.apply(&out)
	set.Price.apply(&out)
	return out
}

func (d *ProfileDraft) apply(b *profile.Blogger) {
	if d == nil {
		return
	}
	override(&b.Name, d.Name)
	override(&b.LastName, d.LastName)
	override(&b.Description, d.Description)
	if d.Topics != nil {
		b.Topics = slices.Clone(*d.Topics)
	}
}

func (d *PriceDraft) apply(b *profile.Blogger) {
	if d == nil {
		return
	}
	override(&b.Prices.Post, d.Post)
	override(&b.Prices.Story, d.Story)
	override(&b.Prices.Reels, d.Reels)
	override(&b.Prices.Integration, d.Integration)
}

func (d *CoverageDraft) apply(b *profile.Blogger) {
	if d == nil {
		return
	}
	override(&b.Coverage.PostReach, d.PostReach)
	override(&b.Coverage.StoryReach, d.StoryReach)
	override(&b.Coverage.ReelsReach, d.ReelsReach)
	override(&b.Coverage.Subscribers, d.Subscribers)
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Fields lists the pending fields of s as "section.key", in merge order.
func (s Set) Fields() []string {
	var out []string
	add := func(section, key string, present bool) {
		if present {
			out = append(out, section+"."+key)
		}
	}
	if p := s.Profile; p != nil {
		add("profile", "name", p.Name != nil)
		add("profile", "lastName", p.LastName != nil)
		add("profile", "description", p.Description != nil)
		add("profile", "topics", p.Topics != nil)
	}
	if c := s.Coverage; c != nil {
		add("coverage", "postReach", c.PostReach != nil)
		add("coverage", "storyReach", c.StoryReach != nil)
		add("coverage", "reelsReach", c.ReelsReach != nil)
		add("coverage", "subscribers", c.Subscribers != nil)
	}
	if p := s.Price; p != nil {
		add("price", "post", p.Post != nil)
		add("price", "story", p.Story != nil)
		add("price", "reels", p.Reels != nil)
		add("price", "integration", p.Integration != nil)
	}
	return out
}

// Empty reports whether s has no pending field.
func (s Set) Empty() bool {
	return len(s.Fields()) == 0
}

// Decode reads a Set from JSON. Unknown keys are rejected so that a typo
// cannot silently drop an edit.
func Decode(r io.Reader) (Set, error) {
	var s Set
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Set{}, fmt.Errorf("decode drafts: %w", err)
	}
	return s, nil
}

// String returns a pointer to v, for building drafts in code.
func String(v string) *string { return &v }

// Int64 returns a pointer to v, for building drafts in code.
func Int64(v int64) *int64 { return &v }

// Topics returns a pointer to a copy of ids, for building drafts in code.
func Topics(ids ...int) *[]int {
	out := slices.Clone(ids)
	if out == nil {
		out = []int{}
	}
	return &out
}
