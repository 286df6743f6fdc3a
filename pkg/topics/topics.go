// Package topics converts between blogger topic IDs and topic names.
//
// Every function here is total: IDs and names that cannot be resolved are
// dropped from the output instead of producing an error.
package topics

import (
	"strconv"
	"strings"
	"unicode"
)

// Lookup maps topic IDs to display names. IDs need not be contiguous.
type Lookup map[int]string

// CategoryResolver resolves a topic name within one category.
type CategoryResolver func(name string) (int, bool)

// ID is a topic identifier as it arrives from callers: a number, or a
// number encoded as a string.
type ID interface {
	int | int64 | string
}

// IDToName returns the name of topic id, or "" when id is malformed or
// not present in lookup.
func IDToName[T ID](id T, lookup Lookup) string {
	n, ok := toInt(id)
	if !ok {
		return ""
	}
	return lookup[n]
}

// IDsToNames converts ids to names, keeping input order and omitting every
// id that resolves to an empty name.
func IDsToNames[T ID](ids []T, lookup Lookup) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := IDToName(id, lookup); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// NamesToIDs converts names to IDs. Each name is resolved by category
// first and by general second; names found in neither are omitted.
// Order and duplicates are preserved. A nil category resolves nothing.
func NamesToIDs(names []string, category CategoryResolver, general map[string]int) []int {
	out := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := resolve(name, category, general); ok {
			out = append(out, id)
		}
	}
	return out
}

func resolve(name string, category CategoryResolver, general map[string]int) (int, bool) {
	if category != nil {
		if id, ok := category(name); ok {
			return id, true
		}
	}
	id, ok := general[name]
	return id, ok
}

// Invert builds the name -> ID mapping of lookup. When two IDs share a
// name the smaller ID wins so the result does not depend on map order.
func Invert(lookup Lookup) map[string]int {
	out := make(map[string]int, len(lookup))
	for id, name := range lookup {
		if prev, ok := out[name]; ok && prev < id {
			continue
		}
		out[name] = id
	}
	return out
}

func toInt[T ID](id T) (int, bool) {
	switch v := any(id).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		return parseLeadingInt(v)
	}
	return 0, false
}

// parseLeadingInt parses a base-10 integer prefix: leading whitespace is
// skipped, an optional sign is accepted, and parsing stops at the first
// non-digit ("7abc" -> 7). A string without leading digits does not parse.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
