// Package htmlutil extracts metadata from profile pages.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
	"sync"
)

var (
	titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`[\s\x{00a0}]+`)

	metaPatterns sync.Map // key -> [2]*regexp.Regexp
)

// MetaContent returns the content attribute of the first <meta> tag whose
// property or name equals key (e.g. "og:title"). Attribute order does not matter.
func MetaContent(content, key string) string {
	for _, re := range metaPatternsFor(key) {
		if m := re.FindStringSubmatch(content); len(m) > 2 {
			return Clean(m[1] + m[2])
		}
	}
	return ""
}

// metaPatternsFor returns the compiled patterns of key, building them once.
func metaPatternsFor(key string) [2]*regexp.Regexp {
	if v, ok := metaPatterns.Load(key); ok {
		return v.([2]*regexp.Regexp) //nolint:forcetypeassert // only metaPatternsFor stores values
	}
	attr := `(?:property|name)=["']` + regexp.QuoteMeta(key) + `["']`
	value := `content=(?:"([^"]*)"|'([^']*)')`
	patterns := [2]*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]+` + attr + `[^>]*\s` + value),
		regexp.MustCompile(`(?i)<meta[^>]+` + value + `[^>]*\s` + attr),
	}
	v, _ := metaPatterns.LoadOrStore(key, patterns)
	return v.([2]*regexp.Regexp) //nolint:forcetypeassert // only metaPatternsFor stores values
}

// Title returns og:title, falling back to the <title> element.
func Title(content string) string {
	if t := MetaContent(content, "og:title"); t != "" {
		return t
	}
	if m := titlePattern.FindStringSubmatch(content); len(m) > 1 {
		return Clean(m[1])
	}
	return ""
}

// Description returns og:description, falling back to the description meta tag.
func Description(content string) string {
	if d := MetaContent(content, "og:description"); d != "" {
		return d
	}
	return MetaContent(content, "description")
}

// Clean strips tags, unescapes entities and collapses whitespace.
func Clean(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
