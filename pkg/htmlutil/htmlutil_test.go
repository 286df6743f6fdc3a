package htmlutil

import (
	"sync"
	"testing"
)

func TestMetaContent(t *testing.T) {
	tests := []struct {
		name string
		html string
		key  string
		want string
	}{
		{
			name: "property first",
			html: `<meta property="og:title" content="Anna B" />`,
			key:  "og:title",
			want: "Anna B",
		},
		{
			name: "content first",
			html: `<meta content="Beauty blogger" property="og:description">`,
			key:  "og:description",
			want: "Beauty blogger",
		},
		{
			name: "name attribute",
			html: `<meta name="description" content="About me">`,
			key:  "description",
			want: "About me",
		},
		{
			name: "entities unescaped",
			html: `<meta property="og:title" content="Anna &amp; Bob">`,
			key:  "og:title",
			want: "Anna & Bob",
		},
		{
			name: "apostrophe inside double quotes",
			html: `<meta property="og:description" content="Anna's blog">`,
			key:  "og:description",
			want: "Anna's blog",
		},
		{
			name: "single quoted",
			html: `<meta property='og:title' content='Anna'>`,
			key:  "og:title",
			want: "Anna",
		},
		{
			name: "not found",
			html: `<meta property="og:title" content="Test" />`,
			key:  "og:image",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MetaContent(tt.html, tt.key)
			if got != tt.want {
				t.Errorf("MetaContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"og title wins", `<title>Page</title><meta property="og:title" content="Anna">`, "Anna"},
		{"title fallback", `<title>  Anna
			B </title>`, "Anna B"},
		{"nothing", `<body></body>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.html); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	html := `<meta name="description" content="fallback">`
	if got := Description(html); got != "fallback" {
		t.Errorf("Description() = %q, want %q", got, "fallback")
	}
}

func TestClean(t *testing.T) {
	got := Clean("<span dir=\"auto\">Anna&nbsp;B</span>\n\t")
	if got != "Anna B" {
		t.Errorf("Clean() = %q, want %q", got, "Anna B")
	}
}

func TestMetaPatternsCompiledOnce(t *testing.T) {
	first := metaPatternsFor("og:site_name")
	second := metaPatternsFor("og:site_name")
	if first[0] != second[0] || first[1] != second[1] {
		t.Error("metaPatternsFor() recompiled patterns for the same key")
	}
	if other := metaPatternsFor("og:image"); other[0] == first[0] {
		t.Error("metaPatternsFor() shared patterns across keys")
	}

	page := `<meta property="og:site_name" content="Telegram">`
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := MetaContent(page, "og:site_name"); got != "Telegram" {
				t.Errorf("MetaContent() = %q, want %q", got, "Telegram")
			}
		}()
	}
	wg.Wait()
}
