package topics

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Topic is one entry of the topic vocabulary.
type Topic struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Category groups topics under a slug. Its topic names take precedence
// over the general vocabulary when converting names to IDs.
type Category struct {
	Slug   string  `yaml:"slug"`
	Name   string  `yaml:"name"`
	Topics []Topic `yaml:"topics"`
}

// Catalog is the topic vocabulary supplied by the categories service.
// It is immutable once built and safe for concurrent use.
type Catalog struct {
	lookup     Lookup
	general    map[string]int
	categories map[string]Category
	byCategory map[string]map[string]int
	order      []string
}

type catalogFile struct {
	Topics     []Topic    `yaml:"topics"`
	Categories []Category `yaml:"categories"`
}

// LoadCatalog reads a YAML catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topic catalog: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	c, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog:
//
//	topics:
//	  - {id: 1, name: Beauty}
//	categories:
//	  - slug: lifestyle
//	    name: Lifestyle
//	    topics:
//	      - {id: 7, name: Beauty}
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode topic catalog: %w", err)
	}
	return NewCatalog(file.Topics, file.Categories)
}

// NewCatalog builds a catalog from general topics and categories.
// An ID may appear several times only if it always carries the same name.
func NewCatalog(general []Topic, categories []Category) (*Catalog, error) {
	c := &Catalog{
		lookup:     make(Lookup),
		general:    make(map[string]int, len(general)),
		categories: make(map[string]Category, len(categories)),
		byCategory: make(map[string]map[string]int, len(categories)),
	}

	add := func(t Topic) error {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("topic %d: empty name", t.ID)
		}
		if prev, ok := c.lookup[t.ID]; ok && prev != name {
			return fmt.Errorf("topic %d: conflicting names %q and %q", t.ID, prev, name)
		}
		c.lookup[t.ID] = name
		return nil
	}

	for _, t := range general {
		if err := add(t); err != nil {
			return nil, err
		}
		if _, dup := c.general[strings.TrimSpace(t.Name)]; !dup {
			c.general[strings.TrimSpace(t.Name)] = t.ID
		}
	}

	for _, cat := range categories {
		slug := strings.TrimSpace(cat.Slug)
		if slug == "" {
			return nil, fmt.Errorf("category %q: empty slug", cat.Name)
		}
		if _, dup := c.categories[slug]; dup {
			return nil, fmt.Errorf("category %q: duplicate slug", slug)
		}
		names := make(map[string]int, len(cat.Topics))
		list := make([]Topic, 0, len(cat.Topics))
		for _, t := range cat.Topics {
			if err := add(t); err != nil {
				return nil, fmt.Errorf("category %q: %w", slug, err)
			}
			t.Name = strings.TrimSpace(t.Name)
			if _, dup := names[t.Name]; !dup {
				names[t.Name] = t.ID
			}
			list = append(list, t)
		}
		cat.Slug = slug
		cat.Name = strings.TrimSpace(cat.Name)
		cat.Topics = list
		c.categories[slug] = cat
		c.byCategory[slug] = names
		c.order = append(c.order, slug)
	}

	return c, nil
}

// Lookup returns a copy of the ID -> name mapping over every topic.
func (c *Catalog) Lookup() Lookup {
	return maps.Clone(c.lookup)
}

// General returns a copy of the name -> ID mapping of the general vocabulary.
func (c *Catalog) General() map[string]int {
	return maps.Clone(c.general)
}

// Resolver returns the CategoryResolver of slug. Unknown slugs resolve nothing.
func (c *Catalog) Resolver(slug string) CategoryResolver {
	names := c.byCategory[slug]
	return func(name string) (int, bool) {
		id, ok := names[name]
		return id, ok
	}
}

// Category returns the category with slug.
func (c *Catalog) Category(slug string) (Category, bool) {
	cat, ok := c.categories[slug]
	if !ok {
		return Category{}, false
	}
	cat.Topics = append([]Topic(nil), cat.Topics...)
	return cat, true
}

// Categories returns category slugs in file order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.order...)
}

// Names converts ids to names using every topic in the catalog.
func (c *Catalog) Names(ids []int) []string {
	return IDsToNames(ids, c.lookup)
}

// IDs converts names to IDs, preferring the names of category slug.
func (c *Catalog) IDs(slug string, names []string) []int {
	return NamesToIDs(names, c.Resolver(slug), c.general)
}
