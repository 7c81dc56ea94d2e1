// Package catalog groups image paths into categories and reads or writes the
// flat image list the slideshow starts from.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unknown is the category for paths without a parent directory.
const Unknown = "unknown"

// Catalog maps categories to image paths. Categories keep first-appearance
// order and images keep input order within a category.
type Catalog struct {
	order  []string
	images map[string][]string
}

// Group is a set of categories sharing a top-level directory.
type Group struct {
	Name       string
	Title      string
	Categories []string
}

// Build groups paths by their parent directory.
func Build(paths []string) *Catalog {
	c := &Catalog{images: make(map[string][]string)}
	for _, p := range paths {
		category := CategoryOf(p)
		if _, ok := c.images[category]; !ok {
			c.order = append(c.order, category)
		}
		c.images[category] = append(c.images[category], p)
	}
	return c
}

// CategoryOf returns every segment of path except the file name, joined by
// "/", or Unknown for a bare file name.
func CategoryOf(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[1] == "" {
		return Unknown
	}
	return strings.Join(segments[:len(segments)-1], "/")
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Images returns the images of category.
func (c *Catalog) Images(category string) []string {
	images := c.images[category]
	out := make([]string, len(images))
	copy(out, images)
	return out
}

// Has reports whether category exists.
func (c *Catalog) Has(category string) bool {
	_, ok := c.images[category]
	return ok
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.order) }

// Total returns the number of images across all categories.
func (c *Catalog) Total() int {
	total := 0
	for _, images := range c.images {
		total += len(images)
	}
	return total
}

// Select flattens the chosen categories into the active session, in catalog
// order. Unknown category names are ignored.
func (c *Catalog) Select(categories []string) []string {
	chosen := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		chosen[category] = struct{}{}
	}
	var session []string
	for _, category := range c.order {
		if _, ok := chosen[category]; !ok {
			continue
		}
		for _, image := range c.images[category] {
			if image != "" {
				session = append(session, image)
			}
		}
	}
	return session
}

// Groups buckets categories by their first path segment for display.
func (c *Catalog) Groups() []Group {
	caser := cases.Title(language.English)
	index := make(map[string]int)
	var groups []Group
	for _, category := range c.order {
		name := strings.SplitN(category, "/", 2)[0]
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{
				Name:  name,
				Title: caser.String(strings.NewReplacer("_", " ", "-", " ").Replace(name)),
			})
		}
		groups[i].Categories = append(groups[i].Categories, category)
	}
	return groups
}

// Label returns category without its group prefix. A category equal to its
// group keeps its full name.
func Label(group, category string) string {
	if label, ok := strings.CutPrefix(category, group+"/"); ok {
		return label
	}
	return category
}
