package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sketchdeck/internal/catalog"
)

func TestBuildGroupsByParentDirectory(t *testing.T) {
	c := catalog.Build([]string{"a/b/1.png", "a/b/2.png", "c/3.png", "4.png"})

	assert.Equal(t, []string{"a/b", "c", "unknown"}, c.Categories())
	assert.Equal(t, []string{"a/b/1.png", "a/b/2.png"}, c.Images("a/b"))
	assert.Equal(t, []string{"c/3.png"}, c.Images("c"))
	assert.Equal(t, []string{"4.png"}, c.Images("unknown"))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 4, c.Total())
}

func TestBuildEmptyInput(t *testing.T) {
	c := catalog.Build(nil)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Categories())
}

func TestBuildKeepsDuplicatesAndOrder(t *testing.T) {
	input := []string{"x/1.png", "y/1.png", "x/2.png", "x/1.png", "y/0.png"}
	c := catalog.Build(input)

	assert.Equal(t, []string{"x/1.png", "x/2.png", "x/1.png"}, c.Images("x"))
	assert.Equal(t, []string{"y/1.png", "y/0.png"}, c.Images("y"))

	// Every input path lands in exactly one category whose name is its prefix.
	seen := 0
	for _, category := range c.Categories() {
		for _, image := range c.Images(category) {
			assert.True(t, strings.HasPrefix(image, category+"/"), "%s in %s", image, category)
			seen++
		}
	}
	assert.Equal(t, len(input), seen)
}

func TestCategoryOf(t *testing.T) {
	tests := map[string]string{
		"a/b/c.png": "a/b",
		"a/c.png":   "a",
		"c.png":     catalog.Unknown,
		"a/":        catalog.Unknown,
	}
	for input, want := range tests {
		assert.Equal(t, want, catalog.CategoryOf(input), input)
	}
}

func TestSelectFlattensInCatalogOrder(t *testing.T) {
	c := catalog.Build([]string{"a/1.png", "b/2.png", "a/3.png", "c/4.png"})

	session := c.Select([]string{"c", "a", "missing"})
	assert.Equal(t, []string{"a/1.png", "a/3.png", "c/4.png"}, session)
	assert.Empty(t, c.Select(nil))
}

func TestGroups(t *testing.T) {
	c := catalog.Build([]string{
		"figure_poses/standing/1.png",
		"figure_poses/sitting/2.png",
		"hands/3.png",
		"figure_poses/standing/4.png",
	})

	groups := c.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "figure_poses", groups[0].Name)
	assert.Equal(t, "Figure Poses", groups[0].Title)
	assert.Equal(t, []string{"figure_poses/standing", "figure_poses/sitting"}, groups[0].Categories)
	assert.Equal(t, "hands", groups[1].Name)
	assert.Equal(t, []string{"hands"}, groups[1].Categories)

	assert.Equal(t, "standing", catalog.Label("figure_poses", "figure_poses/standing"))
	assert.Equal(t, "hands", catalog.Label("hands", "hands"))
}
