package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalogWith([]Project{
		{Slug: "harbour-wall", Title: "Harbour Wall", Category: "Maritime", Featured: true},
		{Slug: "grain-silo", Title: "Grain Silo", Category: "Industrial"},
		{Slug: "quay-cranes", Title: "Quay Cranes", Category: "Maritime"},
	})
}

func TestCatalogListAll(t *testing.T) {
	got := testCatalog().List(Filter{})
	assert.Len(t, got, 3)
}

func TestCatalogListByCategory(t *testing.T) {
	got := testCatalog().List(Filter{Category: "maritime"})
	require.Len(t, got, 2, "category filter is case-insensitive")
	assert.Equal(t, "harbour-wall", got[0].Slug)
	assert.Equal(t, "quay-cranes", got[1].Slug)
}

func TestCatalogListFeatured(t *testing.T) {
	featured := true
	got := testCatalog().List(Filter{Featured: &featured})
	require.Len(t, got, 1)
	assert.Equal(t, "harbour-wall", got[0].Slug)

	featured = false
	got = testCatalog().List(Filter{Featured: &featured})
	assert.Len(t, got, 2)
}

func TestCatalogGetBySlug(t *testing.T) {
	catalog := testCatalog()

	p, ok := catalog.GetBySlug("grain-silo")
	require.True(t, ok)
	assert.Equal(t, "Grain Silo", p.Title)

	_, ok = catalog.GetBySlug("no-such-project")
	assert.False(t, ok)
}

func TestCatalogCategoriesDeduplicated(t *testing.T) {
	got := testCatalog().Categories()
	assert.Equal(t, []string{"Maritime", "Industrial"}, got, "first appearance order, no repeats")
}

func TestDefaultPortfolioIsWellFormed(t *testing.T) {
	catalog := NewCatalog()

	summaries := catalog.List(Filter{})
	require.NotEmpty(t, summaries)

	seen := make(map[string]struct{})
	for _, s := range summaries {
		assert.NotEmpty(t, s.Slug)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Category)

		_, dup := seen[s.Slug]
		assert.False(t, dup, "slug %q repeats", s.Slug)
		seen[s.Slug] = struct{}{}

		full, ok := catalog.GetBySlug(s.Slug)
		require.True(t, ok)
		assert.NotEmpty(t, full.Details.Overview)
	}
}
