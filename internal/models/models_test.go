package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecreatesCommonCategory(t *testing.T) {
	snap := &Snapshot{
		Links: []LinkItem{
			{ID: "1", Title: "a", URL: "https://a", CategoryID: "gone"},
		},
	}

	snap.Normalize()

	require.NotNil(t, snap.CategoryByID(CommonCategoryID))
	assert.Equal(t, CommonCategoryID, snap.Links[0].CategoryID)
}

func TestNormalizeKeepsValidReferences(t *testing.T) {
	snap := &Snapshot{
		Categories: []Category{
			{ID: CommonCategoryID, Name: "常用"},
			{ID: "dev", Name: "Dev"},
		},
		Links: []LinkItem{
			{ID: "1", Title: "a", URL: "https://a", CategoryID: "dev"},
		},
	}

	snap.Normalize()

	assert.Equal(t, "dev", snap.Links[0].CategoryID)
	assert.Len(t, snap.Categories, 2)
}

func TestCloneDoesNotAlias(t *testing.T) {
	snap := DefaultSnapshot()
	clone := snap.Clone()

	clone.Links[0].Title = "changed"
	assert.NotEqual(t, "changed", snap.Links[0].Title)
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	theme := DefaultTheme
	for range Themes {
		seen[theme] = true
		theme = NextTheme(theme)
	}
	assert.Equal(t, DefaultTheme, theme)
	assert.Len(t, seen, len(Themes))

	assert.Equal(t, Themes[0], NextTheme("bogus"))
}

func TestNewLinkDefaultsToCommon(t *testing.T) {
	link := NewLink("t", "https://u", "", "")
	assert.Equal(t, CommonCategoryID, link.CategoryID)
	assert.NotEmpty(t, link.ID)
	assert.NotZero(t, link.CreatedAt)
}
