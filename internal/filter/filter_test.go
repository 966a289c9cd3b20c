package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunhang/cloudnav/internal/access"
	"github.com/yunhang/cloudnav/internal/models"
)

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Categories: []models.Category{
			{ID: "common", Name: "常用"},
			{ID: "news", Name: "News"},
			{ID: "tech", Name: "Tech"},
			{ID: "work", Name: "Work", Password: "x"},
		},
		Links: []models.LinkItem{
			{ID: "1", Title: "Hacker News", URL: "https://news.ycombinator.com", CategoryID: "news", CreatedAt: 100},
			{ID: "2", Title: "Go Blog", URL: "https://go.dev/blog", Description: "Official Go news", CategoryID: "tech", CreatedAt: 200},
			{ID: "3", Title: "Jira", URL: "https://jira.example.com", CategoryID: "work", Pinned: true, CreatedAt: 300},
			{ID: "4", Title: "Google", URL: "https://google.com", CategoryID: "common", Pinned: true, CreatedAt: 400},
		},
	}
}

func ids(links []models.LinkItem) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.ID
	}
	return out
}

func TestVisibleByCategory(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	got := Visible(snap, gate, "news", "")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestVisibleAllSortsNewestFirst(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	got := Visible(snap, gate, models.AllCategoryID, "")
	assert.Equal(t, []string{"4", "2", "1"}, ids(got))
}

func TestSearchOverridesCategory(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	// Active category is news, but the search matches a tech link.
	got := Visible(snap, gate, "news", "go blog")
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestSearchMatchesDescriptionAndURL(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	byDesc := Visible(snap, gate, models.AllCategoryID, "official go")
	assert.Equal(t, []string{"2"}, ids(byDesc))

	byURL := Visible(snap, gate, models.AllCategoryID, "ycombinator")
	assert.Equal(t, []string{"1"}, ids(byURL))
}

func TestLockPrecedence(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	// Locked links never show up: not in category view, not via search, not pinned.
	assert.Empty(t, Visible(snap, gate, "work", ""))
	assert.Empty(t, Visible(snap, gate, models.AllCategoryID, "jira"))
	assert.Equal(t, []string{"4"}, ids(Pinned(snap, gate)))
}

func TestPinnedAfterUnlock(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	require.False(t, gate.Unlock(snap, "work", "wrong"))
	assert.Equal(t, []string{"4"}, ids(Pinned(snap, gate)))

	require.True(t, gate.Unlock(snap, "work", "x"))
	assert.Equal(t, []string{"4", "3"}, ids(Pinned(snap, gate)))
}

func TestDerivationIsIdempotent(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()
	gate.Unlock(snap, "work", "x")

	first := Visible(snap, gate, models.AllCategoryID, "")
	second := Visible(snap, gate, models.AllCategoryID, "")
	assert.Equal(t, first, second)

	firstPinned := Pinned(snap, gate)
	secondPinned := Pinned(snap, gate)
	assert.Equal(t, firstPinned, secondPinned)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	snap := testSnapshot()
	gate := access.NewGate()

	got := Visible(snap, gate, models.AllCategoryID, "GOOGLE")
	assert.Equal(t, []string{"4"}, ids(got))
}
