package filter

import (
	"sort"
	"strings"

	"github.com/yunhang/cloudnav/internal/access"
	"github.com/yunhang/cloudnav/internal/models"
)

// Visible derives the main link list. Links in locked categories are removed
// first and unconditionally; a non-empty search then overrides category
// filtering entirely. Results are newest first.
func Visible(snap *models.Snapshot, gate *access.Gate, activeCategory, search string) []models.LinkItem {
	var out []models.LinkItem

	search = strings.TrimSpace(search)
	for _, link := range snap.Links {
		if gate.LockedID(snap, link.CategoryID) {
			continue
		}
		if search != "" {
			if matches(link, search) {
				out = append(out, link)
			}
			continue
		}
		if activeCategory != "" && activeCategory != models.AllCategoryID && link.CategoryID != activeCategory {
			continue
		}
		out = append(out, link)
	}

	sortNewestFirst(out)
	return out
}

// Pinned derives the pinned/top section: pinned links whose category is not
// locked. Shown only on the "all" view with no active search; that decision
// belongs to the caller.
func Pinned(snap *models.Snapshot, gate *access.Gate) []models.LinkItem {
	var out []models.LinkItem
	for _, link := range snap.Links {
		if !link.Pinned {
			continue
		}
		if gate.LockedID(snap, link.CategoryID) {
			continue
		}
		out = append(out, link)
	}

	sortNewestFirst(out)
	return out
}

func matches(link models.LinkItem, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(link.Title), q) ||
		strings.Contains(strings.ToLower(link.URL), q) ||
		(link.Description != "" && strings.Contains(strings.ToLower(link.Description), q))
}

func sortNewestFirst(links []models.LinkItem) {
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt > links[j].CreatedAt
	})
}
