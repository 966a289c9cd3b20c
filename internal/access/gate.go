package access

import (
	"github.com/yunhang/cloudnav/internal/models"
)

// Gate decides whether a category's contents may be shown. A category with a
// password is locked until the correct password is submitted; unlocks last
// for the session only and are never persisted.
//
// This is a UX gate, not an access-control boundary: the comparison is plain
// string equality against the category's stored password.
type Gate struct {
	unlocked map[string]bool
}

func NewGate() *Gate {
	return &Gate{unlocked: make(map[string]bool)}
}

// Locked reports whether the category may not be shown. A category with no
// password is never locked.
func (g *Gate) Locked(c *models.Category) bool {
	if c == nil || c.Password == "" {
		return false
	}
	return !g.unlocked[c.ID]
}

// LockedID is Locked by category id, resolved against the snapshot. Unknown
// ids are not locked.
func (g *Gate) LockedID(snap *models.Snapshot, categoryID string) bool {
	return g.Locked(snap.CategoryByID(categoryID))
}

// Unlock verifies the password and, on success, adds the category to the
// session unlock set. Returns false on a wrong password or unknown category.
func (g *Gate) Unlock(snap *models.Snapshot, categoryID, password string) bool {
	c := snap.CategoryByID(categoryID)
	if c == nil || c.Password == "" {
		return c != nil
	}
	if password != c.Password {
		return false
	}
	g.unlocked[categoryID] = true
	return true
}

// SelectCategory implements category activation: a locked category does not
// become active; the caller must surface a password prompt instead.
// Returns the id to activate and whether a prompt is needed.
func (g *Gate) SelectCategory(snap *models.Snapshot, categoryID string) (active string, needsPassword bool) {
	if categoryID == models.AllCategoryID {
		return models.AllCategoryID, false
	}
	if g.LockedID(snap, categoryID) {
		return "", true
	}
	return categoryID, false
}

// Reset clears the unlock set, as a reload of the web app would.
func (g *Gate) Reset() {
	g.unlocked = make(map[string]bool)
}
