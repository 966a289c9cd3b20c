package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/yunhang/cloudnav/internal/access"
	"github.com/yunhang/cloudnav/internal/api"
	"github.com/yunhang/cloudnav/internal/filter"
	"github.com/yunhang/cloudnav/internal/models"
	"github.com/yunhang/cloudnav/internal/store"
	syncctl "github.com/yunhang/cloudnav/internal/sync"
)

// App owns the in-memory snapshot and wires the access gate, filter engine
// and sync controller together. Every mutation replaces the snapshot, writes
// it through the controller (cache now, remote best-effort) and leaves the
// new state visible immediately.
type App struct {
	mu         sync.Mutex
	snap       *models.Snapshot
	store      *store.Store
	remote     *api.Client
	session    *syncctl.Session
	controller *syncctl.Controller
	gate       *access.Gate

	activeCategory string
	search         string
	theme          string
}

func New(st *store.Store, remote *api.Client, session *syncctl.Session, controller *syncctl.Controller) *App {
	return &App{
		snap:           &models.Snapshot{},
		store:          st,
		remote:         remote,
		session:        session,
		controller:     controller,
		gate:           access.NewGate(),
		activeCategory: models.AllCategoryID,
		theme:          st.Theme(),
	}
}

// Load populates the snapshot: cloud data when available, otherwise the local
// cache, otherwise the built-in defaults. None of the fallbacks is an error.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.remote.IsConfigured() {
		if snap, _ := a.remote.FetchSnapshot(ctx); snap != nil {
			snap.Normalize()
			a.snap = snap
			return
		}
	}

	if snap, _ := a.store.LoadSnapshot(); snap != nil {
		snap.Normalize()
		a.snap = snap
		return
	}

	a.snap = models.DefaultSnapshot()
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() *models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap.Clone()
}

func (a *App) Gate() *access.Gate {
	return a.gate
}

// ActiveCategory returns the current category filter.
func (a *App) ActiveCategory() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeCategory
}

func (a *App) Search() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.search
}

func (a *App) SetSearch(q string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search = q
}

// SelectCategory activates a category unless it is locked, in which case the
// active category is unchanged and the caller must prompt for its password.
func (a *App) SelectCategory(categoryID string) (needsPassword bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	active, prompt := a.gate.SelectCategory(a.snap, categoryID)
	if prompt {
		return true
	}
	a.activeCategory = active
	return false
}

// Unlock submits a category password. On success the category joins the
// session unlock set and becomes active.
func (a *App) Unlock(categoryID, password string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gate.Unlock(a.snap, categoryID, password) {
		return false
	}
	a.activeCategory = categoryID
	return true
}

// VisibleLinks derives the main list for the current category and search.
func (a *App) VisibleLinks() []models.LinkItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return filter.Visible(a.snap, a.gate, a.activeCategory, a.search)
}

// PinnedLinks derives the pinned section. It is only shown on the "all" view
// with no search active; otherwise nil.
func (a *App) PinnedLinks() []models.LinkItem {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.search != "" || a.activeCategory != models.AllCategoryID {
		return nil
	}
	return filter.Pinned(a.snap, a.gate)
}

// Login authenticates against the remote store, pushing the current snapshot
// with the candidate token.
func (a *App) Login(ctx context.Context, password string) error {
	return a.session.Login(ctx, password, a.Snapshot())
}

func (a *App) Authenticated() bool {
	return a.session.Authenticated()
}

// Link mutations

func (a *App) AddLink(title, url, description, categoryID string) (models.LinkItem, error) {
	if title == "" || url == "" {
		return models.LinkItem{}, fmt.Errorf("title and url are required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	link := models.NewLink(title, url, description, categoryID)
	if a.snap.CategoryByID(link.CategoryID) == nil {
		link.CategoryID = models.CommonCategoryID
	}
	a.snap.Links = append(a.snap.Links, link)
	return link, a.commit()
}

func (a *App) UpdateLink(link models.LinkItem) error {
	if link.Title == "" || link.URL == "" {
		return fmt.Errorf("title and url are required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.snap.Links {
		if a.snap.Links[i].ID == link.ID {
			if a.snap.CategoryByID(link.CategoryID) == nil {
				link.CategoryID = models.CommonCategoryID
			}
			link.CreatedAt = a.snap.Links[i].CreatedAt
			a.snap.Links[i] = link
			return a.commit()
		}
	}
	return fmt.Errorf("link %s not found", link.ID)
}

func (a *App) DeleteLink(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.snap.Links {
		if a.snap.Links[i].ID == id {
			a.snap.Links = append(a.snap.Links[:i], a.snap.Links[i+1:]...)
			return a.commit()
		}
	}
	return fmt.Errorf("link %s not found", id)
}

func (a *App) TogglePinned(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.snap.Links {
		if a.snap.Links[i].ID == id {
			a.snap.Links[i].Pinned = !a.snap.Links[i].Pinned
			return a.commit()
		}
	}
	return fmt.Errorf("link %s not found", id)
}

// Category mutations

func (a *App) AddCategory(name, icon, password string) (models.Category, error) {
	if name == "" {
		return models.Category{}, fmt.Errorf("name is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.CategoryByName(name) != nil {
		return models.Category{}, fmt.Errorf("category %q already exists", name)
	}

	cat := models.Category{ID: models.NewID(), Name: name, Icon: icon, Password: password}
	a.snap.Categories = append(a.snap.Categories, cat)
	return cat, a.commit()
}

func (a *App) UpdateCategory(cat models.Category) error {
	if cat.Name == "" {
		return fmt.Errorf("name is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.snap.Categories {
		if a.snap.Categories[i].ID == cat.ID {
			a.snap.Categories[i] = cat
			return a.commit()
		}
	}
	return fmt.Errorf("category %s not found", cat.ID)
}

// DeleteCategory removes a category and re-homes its links to the common
// category. Deleting the last category re-creates common, so links never
// dangle.
func (a *App) DeleteCategory(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	found := false
	kept := a.snap.Categories[:0]
	for _, c := range a.snap.Categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("category %s not found", id)
	}
	a.snap.Categories = kept

	a.snap.Normalize()

	if a.activeCategory == id {
		a.activeCategory = models.AllCategoryID
	}
	return a.commit()
}

// ImportMerge folds another snapshot into the current one. Categories are
// matched by name so an import never creates a duplicate "Work"; their links
// land under the existing category id. Unknown categories are added as-is.
func (a *App) ImportMerge(in *models.Snapshot) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	remap := make(map[string]string)
	for _, c := range in.Categories {
		if existing := a.snap.CategoryByName(c.Name); existing != nil {
			remap[c.ID] = existing.ID
			continue
		}
		if a.snap.CategoryByID(c.ID) != nil {
			// Same id, different name: keep ours, remap theirs.
			fresh := c
			fresh.ID = models.NewID()
			remap[c.ID] = fresh.ID
			a.snap.Categories = append(a.snap.Categories, fresh)
			continue
		}
		a.snap.Categories = append(a.snap.Categories, c)
	}

	for _, l := range in.Links {
		if target, ok := remap[l.CategoryID]; ok {
			l.CategoryID = target
		}
		if l.ID == "" || a.linkByID(l.ID) != nil {
			l.ID = models.NewID()
		}
		a.snap.Links = append(a.snap.Links, l)
	}

	a.snap.Normalize()
	return a.commit()
}

func (a *App) linkByID(id string) *models.LinkItem {
	for i := range a.snap.Links {
		if a.snap.Links[i].ID == id {
			return &a.snap.Links[i]
		}
	}
	return nil
}

// Theme

func (a *App) Theme() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// CycleTheme advances to the next theme and persists the choice.
func (a *App) CycleTheme() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.theme = models.NextTheme(a.theme)
	a.store.SaveTheme(a.theme)
	return a.theme
}

// commit routes the new snapshot through the sync controller. Caller holds
// the lock.
func (a *App) commit() error {
	snap := a.snap.Clone()
	return a.controller.ApplyUpdate(snap.Links, snap.Categories)
}
