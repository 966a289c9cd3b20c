package models

import (
	"time"

	"github.com/google/uuid"
)

// CommonCategoryID is the reserved fallback category. It always exists:
// deleting a category moves its links here, and deleting the last category
// re-creates it.
const CommonCategoryID = "common"

// AllCategoryID is the sentinel for "no category filter".
const AllCategoryID = "all"

// LinkItem represents a single bookmark entry.
type LinkItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CategoryID  string `json:"categoryId"`
	Pinned      bool   `json:"pinned"`
	CreatedAt   int64  `json:"createdAt"`
}

// Category groups links. A non-empty Password marks it as lockable.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Password string `json:"password,omitempty"`
}

// Snapshot is the full {links, categories} pair, treated as one atomic unit
// for persistence and sync.
type Snapshot struct {
	Links      []LinkItem `json:"links"`
	Categories []Category `json:"categories"`
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.New().String()
}

// NewLink creates a link in the given category with the creation time as sort key.
func NewLink(title, url, description, categoryID string) LinkItem {
	if categoryID == "" {
		categoryID = CommonCategoryID
	}
	return LinkItem{
		ID:          NewID(),
		Title:       title,
		URL:         url,
		Description: description,
		CategoryID:  categoryID,
		CreatedAt:   time.Now().Unix(),
	}
}

// CategoryByID returns the category with the given id, or nil.
func (s *Snapshot) CategoryByID(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// CategoryByName returns the category with the given display name, or nil.
// Names are a secondary uniqueness signal used when merging imports.
func (s *Snapshot) CategoryByName(name string) *Category {
	for i := range s.Categories {
		if s.Categories[i].Name == name {
			return &s.Categories[i]
		}
	}
	return nil
}

// Normalize enforces the structural invariants: the common category exists,
// and every link's CategoryID resolves to a live category. Links pointing at
// deleted categories are re-homed to common.
func (s *Snapshot) Normalize() {
	if s.CategoryByID(CommonCategoryID) == nil {
		s.Categories = append([]Category{{ID: CommonCategoryID, Name: "常用", Icon: "star"}}, s.Categories...)
	}
	for i := range s.Links {
		if s.Links[i].CategoryID == "" || s.CategoryByID(s.Links[i].CategoryID) == nil {
			s.Links[i].CategoryID = CommonCategoryID
		}
	}
}

// Clone returns a deep copy. Snapshots handed to the sync layer must not
// alias the live in-memory state.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Links:      make([]LinkItem, len(s.Links)),
		Categories: make([]Category, len(s.Categories)),
	}
	copy(c.Links, s.Links)
	copy(c.Categories, s.Categories)
	return c
}

// DefaultSnapshot is the built-in dataset used when neither the remote store
// nor the local cache has anything.
func DefaultSnapshot() *Snapshot {
	now := time.Now().Unix()
	s := &Snapshot{
		Categories: []Category{
			{ID: CommonCategoryID, Name: "常用", Icon: "star"},
			{ID: "dev", Name: "开发", Icon: "code"},
		},
		Links: []LinkItem{
			{ID: NewID(), Title: "GitHub", URL: "https://github.com", Description: "代码托管与协作平台", CategoryID: "dev", CreatedAt: now},
			{ID: NewID(), Title: "Google", URL: "https://google.com", Description: "搜索引擎", CategoryID: CommonCategoryID, Pinned: true, CreatedAt: now},
		},
	}
	return s
}
