package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/yunhang/cloudnav/internal/models"
)

// ParseBookmarksHTML reads a browser bookmark export (Netscape bookmark file
// format) and produces a snapshot whose folders become categories. The result
// is meant to be folded into live state with ImportMerge, which dedupes
// categories by name.
func ParseBookmarksHTML(r io.Reader) (*models.Snapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}

	snap := &models.Snapshot{}
	byName := make(map[string]string)
	var folderStack []string
	now := time.Now().Unix()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		// Folder header <H3>
		if n.Type == html.ElementNode && n.Data == "h3" && n.FirstChild != nil {
			name := strings.TrimSpace(n.FirstChild.Data)
			id, ok := byName[name]
			if !ok {
				id = models.NewID()
				byName[name] = id
				snap.Categories = append(snap.Categories, models.Category{ID: id, Name: name})
			}
			folderStack = append(folderStack, id)
		}

		// Bookmark <A HREF=...>
		if n.Type == html.ElementNode && n.Data == "a" {
			link := models.LinkItem{ID: models.NewID(), CreatedAt: now}
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href":
					link.URL = attr.Val
				case "icon":
					link.Icon = attr.Val
				case "add_date":
					if ts, err := json.Number(attr.Val).Int64(); err == nil && ts > 0 {
						link.CreatedAt = ts
					}
				}
			}
			if n.FirstChild != nil {
				link.Title = strings.TrimSpace(n.FirstChild.Data)
			}
			if len(folderStack) > 0 {
				link.CategoryID = folderStack[len(folderStack)-1]
			} else {
				link.CategoryID = models.CommonCategoryID
			}

			if link.URL != "" {
				if link.Title == "" {
					link.Title = link.URL
				}
				snap.Links = append(snap.Links, link)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		// Leaving a DL container closes the current folder.
		if n.Type == html.ElementNode && n.Data == "dl" {
			if len(folderStack) > 0 {
				folderStack = folderStack[:len(folderStack)-1]
			}
		}
	}

	walk(doc)
	return snap, nil
}

// ExportJSON writes the snapshot as indented JSON.
func ExportJSON(w io.Writer, snap *models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	return nil
}

// ImportJSON reads a snapshot previously produced by ExportJSON.
func ImportJSON(r io.Reader) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to import snapshot: %w", err)
	}
	return &snap, nil
}
