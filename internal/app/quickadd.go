package app

import (
	"net/url"
)

// QuickAdd is the pre-filled new-link form produced from a shared URL.
type QuickAdd struct {
	URL   string
	Title string
}

// ParseQuickAdd extracts the add_url / add_title bootstrap parameters from a
// raw URL and returns the request plus the URL with those parameters
// scrubbed. Returns (nil, raw) when no add_url parameter is present.
func ParseQuickAdd(raw string) (*QuickAdd, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, raw
	}

	q := u.Query()
	addURL := q.Get("add_url")
	if addURL == "" {
		return nil, raw
	}

	req := &QuickAdd{
		URL:   addURL,
		Title: q.Get("add_title"),
	}
	if req.Title == "" {
		req.Title = addURL
	}

	q.Del("add_url")
	q.Del("add_title")
	u.RawQuery = q.Encode()

	return req, u.String()
}
