package models

// Theme identifiers carried over from the web UI. Five light variants plus dark.
var Themes = []string{
	"light-theme-default",
	"light-theme-warm",
	"light-theme-cool",
	"light-theme-minimal",
	"light-theme-soft",
	"dark",
}

// DefaultTheme is used when nothing is persisted.
const DefaultTheme = "light-theme-default"

// NextTheme returns the theme following current in the cycle. An unknown
// current restarts at the first theme.
func NextTheme(current string) string {
	for i, t := range Themes {
		if t == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// WebDAVConfig holds the backup channel settings. Opaque to the rest of the
// system, last write wins.
type WebDAVConfig struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AIConfig holds the AI provider selection. Persisted as an opaque blob.
type AIConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"apiKey"`
}

// Backup is the full application state written to the WebDAV channel:
// the snapshot plus theme and configuration blobs.
type Backup struct {
	Links      []LinkItem    `json:"links"`
	Categories []Category    `json:"categories"`
	Theme      string        `json:"theme,omitempty"`
	WebDAV     *WebDAVConfig `json:"webdav,omitempty"`
	AI         *AIConfig     `json:"ai,omitempty"`
}
