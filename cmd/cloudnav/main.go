package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/yunhang/cloudnav/internal/api"
	"github.com/yunhang/cloudnav/internal/app"
	"github.com/yunhang/cloudnav/internal/config"
	"github.com/yunhang/cloudnav/internal/i18n"
	"github.com/yunhang/cloudnav/internal/importer"
	"github.com/yunhang/cloudnav/internal/models"
	"github.com/yunhang/cloudnav/internal/store"
	syncctl "github.com/yunhang/cloudnav/internal/sync"
	"github.com/yunhang/cloudnav/internal/ui"
	"github.com/yunhang/cloudnav/internal/webdav"
)

func main() {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Language != "" {
		i18n.SetLanguage(i18n.Language(cfg.Language))
	}

	st, err := store.New(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	serverURL := ""
	if cfg.Server.Enabled {
		serverURL = cfg.Server.URL
	}
	remote := api.NewClient(serverURL)
	session := syncctl.NewSession(st, remote)

	events := make(chan syncctl.Event, 16)
	notify := func(e syncctl.Event) {
		select {
		case events <- e:
		default:
		}
	}
	controller := syncctl.NewController(st, remote, session, notify)
	defer controller.Wait()

	a := app.New(st, remote, session, controller)

	ctx := context.Background()
	a.Load(ctx)

	if len(os.Args) > 1 {
		if err := runCommand(ctx, a, remote, st, cfg, os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(ui.NewModel(a, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, a *app.App, remote *api.Client, st *store.Store, cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "login":
		if err := remote.Ping(ctx); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		if err := a.Login(ctx, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Println("Logged in.")
		return nil

	case "import":
		if len(args) < 1 {
			return fmt.Errorf("usage: cloudnav import <bookmarks.html|snapshot.json>")
		}
		return importFile(a, args[0])

	case "export":
		out := os.Stdout
		if len(args) > 0 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		snap := a.Snapshot()
		return importer.ExportJSON(out, snap)

	case "backup":
		return runBackup(ctx, a, st, cfg)

	case "restore":
		return runRestore(ctx, a, st, cfg)

	case "quickadd":
		if len(args) < 1 {
			return fmt.Errorf("usage: cloudnav quickadd <shared-url>")
		}
		req, _ := app.ParseQuickAdd(args[0])
		if req == nil {
			return fmt.Errorf("no add_url parameter in %q", args[0])
		}
		link, err := a.AddLink(req.Title, req.URL, "", models.CommonCategoryID)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", link.Title, link.URL)
		return nil

	default:
		return fmt.Errorf("unknown command %q (login, import, export, backup, restore, quickadd)", cmd)
	}
}

func importFile(a *app.App, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var snap *models.Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		snap, err = importer.ParseBookmarksHTML(f)
	default:
		snap, err = importer.ImportJSON(f)
	}
	if err != nil {
		return err
	}

	if err := a.ImportMerge(snap); err != nil {
		return err
	}
	fmt.Printf("Imported %d links, %d categories\n", len(snap.Links), len(snap.Categories))
	return nil
}

func runBackup(ctx context.Context, a *app.App, st *store.Store, cfg *config.Config) error {
	dav := cfg.WebDAVModel()
	if dav == nil {
		dav = st.WebDAVConfig()
	}
	if dav == nil {
		return fmt.Errorf("no webdav endpoint configured")
	}
	st.SaveWebDAVConfig(dav)

	snap := a.Snapshot()
	backup := &models.Backup{
		Links:      snap.Links,
		Categories: snap.Categories,
		Theme:      a.Theme(),
		WebDAV:     dav,
		AI:         st.AIConfig(),
	}

	if err := webdav.NewClient(*dav).Upload(ctx, backup); err != nil {
		return err
	}
	fmt.Println("Backup uploaded.")
	return nil
}

func runRestore(ctx context.Context, a *app.App, st *store.Store, cfg *config.Config) error {
	dav := cfg.WebDAVModel()
	if dav == nil {
		dav = st.WebDAVConfig()
	}
	if dav == nil {
		return fmt.Errorf("no webdav endpoint configured")
	}

	backup, err := webdav.NewClient(*dav).Download(ctx)
	if err != nil {
		return err
	}

	snap := &models.Snapshot{Links: backup.Links, Categories: backup.Categories}
	if err := a.ImportMerge(snap); err != nil {
		return err
	}
	if backup.Theme != "" {
		st.SaveTheme(backup.Theme)
	}
	if backup.AI != nil {
		st.SaveAIConfig(backup.AI)
	}
	fmt.Printf("Restored %d links, %d categories\n", len(backup.Links), len(backup.Categories))
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(password)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(password), nil
}
