package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yunhang/cloudnav/internal/app"
	"github.com/yunhang/cloudnav/internal/i18n"
	"github.com/yunhang/cloudnav/internal/models"
	syncctl "github.com/yunhang/cloudnav/internal/sync"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeUnlock
	modeLogin
	modeForm
)

// SyncEventMsg carries a sync status transition into the update loop.
type SyncEventMsg syncctl.Event

type Model struct {
	app    *app.App
	keys   KeyMap
	events <-chan syncctl.Event

	mode   mode
	cursor int

	input      textinput.Model
	formInputs []textinput.Model
	formFocus  int

	// Category pending unlock while the password prompt is up.
	pendingCategory string

	syncStatus syncctl.Status
	notice     string
	noticeErr  bool

	width  int
	height int
}

func NewModel(a *app.App, events <-chan syncctl.Event) Model {
	input := textinput.New()
	input.CharLimit = 128

	return Model{
		app:        a,
		keys:       NewKeyMap(),
		events:     events,
		input:      input,
		syncStatus: syncctl.StatusIdle,
	}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		return SyncEventMsg(<-m.events)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SyncEventMsg:
		m.syncStatus = msg.Status
		t := i18n.T()
		switch {
		case msg.AuthRequired:
			m.notice = t.AuthRequired
			m.noticeErr = true
		case msg.Status == syncctl.StatusError && msg.Err != nil:
			m.notice = fmt.Sprintf("%s: %v", t.SyncError, msg.Err)
			m.noticeErr = true
		}
		return m, m.listen()

	case tea.KeyMsg:
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeUnlock, modeLogin:
			return m.updatePassword(msg)
		case modeForm:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(links)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(links) {
			m.notice = links[m.cursor].URL
			m.noticeErr = false
		}

	case key.Matches(msg, m.keys.Pin):
		if m.cursor < len(links) {
			m.app.TogglePinned(links[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(links) {
			m.app.DeleteLink(links[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input = freshInput(i18n.T().PromptSearch, false)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextCategory):
		return m.cycleCategory(1), nil

	case key.Matches(msg, m.keys.PrevCategory):
		return m.cycleCategory(-1), nil

	case key.Matches(msg, m.keys.Login):
		m.mode = modeLogin
		m.input = freshInput(i18n.T().PromptLogin, true)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Theme):
		theme := m.app.CycleTheme()
		m.notice = theme
		m.noticeErr = false

	case key.Matches(msg, m.keys.New):
		m.mode = modeForm
		m.formFocus = 0
		t := i18n.T()
		m.formInputs = []textinput.Model{
			freshInput(t.FormTitle, false),
			freshInput(t.FormURL, false),
			freshInput(t.FormDesc, false),
		}
		m.formInputs[0].Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.app.SetSearch("")
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.app.SetSearch(m.input.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := i18n.T()

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.pendingCategory = ""
		return m, nil

	case tea.KeyEnter:
		password := m.input.Value()
		if m.mode == modeUnlock {
			if m.app.Unlock(m.pendingCategory, password) {
				m.notice = ""
				m.cursor = 0
			} else {
				m.notice = t.WrongPassword
				m.noticeErr = true
			}
			m.pendingCategory = ""
		} else {
			if err := m.app.Login(context.Background(), password); err != nil {
				m.notice = fmt.Sprintf("%s: %v", t.LoginFailed, err)
				m.noticeErr = true
			} else {
				m.notice = t.LoginOK
				m.noticeErr = false
			}
		}
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil

	case tea.KeyTab, tea.KeyEnter:
		if msg.Type == tea.KeyEnter && m.formFocus == len(m.formInputs)-1 {
			title := m.formInputs[0].Value()
			url := m.formInputs[1].Value()
			desc := m.formInputs[2].Value()
			category := m.app.ActiveCategory()
			if _, err := m.app.AddLink(title, url, desc, category); err != nil {
				m.notice = err.Error()
				m.noticeErr = true
			} else {
				m.notice = ""
			}
			m.mode = modeBrowse
			return m, nil
		}
		m.formInputs[m.formFocus].Blur()
		m.formFocus = (m.formFocus + 1) % len(m.formInputs)
		m.formInputs[m.formFocus].Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

// cycleCategory moves the active category through all → each category in
// order. A locked selection opens the password prompt instead of activating.
func (m Model) cycleCategory(step int) Model {
	snap := m.app.Snapshot()
	ring := []string{models.AllCategoryID}
	for _, c := range snap.Categories {
		ring = append(ring, c.ID)
	}

	idx := 0
	for i, id := range ring {
		if id == m.app.ActiveCategory() {
			idx = i
			break
		}
	}
	next := ring[(idx+step+len(ring))%len(ring)]

	if m.app.SelectCategory(next) {
		m.mode = modeUnlock
		m.pendingCategory = next
		m.input = freshInput(i18n.T().PromptUnlock, true)
	}
	m.cursor = 0
	return m
}

func (m Model) visible() []models.LinkItem {
	return m.app.VisibleLinks()
}

func (m Model) View() string {
	t := i18n.T()
	var b strings.Builder

	// Header
	auth := ""
	if m.app.Authenticated() {
		auth = " ☁"
	}
	header := fmt.Sprintf("云航 CloudNav%s  %s", auth, MutedStyle.Render(m.app.Theme()))
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	// Category line
	b.WriteString(m.categoryLine())
	b.WriteString("\n\n")

	// Pinned section
	if pinned := m.app.PinnedLinks(); len(pinned) > 0 {
		b.WriteString(PinnedHeaderStyle.Render(PinIcon + " " + t.PinnedSection))
		b.WriteString("\n")
		for _, link := range pinned {
			b.WriteString(ListItemStyle.Render(renderLink(link, false)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Main list
	links := m.visible()
	if len(links) == 0 {
		b.WriteString(MutedStyle.Render(t.NoLinks))
		b.WriteString("\n")
	}
	for i, link := range links {
		style := ListItemStyle
		if i == m.cursor && m.mode == modeBrowse {
			style = SelectedListItemStyle
		}
		b.WriteString(style.Render(renderLink(link, i == m.cursor)))
		b.WriteString("\n")
	}

	// Prompt line
	switch m.mode {
	case modeSearch, modeUnlock, modeLogin:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeForm:
		b.WriteString("\n")
		for _, in := range m.formInputs {
			b.WriteString(in.View())
			b.WriteString("\n")
		}
	}

	// Notice + status bar
	if m.notice != "" {
		b.WriteString("\n")
		if m.noticeErr {
			b.WriteString(ErrorStyle.Render(m.notice))
		} else {
			b.WriteString(MutedStyle.Render(m.notice))
		}
	}
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(m.statusLine()))

	return b.String()
}

func (m Model) categoryLine() string {
	t := i18n.T()
	snap := m.app.Snapshot()
	active := m.app.ActiveCategory()
	gate := m.app.Gate()

	parts := []string{}
	label := t.AllCategories
	if active == models.AllCategoryID {
		label = "[" + label + "]"
	}
	parts = append(parts, label)

	for _, c := range snap.Categories {
		name := c.Name
		if gate.Locked(&c) {
			name = LockIcon + name
		}
		if c.ID == active {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return CategoryStyle.Render(strings.Join(parts, "  "))
}

func (m Model) statusLine() string {
	t := i18n.T()

	status := ""
	switch m.syncStatus {
	case syncctl.StatusSaving:
		status = t.SyncSaving
	case syncctl.StatusSaved:
		status = t.SyncSaved
	case syncctl.StatusError:
		status = t.SyncError
	}

	hints := []string{
		KeyStyle.Render("/") + KeyHintStyle.Render(" "+t.KeySearch),
		KeyStyle.Render("Tab") + KeyHintStyle.Render(" "+t.KeyCategory),
		KeyStyle.Render("p") + KeyHintStyle.Render(" "+t.KeyPin),
		KeyStyle.Render("Ctrl+N") + KeyHintStyle.Render(" "+t.KeyNew),
		KeyStyle.Render("Ctrl+L") + KeyHintStyle.Render(" "+t.KeyLogin),
		KeyStyle.Render("q") + KeyHintStyle.Render(" "+t.KeyQuit),
	}

	line := strings.Join(hints, "  ")
	if status != "" {
		line = lipgloss.NewStyle().Foreground(special).Render(status) + "  " + line
	}
	return line
}

func renderLink(link models.LinkItem, selected bool) string {
	icon := LinkIcon
	if link.Pinned {
		icon = PinIcon
	}
	s := fmt.Sprintf("%s %s  %s", icon, link.Title, MutedStyle.Render(link.URL))
	if selected && link.Description != "" {
		s += "\n   " + MutedStyle.Render(link.Description)
	}
	return s
}

func freshInput(placeholder string, masked bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	if masked {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	in.Focus()
	return in
}
