package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"docsight/internal/client"
)

// historyLoadedMsg carries the fetched history list.
type historyLoadedMsg struct {
	entries []client.HistoryEntry
	err     error
}

// historyModel is the recent-uploads pane shared by the landing, upload and
// result views. It fetches the full list on view activation and never mutates it;
// selecting an entry re-enters the job lifecycle at the processing view.
type historyModel struct {
	client *client.Client
	theme  Theme

	entries []client.HistoryEntry
	loaded  bool
	loadErr error
	cursor  int

	// now is injected so relative ages are testable.
	now func() time.Time
}

func newHistoryModel(c *client.Client, theme Theme) historyModel {
	return historyModel{
		client: c,
		theme:  theme,
		now:    time.Now,
	}
}

// load fetches the history list from the service.
func (m historyModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		entries, err := c.History(context.Background())
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			// Keep whatever was shown before; only surface the notification.
			m.loadErr = msg.err
			return m, nil
		}
		m.loadErr = nil
		m.loaded = true
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			if id, ok := m.selected(); ok {
				return m, gotoProcessing(id)
			}
		}
	}
	return m, nil
}

// selected returns the job ID under the cursor.
func (m historyModel) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return "", false
	}
	return m.entries[m.cursor].ID, true
}

func (m historyModel) view() string {
	var b strings.Builder

	b.WriteString(m.theme.accentStyle().Render("Recent Uploads"))
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(m.theme.errorStyle().Render("Failed to load file history"))
		b.WriteString("\n")
	}

	if m.loaded && len(m.entries) == 0 {
		b.WriteString(m.theme.hintStyle().Render("No files uploaded yet"))
		b.WriteString("\n")
		return b.String()
	}

	now := m.now()
	for i, entry := range m.entries {
		marker := "  "
		if i == m.cursor {
			marker = m.theme.statusStyle().Render("> ")
		}
		age := m.theme.hintStyle().Render(timeAgo(entry.CreatedAt, now))
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, entry.Filename, age))
	}

	if len(m.entries) > 0 {
		b.WriteString(m.theme.hintStyle().Render("enter: open"))
		b.WriteString("\n")
	}

	return b.String()
}
