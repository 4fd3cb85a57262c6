package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"docsight/internal/client"
)

// landingModel is the start view: a short banner, the entry points into the
// upload flow, and the recent-uploads pane.
type landingModel struct {
	theme   Theme
	history historyModel
}

func newLandingModel(c *client.Client, theme Theme) landingModel {
	return landingModel{
		theme:   theme,
		history: newHistoryModel(c, theme),
	}
}

func (m landingModel) init() tea.Cmd {
	return m.history.load()
}

func (m landingModel) update(msg tea.Msg) (landingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		var cmd tea.Cmd
		m.history, cmd = m.history.update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "u":
			return m, func() tea.Msg { return gotoUploadMsg{} }
		case "q":
			return m, tea.Quit
		case "up", "down", "j", "k", "enter":
			var cmd tea.Cmd
			m.history, cmd = m.history.update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m landingModel) view() string {
	var b strings.Builder

	b.WriteString(m.theme.titleStyle().Render("DocSight"))
	b.WriteString("\n")
	b.WriteString(m.theme.accentStyle().Render("Upload your documents for instant AI-powered analysis"))
	b.WriteString("\n\n")
	b.WriteString("  u  upload a document\n")
	b.WriteString("  q  quit\n\n")

	b.WriteString(m.history.view())

	b.WriteString("\n")
	b.WriteString(m.theme.hintStyle().Render("↑/↓: select • enter: open • u: upload"))
	b.WriteString("\n")

	return b.String()
}
