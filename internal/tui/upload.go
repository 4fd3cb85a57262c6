package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"docsight/internal/client"
)

// confirmDelay is the short user-visible success notice shown before the
// input is cleared and the app navigates to the processing view.
const confirmDelay = 500 * time.Millisecond

type uploadTab int

const (
	tabFile uploadTab = iota
	tabText
)

// uploadDoneMsg carries the outcome of a submission.
type uploadDoneMsg struct {
	id     string
	source client.SourceKind
	err    error
}

// confirmElapsedMsg fires after the success notice has been visible.
type confirmElapsedMsg struct {
	id string
}

// uploadModel is the submission view: a file-path tab and a raw-text tab.
// Exactly one of the two is submitted; text submission is gated on the
// length bounds before any request is made.
type uploadModel struct {
	client *client.Client
	logger *slog.Logger
	theme  Theme

	tab       uploadTab
	pathInput textinput.Model
	textInput textarea.Model

	history     historyModel
	showHistory bool

	uploading bool
	confirmed bool
	notice    string

	width  int
	height int
}

func newUploadModel(c *client.Client, logger *slog.Logger, theme Theme) uploadModel {
	pi := textinput.New()
	pi.Placeholder = "path/to/document.pdf"
	pi.Focus()

	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("Enter your text here (minimum %d, maximum %d characters)...", client.MinTextLen, client.MaxTextLen)
	ta.CharLimit = client.MaxTextLen

	return uploadModel{
		client:    c,
		logger:    logger,
		theme:     theme,
		tab:       tabFile,
		pathInput: pi,
		textInput: ta,
		history:   newHistoryModel(c, theme),
	}
}

func (m uploadModel) init() tea.Cmd {
	return m.history.load()
}

func (m *uploadModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.textInput.SetWidth(max(20, width-4))
	m.textInput.SetHeight(max(5, height-12))
}

// textSubmitEnabled reports whether text may be submitted. Bounds count
// characters (runes), the same unit the counter under the textarea shows.
func textSubmitEnabled(text string) bool {
	n := utf8.RuneCountInString(text)
	return n >= client.MinTextLen && n < client.MaxTextLen
}

func (m uploadModel) update(msg tea.Msg) (uploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		var cmd tea.Cmd
		m.history, cmd = m.history.update(msg)
		return m, cmd

	case uploadDoneMsg:
		if msg.err != nil {
			// Back to the pre-submission state: controls re-enabled,
			// no partial job ID retained.
			m.uploading = false
			m.notice = "Upload failed"
			m.logger.Error("upload failed", "source", msg.source, "error", msg.err)
			return m, nil
		}
		m.confirmed = true
		id := msg.id
		return m, tea.Tick(confirmDelay, func(time.Time) tea.Msg {
			return confirmElapsedMsg{id: id}
		})

	case confirmElapsedMsg:
		m.pathInput.SetValue("")
		m.textInput.SetValue("")
		m.uploading = false
		m.confirmed = false
		return m, gotoProcessing(msg.id)

	case tea.KeyPressMsg:
		if m.uploading || m.confirmed {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			if m.showHistory {
				m.showHistory = false
				return m, nil
			}
			return m, gotoLanding

		case "ctrl+h":
			m.showHistory = !m.showHistory
			if m.showHistory {
				return m, m.history.load()
			}
			return m, nil

		case "ctrl+t":
			m.switchTab()
			return m, nil

		case "ctrl+s":
			return m.submit()

		case "enter":
			if m.showHistory {
				var cmd tea.Cmd
				m.history, cmd = m.history.update(msg)
				return m, cmd
			}
			if m.tab == tabFile {
				return m.submit()
			}
		}

		if m.showHistory {
			switch msg.String() {
			case "up", "down", "j", "k":
				var cmd tea.Cmd
				m.history, cmd = m.history.update(msg)
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case tabFile:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case tabText:
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

func (m *uploadModel) switchTab() {
	if m.tab == tabFile {
		m.tab = tabText
		m.pathInput.Blur()
		m.textInput.Focus()
	} else {
		m.tab = tabFile
		m.textInput.Blur()
		m.pathInput.Focus()
	}
}

// submit starts the upload for the active tab, if its input is valid.
func (m uploadModel) submit() (uploadModel, tea.Cmd) {
	switch m.tab {
	case tabFile:
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.notice = "Select a file first"
			return m, nil
		}
		m.uploading = true
		m.notice = ""
		c := m.client
		return m, func() tea.Msg {
			id, err := c.UploadFile(context.Background(), path)
			return uploadDoneMsg{id: id, source: client.SourceFile, err: err}
		}

	case tabText:
		text := m.textInput.Value()
		if !textSubmitEnabled(text) {
			return m, nil
		}
		m.uploading = true
		m.notice = ""
		c := m.client
		return m, func() tea.Msg {
			id, err := c.UploadText(context.Background(), text)
			return uploadDoneMsg{id: id, source: client.SourceText, err: err}
		}
	}
	return m, nil
}

func (m uploadModel) view() string {
	var b strings.Builder

	b.WriteString(m.theme.titleStyle().Render("DocSight"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabFile:
		b.WriteString("File to analyze:\n")
		b.WriteString(m.pathInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.theme.hintStyle().Render("Supported formats: PDF, images, text files"))
		b.WriteString("\n")
	case tabText:
		b.WriteString(m.textInput.View())
		b.WriteString("\n")
		b.WriteString(m.renderTextStatus())
	}

	b.WriteString("\n")
	b.WriteString(m.renderAction())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(m.theme.errorStyle().Render(m.notice))
		b.WriteString("\n")
	}

	if m.showHistory {
		b.WriteString("\n")
		b.WriteString(m.history.view())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.hintStyle().Render("ctrl+t: switch tab • ctrl+s: upload • ctrl+h: history • esc: back"))
	b.WriteString("\n")

	return b.String()
}

func (m uploadModel) renderTabs() string {
	file := "File Upload"
	text := "Raw Text"
	switch m.tab {
	case tabFile:
		file = m.theme.accentStyle().Bold(true).Render(file)
		text = m.theme.hintStyle().Render(text)
	case tabText:
		file = m.theme.hintStyle().Render(file)
		text = m.theme.accentStyle().Bold(true).Render(text)
	}
	return file + " | " + text
}

func (m uploadModel) renderTextStatus() string {
	n := utf8.RuneCountInString(m.textInput.Value())

	count := fmt.Sprintf("%d / %d characters", n, client.MaxTextLen)
	if n >= client.MaxTextLen {
		count = m.theme.errorStyle().Render(count)
	} else {
		count = m.theme.hintStyle().Render(count)
	}

	if n > 0 && n < client.MinTextLen {
		count += "  " + m.theme.errorStyle().Render(fmt.Sprintf("Minimum %d characters required", client.MinTextLen))
	}
	return count + "\n"
}

func (m uploadModel) renderAction() string {
	switch {
	case m.confirmed:
		return m.theme.successStyle().Render("✓ Uploaded")
	case m.uploading:
		return m.theme.statusStyle().Render("Uploading...")
	case m.tab == tabText && !textSubmitEnabled(m.textInput.Value()):
		return m.theme.hintStyle().Render("Upload disabled until the text is within bounds")
	default:
		return m.theme.statusStyle().Render("Ready to upload (ctrl+s)")
	}
}
