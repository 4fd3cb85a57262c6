package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"docsight/internal/client"
)

// resultFetchedMsg carries the one-shot result fetch outcome.
type resultFetchedMsg struct {
	jobID string
	res   *client.SummaryResult
	err   error
}

// resultModel is the result view for a single job. The result is fetched
// exactly once, not polled; the summary scrolls inside a viewport.
type resultModel struct {
	client *client.Client
	logger *slog.Logger
	theme  Theme

	jobID   string
	fetched bool
	res     *client.SummaryResult
	err     error

	viewport    viewport.Model
	history     historyModel
	showHistory bool

	width  int
	height int
}

func newResultModel(c *client.Client, logger *slog.Logger, theme Theme, jobID string) resultModel {
	return resultModel{
		client:   c,
		logger:   logger,
		theme:    theme,
		jobID:    jobID,
		viewport: viewport.New(),
		history:  newHistoryModel(c, theme),
	}
}

func (m resultModel) init() tea.Cmd {
	return tea.Batch(m.fetchResult(), m.history.load())
}

func (m *resultModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.SetWidth(max(40, width))
	m.viewport.SetHeight(max(10, height-6))
	if m.fetched && m.res != nil && m.res.Status == client.StatusCompleted {
		m.viewport.SetContent(renderSummary(m.theme, m.width, m.res))
	}
}

// fetchResult retrieves the result payload once.
func (m resultModel) fetchResult() tea.Cmd {
	c := m.client
	jobID := m.jobID
	return func() tea.Msg {
		res, err := c.Result(context.Background(), jobID)
		return resultFetchedMsg{jobID: jobID, res: res, err: err}
	}
}

func (m resultModel) update(msg tea.Msg) (resultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case resultFetchedMsg:
		if msg.jobID != m.jobID {
			return m, nil
		}
		m.fetched = true
		m.res = msg.res
		m.err = msg.err
		if msg.err != nil {
			m.logger.Error("result fetch failed", "job_id", m.jobID, "error", msg.err)
		}
		if m.res != nil && m.res.Status == client.StatusCompleted {
			m.viewport.SetContent(renderSummary(m.theme, m.width, m.res))
		}
		return m, nil

	case historyLoadedMsg:
		var cmd tea.Cmd
		m.history, cmd = m.history.update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			if m.showHistory {
				m.showHistory = false
				return m, nil
			}
			return m, gotoLanding

		case "h":
			m.showHistory = !m.showHistory
			if m.showHistory {
				return m, m.history.load()
			}
			return m, nil

		case "d":
			return m, m.download()

		case "enter", "up", "down", "j", "k":
			if m.showHistory {
				var cmd tea.Cmd
				m.history, cmd = m.history.update(msg)
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// download saves the generated artifact next to the current directory.
// Fire-and-forget: the outcome is only logged.
func (m resultModel) download() tea.Cmd {
	c := m.client
	logger := m.logger
	jobID := m.jobID
	return func() tea.Msg {
		name := fmt.Sprintf("docsight-summary-%s.pdf", jobID)
		f, err := os.Create(name)
		if err != nil {
			logger.Error("download failed", "job_id", jobID, "error", err)
			return nil
		}
		defer f.Close()

		if err := c.Download(context.Background(), jobID, f); err != nil {
			logger.Error("download failed", "job_id", jobID, "error", err)
			return nil
		}
		logger.Info("summary downloaded", "job_id", jobID, "file", name)
		return nil
	}
}

func (m resultModel) view() string {
	var b strings.Builder

	switch {
	case !m.fetched, m.res != nil && m.res.Status == client.StatusProcessing:
		b.WriteString(m.theme.statusStyle().Render("Processing your file..."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.hintStyle().Render("esc: return to start"))
		b.WriteString("\n")
		return b.String()

	case m.err != nil, m.res == nil:
		b.WriteString(m.theme.errorStyle().Render("Error loading data"))
		b.WriteString("\n\n")
		b.WriteString(m.theme.hintStyle().Render("esc: return to start"))
		b.WriteString("\n")
		return b.String()
	}

	if m.res.Status != client.StatusCompleted {
		// Explicit error-state rendering, also covering unrecognized statuses.
		b.WriteString(m.theme.errorStyle().Render("✗ This document could not be processed"))
		b.WriteString("\n")
		b.WriteString(m.theme.hintStyle().Render(fmt.Sprintf("job %s reported status %q", m.jobID, m.res.Status)))
		b.WriteString("\n\n")
		b.WriteString(m.theme.hintStyle().Render("esc: return to start"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.theme.titleStyle().Render("Document Summary"))
	b.WriteString("  ")
	b.WriteString(m.theme.hintStyle().Render("Document: " + m.res.Filename))
	b.WriteString("\n")

	if m.showHistory {
		b.WriteString("\n")
		b.WriteString(m.history.view())
		b.WriteString("\n")
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.theme.hintStyle().Render("Direct link: " + m.client.DownloadURL(m.jobID)))
	b.WriteString("\n")
	b.WriteString(m.theme.hintStyle().Render("d: download PDF • h: history • ↑/↓: scroll • esc: home"))
	b.WriteString("\n")

	return b.String()
}
