package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"docsight/internal/client"
)

// pollInterval is the fixed delay between status queries. There is no
// backoff and no attempt limit: the loop ends only on a terminal status or
// a hard fetch failure.
const pollInterval = 2 * time.Second

// pollTickMsg triggers the next status query for one poll cycle.
type pollTickMsg struct {
	cycle string
}

// statusCheckedMsg carries one status query outcome for one poll cycle.
type statusCheckedMsg struct {
	cycle  string
	status client.Status
	err    error
}

// processingModel is the processing view for a single job. Each mounted
// instance owns exactly one poll cycle, identified by a fresh token; a
// message whose token does not match the live cycle is from a superseded
// view and is dropped before it can schedule work or navigate.
type processingModel struct {
	client *client.Client
	logger *slog.Logger
	theme  Theme

	jobID  string
	cycle  string
	status client.Status
	polls  int
	err    error

	spinner spinner.Model
}

func newProcessingModel(c *client.Client, logger *slog.Logger, theme Theme, jobID string) processingModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return processingModel{
		client:  c,
		logger:  logger,
		theme:   theme,
		jobID:   jobID,
		cycle:   uuid.NewString(),
		status:  client.StatusProcessing,
		spinner: sp,
	}
}

// init issues the first status query immediately; history re-entry into an
// already-completed job forwards to the result view on that first answer.
func (m processingModel) init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkStatus())
}

func (m processingModel) update(msg tea.Msg) (processingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollTickMsg:
		if msg.cycle != m.cycle || m.err != nil {
			return m, nil
		}
		return m, m.checkStatus()

	case statusCheckedMsg:
		if msg.cycle != m.cycle {
			return m, nil
		}

		m.polls++

		if msg.err != nil {
			// Hard poll failure: stop polling, no retries.
			m.err = fmt.Errorf("failed to check processing status: %w", msg.err)
			m.logger.Error("status poll failed", "job_id", m.jobID, "error", msg.err)
			return m, nil
		}

		m.status = msg.status
		switch msg.status {
		case client.StatusCompleted:
			return m, gotoResult(m.jobID)
		case client.StatusError:
			m.err = fmt.Errorf("the service reported an error processing this job")
			return m, nil
		default:
			// processing, or anything unrecognized: still in progress
			return m, m.tick()
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return m, gotoLanding
		}
	}

	return m, nil
}

// tick schedules the next poll for this cycle.
func (m processingModel) tick() tea.Cmd {
	cycle := m.cycle
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{cycle: cycle}
	})
}

// checkStatus queries the job status in a command goroutine.
func (m processingModel) checkStatus() tea.Cmd {
	c := m.client
	cycle := m.cycle
	jobID := m.jobID
	return func() tea.Msg {
		status, err := c.Status(context.Background(), jobID)
		return statusCheckedMsg{cycle: cycle, status: status, err: err}
	}
}

func (m processingModel) view() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(m.theme.errorStyle().Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.theme.hintStyle().Render("esc: return to start"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.theme.statusStyle().Render(m.spinner.View()))
	b.WriteString(" Processing your file...\n\n")
	b.WriteString(m.theme.hintStyle().Render(fmt.Sprintf("job %s • checking every %s • esc: return to start", m.jobID, pollInterval)))
	b.WriteString("\n")

	return b.String()
}
