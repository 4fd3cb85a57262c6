package tui

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsight/internal/client"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// statusServer serves a fixed sequence of status values, then repeats the
// last one. It counts the queries it answered.
func statusServer(t *testing.T, statuses ...string) (*client.Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := calls
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		calls++
		json.NewEncoder(w).Encode(map[string]string{"status": statuses[i]})
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL, 5*time.Second, testLogger())
	require.NoError(t, err)
	return c, &calls
}

// drive executes a pending status query command and feeds the outcome back
// into the model, returning the follow-up command.
func drive(t *testing.T, m processingModel, query tea.Cmd) (processingModel, tea.Cmd) {
	t.Helper()
	msg := query()
	require.IsType(t, statusCheckedMsg{}, msg)
	return m.update(msg)
}

func TestProcessing_PollsUntilCompleted(t *testing.T) {
	c, calls := statusServer(t, "processing", "processing", "completed")
	m := newProcessingModel(c, testLogger(), defaultTheme, "job-1")

	// Poll 1: still processing, a re-poll is scheduled
	m, cmd := drive(t, m, m.checkStatus())
	require.NotNil(t, cmd, "a re-poll must be scheduled")
	assert.Equal(t, client.StatusProcessing, m.status)

	// Poll 2: tick fires, query issued only now, still processing
	m, query := m.update(pollTickMsg{cycle: m.cycle})
	require.NotNil(t, query)
	m, cmd = drive(t, m, query)
	require.NotNil(t, cmd)

	// Poll 3: completed, navigate to the result view
	m, query = m.update(pollTickMsg{cycle: m.cycle})
	require.NotNil(t, query)
	m, cmd = drive(t, m, query)
	require.NotNil(t, cmd)
	assert.Equal(t, gotoResultMsg{jobID: "job-1"}, cmd())

	assert.Equal(t, 3, *calls, "exactly one query per poll round")
	assert.Equal(t, client.StatusCompleted, m.status)
	assert.Equal(t, 3, m.polls)
}

func TestProcessing_ViewAnimatesSpinnerWhilePolling(t *testing.T) {
	c, _ := statusServer(t, "processing")
	m := newProcessingModel(c, testLogger(), defaultTheme, "job-1")

	m, cmd := m.update(m.spinner.Tick())
	require.NotNil(t, cmd, "spinner keeps animating")

	out := m.view()
	assert.Contains(t, out, "Processing your file")
	assert.Contains(t, out, "job job-1")
}

func TestProcessing_UnrecognizedStatusKeepsPolling(t *testing.T) {
	c, _ := statusServer(t, "failed")
	m := newProcessingModel(c, testLogger(), defaultTheme, "job-1")

	m, cmd := drive(t, m, m.checkStatus())
	require.NotNil(t, cmd, "unrecognized status degrades to still-processing")
	assert.Equal(t, client.StatusUnrecognized, m.status)
	assert.NoError(t, m.err)
}

func TestProcessing_HardFailureStopsPolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL, 5*time.Second, testLogger())
	require.NoError(t, err)

	m := newProcessingModel(c, testLogger(), defaultTheme, "job-1")
	m, cmd := drive(t, m, m.checkStatus())

	assert.Nil(t, cmd, "no further queries after a hard failure")
	require.Error(t, m.err)
	assert.Contains(t, m.view(), "failed to check processing status")
}

func TestProcessing_ErrorStatusIsTerminal(t *testing.T) {
	c, _ := statusServer(t, "error")
	m := newProcessingModel(c, testLogger(), defaultTheme, "job-1")

	m, cmd := drive(t, m, m.checkStatus())
	assert.Nil(t, cmd)
	require.Error(t, m.err)
}

func TestProcessing_StaleCycleMessagesDiscarded(t *testing.T) {
	c, _ := statusServer(t, "processing")
	m := newProcessingModel(c, testLogger(), defaultTheme, "job-1")

	before := m.polls
	m, cmd := m.update(statusCheckedMsg{cycle: "stale", status: client.StatusCompleted})
	assert.Nil(t, cmd, "a stale completion must not navigate")
	assert.Equal(t, before, m.polls)
	assert.NotEqual(t, client.StatusCompleted, m.status)

	m, cmd = m.update(pollTickMsg{cycle: "stale"})
	assert.Nil(t, cmd, "a stale tick must not schedule another query")
}

func TestProcessing_RemountStartsFreshCycle(t *testing.T) {
	c, _ := statusServer(t, "processing")
	app := NewApp(c, testLogger())

	// Mount the processing view
	model, _ := app.Update(gotoProcessingMsg{jobID: "job-1"})
	app = model.(App)
	oldCycle := app.processing.cycle

	// Navigate away and remount with the same id
	model, _ = app.Update(gotoLandingMsg{})
	app = model.(App)
	model, _ = app.Update(gotoProcessingMsg{jobID: "job-1"})
	app = model.(App)

	require.NotEqual(t, oldCycle, app.processing.cycle)

	// A late completion from the old cycle is a no-op
	model, cmd := app.Update(statusCheckedMsg{cycle: oldCycle, status: client.StatusCompleted})
	app = model.(App)
	assert.Nil(t, cmd, "stale cycle must not double-navigate")
	assert.Equal(t, routeProcessing, app.route)
}
