package tui

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"docsight/internal/client"
)

// Run starts the interactive application and blocks until the user quits.
func Run(a App) error {
	p := tea.NewProgram(a)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}

// route identifies the active view. All routes except the landing view are
// addressable with a known job ID, which is how history re-entry and the
// `docsight watch` deep link work.
type route int

const (
	routeLanding route = iota
	routeUpload
	routeProcessing
	routeResult
)

// Navigation messages. Views emit these as commands; the app swaps the
// active view in response. Swapping away from the processing view orphans
// its poll cycle: messages from the old cycle no longer match and are
// discarded.
type (
	gotoLandingMsg    struct{}
	gotoUploadMsg     struct{}
	gotoProcessingMsg struct{ jobID string }
	gotoResultMsg     struct{ jobID string }
)

func gotoLanding() tea.Msg { return gotoLandingMsg{} }

func gotoProcessing(jobID string) tea.Cmd {
	return func() tea.Msg { return gotoProcessingMsg{jobID: jobID} }
}

func gotoResult(jobID string) tea.Cmd {
	return func() tea.Msg { return gotoResultMsg{jobID: jobID} }
}

// App is the root bubbletea model. It owns the current route and delegates
// every other message to the active view; view state never outlives its
// route, so each visit starts a fresh lifecycle.
type App struct {
	client *client.Client
	logger *slog.Logger
	theme  Theme

	route      route
	landing    landingModel
	upload     uploadModel
	processing processingModel
	result     resultModel

	width  int
	height int
}

// NewApp creates the application starting at the landing view.
func NewApp(c *client.Client, logger *slog.Logger) App {
	return App{
		client:  c,
		logger:  logger,
		theme:   defaultTheme,
		route:   routeLanding,
		landing: newLandingModel(c, defaultTheme),
	}
}

// NewJobApp creates the application starting at the processing view for a
// known job ID (the `docsight watch` deep link).
func NewJobApp(c *client.Client, logger *slog.Logger, jobID string) App {
	a := NewApp(c, logger)
	a.route = routeProcessing
	a.processing = newProcessingModel(c, logger, a.theme, jobID)
	return a
}

// Init returns the initial command for the active view.
func (a App) Init() tea.Cmd {
	switch a.route {
	case routeLanding:
		return a.landing.init()
	case routeProcessing:
		return a.processing.init()
	default:
		return nil
	}
}

// Update handles messages and returns the updated model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.upload.setSize(msg.Width, msg.Height)
		a.result.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case gotoLandingMsg:
		a.route = routeLanding
		a.landing = newLandingModel(a.client, a.theme)
		return a, a.landing.init()

	case gotoUploadMsg:
		a.route = routeUpload
		a.upload = newUploadModel(a.client, a.logger, a.theme)
		a.upload.setSize(a.width, a.height)
		return a, a.upload.init()

	case gotoProcessingMsg:
		a.route = routeProcessing
		a.processing = newProcessingModel(a.client, a.logger, a.theme, msg.jobID)
		return a, a.processing.init()

	case gotoResultMsg:
		a.route = routeResult
		a.result = newResultModel(a.client, a.logger, a.theme, msg.jobID)
		a.result.setSize(a.width, a.height)
		return a, a.result.init()
	}

	var cmd tea.Cmd
	switch a.route {
	case routeLanding:
		a.landing, cmd = a.landing.update(msg)
	case routeUpload:
		a.upload, cmd = a.upload.update(msg)
	case routeProcessing:
		a.processing, cmd = a.processing.update(msg)
	case routeResult:
		a.result, cmd = a.result.update(msg)
	}
	return a, cmd
}

// View renders the active view.
func (a App) View() tea.View {
	var content string
	switch a.route {
	case routeLanding:
		content = a.landing.view()
	case routeUpload:
		content = a.upload.view()
	case routeProcessing:
		content = a.processing.view()
	case routeResult:
		content = a.result.view()
	}
	return tea.NewView(content)
}
