package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mixtape/internal/jobs"
)

// pollInterval matches the web status page's refresh cadence.
const pollInterval = 2 * time.Second

// StatusFunc fetches one lifecycle snapshot for a job.
type StatusFunc func(ctx context.Context, jobID string) (jobs.Result, error)

// Model represents the watch TUI state: one job polled until terminal.
type Model struct {
	ctx     context.Context
	jobID   string
	fetch   StatusFunc
	spinner spinner.Model
	result  jobs.Result
	err     error
	done    bool
	width   int
	help    help.Model
	keys    keyMap
}

// NewModel creates a watch model for the given job.
func NewModel(ctx context.Context, jobID string, fetch StatusFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.warn

	return Model{
		ctx:     ctx,
		jobID:   jobID,
		fetch:   fetch,
		spinner: sp,
		result:  jobs.Result{Status: jobs.StatusQueued},
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Result returns the last snapshot observed before the program exited.
func (m Model) Result() jobs.Result {
	return m.result
}

// Err returns the fetch error that ended the watch, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.update(msg)
	}

	return m, nil
}

func (m Model) update(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgStatusFetched:
		data := msg.data.(struct {
			result jobs.Result
			err    error
		})
		if data.err != nil {
			m.err = data.err
			m.done = true
			return m, tea.Quit
		}

		m.result = data.result
		if m.result.Status.Terminal() {
			m.done = true
			return m, tea.Quit
		}
		return m, tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollDueMsg() })

	case MsgPollDue:
		return m, m.fetchCmd()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(fmt.Sprintf("Watching job %s", m.jobID)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Status check failed: %v", m.err)))
	case m.result.Status == jobs.StatusComplete:
		b.WriteString(styles.ok.Render("Complete"))
	case m.result.Status == jobs.StatusError:
		b.WriteString(styles.err.Render("Error"))
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(styles.warn.Render(string(m.result.Status)))
	}
	b.WriteString("\n")

	if m.result.Output != "" {
		b.WriteString(styles.output.Render(m.result.Output))
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString("\n")
		b.WriteString(styles.help.Render(m.help.View(m.keys)))
	}

	return b.String()
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.fetch(m.ctx, m.jobID)
		return statusFetchedMsg(result, err)
	}
}
