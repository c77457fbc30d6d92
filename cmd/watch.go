package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"mixtape/internal/jobs"
	"mixtape/internal/shared"
	"mixtape/internal/ui"
)

func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch a generation job in the terminal until it finishes",
		ArgsUsage: "<job-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "job-id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Usage: "Base URL of the running web service (default from config)",
			},
		},
		Action: r.Watch,
	}
}

// Watch polls the web service's status endpoint for one job and renders its
// lifecycle in a TUI until it reaches a terminal state.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	jobID := cmd.StringArg("job-id")
	if jobID == "" {
		return fmt.Errorf("%w: job id is required", shared.ErrMissingArgument)
	}

	baseURL := cmd.String("server")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s:%d", r.config.Server.Host, r.config.Server.Port)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mixtape-watch.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	fetch := func(ctx context.Context, id string) (jobs.Result, error) {
		return r.fetchStatus(ctx, baseURL, id)
	}

	model := ui.NewModel(ctx, jobID, fetch)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if m, ok := final.(ui.Model); ok {
		if m.Err() != nil {
			return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, m.Err())
		}
		result := m.Result()
		if result.Status.Terminal() {
			return r.writePlain("%s\n", result.Output)
		}
	}

	return nil
}

// fetchStatus pulls one lifecycle snapshot from the web service.
func (r *Runner) fetchStatus(ctx context.Context, baseURL, jobID string) (jobs.Result, error) {
	url := fmt.Sprintf("%s/status/%s/check", baseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return jobs.Result{}, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return jobs.Result{}, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return jobs.Result{}, fmt.Errorf("%w: status check returned %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result jobs.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return jobs.Result{}, fmt.Errorf("failed to decode status: %w", err)
	}
	return result, nil
}
